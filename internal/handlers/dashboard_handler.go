package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/middleware"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Get summarizes the system for the landing screen: entity counts,
// today's appointments and the caller's navigation.
func (h *DashboardHandler) Get(c *gin.Context) {
	var (
		staffCount       int64
		appointmentCount int64
		pendingUsers     int64
	)

	if err := h.db.Model(&models.Staff{}).
		Where("active = ?", true).
		Count(&staffCount).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load dashboard.")
		return
	}
	if err := h.db.Model(&models.Appointment{}).
		Count(&appointmentCount).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load dashboard.")
		return
	}
	if err := h.db.Model(&models.User{}).
		Where("approved = ?", false).
		Count(&pendingUsers).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load dashboard.")
		return
	}

	// Local midnight, not the UTC-epoch day boundary.
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var today []models.Appointment
	if err := h.db.
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").
		Find(&today).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load dashboard.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staff_count":        staffCount,
		"appointment_count":  appointmentCount,
		"pending_user_count": pendingUsers,
		"appointments_today": today,
		"navigation":         middleware.NavFrom(c),
	})
}
