package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/audit"
	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/appointment"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httpresp"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/middleware"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

type AppointmentHandler struct {
	db    *gorm.DB
	audit *audit.Logger
}

func NewAppointmentHandler(db *gorm.DB, auditLogger *audit.Logger) *AppointmentHandler {
	return &AppointmentHandler{db: db, audit: auditLogger}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	StaffID     uint      `json:"staff_id" binding:"required"`
	ClientName  string    `json:"client_name" binding:"required,max=100"`
	ClientEmail string    `json:"client_email" binding:"omitempty,email"`
	ClientPhone string    `json:"client_phone" binding:"omitempty,max=20"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	DurationMin int       `json:"duration_min" binding:"required,min=1,max=1440"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes" binding:"omitempty,max=255"`
}

type UpdateAppointmentRequest struct {
	ID          uint       `json:"id" binding:"required"`
	StaffID     *uint      `json:"staff_id,omitempty"`
	ClientName  *string    `json:"client_name,omitempty"`
	ClientEmail *string    `json:"client_email,omitempty"`
	ClientPhone *string    `json:"client_phone,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	DurationMin *int       `json:"duration_min,omitempty" binding:"omitempty,min=1,max=1440"`
	Status      *string    `json:"status,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// --------- Handlers ---------

// List returns appointments newest first by start time; staff_id and
// status narrow the result.
func (h *AppointmentHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Appointment{})

	if staffID := c.Query("staff_id"); staffID != "" {
		q = q.Where("staff_id = ?", staffID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	appointments := []models.Appointment{}
	if err := q.
		Order("start_time DESC").
		Find(&appointments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, ok := h.findAppointment(c)
	if !ok {
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	status := domain.Status(req.Status)
	if req.Status == "" {
		status = domain.InitialStatus()
	}
	if err := domain.Validate(status); err != nil {
		if httperr.IsBusiness(err, "invalid_status") {
			httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Could not create appointment.")
		return
	}

	var staff models.Staff
	if err := h.db.First(&staff, req.StaffID).Error; err != nil {
		httperr.BadRequest(c, "staff_not_found", "Staff record not found.")
		return
	}

	ap := models.Appointment{
		StaffID:     req.StaffID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		Status:      string(status),
		Notes:       req.Notes,
	}
	if err := h.db.Create(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_create_appointment", "Could not create appointment.")
		return
	}

	h.logAction(c, "appointment_created", ap.ID)
	httpresp.Created(c, "/api/appointments", ap.ID, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	ap, ok := h.findAppointment(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	if req.ID != ap.ID {
		httperr.BadRequest(c, "id_mismatch", "Id in path must match id in body.")
		return
	}

	if req.Status != nil {
		if err := domain.Validate(domain.Status(*req.Status)); err != nil {
			if httperr.IsBusiness(err, "invalid_status") {
				httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")
				return
			}
			httperr.Internal(c, "failed_to_update_appointment", "Could not update appointment.")
			return
		}
		ap.Status = *req.Status
	}
	if req.StaffID != nil {
		var staff models.Staff
		if err := h.db.First(&staff, *req.StaffID).Error; err != nil {
			httperr.BadRequest(c, "staff_not_found", "Staff record not found.")
			return
		}
		ap.StaffID = *req.StaffID
	}
	if req.ClientName != nil {
		ap.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		ap.ClientEmail = *req.ClientEmail
	}
	if req.ClientPhone != nil {
		ap.ClientPhone = *req.ClientPhone
	}
	if req.StartTime != nil {
		ap.StartTime = *req.StartTime
	}
	if req.DurationMin != nil {
		ap.DurationMin = *req.DurationMin
	}
	if req.Notes != nil {
		ap.Notes = *req.Notes
	}

	if err := h.db.Save(ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Could not update appointment.")
		return
	}

	h.logAction(c, "appointment_updated", ap.ID)
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	ap, ok := h.findAppointment(c)
	if !ok {
		return
	}

	if err := h.db.Delete(ap).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Could not delete appointment.")
		return
	}

	h.logAction(c, "appointment_deleted", ap.ID)
	httpresp.NoContent(c)
}

// --------- Helpers ---------

func (h *AppointmentHandler) findAppointment(c *gin.Context) (*models.Appointment, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id must be numeric.")
		return nil, false
	}

	var ap models.Appointment
	if err := h.db.First(&ap, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_appointment", "Could not load appointment.")
		return nil, false
	}
	return &ap, true
}

func (h *AppointmentHandler) logAction(c *gin.Context, action string, targetID uint) {
	var actorID *uint
	if claims := middleware.ClaimsFrom(c); claims != nil {
		actorID = &claims.UserID
	}
	_ = h.audit.Log(audit.Event{
		UserID:   actorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &targetID,
	})
}
