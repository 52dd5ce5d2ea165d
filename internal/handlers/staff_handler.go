package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/audit"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httpresp"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/middleware"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Logger
}

func NewStaffHandler(db *gorm.DB, auditLogger *audit.Logger) *StaffHandler {
	return &StaffHandler{db: db, audit: auditLogger}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=20"`
	Specialty string `json:"specialty" binding:"omitempty,max=100"`
}

type UpdateStaffRequest struct {
	ID        uint    `json:"id" binding:"required"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *StaffHandler) List(c *gin.Context) {
	staff := []models.Staff{}
	if err := h.db.Order("name ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}
	httpresp.List(c, staff)
}

func (h *StaffHandler) Get(c *gin.Context) {
	staff, ok := h.findStaff(c)
	if !ok {
		return
	}
	httpresp.OK(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	staff := models.Staff{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Active:    true,
	}
	if err := h.db.Create(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Could not create staff record.")
		return
	}

	h.logAction(c, "staff_created", staff.ID)
	httpresp.Created(c, "/api/staff", staff.ID, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	staff, ok := h.findStaff(c)
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	if req.ID != staff.ID {
		httperr.BadRequest(c, "id_mismatch", "Id in path must match id in body.")
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Specialty != nil {
		staff.Specialty = *req.Specialty
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.db.Save(staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Could not update staff record.")
		return
	}

	httpresp.OK(c, staff)
}

// Delete soft-deletes when appointments reference the record, keeping the
// row and its appointments intact, and hard-deletes otherwise.
func (h *StaffHandler) Delete(c *gin.Context) {
	staff, ok := h.findStaff(c)
	if !ok {
		return
	}

	var appointments int64
	if err := h.db.Model(&models.Appointment{}).
		Where("staff_id = ?", staff.ID).
		Count(&appointments).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_staff", "Could not delete staff record.")
		return
	}

	if appointments > 0 {
		staff.Active = false
		if err := h.db.Save(staff).Error; err != nil {
			httperr.Internal(c, "failed_to_delete_staff", "Could not deactivate staff record.")
			return
		}
		h.logAction(c, "staff_deactivated", staff.ID)
		httpresp.NoContent(c)
		return
	}

	if err := h.db.Delete(staff).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_staff", "Could not delete staff record.")
		return
	}

	h.logAction(c, "staff_deleted", staff.ID)
	httpresp.NoContent(c)
}

// --------- Helpers ---------

func (h *StaffHandler) findStaff(c *gin.Context) (*models.Staff, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id must be numeric.")
		return nil, false
	}

	var staff models.Staff
	if err := h.db.First(&staff, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "staff_not_found", "Staff record not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_staff", "Could not load staff record.")
		return nil, false
	}
	return &staff, true
}

func (h *StaffHandler) logAction(c *gin.Context, action string, targetID uint) {
	var actorID *uint
	if claims := middleware.ClaimsFrom(c); claims != nil {
		actorID = &claims.UserID
	}
	_ = h.audit.Log(audit.Event{
		UserID:   actorID,
		Action:   action,
		Entity:   "staff",
		EntityID: &targetID,
	})
}
