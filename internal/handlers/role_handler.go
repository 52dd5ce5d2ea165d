package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httpresp"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

type RoleHandler struct {
	db *gorm.DB
}

func NewRoleHandler(db *gorm.DB) *RoleHandler {
	return &RoleHandler{db: db}
}

// --------- Requests ---------

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
}

type UpdateRoleRequest struct {
	ID          uint    `json:"id" binding:"required"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *RoleHandler) List(c *gin.Context) {
	roles := []models.Role{}
	if err := h.db.Order("name ASC").Find(&roles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_roles", "Could not list roles.")
		return
	}
	httpresp.List(c, roles)
}

func (h *RoleHandler) Get(c *gin.Context) {
	role, ok := h.findRole(c)
	if !ok {
		return
	}
	httpresp.OK(c, role)
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	var count int64
	h.db.Model(&models.Role{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "role_name_taken", "name", "Role name already exists.")
		return
	}

	role := models.Role{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := h.db.Create(&role).Error; err != nil {
		httperr.Internal(c, "failed_to_create_role", "Could not create role.")
		return
	}

	httpresp.Created(c, "/api/roles", role.ID, role)
}

func (h *RoleHandler) Update(c *gin.Context) {
	role, ok := h.findRole(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	if req.ID != role.ID {
		httperr.BadRequest(c, "id_mismatch", "Id in path must match id in body.")
		return
	}

	if req.Name != nil && *req.Name != role.Name {
		var count int64
		h.db.Model(&models.Role{}).
			Where("name = ? AND id <> ?", *req.Name, role.ID).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, "role_name_taken", "name", "Role name already exists.")
			return
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Active != nil {
		role.Active = *req.Active
	}

	if err := h.db.Save(role).Error; err != nil {
		httperr.Internal(c, "failed_to_update_role", "Could not update role.")
		return
	}

	httpresp.OK(c, role)
}

// Delete removes the role and its user links in one transaction.
func (h *RoleHandler) Delete(c *gin.Context) {
	role, ok := h.findRole(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(role).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_role", "Could not delete role.")
		return
	}

	httpresp.NoContent(c)
}

// --------- Helpers ---------

func (h *RoleHandler) findRole(c *gin.Context) (*models.Role, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id must be numeric.")
		return nil, false
	}

	var role models.Role
	if err := h.db.First(&role, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "role_not_found", "Role not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_role", "Could not load role.")
		return nil, false
	}
	return &role, true
}
