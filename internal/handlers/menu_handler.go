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

type MenuHandler struct {
	db *gorm.DB
}

func NewMenuHandler(db *gorm.DB) *MenuHandler {
	return &MenuHandler{db: db}
}

// --------- Requests ---------

type CreateMenuRequest struct {
	Name         string `json:"name" binding:"required,max=50"`
	URL          string `json:"url" binding:"required,max=100"`
	DisplayOrder int    `json:"display_order"`
}

type UpdateMenuRequest struct {
	ID           uint    `json:"id" binding:"required"`
	Name         *string `json:"name,omitempty"`
	URL          *string `json:"url,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *MenuHandler) List(c *gin.Context) {
	menus := []models.Menu{}
	if err := h.db.
		Order("display_order ASC, id ASC").
		Find(&menus).Error; err != nil {

		httperr.Internal(c, "failed_to_list_menus", "Could not list menus.")
		return
	}
	httpresp.List(c, menus)
}

func (h *MenuHandler) Get(c *gin.Context) {
	menu, ok := h.findMenu(c)
	if !ok {
		return
	}
	httpresp.OK(c, menu)
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	menu := models.Menu{
		Name:         req.Name,
		URL:          req.URL,
		DisplayOrder: req.DisplayOrder,
		Active:       true,
	}
	if err := h.db.Create(&menu).Error; err != nil {
		httperr.Internal(c, "failed_to_create_menu", "Could not create menu.")
		return
	}

	httpresp.Created(c, "/api/menus", menu.ID, menu)
}

func (h *MenuHandler) Update(c *gin.Context) {
	menu, ok := h.findMenu(c)
	if !ok {
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	if req.ID != menu.ID {
		httperr.BadRequest(c, "id_mismatch", "Id in path must match id in body.")
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.URL != nil {
		menu.URL = *req.URL
	}
	if req.DisplayOrder != nil {
		menu.DisplayOrder = *req.DisplayOrder
	}
	if req.Active != nil {
		menu.Active = *req.Active
	}

	if err := h.db.Save(menu).Error; err != nil {
		httperr.Internal(c, "failed_to_update_menu", "Could not update menu.")
		return
	}

	httpresp.OK(c, menu)
}

// Delete removes the menu and its user links in one transaction.
func (h *MenuHandler) Delete(c *gin.Context) {
	menu, ok := h.findMenu(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.UserMenu{}).Error; err != nil {
			return err
		}
		return tx.Delete(menu).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_menu", "Could not delete menu.")
		return
	}

	httpresp.NoContent(c)
}

// --------- Helpers ---------

func (h *MenuHandler) findMenu(c *gin.Context) (*models.Menu, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id must be numeric.")
		return nil, false
	}

	var menu models.Menu
	if err := h.db.First(&menu, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "menu_not_found", "Menu not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_menu", "Could not load menu.")
		return nil, false
	}
	return &menu, true
}
