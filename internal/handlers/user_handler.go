package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/audit"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httpresp"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/middleware"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
	ucidentity "github.com/prashantkoirala465/Appointment-Management-System/internal/usecase/identity"
)

type UserHandler struct {
	db    *gorm.DB
	sync  *ucidentity.SyncAssignments
	audit *audit.Logger
}

func NewUserHandler(
	db *gorm.DB,
	sync *ucidentity.SyncAssignments,
	auditLogger *audit.Logger,
) *UserHandler {
	return &UserHandler{
		db:    db,
		sync:  sync,
		audit: auditLogger,
	}
}

// --------- Requests ---------

type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
	Approved bool   `json:"approved"`
	RoleIDs  []uint `json:"role_ids"`
	MenuIDs  []uint `json:"menu_ids"`
}

type UpdateUserRequest struct {
	ID       uint    `json:"id" binding:"required"`
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Approved *bool   `json:"approved,omitempty"`

	// Checkbox-style selection sets. A submitted set fully replaces the
	// existing links of that kind, never diffed; an omitted set leaves
	// them untouched.
	RoleIDs *[]uint `json:"role_ids,omitempty"`
	MenuIDs *[]uint `json:"menu_ids,omitempty"`
}

// --------- Handlers ---------

// List returns users pending approval first, then the rest, each block
// alphabetical by full name.
func (h *UserHandler) List(c *gin.Context) {
	users := []models.User{}
	if err := h.db.
		Order("approved ASC, full_name ASC").
		Find(&users).Error; err != nil {

		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, ok := h.findUser(c)
	if !ok {
		return
	}

	roleIDs := []uint{}
	menuIDs := []uint{}
	h.db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Pluck("role_id", &roleIDs)
	h.db.Model(&models.UserMenu{}).Where("user_id = ?", user.ID).Pluck("menu_id", &menuIDs)

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"role_ids": roleIDs,
		"menu_ids": menuIDs,
	})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	// Same normalization as login and self-registration, so a stored
	// username always matches the lookup form.
	username := strings.ToLower(strings.TrimSpace(req.Username))

	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "username_taken", "username", "Username is already taken.")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create user.")
		return
	}

	user := models.User{
		FullName:     req.FullName,
		Username:     username,
		Email:        req.Email,
		PasswordHash: hashed,
		Active:       true,
		Approved:     req.Approved,
	}
	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return
	}

	if len(req.RoleIDs) > 0 || len(req.MenuIDs) > 0 {
		if err := h.sync.Execute(c.Request.Context(), user.ID, req.RoleIDs, req.MenuIDs); err != nil {
			httperr.Internal(c, "failed_to_assign", "Could not assign roles and menus.")
			return
		}
	}

	h.logAction(c, "user_created", user.ID)
	httpresp.Created(c, "/api/users", user.ID, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	user, ok := h.findUser(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	if req.ID != user.ID {
		httperr.BadRequest(c, "id_mismatch", "Id in path must match id in body.")
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Approved != nil {
		user.Approved = *req.Approved
	}

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update user.")
		return
	}

	if req.RoleIDs != nil || req.MenuIDs != nil {
		roleIDs, err := h.selectionOrCurrent(req.RoleIDs, user.ID, &models.UserRole{}, "role_id")
		if err != nil {
			httperr.Internal(c, "failed_to_assign", "Could not replace assignments.")
			return
		}
		menuIDs, err := h.selectionOrCurrent(req.MenuIDs, user.ID, &models.UserMenu{}, "menu_id")
		if err != nil {
			httperr.Internal(c, "failed_to_assign", "Could not replace assignments.")
			return
		}

		if err := h.sync.Execute(c.Request.Context(), user.ID, roleIDs, menuIDs); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				httperr.NotFound(c, "user_not_found", "User no longer exists.")
				return
			}
			httperr.Internal(c, "failed_to_assign", "Could not replace assignments.")
			return
		}
	}

	h.logAction(c, "user_updated", user.ID)
	httpresp.OK(c, user)
}

// Approve flips the approval gate open for a self-registered account.
func (h *UserHandler) Approve(c *gin.Context) {
	user, ok := h.findUser(c)
	if !ok {
		return
	}

	user.Approved = true
	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "failed_to_approve_user", "Could not approve user.")
		return
	}

	h.logAction(c, "user_approved", user.ID)
	httpresp.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := h.findUser(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserMenu{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_user", "Could not delete user.")
		return
	}

	h.logAction(c, "user_deleted", user.ID)
	httpresp.NoContent(c)
}

// --------- Helpers ---------

func (h *UserHandler) findUser(c *gin.Context) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id must be numeric.")
		return nil, false
	}

	var user models.User
	if err := h.db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_user", "Could not load user.")
		return nil, false
	}
	return &user, true
}

func (h *UserHandler) logAction(c *gin.Context, action string, targetID uint) {
	var actorID *uint
	if claims := middleware.ClaimsFrom(c); claims != nil {
		actorID = &claims.UserID
	}
	_ = h.audit.Log(audit.Event{
		UserID:   actorID,
		Action:   action,
		Entity:   "user",
		EntityID: &targetID,
	})
}

// selectionOrCurrent resolves a submitted selection set: present means the
// submitted ids, omitted means the user's current links so the replace
// does not touch them.
func (h *UserHandler) selectionOrCurrent(
	submitted *[]uint,
	userID uint,
	linkModel any,
	idColumn string,
) ([]uint, error) {

	if submitted != nil {
		return *submitted, nil
	}

	current := []uint{}
	if err := h.db.Model(linkModel).
		Where("user_id = ?", userID).
		Pluck(idColumn, &current).Error; err != nil {
		return nil, err
	}
	return current, nil
}
