package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/audit"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/config"
	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/middleware"
	ucidentity "github.com/prashantkoirala465/Appointment-Management-System/internal/usecase/identity"
)

type AuthHandler struct {
	authenticate *ucidentity.Authenticate
	register     *ucidentity.Register
	signer       *auth.TokenSigner
	audit        *audit.Logger
	config       *config.Config
}

func NewAuthHandler(
	authenticate *ucidentity.Authenticate,
	register *ucidentity.Register,
	signer *auth.TokenSigner,
	auditLogger *audit.Logger,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		authenticate: authenticate,
		register:     register,
		signer:       signer,
		audit:        auditLogger,
		config:       cfg,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// --------- Handlers ---------

// Login verifies credentials and issues both session transports from the
// same claims value: the cookie for browsers and the bearer token for API
// clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	claims, err := h.authenticate.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		case errors.Is(err, domain.ErrPendingApproval):
			httperr.Forbidden(c, "pending_approval", "Account is pending administrator approval.")
		default:
			httperr.Internal(c, "internal_error", "Login failed.")
		}
		return
	}

	token, err := h.signer.Sign(claims)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Login failed.")
		return
	}

	if err := auth.SetSessionClaims(c, claims, h.config.SessionTTLMin*60); err != nil {
		httperr.Internal(c, "failed_to_create_session", "Login failed.")
		return
	}

	_ = h.audit.Log(audit.Event{
		UserID: &claims.UserID,
		Action: "user_logged_in",
		Entity: "user",
	})

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"claims": claims,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := auth.ClearSession(c); err != nil {
		httperr.Internal(c, "failed_to_clear_session", "Logout failed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Me returns the caller's claims plus the resolved navigation entries.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		httperr.Unauthorized(c, "unauthorized", "Authentication required.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"claims":     claims,
		"navigation": middleware.NavFrom(c),
	})
}

// Register is the self-service path: the account comes out unapproved
// with the fixed default role and menu, and cannot log in yet.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	user, err := h.register.Execute(c.Request.Context(), ucidentity.RegisterInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			httperr.Conflict(c, "username_taken", "username", "Username is already taken.")
			return
		}
		httperr.Internal(c, "failed_to_register", "Registration failed.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"full_name": user.FullName,
			"username":  user.Username,
			"email":     user.Email,
			"approved":  user.Approved,
		},
	})
}
