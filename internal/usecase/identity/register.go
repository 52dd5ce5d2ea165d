package identity

import (
	"context"
	"strings"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/audit"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

// ======================================================
// USE CASE — SELF-REGISTRATION
// ======================================================

type RegisterInput struct {
	FullName string
	Username string
	Email    string
	Password string
}

type Register struct {
	repo  domain.Repository
	audit *audit.Logger

	defaultRole string
	defaultMenu string
}

func NewRegister(
	repo domain.Repository,
	auditLogger *audit.Logger,
	defaultRole string,
	defaultMenu string,
) *Register {
	return &Register{
		repo:        repo,
		audit:       auditLogger,
		defaultRole: defaultRole,
		defaultMenu: defaultMenu,
	}
}

// Execute creates an account for an unauthenticated visitor. The account
// is always unapproved, always gets the fixed default role and default
// menu entry, and cannot log in until an administrator approves it.
func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.User, error) {

	username := strings.ToLower(strings.TrimSpace(in.Username))

	taken, err := uc.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	// Defaults are resolved before the user exists; a missing default
	// leaves no half-created account behind.
	role, err := uc.repo.GetRoleByName(ctx, uc.defaultRole)
	if err != nil {
		return nil, err
	}
	menu, err := uc.repo.GetMenuByName(ctx, uc.defaultMenu)
	if err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     strings.TrimSpace(in.FullName),
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hashed,
		Active:       true,
		Approved:     false,
	}

	if err := uc.repo.CreateUserWithLinks(ctx, user, []uint{role.ID}, []uint{menu.ID}); err != nil {
		return nil, err
	}

	uc.logRegistered(user)

	return user, nil
}

func (uc *Register) logRegistered(user *models.User) {
	if uc.audit == nil {
		return
	}
	_ = uc.audit.Log(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})
}
