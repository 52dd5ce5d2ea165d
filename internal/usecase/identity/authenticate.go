package identity

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
)

// ======================================================
// USE CASE — AUTHENTICATE
// ======================================================

type Authenticate struct {
	repo domain.Repository
}

func NewAuthenticate(repo domain.Repository) *Authenticate {
	return &Authenticate{repo: repo}
}

// Execute verifies the submitted credentials and builds the identity
// assertion. Unknown username, inactive account and wrong password all
// collapse into the same ErrInvalidCredentials; only an approved match
// produces claims.
func (uc *Authenticate) Execute(
	ctx context.Context,
	username string,
	password string,
) (*domain.Claims, error) {

	username = strings.ToLower(strings.TrimSpace(username))

	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Approval is checked only after the password matched, so the
	// message never confirms credentials for an arbitrary account.
	if !user.Approved {
		return nil, domain.ErrPendingApproval
	}

	roles, err := uc.repo.ListRoleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Roles:    roles,
	}, nil
}
