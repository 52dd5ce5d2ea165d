package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

// ======================================================
// USE CASE — EXTERNAL IDENTITY LINKING
// ======================================================

// LinkExternalIdentity maps an email asserted by a third-party identity
// provider onto a local account. A matching email reuses that account
// (active and approval state still apply); no match provisions a fresh
// unapproved account with a username derived from the email local part.
type LinkExternalIdentity struct {
	repo domain.Repository
}

func NewLinkExternalIdentity(repo domain.Repository) *LinkExternalIdentity {
	return &LinkExternalIdentity{repo: repo}
}

func (uc *LinkExternalIdentity) Execute(
	ctx context.Context,
	email string,
	fullName string,
) (*models.User, error) {

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.repo.GetUserByEmail(ctx, email)
	if err == nil {
		if !user.Active {
			return nil, domain.ErrInvalidCredentials
		}
		if !user.Approved {
			return nil, domain.ErrPendingApproval
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	username, err := uc.uniqueUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	user = &models.User{
		FullName: strings.TrimSpace(fullName),
		Username: username,
		Email:    email,
		// Provider-backed accounts carry no usable local password.
		PasswordHash: "external",
		Active:       true,
		Approved:     false,
	}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// uniqueUsername takes the email local part and appends a numeric suffix
// until the name is free: "jane", "jane1", "jane2", ...
func (uc *LinkExternalIdentity) uniqueUsername(
	ctx context.Context,
	email string,
) (string, error) {

	base := strings.ToLower(email[:strings.Index(email, "@")])

	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := uc.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}
