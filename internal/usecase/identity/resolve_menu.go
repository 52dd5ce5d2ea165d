package identity

import (
	"context"

	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

// ======================================================
// USE CASE — MENU RESOLUTION
// ======================================================

// ResolveMenu returns the navigation entries assigned to a user: active
// menus only, ordered by display order ascending with id as the stable
// tie-break. A user with no assignments gets an empty list, not an error.
type ResolveMenu struct {
	repo domain.Repository
}

func NewResolveMenu(repo domain.Repository) *ResolveMenu {
	return &ResolveMenu{repo: repo}
}

func (uc *ResolveMenu) Execute(
	ctx context.Context,
	userID uint,
) ([]models.Menu, error) {
	return uc.repo.ListActiveMenus(ctx, userID)
}
