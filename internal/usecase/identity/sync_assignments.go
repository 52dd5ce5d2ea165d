package identity

import (
	"context"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/audit"
	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
)

// ======================================================
// USE CASE — ASSIGNMENT SYNC
// ======================================================

// SyncAssignments applies an administrator's checkbox selection of role
// and menu ids to a user: the whole existing link set is replaced by rows
// for exactly the checked ids. No diffing, no change history.
type SyncAssignments struct {
	repo  domain.Repository
	audit *audit.Logger
}

func NewSyncAssignments(
	repo domain.Repository,
	auditLogger *audit.Logger,
) *SyncAssignments {
	return &SyncAssignments{
		repo:  repo,
		audit: auditLogger,
	}
}

func (uc *SyncAssignments) Execute(
	ctx context.Context,
	userID uint,
	roleIDs []uint,
	menuIDs []uint,
) error {

	if err := uc.repo.ReplaceAssignments(ctx, userID, roleIDs, menuIDs); err != nil {
		return err
	}

	if uc.audit != nil {
		_ = uc.audit.Log(audit.Event{
			Action:   "assignments_replaced",
			Entity:   "user",
			EntityID: &userID,
			Metadata: map[string]any{
				"role_ids": roleIDs,
				"menu_ids": menuIDs,
			},
		})
	}
	return nil
}
