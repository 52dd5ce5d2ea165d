package identity

import (
	"context"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetUserByUsername(
		ctx context.Context,
		username string,
	) (*models.User, error)

	GetUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	UsernameExists(
		ctx context.Context,
		username string,
	) (bool, error)

	CreateUser(
		ctx context.Context,
		user *models.User,
	) error

	// CreateUserWithLinks creates the user and its initial role and menu
	// links in one transaction; a failed link rolls the user back too.
	CreateUserWithLinks(
		ctx context.Context,
		user *models.User,
		roleIDs []uint,
		menuIDs []uint,
	) error

	// -------- Defaults (self-registration) --------
	GetRoleByName(
		ctx context.Context,
		name string,
	) (*models.Role, error)

	GetMenuByName(
		ctx context.Context,
		name string,
	) (*models.Menu, error)

	// -------- Role / menu links --------
	ListRoleNames(
		ctx context.Context,
		userID uint,
	) ([]string, error)

	ListActiveMenus(
		ctx context.Context,
		userID uint,
	) ([]models.Menu, error)

	// ReplaceAssignments deletes every role and menu link of the user
	// and inserts rows for exactly the given ids, in one transaction.
	ReplaceAssignments(
		ctx context.Context,
		userID uint,
		roleIDs []uint,
		menuIDs []uint,
	) error
}
