package identity

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	dbpkg "github.com/prashantkoirala465/Appointment-Management-System/internal/db"
	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
	infraRepo "github.com/prashantkoirala465/Appointment-Management-System/internal/infra/repository"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(conn))
	return conn
}

func createUser(t *testing.T, conn *gorm.DB, username, password string, active, approved bool) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		FullName:     "Test " + username,
		Username:     username,
		PasswordHash: hashed,
		Active:       active,
		Approved:     approved,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func createRole(t *testing.T, conn *gorm.DB, name string) *models.Role {
	t.Helper()

	role := &models.Role{Name: name, Active: true}
	require.NoError(t, conn.Create(role).Error)
	return role
}

func createMenu(t *testing.T, conn *gorm.DB, name string, order int, active bool) *models.Menu {
	t.Helper()

	menu := &models.Menu{Name: name, URL: "/app/" + strings.ToLower(name), DisplayOrder: order, Active: active}
	require.NoError(t, conn.Create(menu).Error)
	return menu
}

// ------------------------------------------------------
// Authenticate
// ------------------------------------------------------

func TestAuthenticateReturnsExactRoleClaims(t *testing.T) {
	conn := newTestDB(t)
	repo := infraRepo.NewIdentityGormRepository(conn)
	uc := NewAuthenticate(repo)

	user := createUser(t, conn, "jane", "secret123", true, true)
	admin := createRole(t, conn, "Admin")
	staff := createRole(t, conn, "Staff")
	createRole(t, conn, "Auditor") // not linked

	require.NoError(t, conn.Create(&models.UserRole{UserID: user.ID, RoleID: admin.ID}).Error)
	require.NoError(t, conn.Create(&models.UserRole{UserID: user.ID, RoleID: staff.ID}).Error)

	claims, err := uc.Execute(context.Background(), "jane", "secret123")
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "jane", claims.Username)
	require.ElementsMatch(t, []string{"Admin", "Staff"}, claims.Roles)
}

func TestAuthenticateWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	conn := newTestDB(t)
	uc := NewAuthenticate(infraRepo.NewIdentityGormRepository(conn))

	createUser(t, conn, "jane", "secret123", true, true)

	_, errWrongPassword := uc.Execute(context.Background(), "jane", "nope")
	_, errUnknownUser := uc.Execute(context.Background(), "nobody", "secret123")

	require.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownUser, domain.ErrInvalidCredentials)
	require.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestAuthenticateInactiveAccountRejected(t *testing.T) {
	conn := newTestDB(t)
	uc := NewAuthenticate(infraRepo.NewIdentityGormRepository(conn))

	createUser(t, conn, "jane", "secret123", false, true)

	_, err := uc.Execute(context.Background(), "jane", "secret123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateUnapprovedGetsDistinctError(t *testing.T) {
	conn := newTestDB(t)
	uc := NewAuthenticate(infraRepo.NewIdentityGormRepository(conn))

	createUser(t, conn, "jane", "secret123", true, false)

	_, err := uc.Execute(context.Background(), "jane", "secret123")
	require.ErrorIs(t, err, domain.ErrPendingApproval)
	require.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ------------------------------------------------------
// Register
// ------------------------------------------------------

func TestRegisterAssignsDefaultRoleAndMenu(t *testing.T) {
	conn := newTestDB(t)
	repo := infraRepo.NewIdentityGormRepository(conn)

	createRole(t, conn, dbpkg.DefaultRoleName)
	menu := createMenu(t, conn, dbpkg.DefaultMenuName, 1, true)

	uc := NewRegister(repo, nil, dbpkg.DefaultRoleName, dbpkg.DefaultMenuName)

	user, err := uc.Execute(context.Background(), RegisterInput{
		FullName: "New Person",
		Username: "newperson",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.False(t, user.Approved)
	require.True(t, user.Active)

	roles, err := repo.ListRoleNames(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, []string{dbpkg.DefaultRoleName}, roles)

	menus, err := repo.ListActiveMenus(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	require.Equal(t, menu.ID, menus[0].ID)
}

func TestRegisterDuplicateUsernameRejected(t *testing.T) {
	conn := newTestDB(t)
	repo := infraRepo.NewIdentityGormRepository(conn)

	createRole(t, conn, dbpkg.DefaultRoleName)
	createMenu(t, conn, dbpkg.DefaultMenuName, 1, true)

	uc := NewRegister(repo, nil, dbpkg.DefaultRoleName, dbpkg.DefaultMenuName)

	first, err := uc.Execute(context.Background(), RegisterInput{
		FullName: "First",
		Username: "taken",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), RegisterInput{
		FullName: "Second",
		Username: "taken",
		Password: "secret456",
	})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	// First user untouched.
	var unchanged models.User
	require.NoError(t, conn.First(&unchanged, first.ID).Error)
	require.Equal(t, "First", unchanged.FullName)
}

func TestRegisterLeavesNoUserBehindWhenDefaultsMissing(t *testing.T) {
	conn := newTestDB(t)
	repo := infraRepo.NewIdentityGormRepository(conn)

	// Default role exists, default menu does not.
	createRole(t, conn, dbpkg.DefaultRoleName)

	uc := NewRegister(repo, nil, dbpkg.DefaultRoleName, dbpkg.DefaultMenuName)

	_, err := uc.Execute(context.Background(), RegisterInput{
		FullName: "Orphan",
		Username: "orphan",
		Password: "secret123",
	})
	require.Error(t, err)

	var users int64
	conn.Model(&models.User{}).Count(&users)
	require.Zero(t, users)
}

// ------------------------------------------------------
// Assignment sync
// ------------------------------------------------------

func TestSyncAssignmentsIsFullReplace(t *testing.T) {
	conn := newTestDB(t)
	repo := infraRepo.NewIdentityGormRepository(conn)
	uc := NewSyncAssignments(repo, nil)

	user := createUser(t, conn, "jane", "secret123", true, true)
	admin := createRole(t, conn, "Admin")
	staff := createRole(t, conn, "Staff")

	require.NoError(t, uc.Execute(context.Background(), user.ID, []uint{admin.ID}, nil))
	require.NoError(t, uc.Execute(context.Background(), user.ID, []uint{staff.ID}, nil))

	var links []models.UserRole
	require.NoError(t, conn.Where("user_id = ?", user.ID).Find(&links).Error)
	require.Len(t, links, 1)
	require.Equal(t, staff.ID, links[0].RoleID)
}

func TestSyncAssignmentsVanishedUserIsNotFound(t *testing.T) {
	conn := newTestDB(t)
	uc := NewSyncAssignments(infraRepo.NewIdentityGormRepository(conn), nil)

	err := uc.Execute(context.Background(), 9999, []uint{1}, []uint{1})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ------------------------------------------------------
// Menu resolution
// ------------------------------------------------------

func TestResolveMenuOrdersAndFilters(t *testing.T) {
	conn := newTestDB(t)
	repo := infraRepo.NewIdentityGormRepository(conn)
	uc := NewResolveMenu(repo)

	user := createUser(t, conn, "jane", "secret123", true, true)

	menuA := createMenu(t, conn, "Alpha", 2, true)
	menuB := createMenu(t, conn, "Beta", 1, true)
	menuC := createMenu(t, conn, "Gamma", 1, false)

	for _, m := range []*models.Menu{menuA, menuB, menuC} {
		require.NoError(t, conn.Create(&models.UserMenu{UserID: user.ID, MenuID: m.ID}).Error)
	}

	menus, err := uc.Execute(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, menus, 2)
	require.Equal(t, menuB.ID, menus[0].ID)
	require.Equal(t, menuA.ID, menus[1].ID)
}

func TestResolveMenuNoAssignmentsYieldsEmptyList(t *testing.T) {
	conn := newTestDB(t)
	uc := NewResolveMenu(infraRepo.NewIdentityGormRepository(conn))

	user := createUser(t, conn, "jane", "secret123", true, true)

	menus, err := uc.Execute(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, menus)
	require.Empty(t, menus)
}

func TestResolveMenuTiesBreakByInsertionOrder(t *testing.T) {
	conn := newTestDB(t)
	uc := NewResolveMenu(infraRepo.NewIdentityGormRepository(conn))

	user := createUser(t, conn, "jane", "secret123", true, true)

	first := createMenu(t, conn, "First", 5, true)
	second := createMenu(t, conn, "Second", 5, true)

	require.NoError(t, conn.Create(&models.UserMenu{UserID: user.ID, MenuID: second.ID}).Error)
	require.NoError(t, conn.Create(&models.UserMenu{UserID: user.ID, MenuID: first.ID}).Error)

	menus, err := uc.Execute(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{first.ID, second.ID}, []uint{menus[0].ID, menus[1].ID})
}

// ------------------------------------------------------
// External identity linking
// ------------------------------------------------------

func TestLinkExternalReusesMatchingAccount(t *testing.T) {
	conn := newTestDB(t)
	uc := NewLinkExternalIdentity(infraRepo.NewIdentityGormRepository(conn))

	existing := createUser(t, conn, "jane", "secret123", true, true)
	existing.Email = "jane@example.com"
	require.NoError(t, conn.Save(existing).Error)

	user, err := uc.Execute(context.Background(), "jane@example.com", "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, existing.ID, user.ID)
}

func TestLinkExternalPendingAccountStaysPending(t *testing.T) {
	conn := newTestDB(t)
	uc := NewLinkExternalIdentity(infraRepo.NewIdentityGormRepository(conn))

	existing := createUser(t, conn, "jane", "secret123", true, false)
	existing.Email = "jane@example.com"
	require.NoError(t, conn.Save(existing).Error)

	_, err := uc.Execute(context.Background(), "jane@example.com", "Jane Doe")
	require.ErrorIs(t, err, domain.ErrPendingApproval)
}

func TestLinkExternalProvisionsWithSuffixOnCollision(t *testing.T) {
	conn := newTestDB(t)
	uc := NewLinkExternalIdentity(infraRepo.NewIdentityGormRepository(conn))

	createUser(t, conn, "jane", "secret123", true, true)

	user, err := uc.Execute(context.Background(), "jane@other.example", "Other Jane")
	require.NoError(t, err)
	require.Equal(t, "jane1", user.Username)
	require.False(t, user.Approved)
}
