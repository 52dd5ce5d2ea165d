package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/prashantkoirala465/Appointment-Management-System/internal/db"
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

func TestDuplicateRoleLinkRejectedByConstraint(t *testing.T) {
	conn := newTestDB(t)

	user := models.User{FullName: "Jane", Username: "jane", PasswordHash: "x", Active: true}
	require.NoError(t, conn.Create(&user).Error)
	role := models.Role{Name: "Admin", Active: true}
	require.NoError(t, conn.Create(&role).Error)

	require.NoError(t, conn.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error)
	err := conn.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error
	require.Error(t, err)
}

func TestDuplicateRoleNameRejectedByConstraint(t *testing.T) {
	conn := newTestDB(t)

	require.NoError(t, conn.Create(&models.Role{Name: "Admin", Active: true}).Error)
	err := conn.Create(&models.Role{Name: "Admin", Active: true}).Error
	require.Error(t, err)
}

func TestDuplicateUsernameRejectedByConstraint(t *testing.T) {
	conn := newTestDB(t)

	require.NoError(t, conn.Create(&models.User{FullName: "A", Username: "jane", PasswordHash: "x"}).Error)
	err := conn.Create(&models.User{FullName: "B", Username: "jane", PasswordHash: "y"}).Error
	require.Error(t, err)
}

func TestCreateUserWithLinksIsOneUnit(t *testing.T) {
	conn := newTestDB(t)
	repo := NewIdentityGormRepository(conn)

	role := models.Role{Name: "Staff", Active: true}
	require.NoError(t, conn.Create(&role).Error)
	menu := models.Menu{Name: "Dashboard", URL: "/app/dashboard", Active: true}
	require.NoError(t, conn.Create(&menu).Error)

	user := models.User{FullName: "Jane", Username: "jane", PasswordHash: "x", Active: true}
	require.NoError(t, repo.CreateUserWithLinks(
		context.Background(), &user, []uint{role.ID}, []uint{menu.ID}))
	require.NotZero(t, user.ID)

	var roleLinks, menuLinks int64
	conn.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&roleLinks)
	conn.Model(&models.UserMenu{}).Where("user_id = ?", user.ID).Count(&menuLinks)
	require.EqualValues(t, 1, roleLinks)
	require.EqualValues(t, 1, menuLinks)

	// A failed link rolls the whole unit back: the duplicate username
	// aborts before any link row lands.
	dupe := models.User{FullName: "Other", Username: "jane", PasswordHash: "y", Active: true}
	err := repo.CreateUserWithLinks(
		context.Background(), &dupe, []uint{role.ID}, []uint{menu.ID})
	require.Error(t, err)

	var users int64
	conn.Model(&models.User{}).Count(&users)
	require.EqualValues(t, 1, users)
}

func TestReplaceAssignmentsInsertsExactlySelected(t *testing.T) {
	conn := newTestDB(t)
	repo := NewIdentityGormRepository(conn)

	user := models.User{FullName: "Jane", Username: "jane", PasswordHash: "x", Active: true}
	require.NoError(t, conn.Create(&user).Error)

	roleA := models.Role{Name: "A", Active: true}
	roleB := models.Role{Name: "B", Active: true}
	require.NoError(t, conn.Create(&roleA).Error)
	require.NoError(t, conn.Create(&roleB).Error)

	menu := models.Menu{Name: "Dashboard", URL: "/app/dashboard", Active: true}
	require.NoError(t, conn.Create(&menu).Error)

	ctx := context.Background()
	require.NoError(t, repo.ReplaceAssignments(ctx, user.ID, []uint{roleA.ID, roleB.ID}, []uint{menu.ID}))
	require.NoError(t, repo.ReplaceAssignments(ctx, user.ID, []uint{roleB.ID}, nil))

	names, err := repo.ListRoleNames(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, names)

	var menuLinks int64
	conn.Model(&models.UserMenu{}).Where("user_id = ?", user.ID).Count(&menuLinks)
	require.Zero(t, menuLinks)
}
