package db

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return conn
}

func TestSeedCreatesFixedRecords(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, Seed(conn))

	var admin models.User
	require.NoError(t, conn.Where("username = ?", DefaultAdminUsername).First(&admin).Error)
	require.True(t, admin.Active)
	require.True(t, admin.Approved)
	require.NoError(t, auth.VerifyPassword(admin.PasswordHash, DefaultAdminPassword))

	var roleCount, menuCount int64
	conn.Model(&models.Role{}).Count(&roleCount)
	conn.Model(&models.Menu{}).Count(&menuCount)
	require.EqualValues(t, 2, roleCount)
	require.EqualValues(t, 6, menuCount)

	// Admin is linked to the Admin role and every menu.
	var roleLinks, menuLinks int64
	conn.Model(&models.UserRole{}).Where("user_id = ?", admin.ID).Count(&roleLinks)
	conn.Model(&models.UserMenu{}).Where("user_id = ?", admin.ID).Count(&menuLinks)
	require.EqualValues(t, 1, roleLinks)
	require.EqualValues(t, 6, menuLinks)
}

func TestSeedIsGuardedByExistingRows(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, Seed(conn))

	// An admin customization survives a reseed.
	require.NoError(t, conn.Model(&models.Menu{}).
		Where("name = ?", "Staff").
		Update("display_order", 99).Error)

	require.NoError(t, Seed(conn))

	var userCount, roleCount, menuCount int64
	conn.Model(&models.User{}).Count(&userCount)
	conn.Model(&models.Role{}).Count(&roleCount)
	conn.Model(&models.Menu{}).Count(&menuCount)
	require.EqualValues(t, 1, userCount)
	require.EqualValues(t, 2, roleCount)
	require.EqualValues(t, 6, menuCount)

	var staffMenu models.Menu
	require.NoError(t, conn.Where("name = ?", "Staff").First(&staffMenu).Error)
	require.Equal(t, 99, staffMenu.DisplayOrder)
}
