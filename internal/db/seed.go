package db

import (
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

// Fixed records created exactly once on first boot. Each block is guarded
// by a "does any row exist" check rather than a version marker, so later
// admin edits to roles and menus are never overwritten by a restart.

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"

	RoleAdmin = "Admin"
	RoleStaff = "Staff"

	// Assigned to every self-registered account.
	DefaultRoleName = RoleStaff
	DefaultMenuName = "Dashboard"
)

func Seed(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedMenus(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedRoles(db *gorm.DB) error {
	empty, err := isTableEmpty(db, &models.Role{})
	if err != nil || !empty {
		return err
	}

	roles := []models.Role{
		{Name: RoleAdmin, Description: "Full administrative access", Active: true},
		{Name: RoleStaff, Description: "Day-to-day appointment management", Active: true},
	}
	return db.Create(&roles).Error
}

func seedMenus(db *gorm.DB) error {
	empty, err := isTableEmpty(db, &models.Menu{})
	if err != nil || !empty {
		return err
	}

	menus := []models.Menu{
		{Name: "Dashboard", URL: "/app/dashboard", DisplayOrder: 1, Active: true},
		{Name: "Appointments", URL: "/app/appointments", DisplayOrder: 2, Active: true},
		{Name: "Staff", URL: "/app/staff", DisplayOrder: 3, Active: true},
		{Name: "Users", URL: "/app/users", DisplayOrder: 4, Active: true},
		{Name: "Roles", URL: "/app/roles", DisplayOrder: 5, Active: true},
		{Name: "Menus", URL: "/app/menus", DisplayOrder: 6, Active: true},
	}
	return db.Create(&menus).Error
}

func seedAdmin(db *gorm.DB) error {
	empty, err := isTableEmpty(db, &models.User{})
	if err != nil || !empty {
		return err
	}

	hashed, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		FullName:     "Administrator",
		Username:     DefaultAdminUsername,
		PasswordHash: hashed,
		Active:       true,
		Approved:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	var adminRole models.Role
	if err := db.Where("name = ?", RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}
	if err := db.Create(&models.UserRole{UserID: admin.ID, RoleID: adminRole.ID}).Error; err != nil {
		return err
	}

	var menus []models.Menu
	if err := db.Order("display_order ASC").Find(&menus).Error; err != nil {
		return err
	}
	for _, m := range menus {
		link := models.UserMenu{UserID: admin.ID, MenuID: m.ID}
		if err := db.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func isTableEmpty(db *gorm.DB, model any) (bool, error) {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
