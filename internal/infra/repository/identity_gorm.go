package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

type IdentityGormRepository struct {
	db *gorm.DB
}

func NewIdentityGormRepository(db *gorm.DB) *IdentityGormRepository {
	return &IdentityGormRepository{db: db}
}

var _ domain.Repository = (*IdentityGormRepository)(nil)

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *IdentityGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *IdentityGormRepository) GetUserByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *IdentityGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *IdentityGormRepository) UsernameExists(
	ctx context.Context,
	username string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *IdentityGormRepository) CreateUser(
	ctx context.Context,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *IdentityGormRepository) CreateUserWithLinks(
	ctx context.Context,
	user *models.User,
	roleIDs []uint,
	menuIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		for _, roleID := range roleIDs {
			link := models.UserRole{UserID: user.ID, RoleID: roleID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		for _, menuID := range menuIDs {
			link := models.UserMenu{UserID: user.ID, MenuID: menuID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --------------------------------------------------
// Defaults
// --------------------------------------------------

func (r *IdentityGormRepository) GetRoleByName(
	ctx context.Context,
	name string,
) (*models.Role, error) {

	var role models.Role
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *IdentityGormRepository) GetMenuByName(
	ctx context.Context,
	name string,
) (*models.Menu, error) {

	var menu models.Menu
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// --------------------------------------------------
// Role / menu links
// --------------------------------------------------

func (r *IdentityGormRepository) ListRoleNames(
	ctx context.Context,
	userID uint,
) ([]string, error) {

	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name ASC").
		Pluck("roles.name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *IdentityGormRepository) ListActiveMenus(
	ctx context.Context,
	userID uint,
) ([]models.Menu, error) {

	menus := []models.Menu{}
	if err := r.db.WithContext(ctx).
		Model(&models.Menu{}).
		Joins("JOIN user_menus ON user_menus.menu_id = menus.id").
		Where("user_menus.user_id = ? AND menus.active = ?", userID, true).
		Order("menus.display_order ASC, menus.id ASC").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// ReplaceAssignments is a full replace, not a diff: every existing link of
// the user is deleted and a fresh row inserted per submitted id, all inside
// one transaction. Last write wins between concurrent editors.
func (r *IdentityGormRepository) ReplaceAssignments(
	ctx context.Context,
	userID uint,
	roleIDs []uint,
	menuIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.UserMenu{}).Error; err != nil {
			return err
		}

		for _, roleID := range roleIDs {
			link := models.UserRole{UserID: userID, RoleID: roleID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		for _, menuID := range menuIDs {
			link := models.UserMenu{UserID: userID, MenuID: menuID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
