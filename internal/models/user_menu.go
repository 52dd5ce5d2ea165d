package models

// UserMenu links a user to a navigation menu entry. Same full-replace
// lifecycle as UserRole.
type UserMenu struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex:idx_user_menu;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	MenuID uint `gorm:"uniqueIndex:idx_user_menu;not null" json:"menu_id"`
	Menu   Menu `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
