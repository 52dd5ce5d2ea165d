package models

// UserRole links a user to a role. Rows are fully replaced on every
// assignment edit, never diffed.
type UserRole struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex:idx_user_role;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	RoleID uint `gorm:"uniqueIndex:idx_user_role;not null" json:"role_id"`
	Role   Role `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
