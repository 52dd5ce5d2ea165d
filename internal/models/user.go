package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:100" json:"email"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Active   bool `gorm:"default:true" json:"active"`
	Approved bool `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
