package models

import "time"

type Menu struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:50;not null" json:"name"`
	URL          string `gorm:"size:100;not null" json:"url"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
