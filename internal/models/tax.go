package models

import (
	"time"
)

// Tax is a percentage a user applies to their income, stored as a
// fraction: 0.2 means 20%.
type Tax struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Label string  `gorm:"not null" json:"label"`
	Value float64 `gorm:"not null" json:"value"`

	UserID uint `gorm:"not null;index" json:"user_id"`

	// Relationships
	User User `json:"-"`
}
