package models

import (
	"time"
)

// Task is a chunk of a project with an hour estimate and an hourly rate.
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name                 string    `gorm:"not null" json:"name"`
	Description          *string   `json:"description"`
	StartTime            time.Time `gorm:"not null" json:"start_time"`
	ExpectedWorkingHours float64   `gorm:"not null" json:"expected_working_hours"`
	HourlyCost           float64   `gorm:"not null" json:"hourly_cost"`

	ProjectID uint `gorm:"not null;index" json:"project_id"`

	// Owning user id, populated by the ownership join on reads only.
	OwnerID uint `gorm:"->;-:migration" json:"-"`

	// Relationships
	Project  Project   `json:"-"`
	Sessions []Session `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"sessions,omitempty"`
}
