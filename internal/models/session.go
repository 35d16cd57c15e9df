package models

import (
	"time"
)

// Session is a time tracking session. A nil EndTime means the session is
// still running; a task has at most one running session at a time.
type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID    uint       `gorm:"not null;index" json:"task_id"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	// Owning user id, populated by the ownership join on reads only.
	OwnerID uint `gorm:"->;-:migration" json:"-"`

	// Relationships
	Task Task `json:"-"`
}

// Open reports whether the session is still running.
func (s *Session) Open() bool {
	return s.EndTime == nil
}
