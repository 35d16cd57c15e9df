package db

import (
	"time"

	"gorm.io/gorm"
)

// Store is the persistence layer. All reads that feed an authorization
// check join far enough up the ownership chain to return the owning user
// id in the same query.
type Store struct {
	db *gorm.DB

	// now is swappable so tests can pin the clock.
	now func() time.Time
}

// NewStore wraps an already opened gorm connection.
func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb, now: time.Now}
}
