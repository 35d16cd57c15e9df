package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mconstantine/cooler-sub002/internal/models"
)

// Open opens (or creates) the SQLite database at path, runs migrations
// and returns a ready Store. Foreign keys are enabled so that deleting a
// user, client or project cascades down the ownership chain.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)", path)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty
		// in-memory database.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := runMigrations(gdb); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: gdb, now: time.Now}, nil
}

// runMigrations creates/updates the database schema
func runMigrations(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.Task{},
		&models.Session{},
		&models.Tax{},
	)
	if err != nil {
		return err
	}

	// AutoMigrate cannot express a partial index. This is what makes
	// "at most one open session per task" hold under concurrent starts.
	return gdb.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_open_task
		 ON sessions(task_id) WHERE end_time IS NULL`,
	).Error
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
