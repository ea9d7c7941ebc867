// Package history persists a log of `sigh run` invocations to a local
// sqlite database, for the `sigh history` CLI command.
// This is CLI operational telemetry, not Sigh-language state — the
// language itself keeps no persisted state; only the ambient tool that
// runs a program keeps a record that it ran.
//
// Grounded in termfx-morfx's db package: a gorm.Open + AutoMigrate setup
// function and a model struct with gorm tags. termfx-morfx's own
// db/sqlite.go wires gorm.io/driver/sqlite (plus a libsql path for remote
// Turso databases neither of which this module needs); this package uses
// github.com/glebarez/sqlite instead, the cgo-free driver termfx-morfx
// itself lists as a direct go.mod dependency, so opening a local file needs
// no C toolchain.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run is one recorded `sigh run` invocation.
type Run struct {
	ID         uint      `gorm:"primaryKey"`
	Source     string    `gorm:"type:varchar(255);not null"` // file path, or "<eval>"
	StartedAt  time.Time `gorm:"index"`
	DurationMS int64
	ExitOK     bool
	ErrorCount int
	FirstError string `gorm:"type:text"`
}

// Store wraps a gorm.DB opened against the history database.
type Store struct {
	db *gorm.DB
}

// DefaultPath returns ~/.sigh/history.db, creating no directories itself.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sigh/history.db"
	}
	return filepath.Join(home, ".sigh", "history.db")
}

// Open connects to (creating if absent) the sqlite database at path and
// runs migrations.
func Open(path string, debug bool) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts a completed run's summary.
func (s *Store) Record(r *Run) error {
	return s.db.Create(r).Error
}

// Recent returns the n most recently started runs, newest first.
func (s *Store) Recent(n int) ([]Run, error) {
	var runs []Run
	err := s.db.Order("started_at DESC").Limit(n).Find(&runs).Error
	return runs, err
}

// Clear deletes every recorded run.
func (s *Store) Clear() error {
	return s.db.Where("1 = 1").Delete(&Run{}).Error
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
