package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/planner/internal/db"
	"github.com/example/planner/internal/ports/secondary"
)

// Checker implements secondary.StorageChecker with SQLite's integrity check.
type Checker struct {
	db *sql.DB
}

// NewChecker creates a new SQLite storage checker.
func NewChecker(db *sql.DB) *Checker {
	return &Checker{db: db}
}

// Backend returns "sqlite".
func (c *Checker) Backend() string {
	return "sqlite"
}

// CheckIntegrity runs PRAGMA integrity_check.
func (c *Checker) CheckIntegrity(ctx context.Context) error {
	result, err := db.IntegrityCheck(c.db)
	if err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

// Ensure Checker implements the interface
var _ secondary.StorageChecker = (*Checker)(nil)
