// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/planner/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every new connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedRawTask inserts a task row directly, bypassing repository validation.
func seedRawTask(t *testing.T, db *sql.DB, project string, position int, name, start, end string) {
	t.Helper()
	if _, err := db.Exec("INSERT OR IGNORE INTO snapshots (project) VALUES (?)", project); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
	_, err := db.Exec(
		"INSERT INTO tasks (project, position, name, person, start_date, end_date) VALUES (?, ?, ?, 'Ana', ?, ?)",
		project, position, name, start, end,
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
}
