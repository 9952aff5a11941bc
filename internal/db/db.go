// Package db opens the SQLite database used by the sqlite backend.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// FileName is the database file name inside the data directory.
const FileName = "planner.db"

// Path returns the database path for a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Open opens (creating if needed) the database at path and initializes its schema.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Foreign keys are a per-connection setting, so enable them in the DSN.
	database, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		database.SetMaxOpenConns(1)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// IntegrityCheck runs SQLite's integrity check and returns its first message.
func IntegrityCheck(database *sql.DB) (string, error) {
	var result string
	if err := database.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return "", fmt.Errorf("failed to run integrity check: %w", err)
	}
	return result, nil
}
