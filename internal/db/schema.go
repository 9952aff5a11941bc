package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the version recorded for databases created by SchemaSQL.
const SchemaVersion = 1

// SchemaSQL is the complete schema for the SQLite backend.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it
// through GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so a
// repository referencing a missing column fails immediately.
const SchemaSQL = `
-- Catalog of known projects, in creation order
CREATE TABLE IF NOT EXISTS projects (
	name TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Projects that have been saved at least once (possibly with no tasks)
CREATE TABLE IF NOT EXISTS snapshots (
	project TEXT PRIMARY KEY,
	saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Task records; position keeps store order within a project
CREATE TABLE IF NOT EXISTS tasks (
	project TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	person TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '#FFFFFF',
	progress INTEGER NOT NULL DEFAULT 0,
	priority TEXT NOT NULL DEFAULT 'Mid',
	PRIMARY KEY (project, position),
	FOREIGN KEY (project) REFERENCES snapshots(project) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_project_name ON tasks(project, name);
`

// InitSchema creates the schema on a fresh database and records its version.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, SchemaVersion)
	}
	if current < SchemaVersion {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
