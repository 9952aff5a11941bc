// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

var (
	// ErrCorruptData marks stored content that cannot be parsed.
	// Adapters wrap it so callers can choose to start empty or abort.
	ErrCorruptData = errors.New("corrupted data")

	// ErrProjectNotFound is returned when a project is not in the catalog.
	ErrProjectNotFound = errors.New("project not found")
)

// TaskRepository defines the secondary port for per-project task persistence.
// A project is always read and written as a whole.
type TaskRepository interface {
	// Load retrieves all task records of a project in stored order.
	// A project that was never saved yields an empty slice and no error.
	// Unparseable content yields an empty slice and an error wrapping ErrCorruptData.
	Load(ctx context.Context, project string) ([]*TaskRecord, error)

	// Save replaces all task records of a project.
	Save(ctx context.Context, project string, tasks []*TaskRecord) error

	// Projects lists the projects that have stored task data, sorted by name.
	Projects(ctx context.Context) ([]string, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	Task     string
	Person   string
	Start    string // YYYY-MM-DD
	End      string // YYYY-MM-DD
	Color    string // #RRGGBB, empty string means default
	Progress int
	Priority string // Low, Mid or High; empty string means Mid
}

// CatalogRepository defines the secondary port for the list of known projects.
type CatalogRepository interface {
	// List returns the known project names in insertion order.
	// A missing catalog yields an empty slice and no error.
	// Unparseable content yields an empty slice and an error wrapping ErrCorruptData.
	List(ctx context.Context) ([]string, error)

	// Add appends name if absent and persists the catalog immediately.
	// Adding an existing name is a no-op.
	Add(ctx context.Context, name string) error

	// Replace overwrites the catalog with names, dropping duplicates.
	Replace(ctx context.Context, names []string) error
}
