// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/example/planner/internal/core/schedule"
)

// ProjectService defines the primary port for project catalog operations.
type ProjectService interface {
	// ListProjects returns the known project names.
	ListProjects(ctx context.Context) ([]string, error)

	// CreateProject saves an empty project and adds it to the catalog.
	CreateProject(ctx context.Context, name string) error

	// OpenProject loads a cataloged project into a new session.
	OpenProject(ctx context.Context, name string) (*Session, error)

	// SaveProject writes the session's tasks back to persistence.
	SaveProject(ctx context.Context, session *Session) error
}

// Session owns the task store of one open project.
type Session struct {
	Project string
	Store   *schedule.Store

	// Recovered is set when the stored project was corrupt and the
	// session started empty instead.
	Recovered bool
}
