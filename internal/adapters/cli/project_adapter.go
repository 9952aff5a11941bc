// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting, but delegate
// business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/planner/internal/ports/primary"
	"github.com/example/planner/internal/ports/secondary"
)

// ProjectAdapter is a thin adapter that translates CLI operations to ProjectService calls.
type ProjectAdapter struct {
	service primary.ProjectService
	out     io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given service.
func NewProjectAdapter(service primary.ProjectService, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{
		service: service,
		out:     out,
	}
}

// List prints the project catalog. A corrupt catalog is reported as a
// warning and an empty list.
func (a *ProjectAdapter) List(ctx context.Context) error {
	names, err := a.service.ListProjects(ctx)
	if errors.Is(err, secondary.ErrCorruptData) {
		fmt.Fprintf(a.out, "%s %v\n", color.New(color.FgYellow).Sprint("⚠"), err)
		fmt.Fprintln(a.out, "Hint: rebuild the catalog with: planner doctor --fix")
	} else if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Fprintln(a.out, "No projects found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%s\n", "PROJECT")
	fmt.Fprintln(a.out, "────────────────────────────────")
	for _, name := range names {
		fmt.Fprintln(a.out, name)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Create creates a new, empty project.
func (a *ProjectAdapter) Create(ctx context.Context, name string) error {
	if err := a.service.CreateProject(ctx, name); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created project %s\n", name)
	return nil
}
