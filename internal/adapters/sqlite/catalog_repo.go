package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/planner/internal/ports/secondary"
)

// CatalogRepository implements secondary.CatalogRepository with SQLite.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new SQLite catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// List returns project names in creation order.
func (r *CatalogRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM projects ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Add inserts name at the end of the catalog unless present.
func (r *CatalogRepository) Add(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (name, position) SELECT ?, COALESCE(MAX(position), -1) + 1 FROM projects WHERE true ON CONFLICT(name) DO NOTHING",
		name,
	)
	if err != nil {
		return fmt.Errorf("failed to add project %s: %w", name, err)
	}
	return nil
}

// Replace overwrites the catalog in one transaction.
func (r *CatalogRepository) Replace(ctx context.Context, names []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	seen := make(map[string]bool, len(names))
	position := 0
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, err := tx.ExecContext(ctx, "INSERT INTO projects (name, position) VALUES (?, ?)", name, position); err != nil {
			return fmt.Errorf("failed to add project %s: %w", name, err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// Ensure CatalogRepository implements the interface
var _ secondary.CatalogRepository = (*CatalogRepository)(nil)
