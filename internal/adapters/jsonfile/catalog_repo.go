package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/planner/internal/fsutil"
	"github.com/example/planner/internal/ports/secondary"
)

const catalogFile = "projects.json"

// CatalogRepository implements secondary.CatalogRepository as a JSON array of names.
type CatalogRepository struct {
	dir string
}

// NewCatalogRepository creates a new JSON catalog rooted at dir.
func NewCatalogRepository(dir string) *CatalogRepository {
	return &CatalogRepository{dir: dir}
}

// Path returns the catalog file path.
func (r *CatalogRepository) Path() string {
	return filepath.Join(r.dir, catalogFile)
}

// List reads the catalog. A missing file is an empty catalog.
func (r *CatalogRepository) List(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(r.Path())
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return []string{}, fmt.Errorf("%w: %s: %v", secondary.ErrCorruptData, r.Path(), err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Add appends name unless it is already cataloged.
// A corrupt catalog is not overwritten.
func (r *CatalogRepository) Add(ctx context.Context, name string) error {
	names, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return r.write(append(names, name))
}

// Replace overwrites the catalog.
func (r *CatalogRepository) Replace(ctx context.Context, names []string) error {
	return r.write(dedupe(names))
}

func (r *CatalogRepository) write(names []string) error {
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := fsutil.WriteFileAtomic(r.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Ensure CatalogRepository implements the interface
var _ secondary.CatalogRepository = (*CatalogRepository)(nil)
