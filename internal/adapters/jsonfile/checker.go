package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/planner/internal/ports/secondary"
)

// Checker implements secondary.StorageChecker for the JSON backend.
type Checker struct {
	dir string
}

// NewChecker creates a checker for the data directory dir.
func NewChecker(dir string) *Checker {
	return &Checker{dir: dir}
}

// Backend returns "json".
func (c *Checker) Backend() string {
	return "json"
}

// CheckIntegrity verifies the projects directory and looks for temp files
// left behind by interrupted saves.
func (c *Checker) CheckIntegrity(ctx context.Context) error {
	dir := filepath.Join(c.dir, projectsDir)
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var stale []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") && strings.HasSuffix(e.Name(), ".tmp") {
			stale = append(stale, e.Name())
		}
	}
	if len(stale) > 0 {
		return fmt.Errorf("interrupted saves left temp files in %s: %s", dir, strings.Join(stale, ", "))
	}
	return nil
}

// Ensure Checker implements the interface
var _ secondary.StorageChecker = (*Checker)(nil)
