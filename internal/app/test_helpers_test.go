package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/example/planner/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTaskRepository implements secondary.TaskRepository for testing.
type mockTaskRepository struct {
	projects map[string][]*secondary.TaskRecord
	corrupt  map[string]bool
	saves    int
	loadErr  error
	saveErr  error
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{
		projects: make(map[string][]*secondary.TaskRecord),
		corrupt:  make(map[string]bool),
	}
}

func (m *mockTaskRepository) Load(ctx context.Context, project string) ([]*secondary.TaskRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.corrupt[project] {
		return []*secondary.TaskRecord{}, fmt.Errorf("%w: %s", secondary.ErrCorruptData, project)
	}
	out := make([]*secondary.TaskRecord, 0, len(m.projects[project]))
	for _, r := range m.projects[project] {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockTaskRepository) Save(ctx context.Context, project string, tasks []*secondary.TaskRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	stored := make([]*secondary.TaskRecord, 0, len(tasks))
	for _, r := range tasks {
		copied := *r
		stored = append(stored, &copied)
	}
	m.projects[project] = stored
	delete(m.corrupt, project)
	return nil
}

func (m *mockTaskRepository) Projects(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.projects))
	for name := range m.projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// mockCatalogRepository implements secondary.CatalogRepository for testing.
type mockCatalogRepository struct {
	names   []string
	listErr error
}

func newMockCatalogRepository(names ...string) *mockCatalogRepository {
	return &mockCatalogRepository{names: names}
}

func (m *mockCatalogRepository) List(ctx context.Context) ([]string, error) {
	if m.listErr != nil {
		return []string{}, m.listErr
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out, nil
}

func (m *mockCatalogRepository) Add(ctx context.Context, name string) error {
	if m.listErr != nil {
		return m.listErr
	}
	for _, n := range m.names {
		if n == name {
			return nil
		}
	}
	m.names = append(m.names, name)
	return nil
}

func (m *mockCatalogRepository) Replace(ctx context.Context, names []string) error {
	m.listErr = nil
	m.names = append([]string(nil), names...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
