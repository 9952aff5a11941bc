// Package jsonfile contains JSON file implementations of repository interfaces.
// Each project is stored as <dir>/projects/<name>.json and the catalog as
// <dir>/projects.json.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/planner/internal/fsutil"
	"github.com/example/planner/internal/models"
	"github.com/example/planner/internal/ports/secondary"
)

const (
	projectsDir     = "projects"
	projectFileExt  = ".json"
	defaultPriority = "Mid"
)

// entry is the on-disk shape of one task.
type entry struct {
	Task     string `json:"Task"`
	Person   string `json:"Person"`
	Start    string `json:"Start"`
	End      string `json:"End"`
	Color    string `json:"Color"`
	Progress int    `json:"Progress"`
	Priority string `json:"Priority"`
}

// TaskRepository implements secondary.TaskRepository with one JSON file per project.
type TaskRepository struct {
	dir string
}

// NewTaskRepository creates a new JSON task repository rooted at dir.
func NewTaskRepository(dir string) *TaskRepository {
	return &TaskRepository{dir: dir}
}

// Path returns the file that stores project.
func (r *TaskRepository) Path(project string) string {
	return filepath.Join(r.dir, projectsDir, project+projectFileExt)
}

// Load reads a project file. A missing file is an empty project.
func (r *TaskRepository) Load(ctx context.Context, project string) ([]*secondary.TaskRecord, error) {
	path := r.Path(project)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []*secondary.TaskRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", project, err)
	}
	return DecodeTasks(data, path)
}

// Save writes a project file atomically.
func (r *TaskRepository) Save(ctx context.Context, project string, tasks []*secondary.TaskRecord) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode project %s: %w", project, err)
	}
	if err := fsutil.WriteFileAtomic(r.Path(project), data, 0644); err != nil {
		return fmt.Errorf("failed to save project %s: %w", project, err)
	}
	return nil
}

// Projects lists the project files present on disk.
func (r *TaskRepository) Projects(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.dir, projectsDir))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !strings.HasSuffix(e.Name(), projectFileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), projectFileExt))
	}
	sort.Strings(names)
	return names, nil
}

// EncodeTasks renders task records in the project file format.
// Missing priority is written as "Mid".
func EncodeTasks(tasks []*secondary.TaskRecord) ([]byte, error) {
	entries := make([]entry, 0, len(tasks))
	for _, t := range tasks {
		e := entry{
			Task:     t.Task,
			Person:   t.Person,
			Start:    t.Start,
			End:      t.End,
			Color:    t.Color,
			Progress: t.Progress,
			Priority: t.Priority,
		}
		if e.Priority == "" {
			e.Priority = defaultPriority
		}
		if e.Color == "" {
			e.Color = models.DefaultColor.Hex()
		}
		entries = append(entries, e)
	}
	return json.MarshalIndent(entries, "", "  ")
}

// DecodeTasks parses the project file format. Any syntax error or an entry
// with an unparseable date, color or priority is reported as corrupt data;
// there is no partial recovery.
func DecodeTasks(data []byte, source string) ([]*secondary.TaskRecord, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []*secondary.TaskRecord{}, fmt.Errorf("%w: %s: %v", secondary.ErrCorruptData, source, err)
	}

	records := make([]*secondary.TaskRecord, 0, len(entries))
	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			return []*secondary.TaskRecord{}, fmt.Errorf("%w: %s: entry %d: %v", secondary.ErrCorruptData, source, i, err)
		}
		rec := &secondary.TaskRecord{
			Task:     e.Task,
			Person:   e.Person,
			Start:    e.Start,
			End:      e.End,
			Color:    e.Color,
			Progress: e.Progress,
			Priority: e.Priority,
		}
		if rec.Priority == "" {
			rec.Priority = defaultPriority
		}
		if rec.Color == "" {
			rec.Color = models.DefaultColor.Hex()
		}
		records = append(records, rec)
	}
	return records, nil
}

func validateEntry(e entry) error {
	if _, err := models.ParseDate(e.Start); err != nil {
		return err
	}
	if _, err := models.ParseDate(e.End); err != nil {
		return err
	}
	if e.Color != "" {
		if _, err := models.ParseColor(e.Color); err != nil {
			return err
		}
	}
	if _, err := models.ParsePriority(e.Priority); err != nil {
		return err
	}
	return nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
