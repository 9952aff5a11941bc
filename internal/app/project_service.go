package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/planner/internal/core/project"
	"github.com/example/planner/internal/core/schedule"
	"github.com/example/planner/internal/core/task"
	"github.com/example/planner/internal/models"
	"github.com/example/planner/internal/ports/primary"
	"github.com/example/planner/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	taskRepo    secondary.TaskRepository
	catalogRepo secondary.CatalogRepository
	policy      schedule.DuplicatePolicy
	abortOnBad  bool
	logger      *slog.Logger
}

// ProjectServiceOptions holds the policies applied when opening projects.
type ProjectServiceOptions struct {
	DuplicatePolicy schedule.DuplicatePolicy
	// AbortOnCorrupt refuses to open a corrupt project instead of starting empty.
	AbortOnCorrupt bool
	Logger         *slog.Logger
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(
	taskRepo secondary.TaskRepository,
	catalogRepo secondary.CatalogRepository,
	opts ProjectServiceOptions,
) *ProjectServiceImpl {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectServiceImpl{
		taskRepo:    taskRepo,
		catalogRepo: catalogRepo,
		policy:      opts.DuplicatePolicy,
		abortOnBad:  opts.AbortOnCorrupt,
		logger:      logger,
	}
}

// ListProjects returns the known project names.
// A corrupt catalog is reported together with an empty list.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]string, error) {
	names, err := s.catalogRepo.List(ctx)
	if err != nil {
		return []string{}, fmt.Errorf("failed to list projects: %w", err)
	}
	return names, nil
}

// CreateProject saves an empty project and adds it to the catalog.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, name string) error {
	if err := project.CanCreateProject(project.CreateProjectContext{Name: name}).Error(); err != nil {
		return err
	}

	names, err := s.catalogRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if contains(names, name) {
		return fmt.Errorf("project %s already exists", name)
	}

	if err := s.taskRepo.Save(ctx, name, nil); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	if err := s.catalogRepo.Add(ctx, name); err != nil {
		return fmt.Errorf("failed to add project to catalog: %w", err)
	}

	s.logger.Info("project created", "project", name)
	return nil
}

// OpenProject loads a cataloged project into a new session.
func (s *ProjectServiceImpl) OpenProject(ctx context.Context, name string) (*primary.Session, error) {
	names, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	// Invalid names are reported as such, not as missing projects.
	if err := project.CanCreateProject(project.CreateProjectContext{Name: name}).Error(); err != nil {
		return nil, err
	}
	guard := project.CanOpenProject(project.OpenProjectContext{
		Name:      name,
		InCatalog: contains(names, name),
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", secondary.ErrProjectNotFound, guard.Reason)
	}

	tasks, err := s.loadTasks(ctx, name)
	if errors.Is(err, secondary.ErrCorruptData) {
		if s.abortOnBad {
			return nil, fmt.Errorf("failed to open project %s: %w", name, err)
		}
		s.logger.Warn("project data is corrupted, starting with an empty project", "project", name, "error", err)
		return &primary.Session{
			Project:   name,
			Store:     schedule.NewStore(nil, s.policy),
			Recovered: true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open project %s: %w", name, err)
	}

	s.logger.Debug("project opened", "project", name, "tasks", len(tasks))
	return &primary.Session{
		Project: name,
		Store:   schedule.NewStore(tasks, s.policy),
	}, nil
}

// SaveProject writes the session's tasks back to persistence.
func (s *ProjectServiceImpl) SaveProject(ctx context.Context, session *primary.Session) error {
	tasks := session.Store.List()
	records := make([]*secondary.TaskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = taskToRecord(t)
	}

	if err := s.taskRepo.Save(ctx, session.Project, records); err != nil {
		return fmt.Errorf("failed to save project %s: %w", session.Project, err)
	}
	session.Recovered = false

	s.logger.Debug("project saved", "project", session.Project, "tasks", len(records))
	return nil
}

func (s *ProjectServiceImpl) loadTasks(ctx context.Context, name string) ([]models.Task, error) {
	records, err := s.taskRepo.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(records))
	for _, r := range records {
		t, err := recordToTask(r)
		if err != nil {
			return nil, fmt.Errorf("%w: project %s: %v", secondary.ErrCorruptData, name, err)
		}
		if t.Progress != r.Progress {
			s.logger.Warn("completion percentage out of range, clamped",
				"project", name, "task", t.Name, "stored", r.Progress, "progress", t.Progress)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// recordToTask converts a persistence record to the domain type.
// Progress outside 0..100 is clamped; an end date before the start is an error.
func recordToTask(r *secondary.TaskRecord) (models.Task, error) {
	start, err := models.ParseDate(r.Start)
	if err != nil {
		return models.Task{}, err
	}
	end, err := models.ParseDate(r.End)
	if err != nil {
		return models.Task{}, err
	}
	color := models.DefaultColor
	if r.Color != "" {
		if color, err = models.ParseColor(r.Color); err != nil {
			return models.Task{}, err
		}
	}
	priority, err := models.ParsePriority(r.Priority)
	if err != nil {
		return models.Task{}, err
	}
	if err := task.CanLoadTask(task.StoredTaskContext{Name: r.Task, Start: start, End: end}).Error(); err != nil {
		return models.Task{}, err
	}
	progress, _ := task.ClampProgress(r.Progress)

	return models.Task{
		Name:     r.Task,
		Person:   r.Person,
		Start:    start,
		End:      end,
		Color:    color,
		Progress: progress,
		Priority: priority,
	}, nil
}

// taskToRecord converts a domain task to its persistence record.
func taskToRecord(t models.Task) *secondary.TaskRecord {
	priority := t.Priority
	if !priority.Valid() {
		priority = models.PriorityMid
	}
	return &secondary.TaskRecord{
		Task:     t.Name,
		Person:   t.Person,
		Start:    models.FormatDate(t.Start),
		End:      models.FormatDate(t.End),
		Color:    t.Color.Hex(),
		Progress: t.Progress,
		Priority: priority.String(),
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
