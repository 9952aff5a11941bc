package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/planner/internal/core/chart"
	"github.com/example/planner/internal/core/deadline"
	"github.com/example/planner/internal/core/schedule"
	"github.com/example/planner/internal/core/task"
	"github.com/example/planner/internal/models"
	"github.com/example/planner/internal/ports/primary"
)

// TaskServiceImpl implements the TaskService interface.
// Every call opens the project, works on its session store and saves it back
// when something changed.
type TaskServiceImpl struct {
	projects   primary.ProjectService
	windowDays int
	logger     *slog.Logger
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(projects primary.ProjectService, windowDays int, logger *slog.Logger) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		projects:   projects,
		windowDays: windowDays,
		logger:     logger,
	}
}

// AddTask validates and appends a new task.
func (s *TaskServiceImpl) AddTask(ctx context.Context, req primary.AddTaskRequest) (*models.Task, error) {
	t, err := parseAddRequest(req)
	if err != nil {
		return nil, err
	}

	guard := task.CanAddTask(task.AddTaskContext{
		Name:     t.Name,
		Person:   t.Person,
		Start:    t.Start,
		End:      t.End,
		Progress: t.Progress,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	session, err := s.projects.OpenProject(ctx, req.Project)
	if err != nil {
		return nil, err
	}
	if err := session.Store.Add(t); err != nil {
		return nil, err
	}
	if err := s.projects.SaveProject(ctx, session); err != nil {
		return nil, err
	}

	tasks := session.Store.List()
	added := tasks[len(tasks)-1]
	s.logger.Info("task added", "project", req.Project, "task", t.Name)
	return &added, nil
}

// EditTask overwrites the supplied fields of every task with the given name.
func (s *TaskServiceImpl) EditTask(ctx context.Context, req primary.EditTaskRequest) (int, error) {
	patch, err := parseEditRequest(req)
	if err != nil {
		return 0, err
	}
	if patch.Empty() {
		return 0, fmt.Errorf("nothing to update for task %q", req.TaskName)
	}

	session, err := s.projects.OpenProject(ctx, req.Project)
	if err != nil {
		return 0, err
	}
	n, err := session.Store.Edit(req.TaskName, patch)
	if err != nil {
		return 0, err
	}
	if err := s.projects.SaveProject(ctx, session); err != nil {
		return 0, err
	}

	s.logger.Info("task edited", "project", req.Project, "task", req.TaskName, "count", n)
	return n, nil
}

// DeleteTask removes every task with the given name.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, project, taskName string) (int, error) {
	session, err := s.projects.OpenProject(ctx, project)
	if err != nil {
		return 0, err
	}
	n, err := session.Store.Delete(taskName)
	if err != nil {
		return 0, err
	}
	if err := s.projects.SaveProject(ctx, session); err != nil {
		return 0, err
	}

	s.logger.Info("task deleted", "project", project, "task", taskName, "count", n)
	return n, nil
}

// GetTask retrieves the first task with the given name.
func (s *TaskServiceImpl) GetTask(ctx context.Context, project, taskName string) (*models.Task, error) {
	session, err := s.projects.OpenProject(ctx, project)
	if err != nil {
		return nil, err
	}
	t, err := session.Store.Get(taskName)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks lists tasks in store order.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, project string) ([]models.Task, error) {
	session, err := s.projects.OpenProject(ctx, project)
	if err != nil {
		return nil, err
	}
	return session.Store.List(), nil
}

// UpcomingDeadlines reports tasks ending within the warning window of now.
func (s *TaskServiceImpl) UpcomingDeadlines(ctx context.Context, project string, now time.Time) (*deadline.Report, error) {
	tasks, err := s.ListTasks(ctx, project)
	if err != nil {
		return nil, err
	}
	report := deadline.Evaluate(tasks, now, s.windowDays)
	return &report, nil
}

// Chart lays out the project's Gantt chart.
func (s *TaskServiceImpl) Chart(ctx context.Context, project string) (*chart.Gantt, error) {
	tasks, err := s.ListTasks(ctx, project)
	if err != nil {
		return nil, err
	}
	g := chart.Layout(tasks)
	return &g, nil
}

func parseAddRequest(req primary.AddTaskRequest) (models.Task, error) {
	t := models.Task{
		Name:     strings.TrimSpace(req.Name),
		Person:   strings.TrimSpace(req.Person),
		Color:    models.DefaultColor,
		Priority: models.PriorityMid,
	}

	var err error
	if strings.TrimSpace(req.Start) != "" {
		if t.Start, err = models.ParseDate(req.Start); err != nil {
			return models.Task{}, err
		}
	}
	if strings.TrimSpace(req.End) != "" {
		if t.End, err = models.ParseDate(req.End); err != nil {
			return models.Task{}, err
		}
	}
	if strings.TrimSpace(req.Color) != "" {
		if t.Color, err = models.ParseColor(req.Color); err != nil {
			return models.Task{}, err
		}
	}
	if t.Progress, err = task.ParseProgress(req.Progress); err != nil {
		return models.Task{}, err
	}
	if t.Priority, err = models.ParsePriority(req.Priority); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func parseEditRequest(req primary.EditTaskRequest) (schedule.TaskPatch, error) {
	var patch schedule.TaskPatch

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if req.Person != nil {
		person := strings.TrimSpace(*req.Person)
		patch.Person = &person
	}
	if req.Start != nil {
		start, err := models.ParseDate(*req.Start)
		if err != nil {
			return patch, err
		}
		patch.Start = &start
	}
	if req.End != nil {
		end, err := models.ParseDate(*req.End)
		if err != nil {
			return patch, err
		}
		patch.End = &end
	}
	if req.Color != nil {
		color, err := models.ParseColor(*req.Color)
		if err != nil {
			return patch, err
		}
		patch.Color = &color
	}
	if req.Progress != nil {
		progress, err := task.ParseProgress(*req.Progress)
		if err != nil {
			return patch, err
		}
		patch.Progress = &progress
	}
	if req.Priority != nil {
		priority, err := models.ParsePriority(*req.Priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &priority
	}
	return patch, nil
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
