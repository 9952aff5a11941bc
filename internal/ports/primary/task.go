package primary

import (
	"context"
	"time"

	"github.com/example/planner/internal/core/chart"
	"github.com/example/planner/internal/core/deadline"
	"github.com/example/planner/internal/models"
)

// TaskService defines the primary port for task operations.
// Mutating operations load the project, apply the change and save it.
type TaskService interface {
	// AddTask validates and appends a new task.
	AddTask(ctx context.Context, req AddTaskRequest) (*models.Task, error)

	// EditTask overwrites the supplied fields of the tasks with the given name.
	// Returns the number of tasks changed.
	EditTask(ctx context.Context, req EditTaskRequest) (int, error)

	// DeleteTask removes the tasks with the given name.
	// Returns the number of tasks removed.
	DeleteTask(ctx context.Context, project, taskName string) (int, error)

	// GetTask retrieves the first task with the given name.
	GetTask(ctx context.Context, project, taskName string) (*models.Task, error)

	// ListTasks lists tasks in store order.
	ListTasks(ctx context.Context, project string) ([]models.Task, error)

	// UpcomingDeadlines reports tasks ending within the warning window of now.
	UpcomingDeadlines(ctx context.Context, project string, now time.Time) (*deadline.Report, error)

	// Chart lays out the project's Gantt chart.
	Chart(ctx context.Context, project string) (*chart.Gantt, error)
}

// AddTaskRequest contains the form fields of a new task.
type AddTaskRequest struct {
	Project  string
	Name     string
	Person   string
	Start    string // YYYY-MM-DD
	End      string // YYYY-MM-DD
	Color    string // Optional, #RRGGBB
	Progress string // Optional, 0-100
	Priority string // Optional: Low, Mid/Medium, High
}

// EditTaskRequest contains parameters for editing tasks by name.
// Nil fields are left unchanged.
type EditTaskRequest struct {
	Project  string
	TaskName string
	Name     *string
	Person   *string
	Start    *string
	End      *string
	Color    *string
	Progress *string
	Priority *string
}
