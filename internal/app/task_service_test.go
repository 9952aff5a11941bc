package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/planner/internal/core/schedule"
	"github.com/example/planner/internal/models"
	"github.com/example/planner/internal/ports/primary"
	"github.com/example/planner/internal/ports/secondary"
)

func newTestTaskService(policy schedule.DuplicatePolicy, projects ...string) (*TaskServiceImpl, *mockTaskRepository) {
	taskRepo := newMockTaskRepository()
	catalogRepo := newMockCatalogRepository(projects...)
	for _, p := range projects {
		taskRepo.projects[p] = []*secondary.TaskRecord{}
	}
	projectService := NewProjectService(taskRepo, catalogRepo, ProjectServiceOptions{
		DuplicatePolicy: policy,
		Logger:          discardLogger(),
	})
	return NewTaskService(projectService, 10, discardLogger()), taskRepo
}

func strPtr(s string) *string { return &s }

func addTask(t *testing.T, service *TaskServiceImpl, project, name, start, end string) {
	t.Helper()
	_, err := service.AddTask(context.Background(), primary.AddTaskRequest{
		Project: project, Name: name, Person: "Ana", Start: start, End: end,
	})
	if err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
}

func taskNames(tasks []models.Task) []string {
	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name
	}
	return names
}

// ============================================================================
// AddTask Tests
// ============================================================================

func TestAddTask_Success(t *testing.T) {
	service, taskRepo := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	ctx := context.Background()

	task, err := service.AddTask(ctx, primary.AddTaskRequest{
		Project:  "Apollo",
		Name:     "Design",
		Person:   "Ana",
		Start:    "2024-03-01",
		End:      "2024-03-05",
		Progress: "50%",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.Color != models.DefaultColor {
		t.Errorf("expected default color, got %s", task.Color)
	}
	if task.Priority != models.PriorityMid {
		t.Errorf("expected Mid priority, got %s", task.Priority)
	}
	if task.Progress != 50 {
		t.Errorf("expected progress 50, got %d", task.Progress)
	}

	saved := taskRepo.projects["Apollo"]
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved record, got %d", len(saved))
	}
	want := secondary.TaskRecord{
		Task: "Design", Person: "Ana", Start: "2024-03-01", End: "2024-03-05",
		Color: "#FFFFFF", Progress: 50, Priority: "Mid",
	}
	if *saved[0] != want {
		t.Errorf("expected %+v, got %+v", want, *saved[0])
	}
}

func TestAddTask_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  primary.AddTaskRequest
	}{
		{
			name: "missing name",
			req:  primary.AddTaskRequest{Person: "Ana", Start: "2024-03-01", End: "2024-03-05"},
		},
		{
			name: "missing person",
			req:  primary.AddTaskRequest{Name: "Design", Start: "2024-03-01", End: "2024-03-05"},
		},
		{
			name: "missing dates",
			req:  primary.AddTaskRequest{Name: "Design", Person: "Ana"},
		},
		{
			name: "bad date",
			req:  primary.AddTaskRequest{Name: "Design", Person: "Ana", Start: "01/03/2024", End: "2024-03-05"},
		},
		{
			name: "end before start",
			req:  primary.AddTaskRequest{Name: "Design", Person: "Ana", Start: "2024-03-05", End: "2024-03-01"},
		},
		{
			name: "progress out of range",
			req:  primary.AddTaskRequest{Name: "Design", Person: "Ana", Start: "2024-03-01", End: "2024-03-05", Progress: "150"},
		},
		{
			name: "progress not a number",
			req:  primary.AddTaskRequest{Name: "Design", Person: "Ana", Start: "2024-03-01", End: "2024-03-05", Progress: "half"},
		},
		{
			name: "bad color",
			req:  primary.AddTaskRequest{Name: "Design", Person: "Ana", Start: "2024-03-01", End: "2024-03-05", Color: "red"},
		},
		{
			name: "bad priority",
			req:  primary.AddTaskRequest{Name: "Design", Person: "Ana", Start: "2024-03-01", End: "2024-03-05", Priority: "urgent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, taskRepo := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
			tt.req.Project = "Apollo"

			if _, err := service.AddTask(context.Background(), tt.req); err == nil {
				t.Fatal("expected error, got nil")
			}
			if len(taskRepo.projects["Apollo"]) != 0 {
				t.Error("expected nothing to be saved")
			}
		})
	}
}

func TestAddTask_UnknownProject(t *testing.T) {
	service, _ := newTestTaskService(schedule.DuplicatesAllow)

	_, err := service.AddTask(context.Background(), primary.AddTaskRequest{
		Project: "Ghost", Name: "Design", Person: "Ana", Start: "2024-03-01", End: "2024-03-05",
	})
	if !errors.Is(err, secondary.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestAddTask_DuplicatePolicy(t *testing.T) {
	allow, _ := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	addTask(t, allow, "Apollo", "Design", "2024-03-01", "2024-03-05")
	addTask(t, allow, "Apollo", "Design", "2024-03-10", "2024-03-12")

	tasks, err := allow.ListTasks(context.Background(), "Apollo")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks with allow policy, got %d", len(tasks))
	}

	reject, _ := newTestTaskService(schedule.DuplicatesReject, "Apollo")
	addTask(t, reject, "Apollo", "Design", "2024-03-01", "2024-03-05")
	_, err = reject.AddTask(context.Background(), primary.AddTaskRequest{
		Project: "Apollo", Name: "Design", Person: "Ben", Start: "2024-03-10", End: "2024-03-12",
	})
	if !errors.Is(err, schedule.ErrDuplicateTask) {
		t.Errorf("expected ErrDuplicateTask, got %v", err)
	}
}

// ============================================================================
// EditTask Tests
// ============================================================================

func TestEditTask_Success(t *testing.T) {
	service, taskRepo := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	ctx := context.Background()
	addTask(t, service, "Apollo", "Design", "2024-03-01", "2024-03-05")
	addTask(t, service, "Apollo", "Build", "2024-03-06", "2024-03-20")

	n, err := service.EditTask(ctx, primary.EditTaskRequest{
		Project:  "Apollo",
		TaskName: "Design",
		Progress: strPtr("80"),
		Priority: strPtr("High"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 edited task, got %d", n)
	}

	saved := taskRepo.projects["Apollo"]
	if saved[0].Progress != 80 || saved[0].Priority != "High" {
		t.Errorf("unexpected edited record: %+v", *saved[0])
	}
	if saved[1].Progress != 0 || saved[1].Priority != "Mid" {
		t.Errorf("other task must be untouched, got %+v", *saved[1])
	}
}

func TestEditTask_ClampedProgressDoesNotBlockOtherFields(t *testing.T) {
	service, taskRepo := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	taskRepo.projects["Apollo"] = []*secondary.TaskRecord{
		{Task: "Design", Person: "Ana", Start: "2024-03-01", End: "2024-03-05", Progress: 150},
	}

	n, err := service.EditTask(context.Background(), primary.EditTaskRequest{
		Project: "Apollo", TaskName: "Design", Person: strPtr("Bob"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 edited task, got %d", n)
	}

	saved := taskRepo.projects["Apollo"][0]
	if saved.Person != "Bob" || saved.Progress != 100 {
		t.Errorf("expected Bob at 100%%, got %+v", *saved)
	}
}

func TestEditTask_NotFound(t *testing.T) {
	service, taskRepo := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	addTask(t, service, "Apollo", "Design", "2024-03-01", "2024-03-05")
	saves := taskRepo.saves

	_, err := service.EditTask(context.Background(), primary.EditTaskRequest{
		Project: "Apollo", TaskName: "Ghost", Person: strPtr("Ben"),
	})
	if !errors.Is(err, schedule.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if taskRepo.saves != saves {
		t.Error("expected no save after a failed edit")
	}
}

func TestEditTask_EmptyPatch(t *testing.T) {
	service, _ := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	addTask(t, service, "Apollo", "Design", "2024-03-01", "2024-03-05")

	if _, err := service.EditTask(context.Background(), primary.EditTaskRequest{Project: "Apollo", TaskName: "Design"}); err == nil {
		t.Fatal("expected error for empty edit, got nil")
	}
}

func TestEditTask_InvalidResultLeavesProjectUnchanged(t *testing.T) {
	service, taskRepo := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	addTask(t, service, "Apollo", "Design", "2024-03-01", "2024-03-05")

	_, err := service.EditTask(context.Background(), primary.EditTaskRequest{
		Project: "Apollo", TaskName: "Design", End: strPtr("2024-02-01"),
	})
	if err == nil {
		t.Fatal("expected error for end before start, got nil")
	}
	if taskRepo.projects["Apollo"][0].End != "2024-03-05" {
		t.Errorf("expected end date unchanged, got %s", taskRepo.projects["Apollo"][0].End)
	}
}

// ============================================================================
// DeleteTask Tests
// ============================================================================

func TestDeleteTask_PreservesOrder(t *testing.T) {
	service, _ := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	ctx := context.Background()
	addTask(t, service, "Apollo", "A", "2024-03-01", "2024-03-02")
	addTask(t, service, "Apollo", "B", "2024-03-01", "2024-03-02")
	addTask(t, service, "Apollo", "C", "2024-03-01", "2024-03-02")
	addTask(t, service, "Apollo", "B", "2024-03-01", "2024-03-02")

	n, err := service.DeleteTask(ctx, "Apollo", "B")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	tasks, err := service.ListTasks(ctx, "Apollo")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := taskNames(tasks)
	if len(names) != 2 || names[0] != "A" || names[1] != "C" {
		t.Errorf("expected [A C], got %v", names)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	service, _ := newTestTaskService(schedule.DuplicatesAllow, "Apollo")

	_, err := service.DeleteTask(context.Background(), "Apollo", "Ghost")
	if !errors.Is(err, schedule.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ============================================================================
// Query Tests
// ============================================================================

func TestGetTask(t *testing.T) {
	service, _ := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	addTask(t, service, "Apollo", "Design", "2024-03-01", "2024-03-05")

	task, err := service.GetTask(context.Background(), "Apollo", "Design")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.Person != "Ana" || task.Duration() != 4 {
		t.Errorf("unexpected task: %+v", task)
	}

	if _, err := service.GetTask(context.Background(), "Apollo", "Ghost"); !errors.Is(err, schedule.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestProjectsAreIsolated(t *testing.T) {
	service, _ := newTestTaskService(schedule.DuplicatesAllow, "Apollo", "Gemini")
	ctx := context.Background()
	addTask(t, service, "Apollo", "Design", "2024-03-01", "2024-03-05")

	tasks, err := service.ListTasks(ctx, "Gemini")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected Gemini to be empty, got %v", taskNames(tasks))
	}
}

func TestUpcomingDeadlines(t *testing.T) {
	service, _ := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	addTask(t, service, "Apollo", "Today", "2024-03-01", "2024-03-10")
	addTask(t, service, "Apollo", "Edge", "2024-03-01", "2024-03-20")
	addTask(t, service, "Apollo", "Later", "2024-03-01", "2024-03-21")
	addTask(t, service, "Apollo", "Overdue", "2024-03-01", "2024-03-09")

	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	report, err := service.UpcomingDeadlines(context.Background(), "Apollo", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(report.Warnings))
	}
	if report.Warnings[0].Task.Name != "Today" || report.Warnings[0].RemainingDays != 0 {
		t.Errorf("unexpected first warning: %+v", report.Warnings[0])
	}
	if report.Warnings[1].Task.Name != "Edge" || report.Warnings[1].RemainingDays != 10 {
		t.Errorf("unexpected second warning: %+v", report.Warnings[1])
	}
}

func TestChart(t *testing.T) {
	service, _ := newTestTaskService(schedule.DuplicatesAllow, "Apollo")
	addTask(t, service, "Apollo", "Build", "2024-03-06", "2024-03-20")
	addTask(t, service, "Apollo", "Design", "2024-03-01", "2024-03-05")

	gantt, err := service.Chart(context.Background(), "Apollo")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(gantt.Rows) != 2 || gantt.Rows[0].Task.Name != "Design" {
		t.Errorf("expected rows sorted by start date, got %+v", gantt.Rows)
	}
	if gantt.Days() != 19 {
		t.Errorf("expected 19 days, got %d", gantt.Days())
	}
}
