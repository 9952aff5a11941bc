package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	chartadapter "github.com/example/planner/internal/adapters/chart"
	"github.com/example/planner/internal/models"
	"github.com/example/planner/internal/ports/primary"
)

// TaskAdapter is a thin adapter that translates CLI operations to TaskService calls.
type TaskAdapter struct {
	service primary.TaskService
	out     io.Writer
}

// NewTaskAdapter creates a new TaskAdapter with the given service.
func NewTaskAdapter(service primary.TaskService, out io.Writer) *TaskAdapter {
	return &TaskAdapter{
		service: service,
		out:     out,
	}
}

// Add adds a task to a project.
func (a *TaskAdapter) Add(ctx context.Context, req primary.AddTaskRequest) error {
	task, err := a.service.AddTask(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Added task %s to %s\n", task.Name, req.Project)
	fmt.Fprintf(a.out, "  %s → %s (%d days), %s\n",
		models.FormatDate(task.Start), models.FormatDate(task.End), task.Duration(), task.Person)
	return nil
}

// Edit updates the tasks with the given name.
func (a *TaskAdapter) Edit(ctx context.Context, req primary.EditTaskRequest) error {
	n, err := a.service.EditTask(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Updated %s\n", plural(n, "task"))
	return nil
}

// Delete removes the tasks with the given name.
func (a *TaskAdapter) Delete(ctx context.Context, project, name string) error {
	n, err := a.service.DeleteTask(ctx, project, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted %s named %s\n", plural(n, "task"), name)
	return nil
}

// List prints the tasks of a project in stored order.
func (a *TaskAdapter) List(ctx context.Context, project string) error {
	tasks, err := a.service.ListTasks(ctx, project)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-12s %-10s %-10s %5s %-8s %s\n", "TASK", "PERSON", "START", "END", "DONE", "PRIORITY", "COLOR")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, t := range tasks {
		fmt.Fprintf(a.out, "%-20s %-12s %-10s %-10s %4d%% %-8s %s\n",
			t.Name, t.Person, models.FormatDate(t.Start), models.FormatDate(t.End),
			t.Progress, priorityLabel(t.Priority), swatch(t.Color))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show prints the first task with the given name.
func (a *TaskAdapter) Show(ctx context.Context, project, name string) error {
	t, err := a.service.GetTask(ctx, project, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nTask:     %s\n", t.Name)
	fmt.Fprintf(a.out, "Person:   %s\n", t.Person)
	fmt.Fprintf(a.out, "Start:    %s\n", models.FormatDate(t.Start))
	fmt.Fprintf(a.out, "End:      %s (%d days)\n", models.FormatDate(t.End), t.Duration())
	fmt.Fprintf(a.out, "Progress: %d%%\n", t.Progress)
	fmt.Fprintf(a.out, "Priority: %s\n", priorityLabel(t.Priority))
	fmt.Fprintf(a.out, "Color:    %s\n", swatch(t.Color))
	fmt.Fprintln(a.out)
	return nil
}

// Deadlines prints the tasks that end within the warning window of now.
func (a *TaskAdapter) Deadlines(ctx context.Context, project string, now time.Time) error {
	report, err := a.service.UpcomingDeadlines(ctx, project, now)
	if err != nil {
		return err
	}

	if report.None() {
		fmt.Fprintf(a.out, "%s No upcoming deadlines in the next %d days\n",
			color.New(color.FgGreen).Sprint("✓"), report.WindowDays)
		return nil
	}

	fmt.Fprintf(a.out, "%s Upcoming deadlines (next %d days):\n",
		color.New(color.FgYellow).Sprint("⚠"), report.WindowDays)
	for _, w := range report.Warnings {
		fmt.Fprintf(a.out, "  %s ends %s (%s)\n",
			w.Task.Name, models.FormatDate(w.Task.End), remaining(w.RemainingDays))
	}
	return nil
}

// Chart draws the project's Gantt chart on the terminal, or writes it as
// SVG when svgPath is set.
func (a *TaskAdapter) Chart(ctx context.Context, project, svgPath string, width int) error {
	g, err := a.service.Chart(ctx, project)
	if err != nil {
		return err
	}

	if svgPath == "" {
		return chartadapter.NewTerminalRenderer(a.out, width).Render(*g)
	}

	if g.Empty() {
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprint("⚠ No tasks to chart"))
	}
	if err := chartadapter.ExportSVG(svgPath, *g); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Chart written to %s\n", svgPath)
	return nil
}

func remaining(days int) string {
	switch days {
	case 0:
		return color.New(color.FgRed).Sprint("due today")
	case 1:
		return color.New(color.FgRed).Sprint("1 day left")
	}
	return fmt.Sprintf("%d days left", days)
}

func priorityLabel(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return color.New(color.FgRed).Sprint(p.String())
	case models.PriorityLow:
		return color.New(color.FgHiBlack).Sprint(p.String())
	}
	return p.String()
}

func swatch(c models.Color) string {
	return color.RGB(int(c.R), int(c.G), int(c.B)).Sprint("■") + " " + c.Hex()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
