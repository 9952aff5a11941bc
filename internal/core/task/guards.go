// Package task contains the pure business logic for task operations.
// Guards are pure functions that evaluate preconditions without side effects.
package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AddTaskContext provides context for task creation guards.
type AddTaskContext struct {
	Name     string
	Person   string
	Start    time.Time
	End      time.Time
	Progress int
}

// EditTaskContext provides context for task edit guards.
// Only fields that are being changed are set; the rest hold the current values.
type EditTaskContext struct {
	TaskName    string
	TaskExists  bool
	NewName     string
	NewPerson   string
	Start       time.Time
	End         time.Time
	Progress    int
	NameChanged bool
}

// CanAddTask evaluates whether a task can be added.
// Rules:
// - Name and person must be filled in
// - Progress must be within 0..100
// - Start must not be after end
func CanAddTask(ctx AddTaskContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" || strings.TrimSpace(ctx.Person) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "task name and person are required",
		}
	}

	if r := checkProgress(ctx.Progress); !r.Allowed {
		return r
	}

	return checkDates(ctx.Start, ctx.End)
}

// CanEditTask evaluates whether an edit can be applied.
// Rules:
// - Task must exist
// - A renamed task must keep a non-empty name, and the person must stay non-empty
// - Resulting progress and dates must remain valid
func CanEditTask(ctx EditTaskContext) GuardResult {
	if !ctx.TaskExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("task %q not found", ctx.TaskName),
		}
	}

	if ctx.NameChanged && strings.TrimSpace(ctx.NewName) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "task name cannot be empty",
		}
	}

	if strings.TrimSpace(ctx.NewPerson) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "person cannot be empty",
		}
	}

	if r := checkProgress(ctx.Progress); !r.Allowed {
		return r
	}

	return checkDates(ctx.Start, ctx.End)
}

// StoredTaskContext provides context for validating a task read from storage.
type StoredTaskContext struct {
	Name  string
	Start time.Time
	End   time.Time
}

// CanLoadTask evaluates whether a stored task keeps its date order.
// Rules:
// - Start must not be after end
func CanLoadTask(ctx StoredTaskContext) GuardResult {
	if r := checkDates(ctx.Start, ctx.End); !r.Allowed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("task %q: %s", ctx.Name, r.Reason),
		}
	}
	return GuardResult{Allowed: true}
}

// ClampProgress limits p to 0..100 and reports whether it was already in range.
func ClampProgress(p int) (int, bool) {
	switch {
	case p < 0:
		return 0, false
	case p > 100:
		return 100, false
	}
	return p, true
}

// ParseProgress converts user input into a completion percentage.
// Empty input yields 0, matching the on-disk default.
func ParseProgress(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid completion percentage %q: please enter a number", s)
	}
	if r := checkProgress(p); !r.Allowed {
		return 0, r.Error()
	}
	return p, nil
}

func checkProgress(p int) GuardResult {
	if p < 0 || p > 100 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("completion percentage must be between 0 and 100 (got %d)", p),
		}
	}
	return GuardResult{Allowed: true}
}

func checkDates(start, end time.Time) GuardResult {
	if start.IsZero() || end.IsZero() {
		return GuardResult{
			Allowed: false,
			Reason:  "start and end dates are required",
		}
	}
	if end.Before(start) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("end date %s is before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02")),
		}
	}
	return GuardResult{Allowed: true}
}
