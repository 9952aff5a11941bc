// Package deadline derives upcoming-deadline warnings from task records.
package deadline

import (
	"time"

	"github.com/example/planner/internal/models"
)

// DefaultWindowDays is the warning window, inclusive of today.
const DefaultWindowDays = 10

// Warning is an upcoming task together with the days left until its end date.
type Warning struct {
	Task          models.Task
	RemainingDays int
}

// Report is the result of an evaluation.
type Report struct {
	Now        time.Time
	WindowDays int
	Warnings   []Warning
}

// None reports whether no task is approaching its deadline.
func (r Report) None() bool {
	return len(r.Warnings) == 0
}

// Evaluate returns the tasks whose end date is between today and
// today+window days, both inclusive, in the order given.
// Overdue tasks are not reported. A window below zero uses the default.
func Evaluate(tasks []models.Task, now time.Time, window int) Report {
	if window < 0 {
		window = DefaultWindowDays
	}
	report := Report{Now: models.DateOf(now), WindowDays: window}
	for _, t := range tasks {
		remaining := models.DaysBetween(now, t.End)
		if remaining >= 0 && remaining <= window {
			report.Warnings = append(report.Warnings, Warning{Task: t, RemainingDays: remaining})
		}
	}
	return report
}
