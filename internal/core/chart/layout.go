// Package chart computes the rows of a Gantt chart from task records.
// Drawing is left to renderers in internal/adapters/chart.
package chart

import (
	"sort"
	"time"

	"github.com/example/planner/internal/core/task"
	"github.com/example/planner/internal/models"
)

// Row is one task bar. Completed and Remaining are lengths in days and
// together span the task duration.
type Row struct {
	Task      models.Task
	Offset    float64 // days from the chart start to the task start
	Duration  int
	Completed float64
	Remaining float64
}

// Gantt is the laid-out chart.
type Gantt struct {
	Start time.Time
	End   time.Time
	Rows  []Row
}

// Days returns the number of days spanned by the chart.
func (g Gantt) Days() int {
	return models.DaysBetween(g.Start, g.End)
}

// Empty reports whether the chart has no rows.
func (g Gantt) Empty() bool {
	return len(g.Rows) == 0
}

// Layout sorts tasks by start date, keeping store order for ties, and
// splits each bar into its completed and remaining portions.
func Layout(tasks []models.Task) Gantt {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var g Gantt
	if len(sorted) == 0 {
		return g
	}

	g.Start = models.DateOf(sorted[0].Start)
	g.End = models.DateOf(sorted[0].End)
	for _, t := range sorted {
		if end := models.DateOf(t.End); end.After(g.End) {
			g.End = end
		}
	}

	g.Rows = make([]Row, len(sorted))
	for i, t := range sorted {
		duration := t.Duration()
		if duration < 0 {
			duration = 0
		}
		progress, _ := task.ClampProgress(t.Progress)
		completed := float64(duration) * float64(progress) / 100
		g.Rows[i] = Row{
			Task:      t,
			Offset:    float64(models.DaysBetween(g.Start, t.Start)),
			Duration:  duration,
			Completed: completed,
			Remaining: float64(duration) - completed,
		}
	}
	return g
}
