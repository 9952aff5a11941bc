// Package chart draws laid-out Gantt charts for the terminal and as SVG documents.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/example/planner/internal/core/chart"
	"github.com/example/planner/internal/models"
)

// DefaultWidth is the number of bar columns used for the whole timeline.
const DefaultWidth = 60

const (
	labelWidth   = 24
	barRune      = "█"
	milestone    = "◆"
	remainingMix = 0.5
)

var white = models.Color{R: 0xFF, G: 0xFF, B: 0xFF}

// TerminalRenderer draws a chart as colored text, one line per task.
type TerminalRenderer struct {
	out   io.Writer
	width int
}

// NewTerminalRenderer creates a renderer writing to out. A width of zero
// or less uses DefaultWidth.
func NewTerminalRenderer(out io.Writer, width int) *TerminalRenderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &TerminalRenderer{out: out, width: width}
}

// Render writes the chart. The completed part of each bar is green and the
// remaining part uses the task color faded toward white.
func (r *TerminalRenderer) Render(g chart.Gantt) error {
	if g.Empty() {
		_, err := fmt.Fprintln(r.out, color.New(color.FgYellow).Sprint("⚠ No tasks to chart"))
		return err
	}

	scale := r.scale(g)
	done := color.New(color.FgGreen)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%-*s %s%s%s\n", labelWidth, "",
		models.FormatDate(g.Start),
		strings.Repeat(" ", max(r.width-2*len(models.DateLayout), 1)),
		models.FormatDate(g.End))
	fmt.Fprintf(&b, "%-*s %s\n", labelWidth, "", strings.Repeat("─", r.width))

	for _, row := range g.Rows {
		offset, completed, remaining := cells(row, scale)

		b.WriteString(padLabel(label(row.Task), labelWidth))
		b.WriteString(" ")
		b.WriteString(strings.Repeat(" ", offset))
		if row.Duration == 0 {
			b.WriteString(rgb(row.Task.Color).Sprint(milestone))
		} else {
			b.WriteString(done.Sprint(strings.Repeat(barRune, completed)))
			b.WriteString(rgb(row.Task.Color.Blend(white, remainingMix)).Sprint(strings.Repeat(barRune, remaining)))
		}
		fmt.Fprintf(&b, " %d%%\n", row.Task.Progress)
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *TerminalRenderer) scale(g chart.Gantt) float64 {
	days := g.Days()
	if days < 1 {
		days = 1
	}
	return float64(r.width) / float64(days)
}

// cells converts a row to column counts. Rounding is done on the bar edges
// so adjacent bars line up.
func cells(row chart.Row, scale float64) (offset, completed, remaining int) {
	start := int(math.Round(row.Offset * scale))
	split := int(math.Round((row.Offset + row.Completed) * scale))
	end := int(math.Round((row.Offset + float64(row.Duration)) * scale))
	if row.Duration > 0 && end == start {
		end = start + 1
		if row.Completed > 0 {
			split = end
		}
	}
	return start, split - start, end - split
}

func label(t models.Task) string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Person)
}

func padLabel(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func rgb(c models.Color) *color.Color {
	return color.RGB(int(c.R), int(c.G), int(c.B))
}
