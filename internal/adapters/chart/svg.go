package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/example/planner/internal/core/chart"
	"github.com/example/planner/internal/fsutil"
	"github.com/example/planner/internal/models"
)

// SVG geometry, in pixels.
const (
	svgDayWidth   = 24
	svgRowHeight  = 28
	svgBarHeight  = 18
	svgLabelWidth = 200
	svgHeader     = 40
	svgMargin     = 10
)

// completedFill is the green used for finished work in both renderers.
const completedFill = "#2E8B57"

// WriteSVG writes the chart as a standalone SVG document.
// Hovering a bar shows its progress or remaining percentage.
func WriteSVG(w io.Writer, g chart.Gantt) error {
	days := g.Days()
	if days < 1 {
		days = 1
	}
	width := svgLabelWidth + days*svgDayWidth + 2*svgMargin
	height := svgHeader + len(g.Rows)*svgRowHeight + 2*svgMargin

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" font-family="sans-serif" font-size="12">`+"\n", width, height)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="#FFFFFF"/>`+"\n", width, height)

	if g.Empty() {
		fmt.Fprintf(&b, `  <text x="%d" y="%d">No tasks to chart</text>`+"\n", svgMargin, svgHeader)
		b.WriteString("</svg>\n")
		_, err := w.Write(b.Bytes())
		return err
	}

	x0 := svgMargin + svgLabelWidth
	fmt.Fprintf(&b, `  <text x="%d" y="%d">%s</text>`+"\n", x0, svgMargin+12, models.FormatDate(g.Start))
	fmt.Fprintf(&b, `  <text x="%d" y="%d" text-anchor="end">%s</text>`+"\n", x0+days*svgDayWidth, svgMargin+12, models.FormatDate(g.End))
	for d := 0; d <= days; d++ {
		x := x0 + d*svgDayWidth
		fmt.Fprintf(&b, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#DDDDDD"/>`+"\n", x, svgHeader, x, height-svgMargin)
	}

	for i, row := range g.Rows {
		y := svgHeader + i*svgRowHeight
		barY := y + (svgRowHeight-svgBarHeight)/2
		progress := row.Task.Progress
		fill := row.Task.Color.Hex()

		fmt.Fprintf(&b, `  <text x="%d" y="%d">%s</text>`+"\n",
			svgMargin, y+svgRowHeight/2+4, html.EscapeString(label(row.Task)))

		startX := float64(x0) + row.Offset*svgDayWidth
		doneW := row.Completed * svgDayWidth
		restW := row.Remaining * svgDayWidth

		if row.Duration == 0 {
			fmt.Fprintf(&b, `  <rect x="%.1f" y="%d" width="4" height="%d" fill="%s"><title>Progress: %d%%</title></rect>`+"\n",
				startX-2, barY, svgBarHeight, fill, progress)
			continue
		}
		if doneW > 0 {
			fmt.Fprintf(&b, `  <rect x="%.1f" y="%d" width="%.1f" height="%d" fill="%s"><title>Progress: %d%%</title></rect>`+"\n",
				startX, barY, doneW, svgBarHeight, completedFill, progress)
		}
		if restW > 0 {
			fmt.Fprintf(&b, `  <rect x="%.1f" y="%d" width="%.1f" height="%d" fill="%s" fill-opacity="0.5" stroke="%s"><title>Remaining: %d%%</title></rect>`+"\n",
				startX+doneW, barY, restW, svgBarHeight, fill, fill, 100-progress)
		}
	}

	b.WriteString("</svg>\n")
	_, err := w.Write(b.Bytes())
	return err
}

// ExportSVG renders the chart and atomically writes it to path.
func ExportSVG(path string, g chart.Gantt) error {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, g); err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	return nil
}
