package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/planner/internal/ports/primary"
)

// DoctorAdapter prints DoctorService results.
type DoctorAdapter struct {
	service primary.DoctorService
	out     io.Writer
}

// NewDoctorAdapter creates a new DoctorAdapter with the given service.
func NewDoctorAdapter(service primary.DoctorService, out io.Writer) *DoctorAdapter {
	return &DoctorAdapter{
		service: service,
		out:     out,
	}
}

// Check runs all checks and prints a compact table followed by details of
// failing checks. It reports whether any check failed.
func (a *DoctorAdapter) Check(ctx context.Context, quiet bool) (healthy bool) {
	results := a.service.Check(ctx)

	healthy = true
	for _, r := range results {
		if r.Status == primary.CheckFail {
			healthy = false
		}
	}
	if quiet {
		return healthy
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Check              Status")
	fmt.Fprintln(a.out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(a.out, "%-18s %s\n", r.Name, statusMark(r.Status))
	}
	fmt.Fprintln(a.out)

	for _, r := range results {
		if r.Status == primary.CheckOK || r.Details == "" {
			continue
		}
		fmt.Fprintf(a.out, "%s:\n", r.Name)
		for _, line := range strings.Split(r.Details, "\n") {
			fmt.Fprintf(a.out, "  %s\n", line)
		}
	}
	return healthy
}

// Fix rebuilds the catalog and prints the result.
func (a *DoctorAdapter) Fix(ctx context.Context) error {
	names, err := a.service.RepairCatalog(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Catalog rebuilt with %s\n", plural(len(names), "project"))
	return nil
}

func statusMark(status string) string {
	switch status {
	case primary.CheckOK:
		return color.New(color.FgGreen).Sprint(status)
	case primary.CheckWarn:
		return color.New(color.FgYellow).Sprint(status)
	}
	return color.New(color.FgRed).Sprint(status)
}
