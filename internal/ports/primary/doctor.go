package primary

import "context"

// Check statuses, in increasing severity.
const (
	CheckOK   = "✓"
	CheckWarn = "⚠"
	CheckFail = "✗"
)

// DoctorService defines the primary port for data health checks.
type DoctorService interface {
	// Check inspects storage, catalog and project data.
	Check(ctx context.Context) []CheckResult

	// RepairCatalog rebuilds the catalog from the readable catalog entries
	// and the projects found in storage. Returns the resulting names.
	RepairCatalog(ctx context.Context) ([]string, error)
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Name    string
	Status  string // CheckOK, CheckWarn or CheckFail
	Details string // only set when Status is not CheckOK
}
