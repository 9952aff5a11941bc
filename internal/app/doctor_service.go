package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/planner/internal/ports/primary"
	"github.com/example/planner/internal/ports/secondary"
)

// DoctorServiceImpl implements the DoctorService interface.
type DoctorServiceImpl struct {
	taskRepo    secondary.TaskRepository
	catalogRepo secondary.CatalogRepository
	checker     secondary.StorageChecker
	logger      *slog.Logger
}

// NewDoctorService creates a new DoctorService with injected dependencies.
func NewDoctorService(
	taskRepo secondary.TaskRepository,
	catalogRepo secondary.CatalogRepository,
	checker secondary.StorageChecker,
	logger *slog.Logger,
) *DoctorServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &DoctorServiceImpl{
		taskRepo:    taskRepo,
		catalogRepo: catalogRepo,
		checker:     checker,
		logger:      logger,
	}
}

// Check runs every check in order: storage, catalog, projects, orphans.
func (s *DoctorServiceImpl) Check(ctx context.Context) []primary.CheckResult {
	results := []primary.CheckResult{s.checkStorage(ctx)}

	catalog, err := s.catalogRepo.List(ctx)
	if err != nil {
		results = append(results, primary.CheckResult{
			Name:    "catalog",
			Status:  primary.CheckFail,
			Details: fmt.Sprintf("%v\nHint: rebuild it with: planner doctor --fix", err),
		})
	} else {
		results = append(results, primary.CheckResult{Name: "catalog", Status: primary.CheckOK})
	}

	stored, err := s.taskRepo.Projects(ctx)
	if err != nil {
		return append(results, primary.CheckResult{
			Name:    "projects",
			Status:  primary.CheckFail,
			Details: err.Error(),
		})
	}

	results = append(results, s.checkProjects(ctx, catalog, stored))
	results = append(results, checkOrphans(catalog, stored))
	return results
}

func (s *DoctorServiceImpl) checkStorage(ctx context.Context) primary.CheckResult {
	name := "storage"
	if s.checker == nil {
		return primary.CheckResult{Name: name, Status: primary.CheckOK}
	}
	name = fmt.Sprintf("storage (%s)", s.checker.Backend())
	if err := s.checker.CheckIntegrity(ctx); err != nil {
		return primary.CheckResult{Name: name, Status: primary.CheckFail, Details: err.Error()}
	}
	return primary.CheckResult{Name: name, Status: primary.CheckOK}
}

func (s *DoctorServiceImpl) checkProjects(ctx context.Context, catalog, stored []string) primary.CheckResult {
	var corrupt, outOfRange, missing []string
	for _, name := range catalog {
		if !contains(stored, name) {
			missing = append(missing, name)
			continue
		}
		records, err := s.taskRepo.Load(ctx, name)
		clamped := false
		if err == nil {
			for _, r := range records {
				t, convErr := recordToTask(r)
				if convErr != nil {
					err = fmt.Errorf("%w: %v", secondary.ErrCorruptData, convErr)
					break
				}
				if t.Progress != r.Progress {
					clamped = true
				}
			}
		}
		switch {
		case err != nil:
			s.logger.Debug("project failed to load", "project", name, "error", err)
			corrupt = append(corrupt, name)
		case clamped:
			outOfRange = append(outOfRange, name)
		}
	}

	if len(corrupt) > 0 {
		return primary.CheckResult{
			Name:    "projects",
			Status:  primary.CheckFail,
			Details: "corrupted: " + strings.Join(corrupt, ", "),
		}
	}
	var warnings []string
	if len(outOfRange) > 0 {
		warnings = append(warnings, "completion outside 0-100, clamped on next save: "+strings.Join(outOfRange, ", "))
	}
	if len(missing) > 0 {
		warnings = append(warnings, "no saved data: "+strings.Join(missing, ", "))
	}
	if len(warnings) > 0 {
		return primary.CheckResult{
			Name:    "projects",
			Status:  primary.CheckWarn,
			Details: strings.Join(warnings, "\n"),
		}
	}
	return primary.CheckResult{Name: "projects", Status: primary.CheckOK}
}

func checkOrphans(catalog, stored []string) primary.CheckResult {
	var orphans []string
	for _, name := range stored {
		if !contains(catalog, name) {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) > 0 {
		return primary.CheckResult{
			Name:    "orphans",
			Status:  primary.CheckWarn,
			Details: fmt.Sprintf("not in catalog: %s\nHint: add them with: planner doctor --fix", strings.Join(orphans, ", ")),
		}
	}
	return primary.CheckResult{Name: "orphans", Status: primary.CheckOK}
}

// RepairCatalog keeps readable catalog entries in order and appends stored
// projects that were missing from it.
func (s *DoctorServiceImpl) RepairCatalog(ctx context.Context) ([]string, error) {
	catalog, err := s.catalogRepo.List(ctx)
	if err != nil && !errors.Is(err, secondary.ErrCorruptData) {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if err != nil {
		s.logger.Warn("catalog is corrupted, rebuilding from stored projects", "error", err)
		catalog = nil
	}

	stored, err := s.taskRepo.Projects(ctx)
	if err != nil {
		return nil, err
	}

	names := append([]string{}, catalog...)
	for _, name := range stored {
		if !contains(names, name) {
			names = append(names, name)
		}
	}

	if err := s.catalogRepo.Replace(ctx, names); err != nil {
		return nil, fmt.Errorf("failed to rebuild catalog: %w", err)
	}
	s.logger.Info("catalog rebuilt", "projects", len(names))
	return names, nil
}

// Ensure DoctorServiceImpl implements the interface
var _ primary.DoctorService = (*DoctorServiceImpl)(nil)
