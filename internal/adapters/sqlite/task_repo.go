// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/planner/internal/models"
	"github.com/example/planner/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.Task, &record.Person, &record.Start, &record.End,
		&record.Color, &record.Progress, &record.Priority,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

const taskSelectCols = "name, person, start_date, end_date, color, progress, priority"

// Load retrieves all tasks of a project ordered by position.
func (r *TaskRepository) Load(ctx context.Context, project string) ([]*secondary.TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE project = ? ORDER BY position",
		project,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", project, err)
	}
	defer rows.Close()

	records := []*secondary.TaskRecord{}
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if err := validateRecord(record); err != nil {
			return []*secondary.TaskRecord{}, fmt.Errorf("%w: project %s: task %q: %v", secondary.ErrCorruptData, project, record.Task, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", project, err)
	}

	return records, nil
}

// Save replaces all tasks of a project in one transaction.
func (r *TaskRepository) Save(ctx context.Context, project string, tasks []*secondary.TaskRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (project) VALUES (?) ON CONFLICT(project) DO UPDATE SET saved_at = CURRENT_TIMESTAMP",
		project,
	); err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE project = ?", project); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO tasks (project, position, name, person, start_date, end_date, color, progress, priority) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		color := t.Color
		if color == "" {
			color = models.DefaultColor.Hex()
		}
		priority := t.Priority
		if priority == "" {
			priority = models.PriorityMid.String()
		}
		if _, err := stmt.ExecContext(ctx, project, i, t.Task, t.Person, t.Start, t.End, color, t.Progress, priority); err != nil {
			return fmt.Errorf("failed to save task %q: %w", t.Task, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project %s: %w", project, err)
	}
	return nil
}

// Projects lists projects that have been saved.
func (r *TaskRepository) Projects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT project FROM snapshots ORDER BY project")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func validateRecord(r *secondary.TaskRecord) error {
	if _, err := models.ParseDate(r.Start); err != nil {
		return err
	}
	if _, err := models.ParseDate(r.End); err != nil {
		return err
	}
	if _, err := models.ParseColor(r.Color); err != nil {
		return err
	}
	if _, err := models.ParsePriority(r.Priority); err != nil {
		return err
	}
	return nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
