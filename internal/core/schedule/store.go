// Package schedule holds the in-memory task store of an open project.
// The store is owned by a session and is never shared across projects.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/planner/internal/core/task"
	"github.com/example/planner/internal/models"
)

var (
	// ErrTaskNotFound is returned when edit, delete or get matches no record.
	ErrTaskNotFound = errors.New("task not found")

	// ErrDuplicateTask is returned when a name is already taken and the
	// store rejects duplicates.
	ErrDuplicateTask = errors.New("task already exists")
)

// DuplicatePolicy decides what happens when a task name is reused.
type DuplicatePolicy string

// Duplicate name policies.
const (
	DuplicatesAllow  DuplicatePolicy = "allow"
	DuplicatesReject DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy parses a policy name; empty means allow.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case "", DuplicatesAllow:
		return DuplicatesAllow, nil
	case DuplicatesReject:
		return DuplicatesReject, nil
	}
	return "", fmt.Errorf("invalid duplicate policy %q (expected allow or reject)", s)
}

// TaskPatch carries the fields of an edit. Nil fields are left unchanged.
type TaskPatch struct {
	Name     *string
	Person   *string
	Start    *time.Time
	End      *time.Time
	Color    *models.Color
	Progress *int
	Priority *models.Priority
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Name == nil && p.Person == nil && p.Start == nil && p.End == nil &&
		p.Color == nil && p.Progress == nil && p.Priority == nil
}

// Apply returns a copy of t with the patch applied.
func (p TaskPatch) Apply(t models.Task) models.Task {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Person != nil {
		t.Person = *p.Person
	}
	if p.Start != nil {
		t.Start = models.DateOf(*p.Start)
	}
	if p.End != nil {
		t.End = models.DateOf(*p.End)
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return t
}

// Store is an ordered collection of task records.
type Store struct {
	tasks  []models.Task
	policy DuplicatePolicy
}

// NewStore creates a store seeded with tasks, which are copied.
func NewStore(tasks []models.Task, policy DuplicatePolicy) *Store {
	if policy == "" {
		policy = DuplicatesAllow
	}
	s := &Store{policy: policy}
	s.tasks = append(s.tasks, tasks...)
	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Add appends a record. Dates are normalized to calendar dates.
func (s *Store) Add(t models.Task) error {
	if s.policy == DuplicatesReject && s.indexOf(t.Name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name)
	}
	t.Start = models.DateOf(t.Start)
	t.End = models.DateOf(t.End)
	if !t.Priority.Valid() {
		t.Priority = models.PriorityMid
	}
	s.tasks = append(s.tasks, t)
	return nil
}

// Delete removes every record named name and returns how many were removed.
// The remaining records keep their relative order.
func (s *Store) Delete(name string) (int, error) {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Name == name {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	// Clear the tail so removed records are not retained by the backing array.
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = models.Task{}
	}
	s.tasks = kept
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}
	return removed, nil
}

// Edit applies patch to every record named name and returns how many were
// changed. If any resulting record is invalid, nothing is changed.
func (s *Store) Edit(name string, patch TaskPatch) (int, error) {
	var matched []int
	for i, t := range s.tasks {
		if t.Name == name {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}

	if patch.Name != nil && *patch.Name != name && s.policy == DuplicatesReject {
		if s.indexOf(*patch.Name) >= 0 || len(matched) > 1 {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateTask, *patch.Name)
		}
	}

	updated := make([]models.Task, len(matched))
	for j, i := range matched {
		next := patch.Apply(s.tasks[i])
		guard := task.CanEditTask(task.EditTaskContext{
			TaskName:    name,
			TaskExists:  true,
			NewName:     next.Name,
			NewPerson:   next.Person,
			Start:       next.Start,
			End:         next.End,
			Progress:    next.Progress,
			NameChanged: patch.Name != nil,
		})
		if err := guard.Error(); err != nil {
			return 0, err
		}
		updated[j] = next
	}

	for j, i := range matched {
		s.tasks[i] = updated[j]
	}
	return len(matched), nil
}

// Get returns the first record named name.
func (s *Store) Get(name string) (models.Task, error) {
	if i := s.indexOf(name); i >= 0 {
		return s.tasks[i], nil
	}
	return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) indexOf(name string) int {
	for i, t := range s.tasks {
		if t.Name == name {
			return i
		}
	}
	return -1
}
