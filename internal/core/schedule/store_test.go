package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/example/planner/internal/models"
)

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTask(name string) models.Task {
	return models.Task{
		Name:     name,
		Person:   "Ana",
		Start:    date("2024-01-01"),
		End:      date("2024-01-10"),
		Color:    models.Color{R: 0xFF},
		Progress: 10,
		Priority: models.PriorityHigh,
	}
}

func names(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}

func equalNames(t *testing.T, got []models.Task, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("expected %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
}

func TestStore_AddAndList(t *testing.T) {
	s := NewStore(nil, DuplicatesAllow)

	for _, n := range []string{"C", "A", "B"} {
		if err := s.Add(newTask(n)); err != nil {
			t.Fatalf("Add(%s) failed: %v", n, err)
		}
	}

	equalNames(t, s.List(), "C", "A", "B")
	if s.Len() != 3 {
		t.Errorf("expected 3 tasks, got %d", s.Len())
	}
}

func TestStore_Add_DefaultsPriority(t *testing.T) {
	s := NewStore(nil, DuplicatesAllow)
	task := newTask("A")
	task.Priority = 0

	if err := s.Add(task); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got, _ := s.Get("A")
	if got.Priority != models.PriorityMid {
		t.Errorf("expected Mid priority, got %v", got.Priority)
	}
}

func TestStore_Add_DuplicatePolicy(t *testing.T) {
	allow := NewStore(nil, DuplicatesAllow)
	_ = allow.Add(newTask("A"))
	if err := allow.Add(newTask("A")); err != nil {
		t.Fatalf("allow policy rejected duplicate: %v", err)
	}
	if allow.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", allow.Len())
	}

	reject := NewStore(nil, DuplicatesReject)
	_ = reject.Add(newTask("A"))
	err := reject.Add(newTask("A"))
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}
	if reject.Len() != 1 {
		t.Errorf("expected 1 row, got %d", reject.Len())
	}
}

func TestStore_Delete_PreservesOrder(t *testing.T) {
	s := NewStore([]models.Task{newTask("A"), newTask("B"), newTask("C"), newTask("B"), newTask("D")}, DuplicatesAllow)

	n, err := s.Delete("B")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	equalNames(t, s.List(), "A", "C", "D")
}

func TestStore_Delete_NotFound(t *testing.T) {
	s := NewStore([]models.Task{newTask("A")}, DuplicatesAllow)

	n, err := s.Delete("Z")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 removed, got %d", n)
	}
	equalNames(t, s.List(), "A")
}

func TestStore_Edit_OnlyMatchedRecord(t *testing.T) {
	s := NewStore([]models.Task{newTask("A"), newTask("B")}, DuplicatesAllow)

	progress := 90
	n, err := s.Edit("A", TaskPatch{Progress: &progress})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 edited, got %d", n)
	}

	a, _ := s.Get("A")
	b, _ := s.Get("B")
	if a.Progress != 90 {
		t.Errorf("expected A progress 90, got %d", a.Progress)
	}
	if b != newTask("B") {
		t.Errorf("B changed: %+v", b)
	}
	if a.Person != "Ana" || a.Priority != models.PriorityHigh {
		t.Errorf("unpatched fields of A changed: %+v", a)
	}
}

func TestStore_Edit_NotFound(t *testing.T) {
	s := NewStore([]models.Task{newTask("A")}, DuplicatesAllow)

	person := "Bo"
	_, err := s.Edit("Z", TaskPatch{Person: &person})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestStore_Edit_InvalidResultLeavesState(t *testing.T) {
	s := NewStore([]models.Task{newTask("A")}, DuplicatesAllow)

	end := date("2023-12-01")
	_, err := s.Edit("A", TaskPatch{End: &end})
	if err == nil {
		t.Fatal("expected error for end before start")
	}
	a, _ := s.Get("A")
	if !a.End.Equal(date("2024-01-10")) {
		t.Errorf("end date changed to %s", models.FormatDate(a.End))
	}
}

func TestStore_Edit_RenameRespectsPolicy(t *testing.T) {
	s := NewStore([]models.Task{newTask("A"), newTask("B")}, DuplicatesReject)

	name := "B"
	_, err := s.Edit("A", TaskPatch{Name: &name})
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}

	name = "C"
	if _, err := s.Edit("A", TaskPatch{Name: &name}); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	equalNames(t, s.List(), "C", "B")
}

func TestStore_ListIsCopy(t *testing.T) {
	s := NewStore([]models.Task{newTask("A")}, DuplicatesAllow)

	list := s.List()
	list[0].Name = "mutated"

	a, err := s.Get("A")
	if err != nil {
		t.Fatalf("store was mutated through List: %v", err)
	}
	if a.Name != "A" {
		t.Errorf("expected A, got %s", a.Name)
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	if p, _ := ParseDuplicatePolicy(""); p != DuplicatesAllow {
		t.Errorf("expected allow default, got %s", p)
	}
	if p, _ := ParseDuplicatePolicy("reject"); p != DuplicatesReject {
		t.Errorf("expected reject, got %s", p)
	}
	if _, err := ParseDuplicatePolicy("merge"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestTaskPatch_Empty(t *testing.T) {
	if !(TaskPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}
	p := 5
	if (TaskPatch{Progress: &p}).Empty() {
		t.Error("patch with progress should not be empty")
	}
}
