package dashboard

import (
	"errors"
	"testing"
	"time"

	"lockin/internal/entity"
	"lockin/internal/form"
	"lockin/internal/render"
	"lockin/internal/storage"
)

func newDashboard(t *testing.T) (*storage.Memory, *Dashboard) {
	t.Helper()
	mem := storage.NewMemory()
	d := New(mem, Options{
		TaskTypes: []string{"Reminder", "Exam", "Project"},
		Now:       func() time.Time { return time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC) },
	}, nil)
	return mem, d
}

func TestTaskLifecycle(t *testing.T) {
	_, d := newDashboard(t)

	tables, err := d.Submit(KindTask, form.Fields{Title: "Essay", DueDate: "2025-01-10", Type: "Exam"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	rows := tables.Active.DataRows()
	if len(rows) != 1 || !tables.Archive.Empty() {
		t.Fatalf("after add: active %d, archive empty %v", len(rows), tables.Archive.Empty())
	}
	id := rows[0].ID

	tables, err = d.Dispatch(Event{Kind: KindTask, Action: render.ActionComplete, ID: id})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !tables.Active.Empty() || len(tables.Archive.DataRows()) != 1 {
		t.Fatal("completed task should move to the archive")
	}
	if got := tables.Archive.DataRows()[0].Cells[len(tables.Archive.Columns)-1]; got != "2025-01-12" {
		t.Errorf("completed date cell: %q", got)
	}

	tables, err = d.Dispatch(Event{Kind: KindTask, Action: render.ActionRestore, ID: id})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if tables.Active.Empty() {
		t.Fatal("restored task should be active")
	}

	if _, err := d.Dispatch(Event{Kind: KindTask, Action: render.ActionEdit, ID: id}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if d.TaskForm.State() != form.Editing || d.TaskForm.Fields().Title != "Essay" {
		t.Fatalf("form not bound: %v %+v", d.TaskForm.State(), d.TaskForm.Fields())
	}
	tables, err = d.Dispatch(Event{Kind: KindTask, Action: render.ActionDelete, ID: id})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !tables.Active.Empty() || !tables.Archive.Empty() {
		t.Error("delete left rows behind")
	}
	if d.TaskForm.State() != form.Adding {
		t.Error("deleting the edited task should reset the form")
	}
}

func TestDispatchStaleID(t *testing.T) {
	mem, d := newDashboard(t)
	if _, err := d.Submit(KindNote, form.Fields{Title: "n"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	before := mem.Writes()
	_, err := d.Dispatch(Event{Kind: KindNote, Action: render.ActionDelete, ID: "gone"})
	if !errors.Is(err, entity.ErrIndexOutOfRange) {
		t.Fatalf("got %v, want ErrIndexOutOfRange", err)
	}
	if mem.Writes() != before {
		t.Error("failed delete wrote to storage")
	}
}

func TestDispatchUnknown(t *testing.T) {
	_, d := newDashboard(t)
	if _, err := d.Dispatch(Event{Kind: KindNote, Action: render.ActionToggle}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("got %v", err)
	}
	if _, err := d.Submit("bogus", form.Fields{Title: "x"}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("got %v", err)
	}
}

func TestGoalsAndHabits(t *testing.T) {
	_, d := newDashboard(t)
	if err := d.SelectTier(entity.TierWeekly); err != nil {
		t.Fatalf("SelectTier: %v", err)
	}
	if err := d.SelectTier("hourly"); !errors.Is(err, entity.ErrUnknownTier) {
		t.Errorf("SelectTier(hourly): %v", err)
	}
	tables, err := d.Submit(KindGoal, form.Fields{Title: "Run 5k"})
	if err != nil {
		t.Fatalf("Submit goal: %v", err)
	}
	row := tables.Goals[entity.TierWeekly].DataRows()[0]
	tables, err = d.Dispatch(Event{Kind: KindGoal, Action: render.ActionToggle, ID: row.ID, Tier: entity.TierWeekly})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !tables.Goals[entity.TierWeekly].DataRows()[0].Done {
		t.Error("goal not toggled")
	}
	if _, err := d.Submit(KindGoal, form.Fields{Title: "  "}); !form.IsValidation(err) {
		t.Errorf("blank goal: %v", err)
	}

	if _, err := d.Submit(KindHabit, form.Fields{Title: "water"}); err != nil {
		t.Fatalf("add habit: %v", err)
	}
	if _, err := d.Dispatch(Event{Kind: KindHabit, Action: render.ActionEdit, Index: 0}); err != nil {
		t.Fatalf("edit habit: %v", err)
	}
	tables, err = d.Submit(KindHabit, form.Fields{Title: "read 20 pages"})
	if err != nil {
		t.Fatalf("rename habit: %v", err)
	}
	habits := tables.Habits.DataRows()
	if len(habits) != 1 || habits[0].Cells[0] != "read 20 pages" {
		t.Errorf("habits: %+v", habits)
	}
	if d.HabitTarget() != entity.None {
		t.Error("habit target not cleared")
	}
	if _, err := d.Dispatch(Event{Kind: KindHabit, Action: render.ActionEdit, Index: 5}); !errors.Is(err, entity.ErrIndexOutOfRange) {
		t.Errorf("edit habit 5: %v", err)
	}
}

func TestSummary(t *testing.T) {
	_, d := newDashboard(t)
	for _, title := range []string{"a", "b"} {
		if _, err := d.Submit(KindTask, form.Fields{Title: title}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	tables, _ := d.Tables()
	id := tables.Active.DataRows()[0].ID
	if _, err := d.Dispatch(Event{Kind: KindTask, Action: render.ActionComplete, ID: id}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	s, err := d.Summary(d.Now())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.CompletionRate != 50 || s.TotalTasks != 2 {
		t.Errorf("summary: %+v", s)
	}
	if n, _ := d.TaskCount(); n != 2 {
		t.Errorf("TaskCount: %d", n)
	}
}

func TestSelectTierMixedCaseKeepsGoals(t *testing.T) {
	_, d := newDashboard(t)
	if _, err := d.Submit(KindGoal, form.Fields{Title: "Keep me"}); err != nil {
		t.Fatalf("Submit annual: %v", err)
	}
	if err := d.SelectTier("Weekly"); err != nil {
		t.Fatalf("SelectTier: %v", err)
	}
	if d.Tier() != entity.TierWeekly {
		t.Errorf("tier: %q", d.Tier())
	}
	if _, err := d.Submit(KindGoal, form.Fields{Title: "Run 5k"}); err != nil {
		t.Fatalf("Submit weekly: %v", err)
	}
	goals, err := d.Goals.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(goals[entity.TierAnnual]) != 1 || len(goals[entity.TierWeekly]) != 1 {
		t.Errorf("annual=%d weekly=%d", len(goals[entity.TierAnnual]), len(goals[entity.TierWeekly]))
	}
}
