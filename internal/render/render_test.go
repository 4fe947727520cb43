package render

import (
	"strings"
	"testing"

	"lockin/internal/entity"
)

func ptr(s string) *string { return &s }

func sampleTasks() []entity.Task {
	return []entity.Task{
		{ID: "t1", Title: "Essay", DueDate: "2025-01-10", Type: "School", Progress: entity.ProgressNotStarted},
		{ID: "t2", Title: "Call mom", Type: "Reminder", Progress: entity.ProgressCompleted, Completed: true, CompletedDate: ptr("2025-01-11")},
		{ID: "t3", Title: "Groceries", DueDate: "2025-01-05", Progress: entity.ProgressInProgress},
		{ID: "t4", Title: "Someday", Progress: entity.ProgressNotStarted},
	}
}

func TestEmptyNotesRendersOnePlaceholder(t *testing.T) {
	table := Notes(nil)
	if len(table.Rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(table.Rows))
	}
	if !table.Rows[0].Placeholder {
		t.Error("row should be a placeholder")
	}
	if len(table.DataRows()) != 0 || !table.Empty() {
		t.Error("expected zero data rows")
	}
}

func TestTaskViewsPartition(t *testing.T) {
	tasks := sampleTasks()
	active := ActiveTasks(tasks)
	archived := ArchivedTasks(tasks)

	if len(active.DataRows()) != 3 {
		t.Errorf("active rows: %d", len(active.DataRows()))
	}
	for _, r := range active.Rows {
		if r.ID == "t2" {
			t.Error("completed task in active view")
		}
		if !r.Has(ActionComplete) || !r.Has(ActionEdit) || !r.Has(ActionDelete) || r.Has(ActionRestore) {
			t.Errorf("active actions: %v", r.Actions)
		}
	}

	rows := archived.DataRows()
	if len(rows) != 1 || rows[0].ID != "t2" || rows[0].Index != 1 {
		t.Fatalf("archived rows: %+v", rows)
	}
	if !rows[0].Has(ActionRestore) || !rows[0].Has(ActionDelete) || rows[0].Has(ActionEdit) {
		t.Errorf("archived actions: %v", rows[0].Actions)
	}
	if rows[0].Cells[len(rows[0].Cells)-1] != "2025-01-11" {
		t.Errorf("completed date cell: %v", rows[0].Cells)
	}
}

func TestArchivedEmptyState(t *testing.T) {
	table := ArchivedTasks([]entity.Task{{ID: "x", Title: "open"}})
	if len(table.Rows) != 1 || !table.Rows[0].Placeholder {
		t.Errorf("expected placeholder, got %+v", table.Rows)
	}
}

func TestPlannerSortsByDueDate(t *testing.T) {
	table := Planner(sampleTasks())
	var ids []string
	for _, r := range table.DataRows() {
		ids = append(ids, r.ID)
	}
	if strings.Join(ids, ",") != "t3,t1,t4" {
		t.Errorf("order: %v", ids)
	}
	if table.DataRows()[0].Index != 2 {
		t.Errorf("row should carry stored index 2, got %d", table.DataRows()[0].Index)
	}
}

func TestGoalTierAndHabits(t *testing.T) {
	goals := entity.NewGoals()
	goals[entity.TierWeekly] = []entity.Goal{{ID: "g1", Text: "Run 5k", Completed: true}}

	weekly := GoalTier(goals, entity.TierWeekly)
	if weekly.Title != "Weekly goals" || len(weekly.DataRows()) != 1 || !weekly.Rows[0].Done {
		t.Errorf("weekly: %+v", weekly)
	}
	if daily := GoalTier(goals, entity.TierDaily); !daily.Empty() {
		t.Errorf("daily should be empty")
	}

	habits := Habits([]string{"read", "walk"})
	if len(habits.Rows) != 2 || habits.Rows[1].Index != 1 || habits.Rows[1].Cells[0] != "walk" {
		t.Errorf("habits: %+v", habits.Rows)
	}
}

func TestPlain(t *testing.T) {
	out := Plain(Notes([]entity.Note{{ID: "n1", Title: "Lecture", Progress: entity.ProgressInProgress, Type: "School"}}))
	for _, want := range []string{"Notes", "Title", "Lecture", "In Progress", "School"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	empty := Plain(Notes(nil))
	if !strings.Contains(empty, "No notes yet") {
		t.Errorf("empty output:\n%s", empty)
	}
}

func TestLayoutAlignsColumns(t *testing.T) {
	table := Habits([]string{"water", "read 20 pages"})
	header, lines := Layout(table)
	if header != "Habit" {
		t.Errorf("header: %q", header)
	}
	if len(lines) != len(table.Rows) {
		t.Fatalf("lines: got %d, want %d", len(lines), len(table.Rows))
	}
	if lines[1] != "read 20 pages" {
		t.Errorf("line: %q", lines[1])
	}

	long := Notes([]entity.Note{{Title: strings.Repeat("x", 60), Progress: entity.ProgressNotStarted}})
	_, lines = Layout(long)
	if !strings.HasPrefix(lines[0], strings.Repeat("x", 39)+"…") {
		t.Errorf("long title not truncated: %q", lines[0])
	}
}
