// Package render projects stored collections into display tables. It
// never mutates state: rows carry entity IDs and action names that the
// caller routes back to the stores.
package render

import (
	"sort"

	"lockin/internal/entity"
)

type Action string

const (
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionComplete Action = "complete"
	ActionRestore  Action = "restore"
	ActionToggle   Action = "toggle"
)

type Row struct {
	ID          string
	Index       int
	Cells       []string
	Actions     []Action
	Done        bool
	Placeholder bool
}

func (r Row) Has(a Action) bool {
	for _, x := range r.Actions {
		if x == a {
			return true
		}
	}
	return false
}

type Table struct {
	Title   string
	Columns []string
	Rows    []Row
}

// DataRows returns the rows that are not the empty-state placeholder.
func (t Table) DataRows() []Row {
	var out []Row
	for _, r := range t.Rows {
		if !r.Placeholder {
			out = append(out, r)
		}
	}
	return out
}

func (t Table) Empty() bool {
	return len(t.DataRows()) == 0
}

func newTable(title string, columns []string, rows []Row, empty string) Table {
	if len(rows) == 0 {
		rows = []Row{{Index: entity.None, Cells: []string{empty}, Placeholder: true}}
	}
	return Table{Title: title, Columns: columns, Rows: rows}
}

var taskColumns = []string{"Title", "Due", "Progress", "Type"}

// ActiveTasks renders the tasks that are not archived.
func ActiveTasks(tasks []entity.Task) Table {
	active, _ := entity.Partition(tasks)
	return newTable("Tasks", taskColumns,
		taskRows(tasks, active, ActionComplete, ActionEdit, ActionDelete),
		"No active tasks. Press 'a' to add one.")
}

// ArchivedTasks renders completed tasks with their completion date.
func ArchivedTasks(tasks []entity.Task) Table {
	_, archived := entity.Partition(tasks)
	rows := taskRows(tasks, archived, ActionRestore, ActionDelete)
	for i := range rows {
		rows[i].Done = true
	}
	return newTable("Archive", append(append([]string{}, taskColumns...), "Completed"), rows,
		"No completed tasks yet.")
}

// Planner renders active tasks ordered by due date, undated last.
func Planner(tasks []entity.Task) Table {
	active, _ := entity.Partition(tasks)
	sorted := append([]entity.Task(nil), active...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, okI := sorted[i].Due()
		dj, okJ := sorted[j].Due()
		if okI != okJ {
			return okI
		}
		return okI && di.Before(dj)
	})
	return newTable("Planner", taskColumns,
		taskRows(tasks, sorted, ActionComplete, ActionEdit, ActionDelete),
		"No tasks planned.")
}

func taskRows(all, view []entity.Task, actions ...Action) []Row {
	rows := make([]Row, 0, len(view))
	for _, t := range view {
		cells := []string{t.Title, dash(t.DueDate), string(t.Progress), dash(t.Type)}
		if t.Completed {
			date := ""
			if t.CompletedDate != nil {
				date = *t.CompletedDate
			}
			cells = append(cells, dash(date))
		}
		rows = append(rows, Row{
			ID:      t.ID,
			Index:   taskIndex(all, t.ID),
			Cells:   cells,
			Actions: actions,
			Done:    t.Completed,
		})
	}
	return rows
}

func Notes(notes []entity.Note) Table {
	rows := make([]Row, 0, len(notes))
	for i, n := range notes {
		rows = append(rows, Row{
			ID:      n.ID,
			Index:   i,
			Cells:   []string{n.Title, string(n.Progress), dash(n.Type), n.Description},
			Actions: []Action{ActionEdit, ActionDelete},
		})
	}
	return newTable("Notes", []string{"Title", "Progress", "Type", "Description"}, rows,
		"No notes yet. Press 'a' to create your first note!")
}

func GoalTier(goals entity.Goals, tier entity.Tier) Table {
	list := goals[tier]
	rows := make([]Row, 0, len(list))
	for i, g := range list {
		rows = append(rows, Row{
			ID:      g.ID,
			Index:   i,
			Cells:   []string{g.Text},
			Actions: []Action{ActionToggle, ActionDelete},
			Done:    g.Completed,
		})
	}
	return newTable(tier.Label()+" goals", []string{"Goal"}, rows,
		"No "+string(tier)+" goals yet.")
}

func Habits(habits []string) Table {
	rows := make([]Row, 0, len(habits))
	for i, h := range habits {
		rows = append(rows, Row{
			Index:   i,
			Cells:   []string{h},
			Actions: []Action{ActionEdit, ActionDelete},
		})
	}
	return newTable("Habits", []string{"Habit"}, rows, "No habits yet.")
}

func taskIndex(all []entity.Task, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return entity.None
}

func dash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
