// Package dashboard binds the stores, the form controllers and the
// renderers. Every list event names its kind, action and target ID, so
// the caller never needs positional bookkeeping.
package dashboard

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"lockin/internal/entity"
	"lockin/internal/form"
	"lockin/internal/render"
	"lockin/internal/stats"
)

type Kind string

const (
	KindTask  Kind = "task"
	KindNote  Kind = "note"
	KindGoal  Kind = "goal"
	KindHabit Kind = "habit"
)

func Kinds() []Kind {
	return []Kind{KindTask, KindNote, KindGoal, KindHabit}
}

var ErrUnknownEvent = errors.New("unknown event")

// Event is one row action. Habits have no IDs and use Index; goals also
// name their tier.
type Event struct {
	Kind   Kind
	Action render.Action
	ID     string
	Index  int
	Tier   entity.Tier
}

// Options is the schema variant and clock of a dashboard.
type Options struct {
	TaskTypes       []string
	DefaultType     string
	TaskDueRequired bool
	NoteDueRequired bool
	Now             func() time.Time
}

type Tables struct {
	Active  render.Table
	Archive render.Table
	Planner render.Table
	Notes   render.Table
	Goals   map[entity.Tier]render.Table
	Habits  render.Table
}

type Dashboard struct {
	Tasks  *entity.TaskStore
	Notes  *entity.NoteStore
	Goals  *entity.GoalBoard
	Habits *entity.HabitList

	TaskForm *form.Controller[entity.Task]
	NoteForm *form.Controller[entity.Note]

	tier       entity.Tier
	habitIndex int
	now        func() time.Time
	log        *log.Logger
}

func New(b entity.Backend, opts Options, logger *log.Logger) *Dashboard {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tasks := entity.NewTaskStore(b, logger)
	tasks.SetClock(now)
	notes := entity.NewNoteStore(b, logger)

	return &Dashboard{
		Tasks:  tasks,
		Notes:  notes,
		Goals:  entity.NewGoalBoard(b, logger),
		Habits: entity.NewHabitList(b, logger),
		TaskForm: form.New[entity.Task](tasks, form.TaskBinding{DefaultType: opts.DefaultType},
			form.Rules{DueRequired: opts.TaskDueRequired, Types: opts.TaskTypes}),
		NoteForm: form.New[entity.Note](notes, form.NoteBinding{DefaultType: opts.DefaultType},
			form.Rules{DueRequired: opts.NoteDueRequired, Types: opts.TaskTypes}),
		tier:       entity.TierAnnual,
		habitIndex: entity.None,
		now:        now,
		log:        logger,
	}
}

// Tier is the goal tier new goals are added to.
func (d *Dashboard) Tier() entity.Tier {
	return d.tier
}

func (d *Dashboard) SelectTier(t entity.Tier) error {
	parsed, ok := entity.ParseTier(string(t))
	if !ok {
		return fmt.Errorf("%w: %q", entity.ErrUnknownTier, t)
	}
	d.tier = parsed
	return nil
}

// HabitTarget is the habit index being renamed, or entity.None.
func (d *Dashboard) HabitTarget() int {
	return d.habitIndex
}

// Dispatch applies one row action and returns the refreshed tables.
func (d *Dashboard) Dispatch(ev Event) (Tables, error) {
	if err := d.apply(ev); err != nil {
		d.log.Debug("event failed", "kind", ev.Kind, "action", ev.Action, "id", ev.ID, "err", err)
		return Tables{}, err
	}
	return d.Tables()
}

func (d *Dashboard) apply(ev Event) error {
	switch ev.Kind {
	case KindTask:
		switch ev.Action {
		case render.ActionEdit:
			return d.TaskForm.OpenForEdit(ev.ID)
		case render.ActionComplete:
			_, err := d.Tasks.Complete(ev.ID)
			return err
		case render.ActionRestore:
			_, err := d.Tasks.Restore(ev.ID)
			return err
		case render.ActionDelete:
			if _, err := d.Tasks.RemoveByID(ev.ID); err != nil {
				return err
			}
			if d.TaskForm.Target() == ev.ID {
				d.TaskForm.Cancel()
			}
			return nil
		}
	case KindNote:
		switch ev.Action {
		case render.ActionEdit:
			return d.NoteForm.OpenForEdit(ev.ID)
		case render.ActionDelete:
			if _, err := d.Notes.RemoveByID(ev.ID); err != nil {
				return err
			}
			if d.NoteForm.Target() == ev.ID {
				d.NoteForm.Cancel()
			}
			return nil
		}
	case KindGoal:
		switch ev.Action {
		case render.ActionToggle:
			_, err := d.Goals.Toggle(ev.Tier, ev.ID)
			return err
		case render.ActionDelete:
			_, err := d.Goals.Remove(ev.Tier, ev.ID)
			return err
		}
	case KindHabit:
		switch ev.Action {
		case render.ActionEdit:
			habits, err := d.Habits.Load()
			if err != nil {
				return err
			}
			if ev.Index < 0 || ev.Index >= len(habits) {
				return fmt.Errorf("%w: %d (len %d)", entity.ErrIndexOutOfRange, ev.Index, len(habits))
			}
			d.habitIndex = ev.Index
			return nil
		case render.ActionDelete:
			if _, err := d.Habits.Remove(ev.Index); err != nil {
				return err
			}
			d.habitIndex = entity.None
			return nil
		}
	}
	return fmt.Errorf("%w: %s %s", ErrUnknownEvent, ev.Kind, ev.Action)
}

// Submit saves the form input for kind. Goals use f.Title as the goal
// text and go to the selected tier; habits use f.Title and rename the
// habit opened for edit, if any.
func (d *Dashboard) Submit(kind Kind, f form.Fields) (Tables, error) {
	var err error
	switch kind {
	case KindTask:
		_, err = d.TaskForm.Submit(f)
	case KindNote:
		_, err = d.NoteForm.Submit(f)
	case KindGoal:
		if err = form.RequireText("goal", f.Title); err == nil {
			_, err = d.Goals.Add(d.tier, f.Title)
		}
	case KindHabit:
		if err = form.RequireText("habit", f.Title); err != nil {
			break
		}
		if d.habitIndex == entity.None {
			_, err = d.Habits.Add(f.Title)
		} else {
			_, err = d.Habits.Rename(d.habitIndex, f.Title)
		}
		if err == nil {
			d.habitIndex = entity.None
		}
	default:
		err = fmt.Errorf("%w: submit %s", ErrUnknownEvent, kind)
	}
	if err != nil {
		return Tables{}, err
	}
	return d.Tables()
}

// Cancel drops any open edit of kind.
func (d *Dashboard) Cancel(kind Kind) {
	switch kind {
	case KindTask:
		d.TaskForm.Cancel()
	case KindNote:
		d.NoteForm.Cancel()
	case KindHabit:
		d.habitIndex = entity.None
	}
}

// Tables loads every collection and renders it.
func (d *Dashboard) Tables() (Tables, error) {
	tasks, err := d.Tasks.Load()
	if err != nil {
		return Tables{}, err
	}
	notes, err := d.Notes.Load()
	if err != nil {
		return Tables{}, err
	}
	goals, err := d.Goals.Load()
	if err != nil {
		return Tables{}, err
	}
	habits, err := d.Habits.Load()
	if err != nil {
		return Tables{}, err
	}

	t := Tables{
		Active:  render.ActiveTasks(tasks),
		Archive: render.ArchivedTasks(tasks),
		Planner: render.Planner(tasks),
		Notes:   render.Notes(notes),
		Goals:   make(map[entity.Tier]render.Table, len(entity.Tiers())),
		Habits:  render.Habits(habits),
	}
	for _, tier := range entity.Tiers() {
		t.Goals[tier] = render.GoalTier(goals, tier)
	}
	return t, nil
}

// Summary computes the stats view as of now.
func (d *Dashboard) Summary(now time.Time) (stats.Summary, error) {
	tasks, err := d.Tasks.Load()
	if err != nil {
		return stats.Summary{}, err
	}
	goals, err := d.Goals.Load()
	if err != nil {
		return stats.Summary{}, err
	}
	notes, err := d.Notes.Load()
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Compute(tasks, goals, notes, now), nil
}

// TaskCount feeds stats.Watcher.
func (d *Dashboard) TaskCount() (int, error) {
	tasks, err := d.Tasks.Load()
	return len(tasks), err
}

func (d *Dashboard) Now() time.Time {
	return d.now()
}
