package entity

import (
	"time"

	"github.com/charmbracelet/log"
)

// TaskStore is the task collection plus the soft-delete lifecycle.
type TaskStore struct {
	*Collection[Task]
	now func() time.Time
}

func NewTaskStore(b Backend, logger *log.Logger) *TaskStore {
	return &TaskStore{
		Collection: NewCollection(b, KeyTasks, taskSchema, func(t *Task) *string { return &t.ID }, logger),
		now:        time.Now,
	}
}

// SetClock replaces the clock used for completion dates.
func (s *TaskStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *TaskStore) today() string {
	return FormatDate(s.now())
}

// Save inserts t when id is empty, otherwise replaces the task with id.
func (s *TaskStore) Save(t Task, id string) ([]Task, error) {
	t.Normalize(s.today())
	return s.UpsertByID(t, id)
}

// Complete archives the task: completed, progress Completed, dated today.
func (s *TaskStore) Complete(id string) ([]Task, error) {
	return s.UpdateByID(id, s.complete)
}

func (s *TaskStore) CompleteAt(index int) ([]Task, error) {
	return s.Update(index, s.complete)
}

// Restore moves an archived task back to the active list.
func (s *TaskStore) Restore(id string) ([]Task, error) {
	return s.UpdateByID(id, s.restore)
}

func (s *TaskStore) RestoreAt(index int) ([]Task, error) {
	return s.Update(index, s.restore)
}

func (s *TaskStore) complete(t *Task) {
	t.Completed = true
	t.Progress = ProgressCompleted
	d := s.today()
	t.CompletedDate = &d
}

func (s *TaskStore) restore(t *Task) {
	t.Completed = false
	t.CompletedDate = nil
	if t.Progress == ProgressCompleted {
		t.Progress = ProgressInProgress
	}
}

// Partition splits tasks into the active and archived views, keeping
// the stored order.
func Partition(tasks []Task) (active, archived []Task) {
	for _, t := range tasks {
		if t.Completed {
			archived = append(archived, t)
		} else {
			active = append(active, t)
		}
	}
	return active, archived
}

// NoteStore is the notes collection. Notes are hard-deleted.
type NoteStore struct {
	*Collection[Note]
}

func NewNoteStore(b Backend, logger *log.Logger) *NoteStore {
	return &NoteStore{Collection: NewCollection(b, KeyNotes, noteSchema, func(n *Note) *string { return &n.ID }, logger)}
}

// Save inserts n when id is empty, otherwise replaces the note with id.
func (s *NoteStore) Save(n Note, id string) ([]Note, error) {
	if n.Progress == "" {
		n.Progress = ProgressNotStarted
	}
	return s.UpsertByID(n, id)
}
