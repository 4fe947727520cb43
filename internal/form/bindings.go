package form

import (
	"strings"

	"lockin/internal/entity"
)

// TaskBinding binds planner tasks. The submitted progress decides
// whether the task is archived.
type TaskBinding struct {
	DefaultType string
}

func (b TaskBinding) Defaults() Fields {
	return Fields{Type: defaultType(b.DefaultType), Progress: string(entity.ProgressNotStarted)}
}

func (b TaskBinding) FromEntity(t entity.Task) Fields {
	return Fields{
		Title:    t.Title,
		DueDate:  t.DueDate,
		Type:     t.Type,
		Progress: string(t.Progress),
	}
}

func (b TaskBinding) Build(f Fields, existing *entity.Task) entity.Task {
	t := entity.Task{
		Title:    strings.TrimSpace(f.Title),
		DueDate:  strings.TrimSpace(f.DueDate),
		Type:     orDefault(f.Type, defaultType(b.DefaultType)),
		Progress: entity.Progress(orDefault(f.Progress, string(entity.ProgressNotStarted))),
	}
	t.Completed = t.Progress == entity.ProgressCompleted
	if existing != nil {
		t.ID = existing.ID
		if t.Completed {
			t.CompletedDate = existing.CompletedDate
		}
	}
	return t
}

type NoteBinding struct {
	DefaultType string
}

func (b NoteBinding) Defaults() Fields {
	return Fields{Type: defaultType(b.DefaultType), Progress: string(entity.ProgressNotStarted)}
}

func (b NoteBinding) FromEntity(n entity.Note) Fields {
	return Fields{
		Title:       n.Title,
		DueDate:     n.DueDate,
		Type:        n.Type,
		Progress:    string(n.Progress),
		Description: n.Description,
	}
}

func (b NoteBinding) Build(f Fields, existing *entity.Note) entity.Note {
	n := entity.Note{
		Title:       strings.TrimSpace(f.Title),
		DueDate:     strings.TrimSpace(f.DueDate),
		Type:        orDefault(f.Type, defaultType(b.DefaultType)),
		Progress:    entity.Progress(orDefault(f.Progress, string(entity.ProgressNotStarted))),
		Description: f.Description,
	}
	if existing != nil {
		n.ID = existing.ID
	}
	return n
}

func defaultType(t string) string {
	return orDefault(t, entity.DefaultType)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
