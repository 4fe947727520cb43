package ui

import (
	"fmt"
	"strings"

	"lockin/internal/dashboard"
	"lockin/internal/entity"
	"lockin/internal/form"
)

// editState is the open Adding/Editing form of one list.
type editState struct {
	kind    dashboard.Kind
	editing bool
	keys    []string
	labels  []string
	values  []string
	options map[string][]string
	index   int
}

func newEditState(kind dashboard.Kind, editing bool, f form.Fields, types []string, tier entity.Tier) *editState {
	e := &editState{kind: kind, editing: editing, options: map[string][]string{}}
	switch kind {
	case dashboard.KindTask, dashboard.KindNote:
		e.add("title", "title", f.Title)
		e.add("dueDate", "due date (YYYY-MM-DD)", f.DueDate)
		e.add("type", "type", f.Type)
		e.add("progress", "progress", f.Progress)
		if kind == dashboard.KindNote {
			e.add("description", "description", f.Description)
		}
		e.options["type"] = types
		for _, p := range entity.Progresses() {
			e.options["progress"] = append(e.options["progress"], string(p))
		}
	case dashboard.KindGoal:
		e.add("goal", string(tier)+" goal", f.Title)
	case dashboard.KindHabit:
		e.add("habit", "habit", f.Title)
	}
	return e
}

func (e *editState) add(key, label, value string) {
	e.keys = append(e.keys, key)
	e.labels = append(e.labels, label)
	e.values = append(e.values, value)
}

func (e *editState) currentLabel() string {
	return e.labels[e.index]
}

func (e *editState) currentValue() string {
	return e.values[e.index]
}

func (e *editState) setCurrentValue(v string) {
	e.values[e.index] = v
}

func (e *editState) last() bool {
	return e.index >= len(e.keys)-1
}

func (e *editState) move(delta int) {
	e.index = wrapIndex(e.index+delta, len(e.keys))
}

// cycle steps the current field through its fixed options, if any.
func (e *editState) cycle(delta int) bool {
	opts := e.options[e.keys[e.index]]
	if len(opts) == 0 {
		return false
	}
	cur := -1
	for i, o := range opts {
		if strings.EqualFold(o, strings.TrimSpace(e.values[e.index])) {
			cur = i
			break
		}
	}
	if cur < 0 && delta < 0 {
		cur = 0
	}
	e.values[e.index] = opts[wrapIndex(cur+delta, len(opts))]
	return true
}

// focus moves to the field named by a validation error.
func (e *editState) focus(field string) {
	for i, k := range e.keys {
		if k == field || (field == "title" && i == 0) {
			e.index = i
			return
		}
	}
}

func (e *editState) fields() form.Fields {
	var f form.Fields
	for i, k := range e.keys {
		v := e.values[i]
		switch k {
		case "title", "goal", "habit":
			f.Title = v
		case "dueDate":
			f.DueDate = v
		case "type":
			f.Type = v
		case "progress":
			f.Progress = v
		case "description":
			f.Description = v
		}
	}
	return f
}

func (e *editState) heading() string {
	verb := "Add"
	if e.editing {
		verb = "Edit"
	}
	return fmt.Sprintf("%s %s", verb, e.kind)
}

func (e *editState) prompt() string {
	hint := ""
	if len(e.options[e.keys[e.index]]) > 0 {
		hint = ", up/down to pick"
	}
	return fmt.Sprintf("Editing %s (field %d of %d). Enter to advance, Esc to cancel, tab to move%s.",
		e.currentLabel(), e.index+1, len(e.keys), hint)
}

func (e *editState) render() string {
	var b strings.Builder
	for i, name := range e.labels {
		prefix := " "
		if i == e.index {
			prefix = ">"
		}
		val := e.values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-22s : %s\n", prefix, name, val))
	}
	return strings.TrimRight(b.String(), "\n")
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
