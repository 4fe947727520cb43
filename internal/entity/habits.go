package entity

import (
	"strings"

	"github.com/charmbracelet/log"
)

// HabitList stores habits as plain strings; identity is positional.
type HabitList struct {
	*Collection[string]
}

func NewHabitList(b Backend, logger *log.Logger) *HabitList {
	return &HabitList{Collection: NewCollection[string](b, KeyHabits, habitsSchema, nil, logger)}
}

func (h *HabitList) Add(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrBlank
	}
	return h.Upsert(text, None)
}

func (h *HabitList) Rename(index int, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrBlank
	}
	return h.Upsert(text, index)
}
