// Package entity holds the dashboard records and the stores that own
// their persisted collections.
package entity

import (
	"strings"
	"time"
)

// Storage keys. External readers use the same keys.
const (
	KeyTasks  = "tasks"
	KeyNotes  = "notes"
	KeyGoals  = "allGoals"
	KeyHabits = "habits"
)

const (
	DateLayout  = "2006-01-02"
	DefaultType = "Reminder"
)

type Progress string

const (
	ProgressNotStarted Progress = "Not Started"
	ProgressInProgress Progress = "In Progress"
	ProgressCompleted  Progress = "Completed"
)

func Progresses() []Progress {
	return []Progress{ProgressNotStarted, ProgressInProgress, ProgressCompleted}
}

// Task is a planner entry. Completed is the soft-delete flag; completed
// tasks move to the archive but still count in statistics.
type Task struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	DueDate       string   `json:"dueDate,omitempty"`
	Type          string   `json:"type,omitempty"`
	Progress      Progress `json:"progress"`
	Completed     bool     `json:"completed"`
	CompletedDate *string  `json:"completedDate"`
}

// Normalize keeps Completed and Progress in lockstep. Either signal
// marks the task complete.
func (t *Task) Normalize(today string) {
	if t.Progress == "" {
		t.Progress = ProgressNotStarted
	}
	if t.Progress == ProgressCompleted {
		t.Completed = true
	}
	if !t.Completed {
		t.CompletedDate = nil
		return
	}
	t.Progress = ProgressCompleted
	if t.CompletedDate == nil || *t.CompletedDate == "" {
		d := today
		t.CompletedDate = &d
	}
}

func (t Task) Due() (time.Time, bool) {
	return ParseDate(t.DueDate)
}

type Note struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	DueDate     string   `json:"dueDate,omitempty"`
	Type        string   `json:"type,omitempty"`
	Progress    Progress `json:"progress"`
	Description string   `json:"description"`
}

type Goal struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Tier is one of the five fixed goal horizons.
type Tier string

const (
	TierAnnual    Tier = "annual"
	TierQuarterly Tier = "quarterly"
	TierMonthly   Tier = "monthly"
	TierWeekly    Tier = "weekly"
	TierDaily     Tier = "daily"
)

// Tiers returns the tiers from the longest horizon to the shortest.
func Tiers() []Tier {
	return []Tier{TierAnnual, TierQuarterly, TierMonthly, TierWeekly, TierDaily}
}

func ParseTier(s string) (Tier, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tiers() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Label is the capitalized tier name.
func (t Tier) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Goals maps every tier to its ordered goals.
type Goals map[Tier][]Goal

func NewGoals() Goals {
	g := make(Goals, len(Tiers()))
	for _, t := range Tiers() {
		g[t] = []Goal{}
	}
	return g
}

// All flattens the goals in tier order.
func (g Goals) All() []Goal {
	var out []Goal
	for _, t := range Tiers() {
		out = append(out, g[t]...)
	}
	return out
}

func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
