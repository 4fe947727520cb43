package entity

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// GoalBoard owns the tiered goals document. Each tier is an independent
// ordered sequence.
type GoalBoard struct {
	doc *Document[Goals]
	log *log.Logger
}

func NewGoalBoard(b Backend, logger *log.Logger) *GoalBoard {
	logger = orDiscard(logger)
	return &GoalBoard{
		doc: NewDocument(b, KeyGoals, goalsSchema, NewGoals, logger),
		log: logger.With("key", KeyGoals),
	}
}

// Load returns all five tiers, empty ones included.
func (g *GoalBoard) Load() (Goals, error) {
	goals, err := g.doc.Load()
	if err != nil {
		return NewGoals(), err
	}
	assigned := false
	for _, t := range Tiers() {
		if goals[t] == nil {
			goals[t] = []Goal{}
		}
		for i := range goals[t] {
			if goals[t][i].ID == "" {
				goals[t][i].ID = NewID()
				assigned = true
			}
		}
	}
	if assigned {
		g.log.Info("assigned ids to legacy goals")
		if err := g.doc.Persist(goals); err != nil {
			return goals, err
		}
	}
	return goals, nil
}

func (g *GoalBoard) Persist(goals Goals) error {
	return g.doc.Persist(goals)
}

func (g *GoalBoard) Add(tier Tier, text string) (Goals, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrBlank
	}
	return g.mutate(tier, "add", func(list []Goal) ([]Goal, error) {
		return append(list, Goal{ID: NewID(), Text: text}), nil
	})
}

// Toggle flips the completed flag of the goal with id.
func (g *GoalBoard) Toggle(tier Tier, id string) (Goals, error) {
	return g.mutate(tier, "toggle", func(list []Goal) ([]Goal, error) {
		i := goalIndex(list, id)
		if i == None {
			return nil, unknownID(id)
		}
		list[i].Completed = !list[i].Completed
		return list, nil
	})
}

func (g *GoalBoard) ToggleAt(tier Tier, index int) (Goals, error) {
	return g.mutate(tier, "toggle", func(list []Goal) ([]Goal, error) {
		if index < 0 || index >= len(list) {
			return nil, outOfRange(index, len(list))
		}
		list[index].Completed = !list[index].Completed
		return list, nil
	})
}

func (g *GoalBoard) Remove(tier Tier, id string) (Goals, error) {
	return g.mutate(tier, "remove", func(list []Goal) ([]Goal, error) {
		i := goalIndex(list, id)
		if i == None {
			return nil, unknownID(id)
		}
		return append(list[:i], list[i+1:]...), nil
	})
}

func (g *GoalBoard) RemoveAt(tier Tier, index int) (Goals, error) {
	return g.mutate(tier, "remove", func(list []Goal) ([]Goal, error) {
		if index < 0 || index >= len(list) {
			return nil, outOfRange(index, len(list))
		}
		return append(list[:index], list[index+1:]...), nil
	})
}

func (g *GoalBoard) mutate(tier Tier, op string, fn func([]Goal) ([]Goal, error)) (Goals, error) {
	parsed, ok := ParseTier(string(tier))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	tier = parsed
	goals, err := g.Load()
	if err != nil {
		return nil, err
	}
	list, err := fn(goals[tier])
	if err != nil {
		return nil, err
	}
	goals[tier] = list
	if err := g.doc.Persist(goals); err != nil {
		return nil, err
	}
	g.log.Debug("persisted", "op", op, "tier", tier, "len", len(list))
	return goals, nil
}

func goalIndex(list []Goal, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return None
}
