package entity

import (
	"errors"
	"strings"
	"testing"

	"lockin/internal/storage"
)

func TestGoalToggleIsReversible(t *testing.T) {
	b := NewGoalBoard(storage.NewMemory(), nil)
	goals, err := b.Add(TierWeekly, "Run 5k")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(goals[TierWeekly]) != 1 {
		t.Fatalf("weekly len: %d", len(goals[TierWeekly]))
	}

	want := []bool{true, false, true}
	for i, w := range want {
		goals, err = b.ToggleAt(TierWeekly, 0)
		if err != nil {
			t.Fatalf("ToggleAt #%d: %v", i, err)
		}
		if goals[TierWeekly][0].Completed != w {
			t.Errorf("toggle #%d: got %v, want %v", i, goals[TierWeekly][0].Completed, w)
		}
	}

	id := goals[TierWeekly][0].ID
	goals, _ = b.Toggle(TierWeekly, id)
	if goals[TierWeekly][0].Completed {
		t.Error("toggle by id should flip back to false")
	}
}

func TestGoalBoardLoadHasAllTiers(t *testing.T) {
	mem := storage.NewMemory()
	_ = mem.Set(KeyGoals, `{"daily":[{"text":"stretch","completed":true}]}`)
	goals, err := NewGoalBoard(mem, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, tier := range Tiers() {
		if goals[tier] == nil {
			t.Errorf("tier %s missing", tier)
		}
	}
	if len(goals[TierDaily]) != 1 || goals[TierDaily][0].ID == "" {
		t.Errorf("daily: %+v", goals[TierDaily])
	}
}

func TestGoalBoardRejectsUnknownTierDocument(t *testing.T) {
	mem := storage.NewMemory()
	_ = mem.Set(KeyGoals, `{"yearly":[{"text":"x"}]}`)
	goals, err := NewGoalBoard(mem, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(goals.All()) != 0 {
		t.Errorf("expected empty board, got %+v", goals)
	}
}

func TestGoalBoardErrors(t *testing.T) {
	b := NewGoalBoard(storage.NewMemory(), nil)
	if _, err := b.Add("yearly", "x"); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("unknown tier: %v", err)
	}
	if _, err := b.Add(TierDaily, "   "); !errors.Is(err, ErrBlank) {
		t.Errorf("blank: %v", err)
	}
	if _, err := b.RemoveAt(TierDaily, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("remove empty: %v", err)
	}
	if _, err := b.Toggle(TierDaily, "missing"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("toggle missing: %v", err)
	}
}

func TestGoalRemove(t *testing.T) {
	b := NewGoalBoard(storage.NewMemory(), nil)
	b.Add(TierMonthly, "a")
	goals, _ := b.Add(TierMonthly, "b")
	goals, err := b.Remove(TierMonthly, goals[TierMonthly][0].ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(goals[TierMonthly]) != 1 || goals[TierMonthly][0].Text != "b" {
		t.Errorf("monthly: %+v", goals[TierMonthly])
	}
}

func TestHabits(t *testing.T) {
	mem := storage.NewMemory()
	h := NewHabitList(mem, nil)
	h.Add("read")
	h.Add(" water ")
	habits, err := h.Rename(0, "read 20 pages")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if habits[0] != "read 20 pages" || habits[1] != "water" {
		t.Errorf("habits: %v", habits)
	}
	raw, _, _ := mem.Get(KeyHabits)
	if raw != `["read 20 pages","water"]` {
		t.Errorf("wire format: %s", raw)
	}
	if _, err := h.Rename(0, ""); !errors.Is(err, ErrBlank) {
		t.Errorf("blank rename: %v", err)
	}
	if _, err := h.Remove(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("remove: %v", err)
	}
}

func TestTierHelpers(t *testing.T) {
	if tier, ok := ParseTier(" Weekly "); !ok || tier != TierWeekly {
		t.Errorf("ParseTier: %q %v", tier, ok)
	}
	if TierQuarterly.Label() != "Quarterly" {
		t.Errorf("Label: %q", TierQuarterly.Label())
	}
}

func TestGoalTierNameIsNormalized(t *testing.T) {
	mem := storage.NewMemory()
	b := NewGoalBoard(mem, nil)
	if _, err := b.Add(TierAnnual, "Keep me"); err != nil {
		t.Fatalf("Add annual: %v", err)
	}
	for _, tier := range []Tier{"Weekly", " WEEKLY "} {
		if _, err := b.Add(tier, "Run 5k"); err != nil {
			t.Fatalf("Add(%q): %v", tier, err)
		}
	}

	raw, _, _ := mem.Get(KeyGoals)
	if strings.Contains(raw, "Weekly") || strings.Contains(raw, "WEEKLY") {
		t.Fatalf("raw tier name persisted: %s", raw)
	}
	goals, err := NewGoalBoard(mem, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(goals) != len(Tiers()) {
		t.Errorf("tiers: %d", len(goals))
	}
	if len(goals[TierAnnual]) != 1 || len(goals[TierWeekly]) != 2 {
		t.Errorf("annual=%d weekly=%d", len(goals[TierAnnual]), len(goals[TierWeekly]))
	}
}
