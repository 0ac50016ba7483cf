package habit

import (
	"testing"
)

func TestNew_StartsEmpty(t *testing.T) {
	h := New("Ler", "10 páginas", "Aprendizado", "📚", 21)

	if h.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if h.Streak != 0 || h.XP != 0 || h.LastCompleted != nil || h.IsPaused {
		t.Fatalf("new habit must start at zero: %+v", h)
	}
	if h.History == nil || len(h.History) != 0 {
		t.Fatalf("expected empty (non-nil) history")
	}
	if h.TargetStreak != 21 {
		t.Fatalf("expected target streak 21, got %d", h.TargetStreak)
	}
}

func TestTargetReached(t *testing.T) {
	h := Habit{Streak: 21, TargetStreak: 21}
	if !h.TargetReached() {
		t.Fatalf("streak at target must report reached")
	}

	h = Habit{Streak: 100, TargetStreak: 0}
	if h.TargetReached() {
		t.Fatalf("habit without a target never reports reached")
	}
}

func TestClone_NoSharedSubstructure(t *testing.T) {
	day := "2026-02-06"
	orig := Habit{ID: "a", LastCompleted: &day, History: []string{"2026-02-05", day}}

	c := orig.Clone()
	c.History[0] = "mutated"
	*c.LastCompleted = "mutated"

	if orig.History[0] != "2026-02-05" {
		t.Fatalf("clone aliased history")
	}
	if *orig.LastCompleted != day {
		t.Fatalf("clone aliased lastCompleted")
	}
}

func TestSort_PausedSinkLast(t *testing.T) {
	hs := []Habit{
		{Name: "b", IsPaused: true, Streak: 100},
		{Name: "a", Streak: 1},
		{Name: "c", Streak: 5},
	}

	Sort(hs, SortByStreak)

	if hs[0].Name != "c" || hs[1].Name != "a" {
		t.Fatalf("expected active habits by streak first, got %v %v", hs[0].Name, hs[1].Name)
	}
	if !hs[2].IsPaused {
		t.Fatalf("paused habit must sort last even with the highest streak")
	}
}

func TestSort_ByName(t *testing.T) {
	hs := []Habit{{Name: "Zumba"}, {Name: "aqua"}, {Name: "Meditar"}}

	Sort(hs, SortByName)

	if hs[0].Name != "aqua" || hs[1].Name != "Meditar" || hs[2].Name != "Zumba" {
		t.Fatalf("expected case-insensitive name order, got %+v", hs)
	}
}

func TestFilterCategory(t *testing.T) {
	hs := []Habit{{ID: "1", Category: "Saúde"}, {ID: "2", Category: "Fitness"}}

	if got := FilterCategory(hs, "All"); len(got) != 2 {
		t.Fatalf("All must pass everything through")
	}
	got := FilterCategory(hs, "Fitness")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestMarkCompleted(t *testing.T) {
	h := New("Ler", "", "Aprendizado", "📚", 0)

	h.MarkCompleted("2026-02-07", 1, 101)

	if h.Streak != 1 || h.XP != 101 {
		t.Fatalf("unexpected habit after completion: %+v", h)
	}
	if !h.DoneOn("2026-02-07") || !h.CompletedOn("2026-02-07") {
		t.Fatalf("completion day not recorded")
	}
}
