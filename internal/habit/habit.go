package habit

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayFormat is the calendar-day identifier used for streaks and history.
// There is deliberately no time-of-day component.
const DayFormat = "2006-01-02"

type Habit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`

	Streak        int      `json:"streak"`
	LastCompleted *string  `json:"lastCompleted,omitempty"`
	History       []string `json:"history"`
	XP            int      `json:"xp"`

	TargetStreak int  `json:"targetStreak,omitempty"`
	IsPaused     bool `json:"isPaused"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(name, description, category, icon string, targetStreak int) Habit {
	now := time.Now()
	return Habit{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		Category:     category,
		Icon:         icon,
		Streak:       0,
		History:      []string{},
		XP:           0,
		TargetStreak: targetStreak,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (h *Habit) touch() {
	h.UpdatedAt = time.Now()
}

// DoneOn reports whether the habit's most recent completion landed on day.
func (h *Habit) DoneOn(day string) bool {
	return h.LastCompleted != nil && *h.LastCompleted == day
}

// CompletedOn reports whether day appears anywhere in the habit's history.
func (h *Habit) CompletedOn(day string) bool {
	for _, d := range h.History {
		if d == day {
			return true
		}
	}
	return false
}

// TargetReached is derived, never stored.
func (h *Habit) TargetReached() bool {
	return h.TargetStreak > 0 && h.Streak >= h.TargetStreak
}

// MarkCompleted records a completion on day. The same-day guard lives in
// the progression engine; History stays duplicate-free because of it.
func (h *Habit) MarkCompleted(day string, newStreak, xpGained int) {
	d := day
	h.LastCompleted = &d
	h.History = append(h.History, day)
	h.Streak = newStreak
	h.XP += xpGained
	h.touch()
}

// Clone returns a structural copy with no shared substructure.
func (h Habit) Clone() Habit {
	out := h
	if h.LastCompleted != nil {
		d := *h.LastCompleted
		out.LastCompleted = &d
	}
	out.History = append([]string{}, h.History...)
	return out
}

// CloneAll deep-copies a habit collection for snapshotting.
func CloneAll(hs []Habit) []Habit {
	out := make([]Habit, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.Clone())
	}
	return out
}

// SortKey values accepted by Sort.
const (
	SortByName   = "name"
	SortByStreak = "streak"
	SortByXP     = "xp"
)

// Sort orders habits for listing: paused habits always sink to the end,
// then the requested key applies within each group.
func Sort(hs []Habit, by string) {
	sort.SliceStable(hs, func(i, j int) bool {
		a, b := hs[i], hs[j]
		if a.IsPaused != b.IsPaused {
			return !a.IsPaused
		}
		switch by {
		case SortByStreak:
			return a.Streak > b.Streak
		case SortByXP:
			return a.XP > b.XP
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default:
			return false
		}
	})
}

// FilterCategory returns the habits belonging to category, or all of them
// when category is empty or "All".
func FilterCategory(hs []Habit, category string) []Habit {
	if category == "" || category == "All" {
		return hs
	}
	out := make([]Habit, 0, len(hs))
	for _, h := range hs {
		if h.Category == category {
			out = append(out, h)
		}
	}
	return out
}
