package habit

import "errors"

var ErrNotFound = errors.New("habit not found")

// Patch represents a partial inline edit.
// nil pointer => "no change".
type Patch struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	Icon         *string `json:"icon,omitempty"`
	TargetStreak *int    `json:"targetStreak,omitempty"`
	IsPaused     *bool   `json:"isPaused,omitempty"`
}

func (p Patch) applyTo(h *Habit) {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Category != nil {
		h.Category = *p.Category
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.TargetStreak != nil {
		h.TargetStreak = *p.TargetStreak
	}
	if p.IsPaused != nil {
		h.IsPaused = *p.IsPaused
	}
	h.touch()
}

// Repo is the habit record store. Implementations persist the whole
// collection after every mutation; readers always get copies.
type Repo interface {
	Create(h Habit) (Habit, error)
	Get(id string) (Habit, error)
	List() ([]Habit, error)
	Update(h Habit) (Habit, error)
	ApplyPatch(id string, p Patch) (Habit, error)
	Delete(id string) error

	// ReplaceAll swaps the entire collection verbatim. Undo restores
	// snapshots through this, never through a reverse computation.
	ReplaceAll(hs []Habit) error
}
