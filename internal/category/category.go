package category

import (
	"github.com/Egnoel/habitQuest/internal/config"
	"github.com/Egnoel/habitQuest/internal/habit"
)

type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func fromConfig(cs []config.Category) []Category {
	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, Category{Name: c.Name, Icon: c.Icon})
	}
	return out
}

// Progress is the per-category target attainment summary. Habits without
// a target streak belong to the category for display but are excluded
// from both numerator and denominator.
type Progress struct {
	Category
	WithTarget int     `json:"withTarget"`
	Reached    int     `json:"reached"`
	Ratio      float64 `json:"ratio"`
}

// Aggregate computes target progress per category. A category with no
// targeted habits reports 0, never NaN.
func Aggregate(cats []Category, habits []habit.Habit) []Progress {
	out := make([]Progress, 0, len(cats))
	for _, c := range cats {
		p := Progress{Category: c}
		for _, h := range habits {
			if h.Category != c.Name || h.TargetStreak <= 0 {
				continue
			}
			p.WithTarget++
			if h.Streak >= h.TargetStreak {
				p.Reached++
			}
		}
		if p.WithTarget > 0 {
			p.Ratio = float64(p.Reached) / float64(p.WithTarget)
		}
		out = append(out, p)
	}
	return out
}
