package progression

import (
	"time"

	"github.com/Egnoel/habitQuest/internal/habit"
)

type StreakResult struct {
	// Counted is false when the habit was already completed today.
	Counted   bool
	NewStreak int
	// Continued is true when the completion extended an unbroken run
	// (or started the very first one); false when the streak reset to 1.
	Continued bool
}

// NextStreak computes the streak transition for completing h on today.
// Idempotent per calendar day: a second completion on the same day is
// reported as not counted and leaves the streak untouched.
func NextStreak(h habit.Habit, today string) StreakResult {
	if h.DoneOn(today) {
		return StreakResult{Counted: false, NewStreak: h.Streak}
	}

	if h.LastCompleted == nil || *h.LastCompleted == yesterdayOf(today) {
		return StreakResult{Counted: true, NewStreak: h.Streak + 1, Continued: true}
	}

	// A gap of two or more days: the completion still counts as day one
	// of a new streak.
	return StreakResult{Counted: true, NewStreak: 1}
}

func yesterdayOf(day string) string {
	t, err := time.Parse(habit.DayFormat, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(habit.DayFormat)
}
