package stats

import (
	"time"

	"github.com/Egnoel/habitQuest/internal/habit"
)

// DayStat summarizes one calendar day of check-in activity.
type DayStat struct {
	Day          string `json:"day"`
	XP           int    `json:"xp"`
	Completed    int    `json:"completed"`
	AllCompleted bool   `json:"allCompleted"`
}

// XPByDay walks the trailing window of calendar days (oldest first) and
// prices each day's completions at the flat check-in rate. AllCompleted
// holds when every non-paused habit checked in that day; paused habits
// are excluded from the denominator.
func XPByDay(habits []habit.Habit, today string, days, xpPerCheckin int) []DayStat {
	anchor, err := time.Parse(habit.DayFormat, today)
	if err != nil {
		return nil
	}

	active := 0
	for _, h := range habits {
		if !h.IsPaused {
			active++
		}
	}

	out := make([]DayStat, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := anchor.AddDate(0, 0, -i).Format(habit.DayFormat)
		stat := DayStat{Day: day}
		for _, h := range habits {
			if h.CompletedOn(day) {
				stat.XP += xpPerCheckin
				stat.Completed++
			}
		}
		stat.AllCompleted = active > 0 && stat.Completed >= active
		out = append(out, stat)
	}
	return out
}

// MovingAverage returns the cumulative mean of the per-day XP series.
func MovingAverage(series []DayStat) []float64 {
	out := make([]float64, 0, len(series))
	sum := 0
	for i, s := range series {
		sum += s.XP
		out = append(out, float64(sum)/float64(i+1))
	}
	return out
}
