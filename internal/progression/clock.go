package progression

import (
	"sync"
	"time"

	"github.com/Egnoel/habitQuest/internal/habit"
)

// Clock supplies wall-clock instants for combo/undo timing and the
// calendar-day identifier used by streak logic.
type Clock interface {
	Now() time.Time
	Today() string
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) Today() string { return time.Now().Format(habit.DayFormat) }

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Today() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.Format(habit.DayFormat)
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
