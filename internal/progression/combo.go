package progression

import (
	"sync"
	"time"
)

// ComboTracker chains completions across all habits in a session. Any
// accepted completion landing within the window of the previous one
// escalates the count; a gap resets it.
type ComboTracker struct {
	mu     sync.Mutex
	count  int
	lastAt time.Time
	seen   bool
}

func NewComboTracker() *ComboTracker {
	return &ComboTracker{}
}

// Observe registers an accepted completion at now and returns the combo
// count in effect for it plus whether the combo chained.
func (c *ComboTracker) Observe(now time.Time, window time.Duration) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active := c.seen && now.Sub(c.lastAt) < window
	if active {
		c.count++
	} else {
		c.count = 0
	}
	c.lastAt = now
	c.seen = true
	return c.count, active
}

// Reset clears the chain; undoing a completion semantically removes the
// event the combo was counting.
func (c *ComboTracker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
	c.seen = false
}

func (c *ComboTracker) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
