package progression

import (
	"sync"
	"time"

	"github.com/Egnoel/habitQuest/internal/habit"
	"github.com/Egnoel/habitQuest/internal/user"
)

// Snapshot is a full deep copy of the mutable session state taken
// immediately before a completion, so undo restores an exact prior
// state instead of recomputing one.
type Snapshot struct {
	HabitID        string
	PreviousHabits []habit.Habit
	PreviousUser   user.State
	TakenAt        time.Time
}

// Ledger holds at most one pending snapshot. Recording a new one
// supersedes the previous and re-arms the expiry timer; expiry discards
// the snapshot with no state change.
type Ledger struct {
	mu      sync.Mutex
	window  time.Duration
	pending *Snapshot
	timer   *time.Timer
}

func NewLedger(window time.Duration) *Ledger {
	return &Ledger{window: window}
}

func (l *Ledger) Record(habitID string, habits []habit.Habit, u user.State, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timer != nil {
		l.timer.Stop()
	}
	l.pending = &Snapshot{
		HabitID:        habitID,
		PreviousHabits: habit.CloneAll(habits),
		PreviousUser:   u,
		TakenAt:        now,
	}
	l.timer = time.AfterFunc(l.window, l.expire)
}

func (l *Ledger) expire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = nil
	l.timer = nil
}

// Take removes and returns the pending snapshot, cancelling its expiry.
// The second return is false when nothing is pending.
func (l *Ledger) Take() (Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pending == nil {
		return Snapshot{}, false
	}
	snap := *l.pending
	l.pending = nil
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	return snap, true
}

// Discard drops the pending snapshot without restoring anything
// (the user dismissed the undo prompt).
func (l *Ledger) Discard() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = nil
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// Pending reports the habit the outstanding snapshot would revert.
func (l *Ledger) Pending() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil {
		return "", false
	}
	return l.pending.HabitID, true
}
