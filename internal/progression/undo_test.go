package progression

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/Egnoel/habitQuest/internal/habit"
	"github.com/Egnoel/habitQuest/internal/user"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func snapshotFixture() ([]habit.Habit, user.State) {
	day := "2026-02-06"
	return []habit.Habit{
		{ID: "a", Name: "Ler", Streak: 4, LastCompleted: &day, History: []string{"2026-02-05", day}, XP: 420},
	}, user.State{Username: "tester", XP: 300, Level: 2, TotalXP: 1300}
}

func TestLedger_TakeReturnsDeepCopy(t *testing.T) {
	l := NewLedger(time.Minute)
	habits, u := snapshotFixture()

	l.Record("a", habits, u, time.Now())

	// Mutating the live slice after recording must not leak into the
	// snapshot; that aliasing is the bug class undo exists to prevent.
	habits[0].Streak = 99
	habits[0].History[0] = "mutated"

	snap, ok := l.Take()
	if !ok {
		t.Fatalf("expected a pending snapshot")
	}
	if snap.PreviousHabits[0].Streak != 4 {
		t.Fatalf("snapshot aliased live streak: %d", snap.PreviousHabits[0].Streak)
	}
	if snap.PreviousHabits[0].History[0] != "2026-02-05" {
		t.Fatalf("snapshot aliased live history: %v", snap.PreviousHabits[0].History)
	}
	if snap.PreviousUser != (user.State{Username: "tester", XP: 300, Level: 2, TotalXP: 1300}) {
		t.Fatalf("unexpected user snapshot: %+v", snap.PreviousUser)
	}

	if _, ok := l.Take(); ok {
		t.Fatalf("take must clear the pending snapshot")
	}
}

func TestLedger_NewRecordSupersedesPrevious(t *testing.T) {
	l := NewLedger(time.Minute)
	habits, u := snapshotFixture()

	l.Record("a", habits, u, time.Now())
	l.Record("b", habits, u, time.Now())

	snap, ok := l.Take()
	if !ok || snap.HabitID != "b" {
		t.Fatalf("expected the later snapshot to win, got %+v ok=%v", snap, ok)
	}
}

func TestLedger_ExpiryDiscardsPending(t *testing.T) {
	l := NewLedger(20 * time.Millisecond)
	habits, u := snapshotFixture()

	l.Record("a", habits, u, time.Now())

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := l.Pending(); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("pending snapshot never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, ok := l.Take(); ok {
		t.Fatalf("expired snapshot must not be restorable")
	}
}

func TestLedger_DiscardIsIdempotent(t *testing.T) {
	l := NewLedger(time.Minute)
	habits, u := snapshotFixture()

	l.Discard() // nothing pending: no-op
	l.Record("a", habits, u, time.Now())
	l.Discard()
	l.Discard()

	if _, ok := l.Take(); ok {
		t.Fatalf("discarded snapshot must be gone")
	}
}
