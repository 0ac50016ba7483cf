package progression

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Egnoel/habitQuest/internal/config"
	"github.com/Egnoel/habitQuest/internal/habit"
	"github.com/Egnoel/habitQuest/internal/user"
)

// UserRepo is the progression-state store the engine writes through.
type UserRepo interface {
	Get() (user.State, error)
	Put(user.State) error
}

// TipFetcher is the motivational-tip collaborator. Implementations never
// return an error; on failure they hand back a fixed fallback string.
type TipFetcher interface {
	Tip(ctx context.Context, habitName string, streak int) string
}

// Decline reasons for a completion that was not applied. These are
// ordinary outcomes, not errors: the UI calls complete opportunistically.
const (
	ReasonNotFound  = "not_found"
	ReasonPaused    = "paused"
	ReasonDoneToday = "already_done_today"
)

type Engine struct {
	// mu serializes the complete/undo transactions. The repos lock their
	// own state, but the transaction spans several reads and writes and
	// must not interleave with another one.
	mu sync.Mutex

	Habits habit.Repo
	Users  UserRepo
	Combo  *ComboTracker
	Undo   *Ledger
	Ranks  RankTable
	Clock  Clock
	Tuning config.Progression
	Logger *zap.SugaredLogger

	// Tips is optional; when set, an accepted completion dispatches a
	// fire-and-forget fetch whose result is delivered through OnTip.
	Tips  TipFetcher
	OnTip func(tip string)
}

type CompleteResult struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`

	Habit habit.Habit `json:"habit"`
	User  user.State  `json:"user"`

	Streak        int   `json:"streak"`
	StreakReset   bool  `json:"streakReset"`
	Award         Award `json:"award"`
	ComboCount    int   `json:"comboCount"`
	ComboActive   bool  `json:"comboActive"`
	LeveledUp     bool  `json:"leveledUp"`
	TargetReached bool  `json:"targetReached"`

	Rank          string           `json:"rank"`
	NextMilestone *config.RankTier `json:"nextMilestone,omitempty"`
}

// CompleteHabit runs one check-in end to end: streak transition, XP
// award, leveling, combo escalation and undo snapshot. Paused habits,
// unknown ids and same-day repeats decline with Applied=false.
// Concurrent calls serialize; each transaction runs to completion
// before the next begins.
func (e *Engine) CompleteHabit(ctx context.Context, id string) (CompleteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, err := e.Habits.Get(id)
	if err == habit.ErrNotFound {
		return CompleteResult{Reason: ReasonNotFound}, nil
	}
	if err != nil {
		return CompleteResult{}, err
	}
	if h.IsPaused {
		return CompleteResult{Reason: ReasonPaused, Habit: h}, nil
	}

	today := e.Clock.Today()
	streak := NextStreak(h, today)
	if !streak.Counted {
		return CompleteResult{Reason: ReasonDoneToday, Habit: h}, nil
	}

	// Snapshot before any mutation so undo can restore verbatim.
	all, err := e.Habits.List()
	if err != nil {
		return CompleteResult{}, err
	}
	u, err := e.Users.Get()
	if err != nil {
		return CompleteResult{}, err
	}
	now := e.Clock.Now()
	e.Undo.Record(h.ID, all, u, now)

	comboWindow := time.Duration(e.Tuning.ComboWindowMS) * time.Millisecond
	comboCount, comboActive := e.Combo.Observe(now, comboWindow)

	award := ComputeAward(e.Tuning, streak.NewStreak, comboCount)

	h.MarkCompleted(today, streak.NewStreak, award.Total)
	if _, err := e.Habits.Update(h); err != nil {
		return CompleteResult{}, err
	}

	newUser, leveledUp := ApplyXP(u, award.Total, e.Tuning.XPPerLevel)
	if err := e.Users.Put(newUser); err != nil {
		return CompleteResult{}, err
	}

	res := CompleteResult{
		Applied:       true,
		Habit:         h,
		User:          newUser,
		Streak:        streak.NewStreak,
		StreakReset:   !streak.Continued,
		Award:         award,
		ComboCount:    comboCount,
		ComboActive:   comboActive,
		LeveledUp:     leveledUp,
		TargetReached: h.TargetReached(),
		Rank:          e.Ranks.RankOf(streak.NewStreak).Name,
	}
	if next, ok := e.Ranks.NextMilestone(streak.NewStreak); ok {
		res.NextMilestone = &next
	}

	if e.Logger != nil {
		e.Logger.Infow("habit completed",
			"habit", h.ID,
			"streak", streak.NewStreak,
			"xp_gained", award.Total,
			"combo", comboCount,
			"leveled_up", leveledUp,
		)
	}

	e.dispatchTip(h.Name, streak.NewStreak)

	return res, nil
}

// dispatchTip fires the motivational-tip fetch after state is committed.
// The result only ever touches a display field; a stale response
// arriving late simply overwrites the previous one.
func (e *Engine) dispatchTip(habitName string, streak int) {
	if e.Tips == nil || e.OnTip == nil {
		return
	}
	fetch := e.Tips
	deliver := e.OnTip
	go func() {
		deliver(fetch.Tip(context.Background(), habitName, streak))
	}()
}

// UndoLast restores the snapshot taken before the most recent completion
// and resets the combo chain. With nothing pending it is a no-op.
func (e *Engine) UndoLast(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, ok := e.Undo.Take()
	if !ok {
		return false, nil
	}
	if err := e.Habits.ReplaceAll(snap.PreviousHabits); err != nil {
		return false, err
	}
	if err := e.Users.Put(snap.PreviousUser); err != nil {
		return false, err
	}
	e.Combo.Reset()
	if e.Logger != nil {
		e.Logger.Infow("completion undone", "habit", snap.HabitID)
	}
	return true, nil
}
