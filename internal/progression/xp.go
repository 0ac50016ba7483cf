package progression

import (
	"math"

	"github.com/Egnoel/habitQuest/internal/config"
	"github.com/Egnoel/habitQuest/internal/user"
)

// Award is the XP breakdown for one accepted completion.
type Award struct {
	Base        int `json:"base"`
	StreakBonus int `json:"streakBonus"`
	ComboBonus  int `json:"comboBonus"`
	Total       int `json:"total"`
}

// ComputeAward prices a completion. Bonuses use floor math so awarded XP
// is reproducible from integer inputs.
func ComputeAward(t config.Progression, newStreak, comboCount int) Award {
	a := Award{
		Base:        t.XPPerCheckin,
		StreakBonus: int(math.Floor(float64(newStreak) * t.StreakBonusMultiplier)),
		ComboBonus:  comboCount * t.ComboUnitBonus,
	}
	a.Total = a.Base + a.StreakBonus + a.ComboBonus
	return a
}

// ApplyXP folds gained XP into the user state. The while-loop carries
// remainders across level boundaries, so one large award can jump
// several levels. TotalXP always moves with XP, never independently.
func ApplyXP(s user.State, gained, xpPerLevel int) (user.State, bool) {
	leveledUp := false
	newXP := s.XP + gained
	for newXP >= xpPerLevel {
		newXP -= xpPerLevel
		s.Level++
		leveledUp = true
	}
	s.XP = newXP
	s.TotalXP += gained
	return s, leveledUp
}
