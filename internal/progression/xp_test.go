package progression

import (
	"testing"

	"github.com/Egnoel/habitQuest/internal/config"
	"github.com/Egnoel/habitQuest/internal/user"
)

func tuning() config.Progression {
	return config.Default().Progression
}

func TestComputeAward_FloorsStreakBonus(t *testing.T) {
	cases := []struct {
		streak int
		combo  int
		total  int
	}{
		{streak: 1, combo: 0, total: 100 + 1},   // floor(1*1.1)=1
		{streak: 3, combo: 0, total: 100 + 3},   // floor(3.3)=3
		{streak: 10, combo: 0, total: 100 + 11}, // floor(11.0)=11
		{streak: 19, combo: 0, total: 100 + 20}, // floor(20.9)=20
		{streak: 1, combo: 2, total: 100 + 1 + 100},
	}
	for _, c := range cases {
		a := ComputeAward(tuning(), c.streak, c.combo)
		if a.Total != c.total {
			t.Fatalf("streak=%d combo=%d: expected total %d, got %d", c.streak, c.combo, c.total, a.Total)
		}
		if a.Total < tuning().XPPerCheckin {
			t.Fatalf("award can never drop below the base check-in value")
		}
	}
}

func TestApplyXP_CarriesRemainder(t *testing.T) {
	s := user.State{XP: 950, Level: 1, TotalXP: 950}

	out, leveledUp := ApplyXP(s, 120, 1000)

	if !leveledUp {
		t.Fatalf("expected a level-up")
	}
	if out.Level != 2 || out.XP != 70 {
		t.Fatalf("expected level 2 with 70 xp, got level %d xp %d", out.Level, out.XP)
	}
	if out.TotalXP != 1070 {
		t.Fatalf("expected totalXp 1070, got %d", out.TotalXP)
	}
}

func TestApplyXP_MultiLevelJump(t *testing.T) {
	s := user.State{XP: 0, Level: 1, TotalXP: 0}

	out, leveledUp := ApplyXP(s, 3250, 1000)

	if !leveledUp || out.Level != 4 {
		t.Fatalf("expected jump to level 4, got %d", out.Level)
	}
	if out.XP != 250 {
		t.Fatalf("expected 250 xp remainder, got %d", out.XP)
	}
	if out.TotalXP != 3250 {
		t.Fatalf("totalXp must equal the full gain, got %d", out.TotalXP)
	}
}

func TestApplyXP_NoLevelUpBelowThreshold(t *testing.T) {
	s := user.State{XP: 100, Level: 3, TotalXP: 2100}

	out, leveledUp := ApplyXP(s, 101, 1000)

	if leveledUp {
		t.Fatalf("did not expect a level-up")
	}
	if out.Level != 3 || out.XP != 201 || out.TotalXP != 2201 {
		t.Fatalf("unexpected state: %+v", out)
	}
	if out.XP < 0 || out.XP >= 1000 {
		t.Fatalf("xp remainder out of range: %d", out.XP)
	}
}
