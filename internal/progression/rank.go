package progression

import "github.com/Egnoel/habitQuest/internal/config"

// RankTable resolves streak lengths against an ascending threshold list.
// The table always starts at a zero-day tier, so every non-negative
// streak has a defined rank.
type RankTable struct {
	tiers []config.RankTier
}

func NewRankTable(tiers []config.RankTier) RankTable {
	return RankTable{tiers: tiers}
}

// RankOf returns the tier with the highest threshold not exceeding
// streak. An empty table yields the zero tier.
func (t RankTable) RankOf(streak int) config.RankTier {
	if len(t.tiers) == 0 {
		return config.RankTier{}
	}
	cur := t.tiers[0]
	for _, tier := range t.tiers {
		if streak >= tier.Days {
			cur = tier
		} else {
			break
		}
	}
	return cur
}

// NextMilestone returns the first tier above streak, or false when the
// streak already clears every threshold.
func (t RankTable) NextMilestone(streak int) (config.RankTier, bool) {
	for _, tier := range t.tiers {
		if tier.Days > streak {
			return tier, true
		}
	}
	return config.RankTier{}, false
}

// Tiers exposes the table for display listings.
func (t RankTable) Tiers() []config.RankTier {
	out := make([]config.RankTier, len(t.tiers))
	copy(out, t.tiers)
	return out
}
