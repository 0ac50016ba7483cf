package user

// State is the singleton progression record for the acting user.
// XP is progress within the current level; TotalXP is the lifetime sum
// and runs independently of the level/xp pair.
type State struct {
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
	TotalXP  int    `json:"totalXp"`
}

func DefaultState() State {
	return State{
		Username: "Guerreiro do Hábito",
		XP:       0,
		Level:    1,
		TotalXP:  0,
	}
}

// Normalize repairs records persisted by older versions.
func Normalize(s State) State {
	if s.Level < 1 {
		s.Level = 1
	}
	if s.XP < 0 {
		s.XP = 0
	}
	if s.TotalXP < 0 {
		s.TotalXP = 0
	}
	if s.Username == "" {
		s.Username = DefaultState().Username
	}
	return s
}
