package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      Server      `yaml:"server" json:"server"`
	Progression Progression `yaml:"progression" json:"progression"`
	Ranks       []RankTier  `yaml:"ranks" json:"ranks"`
	Categories  []Category  `yaml:"categories" json:"categories"`
	Tip         Tip         `yaml:"tip" json:"tip"`
}

type Server struct {
	Addr    string `yaml:"addr" json:"addr"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

// Progression holds the tuning knobs of the XP/streak/combo economy.
// All XP amounts are integers; fractional bonuses are floored at award time.
type Progression struct {
	XPPerCheckin          int     `yaml:"xp_per_checkin" json:"xp_per_checkin"`
	XPPerLevel            int     `yaml:"xp_per_level" json:"xp_per_level"`
	StreakBonusMultiplier float64 `yaml:"streak_bonus_multiplier" json:"streak_bonus_multiplier"`
	ComboWindowMS         int     `yaml:"combo_window_ms" json:"combo_window_ms"`
	ComboUnitBonus        int     `yaml:"combo_unit_bonus" json:"combo_unit_bonus"`
	UndoWindowMS          int     `yaml:"undo_window_ms" json:"undo_window_ms"`
}

type RankTier struct {
	Days   int    `yaml:"days" json:"days"`
	Name   string `yaml:"name" json:"name"`
	Weight int    `yaml:"weight" json:"weight"`
}

type Category struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
}

type Tip struct {
	Enabled      bool   `yaml:"enabled" json:"enabled"`
	Model        string `yaml:"model" json:"model"`
	FallbackText string `yaml:"fallback_text" json:"fallback_text"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Addr:    ":8484",
			DataDir: "data",
		},
		Progression: Progression{
			XPPerCheckin:          100,
			XPPerLevel:            1000,
			StreakBonusMultiplier: 1.1,
			ComboWindowMS:         60_000,
			ComboUnitBonus:        50,
			UndoWindowMS:          10_000,
		},
		Ranks: []RankTier{
			{Days: 0, Name: "Novice", Weight: 10},
			{Days: 3, Name: "Apprentice", Weight: 20},
			{Days: 7, Name: "Disciplined", Weight: 30},
			{Days: 15, Name: "Expert", Weight: 40},
			{Days: 21, Name: "Master", Weight: 50},
			{Days: 30, Name: "Legend", Weight: 60},
			{Days: 45, Name: "Immortal", Weight: 70},
			{Days: 90, Name: "God", Weight: 80},
		},
		Categories: []Category{
			{Name: "Saúde", Icon: "🍎"},
			{Name: "Produtividade", Icon: "⚡"},
			{Name: "Mindset", Icon: "🧠"},
			{Name: "Fitness", Icon: "💪"},
			{Name: "Aprendizado", Icon: "📚"},
		},
		Tip: Tip{
			Enabled:      false,
			Model:        "gemini-3-flash-preview",
			FallbackText: "O destino sorri para os persistentes. Segue em frente!",
		},
	}
}

// Load reads a yaml config from path, overlaying it on Default.
// A missing file is not an error; the defaults are used as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Progression.XPPerCheckin <= 0 {
		return fmt.Errorf("progression.xp_per_checkin must be positive")
	}
	if c.Progression.XPPerLevel <= 0 {
		return fmt.Errorf("progression.xp_per_level must be positive")
	}
	if c.Progression.StreakBonusMultiplier < 1 {
		return fmt.Errorf("progression.streak_bonus_multiplier must be >= 1")
	}
	if c.Progression.ComboWindowMS <= 0 || c.Progression.UndoWindowMS <= 0 {
		return fmt.Errorf("progression windows must be positive")
	}
	if len(c.Ranks) == 0 || c.Ranks[0].Days != 0 {
		return fmt.Errorf("ranks must start at a zero-day tier")
	}
	for i := 1; i < len(c.Ranks); i++ {
		if c.Ranks[i].Days <= c.Ranks[i-1].Days {
			return fmt.Errorf("ranks must be strictly ascending by days")
		}
	}
	return nil
}
