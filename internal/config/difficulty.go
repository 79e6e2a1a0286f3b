package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyUntimed DifficultyPreset = "untimed"
)

// ParsePreset maps a CLI value to a preset. An empty string yields "" and no error.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyUntimed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or untimed)", s)
	}
}

// ApplyPreset adjusts the move budget, timer and objectives for a preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.Moves = 20
		cfg.Session.TimeLimitSecs = 120
		cfg.Session.ObjectivePerType = 2
	case DifficultyHard:
		cfg.Session.Moves = 10
		cfg.Session.TimeLimitSecs = 60
		cfg.Session.ObjectivePerType = 4
	case DifficultyUntimed:
		cfg.Session.TimeLimitSecs = 0
	}
}
