package config

import (
	_ "embed"
)

//go:embed defaults/fruitmatch.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in configuration. It mirrors
// defaults/fruitmatch.yaml and is used if the embedded file cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Level: 1,
		Refill: RefillConfig{
			FirstVerticalWeight: 40,
			BiasWeight:          60,
			WeightBudget:        100,
		},
		Session: SessionConfig{
			Moves:            15,
			TimeLimitSecs:    90,
			ObjectivePerType: 3,
			StarThresholds:   []int{0, 500, 1000},
		},
		Cascade: CascadeConfig{
			MaxPasses: 64,
		},
		Animation: AnimationConfig{
			FallTicks: 8,
		},
	}
}
