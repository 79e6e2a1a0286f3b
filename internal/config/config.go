// Package config provides YAML-based configuration loading, validation and
// difficulty presets for fruitmatch.
package config

// Match3Config contains all tunables of a fruitmatch session.
type Match3Config struct {
	Level     int             `yaml:"level" validate:"oneof=1 2"` // 1 = gravity refill, 2 = density refill
	Refill    RefillConfig    `yaml:"refill"`
	Session   SessionConfig   `yaml:"session"`
	Cascade   CascadeConfig   `yaml:"cascade"`
	Animation AnimationConfig `yaml:"animation"`
}

// RefillConfig defines the weights of the gravity refill.
type RefillConfig struct {
	FirstVerticalWeight float64 `yaml:"first_vertical_weight" validate:"gt=0,ltefield=WeightBudget"`
	BiasWeight          float64 `yaml:"bias_weight" validate:"gt=0,ltefield=WeightBudget"`
	WeightBudget        float64 `yaml:"weight_budget" validate:"gt=0"`
}

// SessionConfig defines the rules of one game.
type SessionConfig struct {
	Moves            int   `yaml:"moves" validate:"min=1,max=999"`
	TimeLimitSecs    int   `yaml:"time_limit_secs" validate:"min=0,max=3600"` // 0 disables the timer
	ObjectivePerType int   `yaml:"objective_per_type" validate:"min=1,max=99"`
	StarThresholds   []int `yaml:"star_thresholds" validate:"len=3,dive,min=0"`
}

// CascadeConfig bounds the resolution loop.
type CascadeConfig struct {
	MaxPasses int `yaml:"max_passes" validate:"min=16,max=1000"`
}

// AnimationConfig defines TUI timing.
type AnimationConfig struct {
	FallTicks int `yaml:"fall_ticks" validate:"min=0,max=120"` // 0 completes falls immediately
}

// TimeLimitTicks converts the time limit to simulation ticks.
func (s SessionConfig) TimeLimitTicks(tickRate int) int {
	return s.TimeLimitSecs * tickRate
}

// Stars returns how many star thresholds score reaches.
func (s SessionConfig) Stars(score int) int {
	stars := 0
	for _, th := range s.StarThresholds {
		if score >= th {
			stars++
		}
	}
	return stars
}
