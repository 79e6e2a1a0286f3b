package match3

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruitmatch/internal/config"
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
	"github.com/vovakirdan/fruitmatch/internal/registry"
)

// Level is a registered board variant. Levels differ only in refill strategy.
type Level struct {
	ID          string
	Title       string
	Description string
	Kind        core.StrategyKind
}

// Levels lists the playable levels in menu order.
var Levels = []Level{
	{
		ID:          "orchard",
		Title:       "Orchard",
		Description: "New fruit tends to match the fruit it lands on",
		Kind:        core.KindGravity,
	},
	{
		ID:          "vineyard",
		Title:       "Vineyard",
		Description: "New fruit takes after its neighbours",
		Kind:        core.KindDensity,
	},
}

// LevelByKind returns the level using a refill strategy.
func LevelByKind(kind core.StrategyKind) (Level, bool) {
	for _, l := range Levels {
		if l.Kind == kind {
			return l, true
		}
	}
	return Level{}, false
}

// LevelByID returns the level with the given registry ID.
func LevelByID(id string) (Level, bool) {
	for _, l := range Levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// Package-level settings applied on the next Reset, set by the CLI.
var (
	activeConfig = config.DefaultMatch3Config()
	activeLogger = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.Match3Config) {
	activeConfig = cfg
}

// ActiveConfig returns the configuration new games will use.
func ActiveConfig() config.Match3Config {
	return activeConfig
}

// SetLogger sets the logger handed to every new session.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	activeLogger = l
}

// StrategyFor builds the refill strategy of a level from cfg.
func StrategyFor(kind core.StrategyKind, cfg config.Match3Config) (core.RefillStrategy, error) {
	return core.StrategyFor(kind, core.WeightedGravityFill{
		FirstVerticalWeight: cfg.Refill.FirstVerticalWeight,
		BiasWeight:          cfg.Refill.BiasWeight,
		Budget:              cfg.Refill.WeightBudget,
	})
}

func init() {
	for _, l := range Levels {
		registry.Register(l.ID, func() registry.Game {
			return New(l)
		})
	}
}
