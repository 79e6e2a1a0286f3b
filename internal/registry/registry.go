// Package registry keeps the playable levels. Each level package registers a
// factory from init(), so the platform can discover and build levels without
// hardcoded imports beyond a blank import in main.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/fruitmatch/internal/core"
)

// Game is what the platform drives: a tick-stepped level that renders into a
// screen buffer. Implementations hold no Bubble Tea state.
type Game interface {
	// ID returns the level identifier used on the command line and in the
	// replay journal (e.g. "orchard").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh session from the config seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the level by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. The screen is pre-cleared.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Describer is implemented by levels that carry a one-line description for
// menus and `fruitmatch list`.
type Describer interface {
	Description() string
}

// BoardDumper is implemented by levels whose final board is stored in the
// replay journal.
type BoardDumper interface {
	Board() string
}

// GameInfo contains metadata about a registered level.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new instance of a level.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a level factory. Panics if the ID is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}
	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns all registered levels, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a level by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}
	return f(), nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
