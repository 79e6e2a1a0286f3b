package core

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
)

// DefaultMaxPasses bounds a single cascade.
const DefaultMaxPasses = 64

// State is the engine state.
type State uint8

const (
	Idle State = iota
	Resolving
)

// String returns the state name.
func (s State) String() string {
	if s == Resolving {
		return "Resolving"
	}
	return "Idle"
}

type phase uint8

const (
	phaseDestroy phase = iota // destroy matches, settle columns
	phaseSettling             // waiting for settle falls
	phaseRefilling            // waiting for refill falls
)

// MoveStats summarizes the cascade triggered by one accepted swap.
type MoveStats struct {
	Passes    int
	Matches   int
	Destroyed int
	Points    int
	Spawned   [NumTypes]int
}

// Engine drives the destroy, settle, refill, rescan loop for one move.
//
// It is a cooperative state machine: Advance runs synchronous phases until it
// reaches a barrier with falls still pending, then returns. The caller keeps
// calling Advance (for example once per tick) after completing falls.
type Engine struct {
	grid     *Grid
	rng      *rand.Rand
	strategy RefillStrategy
	falls    *FallTracker
	renderer Renderer
	scorer   Scorer
	logger   *log.Logger

	state      State
	phase      phase
	matches    []Match
	pass       int
	maxPasses  int
	multiplier int
	won        bool
	stats      MoveStats
	err        error
}

func newEngine(g *Grid, rng *rand.Rand, strategy RefillStrategy, falls *FallTracker,
	renderer Renderer, scorer Scorer, logger *log.Logger, maxPasses int) *Engine {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	return &Engine{
		grid:       g,
		rng:        rng,
		strategy:   strategy,
		falls:      falls,
		renderer:   renderer,
		scorer:     scorer,
		logger:     logger,
		maxPasses:  maxPasses,
		multiplier: 1,
	}
}

// State returns Idle or Resolving.
func (e *Engine) State() State { return e.state }

// Resolving reports whether a cascade is in progress.
func (e *Engine) Resolving() bool { return e.state == Resolving }

// Multiplier returns the multiplier the next destroyed match will score at.
func (e *Engine) Multiplier() int { return e.multiplier }

// Pass returns the current (or last) cascade pass, 1-based.
func (e *Engine) Pass() int { return e.pass }

// Stats returns the statistics of the current or most recent move.
func (e *Engine) Stats() MoveStats { return e.stats }

// Err returns ErrCascadeLimit if the last cascade was cut short.
func (e *Engine) Err() error { return e.err }

// Won reports whether the win condition has been signalled.
func (e *Engine) Won() bool { return e.won }

// WinConditionReached switches the multiplier step from +1 to +2.
func (e *Engine) WinConditionReached() { e.won = true }

// Begin starts resolving the matches produced by an accepted swap.
func (e *Engine) Begin(matches []Match) {
	if e.state == Resolving {
		panic("core: cascade begun while resolving")
	}
	e.state = Resolving
	e.phase = phaseDestroy
	e.matches = matches
	e.pass = 1
	e.multiplier = 1
	e.stats = MoveStats{}
	e.err = nil
}

// Advance runs as many phases as possible and returns the resulting state.
func (e *Engine) Advance() State {
	for e.state == Resolving {
		switch e.phase {
		case phaseDestroy:
			e.destroy()
			e.settle()
			e.phase = phaseSettling

		case phaseSettling:
			if e.falls.Pending() > 0 {
				return e.state
			}
			e.refill()
			e.phase = phaseRefilling

		case phaseRefilling:
			if e.falls.Pending() > 0 {
				return e.state
			}
			if n := e.grid.EmptyCount(); n > 0 {
				panic(fmt.Sprintf("core: refill left %d empty cells\n%s", n, e.grid))
			}
			e.rescan()
		}
	}
	return e.state
}

// destroy clears every matched cell and scores each match in order.
func (e *Engine) destroy() {
	for _, m := range e.matches {
		for _, c := range m.Cells {
			if e.grid.Get(c) == Empty {
				continue
			}
			e.grid.Set(c, Empty)
			e.renderer.DestroyTile(c)
			e.stats.Destroyed++
		}

		ev := MatchEvent{
			Type:       m.Type,
			Count:      len(m.Cells),
			Multiplier: e.multiplier,
			Points:     len(m.Cells) * e.multiplier,
			Pass:       e.pass,
		}
		e.stats.Matches++
		e.stats.Points += ev.Points
		e.scorer.MatchResolved(ev)

		if e.won {
			e.multiplier += 2
		} else {
			e.multiplier++
		}
	}
}

// settle compacts each column: surviving tiles drop to the bottom and the
// Empty cells collect at the top.
func (e *Engine) settle() {
	for c := range Size {
		lowestEmpty := -1
		for r := Size - 1; r >= 0; r-- {
			t := e.grid.Get(P(r, c))
			switch {
			case t == Empty && lowestEmpty == -1:
				lowestEmpty = r
			case t != Empty && lowestEmpty != -1:
				from, to := P(r, c), P(lowestEmpty, c)
				req := e.falls.Schedule(func() FallRequest {
					e.grid.Set(to, t)
					e.grid.Set(from, Empty)
					return FallRequest{From: from, To: to, Type: t}
				})
				e.renderer.Fall(req)
				lowestEmpty--
			}
		}
	}
}

// refill hands the pass matches to the active strategy.
func (e *Engine) refill() {
	f := NewFiller(e.grid, e.rng, e.spawn)
	Refill(e.strategy, f, e.matches)
}

// replace swaps the tile at p for t in place, without a fall.
func (e *Engine) replace(p Position, t TileType) {
	e.grid.Set(p, t)
	e.renderer.SpawnTile(p, t)
}

// spawn writes t into p and requests its fall from above the board.
func (e *Engine) spawn(p Position, t TileType) {
	req := e.falls.Schedule(func() FallRequest {
		e.grid.Set(p, t)
		return FallRequest{To: p, Spawned: true, Type: t}
	})
	e.stats.Spawned[t.Index()]++
	e.renderer.Fall(req)
}

// rescan either starts the next pass or finishes the move.
func (e *Engine) rescan() {
	next := Scan(e.grid)
	if len(next) == 0 {
		e.finish()
		return
	}
	if e.pass >= e.maxPasses {
		e.err = fmt.Errorf("%w: %d passes", ErrCascadeLimit, e.pass)
		e.logger.Error("cascade aborted", "passes", e.pass, "matches", len(next), "err", e.err)
		breakMatches(e.grid, e.rng, next, e.replace)
		e.finish()
		return
	}
	e.pass++
	e.matches = next
	e.phase = phaseDestroy
}

func (e *Engine) finish() {
	e.stats.Passes = e.pass
	e.state = Idle
	e.matches = nil
	e.multiplier = 1
	e.logger.Debug("cascade resolved",
		"passes", e.stats.Passes,
		"matches", e.stats.Matches,
		"points", e.stats.Points,
	)
}
