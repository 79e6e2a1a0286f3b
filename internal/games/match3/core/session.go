package core

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Options configures a Session. Zero-valued collaborators are replaced with
// no-op implementations.
type Options struct {
	Seed      int64
	Grid      *Grid // Replaces the seeded initial board; must be full and match-free
	Strategy  RefillStrategy
	Renderer  Renderer
	Scorer    Scorer
	Logger    *log.Logger
	MaxPasses int
}

// Session owns one game board and everything that mutates it: the seeded
// generator, the cascade engine, the fall tracker and the player selection.
// It is not safe for concurrent use except for CompleteFall.
type Session struct {
	grid     *Grid
	rng      *rand.Rand
	falls    *FallTracker
	engine   *Engine
	renderer Renderer
	scorer   Scorer
	logger   *log.Logger

	selected    Position
	hasSelected bool
	ended       bool
}

// NewSession builds an initialized, match-free board from opts.Seed.
func NewSession(opts Options) *Session {
	if opts.Strategy == nil {
		opts.Strategy = DefaultGravityFill()
	}
	if opts.Renderer == nil {
		opts.Renderer = NopRenderer{}
	}
	if opts.Scorer == nil {
		opts.Scorer = NopScorer{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	grid := opts.Grid
	if grid == nil {
		grid = Initialize(rng)
	}
	falls := &FallTracker{}

	s := &Session{
		grid:     grid,
		rng:      rng,
		falls:    falls,
		renderer: opts.Renderer,
		scorer:   opts.Scorer,
		logger:   opts.Logger,
		engine:   newEngine(grid, rng, opts.Strategy, falls, opts.Renderer, opts.Scorer, opts.Logger, opts.MaxPasses),
	}

	for r := range Size {
		for c := range Size {
			p := P(r, c)
			s.renderer.SpawnTile(p, grid.Get(p))
		}
	}
	return s
}

// Grid returns the live board. Callers must not mutate it.
func (s *Session) Grid() *Grid { return s.grid }

// Engine returns the cascade engine.
func (s *Session) Engine() *Engine { return s.engine }

// Strategy returns the active refill strategy.
func (s *Session) Strategy() RefillStrategy { return s.engine.strategy }

// PendingFalls returns the number of falls awaiting completion.
func (s *Session) PendingFalls() int { return s.falls.Pending() }

// Ended reports whether End was called.
func (s *Session) Ended() bool { return s.ended }

// End stops the session from accepting further swaps.
func (s *Session) End() { s.ended = true }

// WinConditionReached forwards the scorer's win signal to the engine.
func (s *Session) WinConditionReached() { s.engine.WinConditionReached() }

// Selected returns the selected cell, if any.
func (s *Session) Selected() (Position, bool) {
	return s.selected, s.hasSelected
}

// Swap attempts a player move between a and b. Input is refused with
// ErrGameEnded or ErrResolving; otherwise the outcome reports acceptance.
// An accepted swap starts the cascade and runs it up to the first barrier.
func (s *Session) Swap(a, b Position) (SwapOutcome, error) {
	if s.ended {
		return SwapOutcome{}, ErrGameEnded
	}
	if s.engine.Resolving() {
		return SwapOutcome{}, ErrResolving
	}
	if err := a.Validate(); err != nil {
		return SwapOutcome{}, err
	}
	if err := b.Validate(); err != nil {
		return SwapOutcome{}, err
	}

	out := TrySwap(s.grid, a, b)
	if !out.Accepted {
		s.logger.Debug("swap rejected", "a", a, "b", b, "reason", out.Reason)
		return out, nil
	}

	s.renderer.SwapTiles(a, b)
	s.scorer.MoveConsumed()
	s.engine.Begin(out.Matches)
	s.engine.Advance()
	return out, nil
}

// SelectKind describes what SelectOrSwap did.
type SelectKind uint8

const (
	Selected SelectKind = iota + 1
	Deselected
	Swapped
)

// SelectOutcome is the result of SelectOrSwap. Swap is set when Kind is Swapped.
type SelectOutcome struct {
	Kind SelectKind
	Swap SwapOutcome
}

// SelectOrSwap applies one click on p. The first click selects, a click on the
// selected cell deselects, and a click elsewhere attempts a swap with the
// selected cell. The selection is cleared after every swap attempt.
func (s *Session) SelectOrSwap(p Position) (SelectOutcome, error) {
	if s.ended {
		return SelectOutcome{}, ErrGameEnded
	}
	if s.engine.Resolving() {
		return SelectOutcome{}, ErrResolving
	}
	if !p.InBounds() {
		s.logger.Warn("selection inconsistency", "position", p, "selected", s.hasSelected)
		return SelectOutcome{}, ErrSelectionInconsistency
	}

	if !s.hasSelected {
		s.selected, s.hasSelected = p, true
		s.renderer.Select(p)
		return SelectOutcome{Kind: Selected}, nil
	}

	first := s.selected
	s.hasSelected = false
	if first == p {
		s.renderer.Deselect(p)
		return SelectOutcome{Kind: Deselected}, nil
	}

	s.renderer.Deselect(first)
	out, err := s.Swap(first, p)
	if err != nil {
		return SelectOutcome{}, err
	}
	return SelectOutcome{Kind: Swapped, Swap: out}, nil
}

// ClearSelection drops the selection without a swap attempt.
func (s *Session) ClearSelection() {
	if s.hasSelected {
		s.hasSelected = false
		s.renderer.Deselect(s.selected)
	}
}

// CompleteFall reports one finished fall animation. Safe for concurrent use.
func (s *Session) CompleteFall() bool {
	return s.falls.Complete()
}

// Advance resumes the cascade after falls complete.
func (s *Session) Advance() State {
	return s.engine.Advance()
}

// RunToIdle completes every pending fall immediately and drives the cascade
// to a stable board. Used by headless drivers.
func (s *Session) RunToIdle() MoveStats {
	for s.engine.Resolving() {
		for s.falls.Complete() {
		}
		s.engine.Advance()
	}
	return s.engine.Stats()
}

// ValidSwaps lists every adjacent pair whose exchange would create a match,
// in row-major order of the first cell. The grid is left unchanged.
func (s *Session) ValidSwaps() [][2]Position {
	return ValidSwaps(s.grid)
}

// Rand exposes the session generator for drivers that must stay on the
// session's deterministic stream.
func (s *Session) Rand() *rand.Rand { return s.rng }

// ValidSwaps lists every adjacent pair of g whose exchange creates a match.
func ValidSwaps(g *Grid) [][2]Position {
	var out [][2]Position
	for r := range Size {
		for c := range Size {
			a := P(r, c)
			for _, b := range []Position{a.Add(0, 1), a.Add(1, 0)} {
				if !b.InBounds() {
					continue
				}
				g.Swap(a, b)
				ok := len(Scan(g)) > 0
				g.Swap(a, b)
				if ok {
					out = append(out, [2]Position{a, b})
				}
			}
		}
	}
	return out
}
