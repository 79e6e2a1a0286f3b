package match3

import (
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

const (
	burstTicks  = 6 // destroyed tile flash
	selectTicks = 4 // selection pulse
	swapTicks   = 4 // swapped tiles highlight
)

// fallAnimation is one in-flight FallRequest.
type fallAnimation struct {
	req   core.FallRequest
	ticks int
}

// progress returns 0.0 to 1.0 for a fall lasting duration ticks.
func (a fallAnimation) progress(duration int) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(a.ticks) / float64(duration)
	if p > 1 {
		p = 1
	}
	return p
}

// row returns the interpolated board row of the falling tile. Spawned tiles
// enter from the row above the board.
func (a fallAnimation) row(duration int) float64 {
	from := float64(a.req.From.Row)
	if a.req.Spawned {
		from = -1
	}
	to := float64(a.req.To.Row)
	return from + (to-from)*easeOutQuad(a.progress(duration))
}

// Animator is the session Renderer for the TUI. It queues falls and completes
// them on the session after fallTicks ticks each. Calls into the session
// happen from Tick only, never from the Renderer callbacks.
type Animator struct {
	fallTicks int

	falls   []fallAnimation
	landing map[core.Position]int // To cells with a fall in flight
	bursts  map[core.Position]int // destroyed cells, ticks left
	swapped map[core.Position]int // cells of the last accepted swap, ticks left
	pulse   int

	spawned   int
	destroyed int
}

// NewAnimator creates an animator whose falls last fallTicks ticks. Zero
// lands every fall on the next tick.
func NewAnimator(fallTicks int) *Animator {
	return &Animator{
		fallTicks: fallTicks,
		landing:   make(map[core.Position]int),
		bursts:    make(map[core.Position]int),
		swapped:   make(map[core.Position]int),
	}
}

// SpawnTile implements core.Renderer.
func (a *Animator) SpawnTile(core.Position, core.TileType) {
	a.spawned++
}

// SwapTiles implements core.Renderer.
func (a *Animator) SwapTiles(p, q core.Position) {
	a.swapped[p] = swapTicks
	a.swapped[q] = swapTicks
}

// Swapping reports whether p was part of a recent swap.
func (a *Animator) Swapping(p core.Position) bool {
	return a.swapped[p] > 0
}

// DestroyTile implements core.Renderer.
func (a *Animator) DestroyTile(p core.Position) {
	a.destroyed++
	a.bursts[p] = burstTicks
}

// Fall implements core.Renderer.
func (a *Animator) Fall(req core.FallRequest) {
	a.falls = append(a.falls, fallAnimation{req: req})
	a.landing[req.To]++
}

// Select implements core.Renderer.
func (a *Animator) Select(core.Position) {
	a.pulse = selectTicks
}

// Deselect implements core.Renderer.
func (a *Animator) Deselect(core.Position) {
	a.pulse = 0
}

// fallCompleter is the part of the session the animator reports to.
type fallCompleter interface {
	CompleteFall() bool
}

// Tick advances every animation by one tick and reports landed falls to s.
// It returns the number of falls completed.
func (a *Animator) Tick(s fallCompleter) int {
	for p, left := range a.bursts {
		if left <= 1 {
			delete(a.bursts, p)
		} else {
			a.bursts[p] = left - 1
		}
	}
	for p, left := range a.swapped {
		if left <= 1 {
			delete(a.swapped, p)
		} else {
			a.swapped[p] = left - 1
		}
	}
	if a.pulse > 0 {
		a.pulse--
	}

	landed := 0
	kept := a.falls[:0]
	for _, f := range a.falls {
		f.ticks++
		if f.ticks < a.fallTicks {
			kept = append(kept, f)
			continue
		}
		if n := a.landing[f.req.To]; n <= 1 {
			delete(a.landing, f.req.To)
		} else {
			a.landing[f.req.To] = n - 1
		}
		s.CompleteFall()
		landed++
	}
	a.falls = kept
	return landed
}

// Busy reports whether any fall is still in flight.
func (a *Animator) Busy() bool {
	return len(a.falls) > 0
}

// Landing reports whether a fall into p is in flight.
func (a *Animator) Landing(p core.Position) bool {
	return a.landing[p] > 0
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
