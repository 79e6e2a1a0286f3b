package core

import (
	"fmt"
	"math/rand"
)

// StrategyKind selects a refill algorithm. Level configuration maps to it.
type StrategyKind int

const (
	// KindGravity is WeightedGravityFill, used by level 1.
	KindGravity StrategyKind = 1
	// KindDensity is NeighborDensityFill, used by level 2.
	KindDensity StrategyKind = 2
)

// String returns the strategy name.
func (k StrategyKind) String() string {
	switch k {
	case KindGravity:
		return "gravity"
	case KindDensity:
		return "density"
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
}

// RefillStrategy decides which tile falls into each empty cell after a pass.
// matches are already de-duplicated and in processing order; lowest holds,
// per column, the deepest Empty row (-1 for a full column) and is advanced
// upward by the strategy as it fills.
type RefillStrategy interface {
	Kind() StrategyKind
	Fill(f *Filler, matches []Match, lowest *[Size]int)
}

// Filler is the write side handed to a strategy: it draws a type from a weight
// vector and spawns it into a cell.
type Filler struct {
	grid  *Grid
	rng   *rand.Rand
	spawn func(p Position, t TileType)
}

// NewFiller returns a Filler that writes through spawn. spawn must store t in
// the grid before returning.
func NewFiller(g *Grid, rng *rand.Rand, spawn func(p Position, t TileType)) *Filler {
	return &Filler{grid: g, rng: rng, spawn: spawn}
}

// Grid returns the live grid.
func (f *Filler) Grid() *Grid { return f.grid }

// Rand returns the session generator.
func (f *Filler) Rand() *rand.Rand { return f.rng }

// Fill draws a type from w and spawns it at p.
func (f *Filler) Fill(p Position, w Weights) TileType {
	t := DrawType(f.rng, w)
	f.spawn(p, t)
	return t
}

// IdentifyReplacements shuffles matches and strips every cell already claimed
// by an earlier match in the shuffled order, so each destroyed cell belongs to
// exactly one match. It also returns the deepest Empty row of each column.
// The input matches are not modified.
func IdentifyReplacements(rng *rand.Rand, g *Grid, matches []Match) ([]Match, [Size]int) {
	var claimed [Size][Size]bool
	ordered := make([]Match, 0, len(matches))

	for _, i := range rng.Perm(len(matches)) {
		m := matches[i]
		cells := make([]Position, 0, len(m.Cells))
		for _, c := range m.Cells {
			if claimed[c.Row][c.Col] {
				continue
			}
			claimed[c.Row][c.Col] = true
			cells = append(cells, c)
		}
		ordered = append(ordered, Match{Type: m.Type, Direction: m.Direction, Cells: cells})
	}

	return ordered, LowestEmptyRows(g)
}

// LowestEmptyRows returns, per column, the largest row index holding Empty,
// or -1 when the column is full.
func LowestEmptyRows(g *Grid) [Size]int {
	var lowest [Size]int
	for c := range Size {
		lowest[c] = -1
		for r := Size - 1; r >= 0; r-- {
			if g.Get(P(r, c)) == Empty {
				lowest[c] = r
				break
			}
		}
	}
	return lowest
}

// Refill runs the shared preprocessing and then the strategy.
func Refill(s RefillStrategy, f *Filler, matches []Match) {
	ordered, lowest := IdentifyReplacements(f.rng, f.grid, matches)
	s.Fill(f, ordered, &lowest)
}

// WeightedGravityFill favors the type resting directly below each empty cell.
// The deepest cell of a vertical match is drawn with FirstVerticalWeight, every
// other cell with BiasWeight; the remaining types share what is left of Budget.
// A cell on the bottom row has nothing below it and is drawn uniformly.
type WeightedGravityFill struct {
	FirstVerticalWeight float64
	BiasWeight          float64
	Budget              float64
}

// DefaultGravityFill returns the level 1 weighting (40/60 out of 100).
func DefaultGravityFill() WeightedGravityFill {
	return WeightedGravityFill{FirstVerticalWeight: 40, BiasWeight: 60, Budget: 100}
}

// Kind implements RefillStrategy.
func (s WeightedGravityFill) Kind() StrategyKind { return KindGravity }

// Fill implements RefillStrategy.
func (s WeightedGravityFill) Fill(f *Filler, matches []Match, lowest *[Size]int) {
	for _, m := range matches {
		rest := m.Cells

		if m.Direction == Vertical {
			// Every cell of a vertical match shares one column; an empty list
			// means all of its cells were claimed by other matches.
			if len(m.Cells) == 0 {
				continue
			}
			col := m.Cells[len(m.Cells)-1].Col
			row := lowest[col]
			if row < 0 {
				continue
			}
			f.Fill(P(row, col), s.weightsBelow(f.Grid(), row, col, s.FirstVerticalWeight))
			lowest[col]--
			rest = m.Cells[1:]
		}

		for _, c := range rest {
			row := lowest[c.Col]
			if row < 0 {
				break
			}
			f.Fill(P(row, c.Col), s.weightsBelow(f.Grid(), row, c.Col, s.BiasWeight))
			lowest[c.Col]--
		}
	}
}

// weightsBelow biases toward the tile under (row, col).
func (s WeightedGravityFill) weightsBelow(g *Grid, row, col int, big float64) Weights {
	if row == Size-1 {
		return UniformWeights()
	}
	below := g.Get(P(row+1, col))
	if below == Empty {
		return UniformWeights()
	}
	return BiasedWeights(below, big, s.Budget)
}

// NeighborDensityFill favors the types already surrounding each empty cell.
// Every type starts at weight 1 and gains 1 per occupied neighbor (orthogonal
// and diagonal) of that type. Cells of a match are visited in random order.
type NeighborDensityFill struct{}

// Kind implements RefillStrategy.
func (NeighborDensityFill) Kind() StrategyKind { return KindDensity }

// Fill implements RefillStrategy.
func (NeighborDensityFill) Fill(f *Filler, matches []Match, lowest *[Size]int) {
	g := f.Grid()
	for _, m := range matches {
		for _, i := range f.Rand().Perm(len(m.Cells)) {
			col := m.Cells[i].Col
			row := lowest[col]
			if row < 0 {
				continue
			}
			target := P(row, col)

			w := UniformWeights()
			for _, n := range g.Surrounding(target) {
				if t := g.Get(n); t != Empty {
					w[t.Index()]++
				}
			}

			f.Fill(target, w)
			lowest[col]--
		}
	}
}

// StrategyFor returns the refill strategy for a level selector.
func StrategyFor(kind StrategyKind, gravity WeightedGravityFill) (RefillStrategy, error) {
	switch kind {
	case KindGravity:
		return gravity, nil
	case KindDensity:
		return NeighborDensityFill{}, nil
	default:
		return nil, fmt.Errorf("core: unknown refill strategy %d", int(kind))
	}
}
