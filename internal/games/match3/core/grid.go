package core

import (
	"fmt"
	"math/rand"
	"strings"
)

// Grid is the 8x8 board. It stores one TileType per cell and nothing else.
// Get and Set treat out-of-bounds positions as programmer errors and panic;
// use At for a checked read.
type Grid struct {
	cells [Size][Size]TileType
}

// NewGrid returns a grid with every cell Empty.
func NewGrid() *Grid {
	return &Grid{}
}

// ParseGrid builds a grid from Size rows of tile letters (see TileType.Letter).
// Whitespace inside a row is ignored.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("grid: expected %d rows, got %d", Size, len(rows))
	}
	g := NewGrid()
	for r, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != Size {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", r, len(line), Size)
		}
		for c := 0; c < Size; c++ {
			t, ok := tileFromLetter(line[c])
			if !ok {
				return nil, fmt.Errorf("grid: row %d col %d: unknown tile %q", r, c, line[c])
			}
			g.cells[r][c] = t
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures; it panics on malformed input.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// At returns the tile at p, or an error wrapping ErrOutOfBounds.
func (g *Grid) At(p Position) (TileType, error) {
	if err := p.Validate(); err != nil {
		return Empty, err
	}
	return g.cells[p.Row][p.Col], nil
}

// Get returns the tile at p. It panics if p is off the board.
func (g *Grid) Get(p Position) TileType {
	if err := p.Validate(); err != nil {
		panic(fmt.Errorf("grid: get: %w", err))
	}
	return g.cells[p.Row][p.Col]
}

// Set stores t at p. It panics if p is off the board.
func (g *Grid) Set(p Position, t TileType) {
	if err := p.Validate(); err != nil {
		panic(fmt.Errorf("grid: set: %w", err))
	}
	g.cells[p.Row][p.Col] = t
}

// Swap exchanges the tiles at a and b.
func (g *Grid) Swap(a, b Position) {
	ta, tb := g.Get(a), g.Get(b)
	g.Set(a, tb)
	g.Set(b, ta)
}

// Neighbors returns the orthogonal neighbors of p that lie on the board,
// in up, down, left, right order.
func (g *Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if n := p.Add(d[0], d[1]); n.InBounds() {
			out = append(out, n)
		}
	}
	return out
}

// Surrounding returns the up to eight orthogonal and diagonal neighbors of p.
func (g *Grid) Surrounding(p Position) []Position {
	out := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if n := p.Add(dr, dc); n.InBounds() {
				out = append(out, n)
			}
		}
	}
	return out
}

// EmptyCount returns the number of Empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g.cells[r][c] == Empty {
				n++
			}
		}
	}
	return n
}

// Cells returns a copy of the underlying array.
func (g *Grid) Cells() [Size][Size]TileType {
	return g.cells
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// Equal reports whether both grids hold the same tiles.
func (g *Grid) Equal(other *Grid) bool {
	return g.cells == other.cells
}

// String renders the grid as Size lines of tile letters.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(Size * (Size + 1))
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			sb.WriteByte(g.cells[r][c].Letter())
		}
	}
	return sb.String()
}

// Initialize returns a fully populated grid with no runs of three.
//
// Every cell starts as a uniformly random fruit. Then, while a scan still finds
// matches, one random cell of each match is replaced by a type that differs
// from the match and from its four orthogonal neighbors.
func Initialize(rng *rand.Rand) *Grid {
	g := NewGrid()
	for r := range Size {
		for c := range Size {
			g.cells[r][c] = TypeAt(rng.Intn(NumTypes))
		}
	}

	breakMatches(g, rng, Scan(g), g.Set)
	return g
}

// breakMatches replaces one random cell of each match with a type that
// differs from the match and its four neighbors, rescanning until the grid
// holds no match. set performs each replacement.
func breakMatches(g *Grid, rng *rand.Rand, matches []Match, set func(Position, TileType)) {
	for ; len(matches) > 0; matches = Scan(g) {
		for _, m := range matches {
			// An earlier replacement in this round may have broken the run.
			if !m.intact(g) {
				continue
			}
			p := m.Cells[rng.Intn(len(m.Cells))]
			candidates := replacementsFor(g, p, m.Type)
			set(p, candidates[rng.Intn(len(candidates))])
		}
	}
}

// replacementsFor lists the types that differ from excluded and from every
// in-bounds orthogonal neighbor of p.
func replacementsFor(g *Grid, p Position, excluded TileType) []TileType {
	var banned [NumTypes + 1]bool
	banned[excluded] = true
	for _, n := range g.Neighbors(p) {
		banned[g.Get(n)] = true
	}

	out := make([]TileType, 0, NumTypes)
	for _, t := range AllTypes() {
		if !banned[t] {
			out = append(out, t)
		}
	}
	// At least one neighbor belongs to the match itself, so at most four
	// distinct types are banned and this branch is unreachable.
	if len(out) == 0 {
		for _, t := range AllTypes() {
			if t != excluded {
				out = append(out, t)
			}
		}
	}
	return out
}
