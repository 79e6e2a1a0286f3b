package core

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Direction is the axis a match runs along.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

// Match is a run of at least MinRun same-typed tiles. Cells are in scan order:
// increasing column for horizontal matches, increasing row for vertical ones.
type Match struct {
	Type      TileType
	Direction Direction
	Cells     []Position
}

// Len returns the number of cells in the match.
func (m Match) Len() int {
	return len(m.Cells)
}

// Contains reports whether p is one of the match cells.
func (m Match) Contains(p Position) bool {
	for _, c := range m.Cells {
		if c == p {
			return true
		}
	}
	return false
}

// intact reports whether every cell still holds the match type.
func (m Match) intact(g *Grid) bool {
	for _, c := range m.Cells {
		if g.Get(c) != m.Type {
			return false
		}
	}
	return true
}

// Scan returns every horizontal and vertical run of MinRun or more.
// Horizontal matches come first (top to bottom), then vertical ones
// (left to right). Empty cells never match and always end a run.
func Scan(g *Grid) []Match {
	var matches []Match
	matches = scanLines(g, Horizontal, matches)
	matches = scanLines(g, Vertical, matches)
	return matches
}

// scanLines walks every row (Horizontal) or column (Vertical) and appends runs to out.
func scanLines(g *Grid, dir Direction, out []Match) []Match {
	run := make([]Position, 0, Size)

	for outer := range Size {
		runType := Empty
		run = run[:0]

		for inner := range Size {
			p := P(outer, inner)
			if dir == Vertical {
				p = P(inner, outer)
			}

			t := g.Get(p)
			if t != runType {
				out = flushRun(out, run, runType, dir)
				run = run[:0]
				runType = t
			}
			if t != Empty {
				run = append(run, p)
			}
		}
		out = flushRun(out, run, runType, dir)
	}
	return out
}

func flushRun(out []Match, run []Position, t TileType, dir Direction) []Match {
	if t == Empty || len(run) < MinRun {
		return out
	}
	cells := make([]Position, len(run))
	copy(cells, run)
	return append(out, Match{Type: t, Direction: dir, Cells: cells})
}
