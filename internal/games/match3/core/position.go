package core

import "fmt"

// Size is the board dimension (rows and columns).
const Size = 8

// Position addresses a board cell. Row 0 is the top row.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Validate returns an error wrapping ErrOutOfBounds if p is off the board.
func (p Position) Validate() error {
	if !p.InBounds() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	return nil
}

// Add returns p offset by (dRow, dCol).
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether other is an orthogonal neighbor of p.
func (p Position) Adjacent(other Position) bool {
	return p.Manhattan(other) == 1
}
