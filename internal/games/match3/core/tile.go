// Package core implements the fruit-match resolution engine: the 8x8 grid,
// match scanning, swap validation, the cascade loop and the refill strategies.
// It has no dependency on the platform layer so it can be driven headlessly.
package core

// TileType identifies the fruit occupying a cell.
// Empty marks a cell with no tile; it only exists between destruction and refill.
type TileType uint8

const (
	Empty TileType = iota
	Apple
	Pineapple
	Peach
	Watermelon
	Grape
)

// NumTypes is the number of drawable (non-Empty) tile types.
const NumTypes = 5

var tileNames = [...]string{"Empty", "Apple", "Pineapple", "Peach", "Watermelon", "Grape"}

// tileLetters are used by Grid.String and ParseGrid.
var tileLetters = [...]byte{'.', 'A', 'P', 'H', 'W', 'G'}

// String returns the fruit name.
func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "Unknown"
}

// Letter returns the single-character code used in board dumps.
func (t TileType) Letter() byte {
	if int(t) < len(tileLetters) {
		return tileLetters[t]
	}
	return '?'
}

// Index returns the position of t in a weight vector. Empty has no index (-1).
func (t TileType) Index() int {
	return int(t) - 1
}

// TypeAt is the inverse of Index.
func TypeAt(index int) TileType {
	return TileType(index + 1)
}

// AllTypes returns the drawable types in weight-vector order.
func AllTypes() []TileType {
	return []TileType{Apple, Pineapple, Peach, Watermelon, Grape}
}

// tileFromLetter maps a board-dump character back to a tile type.
func tileFromLetter(c byte) (TileType, bool) {
	for i, l := range tileLetters {
		if l == c {
			return TileType(i), true
		}
	}
	return Empty, false
}
