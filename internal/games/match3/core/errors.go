package core

import "errors"

var (
	// ErrOutOfBounds is returned (or panicked with) for positions outside the board.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrNotAdjacent rejects a swap between cells that are not orthogonal neighbors.
	ErrNotAdjacent = errors.New("cells are not adjacent")

	// ErrNoMatch rejects a swap that would not create a match.
	ErrNoMatch = errors.New("swap creates no match")

	// ErrResolving rejects input while a cascade is in progress.
	ErrResolving = errors.New("cascade in progress")

	// ErrGameEnded rejects input after the session was ended.
	ErrGameEnded = errors.New("game has ended")

	// ErrSelectionInconsistency reports a selection that does not map to a board cell.
	ErrSelectionInconsistency = errors.New("selection does not map to a board cell")

	// ErrCascadeLimit is recorded when a cascade exceeds the configured pass limit.
	ErrCascadeLimit = errors.New("cascade pass limit exceeded")
)
