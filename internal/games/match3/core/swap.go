package core

// SwapOutcome is the result of a swap attempt. A rejected swap carries the
// reason (ErrNotAdjacent or ErrNoMatch) and left the grid untouched.
type SwapOutcome struct {
	Accepted bool
	Reason   error
	Matches  []Match
}

// Err returns the rejection reason, or nil for an accepted swap.
func (o SwapOutcome) Err() error {
	if o.Accepted {
		return nil
	}
	return o.Reason
}

// TrySwap exchanges the tiles at a and b if they are orthogonal neighbors and
// the exchange creates at least one match. Otherwise the grid is restored and
// the outcome is rejected.
func TrySwap(g *Grid, a, b Position) SwapOutcome {
	if !a.Adjacent(b) {
		return SwapOutcome{Reason: ErrNotAdjacent}
	}

	g.Swap(a, b)
	matches := Scan(g)
	if len(matches) == 0 {
		g.Swap(a, b)
		return SwapOutcome{Reason: ErrNoMatch}
	}

	return SwapOutcome{Accepted: true, Matches: matches}
}
