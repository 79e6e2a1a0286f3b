package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

func TestTrySwapNotAdjacent(t *testing.T) {
	g := core.MustParseGrid(baseRows...)
	before := g.Clone()

	out := core.TrySwap(g, core.P(0, 0), core.P(5, 5))

	if out.Accepted {
		t.Fatal("non-adjacent swap was accepted")
	}
	if !errors.Is(out.Err(), core.ErrNotAdjacent) {
		t.Errorf("Err() = %v, want ErrNotAdjacent", out.Err())
	}
	if !g.Equal(before) {
		t.Error("grid changed after rejected swap")
	}
}

func TestTrySwapNoMatchRestoresGrid(t *testing.T) {
	g := core.MustParseGrid(baseRows...)
	before := g.Clone()

	out := core.TrySwap(g, core.P(0, 0), core.P(0, 1))

	if out.Accepted {
		t.Fatal("swap without match was accepted")
	}
	if !errors.Is(out.Err(), core.ErrNoMatch) {
		t.Errorf("Err() = %v, want ErrNoMatch", out.Err())
	}
	if !g.Equal(before) {
		t.Errorf("grid not restored:\n%s", g)
	}
}

func TestTrySwapCreatesMatch(t *testing.T) {
	g := core.MustParseGrid(appleSetupRows...)

	out := core.TrySwap(g, core.P(2, 3), core.P(3, 3))

	if !out.Accepted {
		t.Fatalf("swap rejected: %v", out.Err())
	}
	if out.Err() != nil {
		t.Errorf("Err() = %v for accepted swap", out.Err())
	}
	if len(out.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(out.Matches))
	}
	m := out.Matches[0]
	if m.Type != core.Apple || m.Direction != core.Horizontal || m.Len() != 3 {
		t.Errorf("match = %+v, want 3-cell horizontal Apple", m)
	}
	for _, c := range []core.Position{core.P(3, 2), core.P(3, 3), core.P(3, 4)} {
		if !m.Contains(c) {
			t.Errorf("match missing %v", c)
		}
	}
	if g.Get(core.P(3, 3)) != core.Apple || g.Get(core.P(2, 3)) != core.Grape {
		t.Error("accepted swap did not leave tiles exchanged")
	}
}

func TestValidSwapsLeavesGridUnchanged(t *testing.T) {
	g := core.MustParseGrid(appleSetupRows...)
	before := g.Clone()

	swaps := core.ValidSwaps(g)

	if !g.Equal(before) {
		t.Error("ValidSwaps mutated the grid")
	}
	found := false
	for _, s := range swaps {
		if s[0] == core.P(2, 3) && s[1] == core.P(3, 3) {
			found = true
		}
	}
	if !found {
		t.Errorf("ValidSwaps() = %v, missing (2,3)-(3,3)", swaps)
	}
}
