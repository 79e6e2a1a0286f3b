package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

func TestInitializeHasNoMatches(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		g := core.Initialize(rand.New(rand.NewSource(seed)))

		if matches := core.Scan(g); len(matches) != 0 {
			t.Fatalf("seed %d: initial board has %d matches\n%s", seed, len(matches), g)
		}
		if n := g.EmptyCount(); n != 0 {
			t.Fatalf("seed %d: initial board has %d empty cells", seed, n)
		}
	}
}

func TestInitializeDeterministic(t *testing.T) {
	g1 := core.Initialize(rand.New(rand.NewSource(99)))
	g2 := core.Initialize(rand.New(rand.NewSource(99)))

	if !g1.Equal(g2) {
		t.Errorf("same seed produced different boards:\n%s\n--\n%s", g1, g2)
	}
}

func TestGridGetSet(t *testing.T) {
	g := core.NewGrid()

	g.Set(core.P(2, 5), core.Grape)
	if got := g.Get(core.P(2, 5)); got != core.Grape {
		t.Errorf("Get(2,5) = %v, want Grape", got)
	}
	if got := g.Get(core.P(0, 0)); got != core.Empty {
		t.Errorf("new grid cell = %v, want Empty", got)
	}
	if n := g.EmptyCount(); n != core.Size*core.Size-1 {
		t.Errorf("EmptyCount() = %d, want %d", n, core.Size*core.Size-1)
	}
}

func TestGridAtOutOfBounds(t *testing.T) {
	g := core.NewGrid()

	testCases := []core.Position{
		core.P(-1, 0),
		core.P(0, -1),
		core.P(8, 0),
		core.P(0, 8),
	}

	for _, p := range testCases {
		if _, err := g.At(p); !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("At(%v) error = %v, want ErrOutOfBounds", p, err)
		}
	}
}

func TestGridGetPanicsOutOfBounds(t *testing.T) {
	g := core.NewGrid()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Get(8,8) did not panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("panic value = %v, want error wrapping ErrOutOfBounds", r)
		}
	}()

	g.Get(core.P(8, 8))
}

func TestGridNeighbors(t *testing.T) {
	g := core.NewGrid()

	testCases := []struct {
		p        core.Position
		expected int
	}{
		{core.P(0, 0), 2},
		{core.P(0, 4), 3},
		{core.P(4, 4), 4},
		{core.P(7, 7), 2},
	}

	for _, tc := range testCases {
		n := g.Neighbors(tc.p)
		if len(n) != tc.expected {
			t.Errorf("Neighbors(%v) = %d cells, want %d", tc.p, len(n), tc.expected)
		}
		for _, q := range n {
			if !tc.p.Adjacent(q) {
				t.Errorf("Neighbors(%v) returned non-adjacent %v", tc.p, q)
			}
		}
	}
}

func TestGridSurrounding(t *testing.T) {
	g := core.NewGrid()

	if n := len(g.Surrounding(core.P(0, 0))); n != 3 {
		t.Errorf("corner Surrounding = %d, want 3", n)
	}
	if n := len(g.Surrounding(core.P(0, 3))); n != 5 {
		t.Errorf("edge Surrounding = %d, want 5", n)
	}
	if n := len(g.Surrounding(core.P(3, 3))); n != 8 {
		t.Errorf("interior Surrounding = %d, want 8", n)
	}
}

func TestParseGridRoundTrip(t *testing.T) {
	g := core.MustParseGrid(baseRows...)

	parsed, err := core.ParseGrid(splitLines(g.String())...)
	if err != nil {
		t.Fatalf("ParseGrid(String()) failed: %v", err)
	}
	if !parsed.Equal(g) {
		t.Errorf("round trip mismatch:\n%s\n--\n%s", g, parsed)
	}
}

func TestParseGridRejectsBadInput(t *testing.T) {
	if _, err := core.ParseGrid("APH"); err == nil {
		t.Error("expected error for wrong row count")
	}

	rows := append([]string(nil), baseRows...)
	rows[3] = "APHWGAPX"
	if _, err := core.ParseGrid(rows...); err == nil {
		t.Error("expected error for unknown tile letter")
	}
}

func TestPositionAdjacent(t *testing.T) {
	testCases := []struct {
		a, b     core.Position
		expected bool
	}{
		{core.P(3, 3), core.P(3, 4), true},
		{core.P(3, 3), core.P(2, 3), true},
		{core.P(3, 3), core.P(4, 4), false},
		{core.P(3, 3), core.P(3, 3), false},
		{core.P(0, 0), core.P(5, 5), false},
	}

	for _, tc := range testCases {
		if got := tc.a.Adjacent(tc.b); got != tc.expected {
			t.Errorf("%v.Adjacent(%v) = %v, want %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
