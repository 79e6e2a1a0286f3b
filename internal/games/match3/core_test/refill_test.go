package core_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

func TestDrawNeverPicksZeroWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := []float64{0, 3, 0, 1, 0}

	for i := 0; i < 5000; i++ {
		idx := core.Draw(rng, weights)
		if idx < 0 || idx >= len(weights) {
			t.Fatalf("Draw() = %d, out of range", idx)
		}
		if weights[idx] <= 0 {
			t.Fatalf("Draw() = %d, which has weight %v", idx, weights[idx])
		}
	}
}

func TestDrawPanicsWithoutPositiveWeight(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Draw with all-zero weights did not panic")
		}
	}()
	core.Draw(rand.New(rand.NewSource(1)), []float64{0, 0, 0})
}

func TestDrawDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := []float64{1, 2, 3, 4}
	const n = 40000

	counts := make([]int, len(weights))
	for i := 0; i < n; i++ {
		counts[core.Draw(rng, weights)]++
	}

	for i, w := range weights {
		want := w / 10
		got := float64(counts[i]) / n
		if math.Abs(got-want) > 0.015 {
			t.Errorf("index %d frequency = %.3f, want %.3f", i, got, want)
		}
	}
}

func TestBiasedWeights(t *testing.T) {
	w := core.BiasedWeights(core.Peach, 60, 100)

	if w[core.Peach.Index()] != 60 {
		t.Errorf("favored weight = %v, want 60", w[core.Peach.Index()])
	}
	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum != 100 {
		t.Errorf("sum = %v, want 100", sum)
	}
	if w[core.Apple.Index()] != 10 {
		t.Errorf("other weight = %v, want 10", w[core.Apple.Index()])
	}
}

func TestIdentifyReplacementsPartitionsCells(t *testing.T) {
	g := core.MustParseGrid(grapeLRows...)
	matches := core.Scan(g)

	for seed := int64(0); seed < 20; seed++ {
		ordered, _ := core.IdentifyReplacements(rand.New(rand.NewSource(seed)), g, matches)

		if len(ordered) != len(matches) {
			t.Fatalf("seed %d: got %d matches, want %d", seed, len(ordered), len(matches))
		}
		seen := make(map[core.Position]int)
		for _, m := range ordered {
			for _, c := range m.Cells {
				seen[c]++
			}
		}
		if len(seen) != 5 {
			t.Errorf("seed %d: %d distinct cells, want 5", seed, len(seen))
		}
		for c, n := range seen {
			if n != 1 {
				t.Errorf("seed %d: cell %v claimed %d times", seed, c, n)
			}
		}
	}

	if len(matches[0].Cells) != 3 || len(matches[1].Cells) != 3 {
		t.Error("IdentifyReplacements modified its input")
	}
}

func TestLowestEmptyRows(t *testing.T) {
	g := core.MustParseGrid(baseRows...)
	g.Set(core.P(0, 1), core.Empty)
	g.Set(core.P(1, 1), core.Empty)
	g.Set(core.P(3, 4), core.Empty)

	lowest := core.LowestEmptyRows(g)

	want := [core.Size]int{-1, 1, -1, -1, 3, -1, -1, -1}
	if lowest != want {
		t.Errorf("LowestEmptyRows() = %v, want %v", lowest, want)
	}
}

// sampleFill runs strategy once per iteration on a fresh pointer array and
// returns how often each type was drawn. The grid is never written.
func sampleFill(t *testing.T, s core.RefillStrategy, g *core.Grid, m core.Match, lowest [core.Size]int, n int) [core.NumTypes]float64 {
	t.Helper()

	var counts [core.NumTypes]int
	f := core.NewFiller(g, rand.New(rand.NewSource(42)), func(p core.Position, tt core.TileType) {
		counts[tt.Index()]++
	})
	for i := 0; i < n; i++ {
		l := lowest
		s.Fill(f, []core.Match{m}, &l)
	}

	var freq [core.NumTypes]float64
	for i, c := range counts {
		freq[i] = float64(c) / float64(n)
	}
	return freq
}

func gravityFixture() (*core.Grid, [core.Size]int) {
	g := core.MustParseGrid(baseRows...)
	for r := 0; r < 7; r++ {
		g.Set(core.P(r, 0), core.Empty)
	}
	g.Set(core.P(7, 0), core.Peach)
	return g, core.LowestEmptyRows(g)
}

func TestGravityFillBiasTowardTileBelow(t *testing.T) {
	g, lowest := gravityFixture()
	if lowest[0] != 6 {
		t.Fatalf("lowest[0] = %d, want 6", lowest[0])
	}

	testCases := []struct {
		name      string
		dir       core.Direction
		wantPeach float64
		wantOther float64
	}{
		{"horizontal cell uses bias weight", core.Horizontal, 0.60, 0.10},
		{"first vertical cell uses first weight", core.Vertical, 0.40, 0.15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := core.Match{Type: core.Apple, Direction: tc.dir, Cells: []core.Position{core.P(6, 0)}}
			freq := sampleFill(t, core.DefaultGravityFill(), g, m, lowest, 20000)

			for _, tt := range core.AllTypes() {
				want := tc.wantOther
				if tt == core.Peach {
					want = tc.wantPeach
				}
				if got := freq[tt.Index()]; math.Abs(got-want) > 0.02 {
					t.Errorf("%v frequency = %.3f, want %.2f", tt, got, want)
				}
			}
		})
	}
}

func TestGravityFillBottomRowIsUniform(t *testing.T) {
	g := core.MustParseGrid(baseRows...)
	g.Set(core.P(7, 3), core.Empty)
	m := core.Match{Type: core.Apple, Direction: core.Horizontal, Cells: []core.Position{core.P(7, 3)}}

	freq := sampleFill(t, core.DefaultGravityFill(), g, m, core.LowestEmptyRows(g), 20000)

	for i, got := range freq {
		if math.Abs(got-0.2) > 0.02 {
			t.Errorf("%v frequency = %.3f, want 0.20", core.TypeAt(i), got)
		}
	}
}

func TestGravityFillSkipsFullColumn(t *testing.T) {
	g := core.MustParseGrid(baseRows...)
	m := core.Match{Type: core.Apple, Direction: core.Vertical, Cells: []core.Position{core.P(2, 2), core.P(3, 2), core.P(4, 2)}}

	spawned := 0
	f := core.NewFiller(g, rand.New(rand.NewSource(1)), func(core.Position, core.TileType) { spawned++ })
	lowest := core.LowestEmptyRows(g)
	core.DefaultGravityFill().Fill(f, []core.Match{m, {Direction: core.Vertical}}, &lowest)

	if spawned != 0 {
		t.Errorf("spawned %d tiles into full columns", spawned)
	}
}

func TestDensityFillFavorsSurroundingType(t *testing.T) {
	g := core.NewGrid()
	center := core.P(3, 3)
	for _, n := range g.Surrounding(center) {
		g.Set(n, core.Grape)
	}
	var lowest [core.Size]int
	for i := range lowest {
		lowest[i] = -1
	}
	lowest[3] = 3
	m := core.Match{Type: core.Apple, Direction: core.Horizontal, Cells: []core.Position{center}}

	freq := sampleFill(t, core.NeighborDensityFill{}, g, m, lowest, 20000)

	// Grape weighs 1+8 against 1 for each of the others.
	if got := freq[core.Grape.Index()]; math.Abs(got-9.0/13) > 0.02 {
		t.Errorf("Grape frequency = %.3f, want %.3f", got, 9.0/13)
	}
	if got := freq[core.Apple.Index()]; math.Abs(got-1.0/13) > 0.02 {
		t.Errorf("Apple frequency = %.3f, want %.3f", got, 1.0/13)
	}
}

func TestStrategyFor(t *testing.T) {
	s, err := core.StrategyFor(core.KindGravity, core.DefaultGravityFill())
	if err != nil || s.Kind() != core.KindGravity {
		t.Errorf("StrategyFor(gravity) = %v, %v", s, err)
	}
	s, err = core.StrategyFor(core.KindDensity, core.DefaultGravityFill())
	if err != nil || s.Kind() != core.KindDensity {
		t.Errorf("StrategyFor(density) = %v, %v", s, err)
	}
	if _, err := core.StrategyFor(core.StrategyKind(9), core.DefaultGravityFill()); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
