package core_test

import (
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

// Match-free fixture: row r is the five types shifted by 2r.
var baseRows = []string{
	"APHWGAPH",
	"HWGAPHWG",
	"GAPHWGAP",
	"PHWGAPHW",
	"WGAPHWGA",
	"APHWGAPH",
	"HWGAPHWG",
	"GAPHWGAP",
}

// Swapping (2,3) with (3,3) completes Apple at (3,2)-(3,4) and nothing else.
var appleSetupRows = []string{
	"APHWGAPH",
	"HWGAPHWG",
	"GAPAWGAP",
	"PHAGAPHW",
	"WGAPHWGA",
	"APHWGAPH",
	"HWGAPHWG",
	"GAPHWGAP",
}

// Grape L: (5,0)-(5,2) horizontally and (5,0)-(7,0) vertically.
var grapeLRows = []string{
	"APHWGAPH",
	"HWGAPHWG",
	"GAPHWGAP",
	"PHWGAPHW",
	"WGAPHWGA",
	"GGGWGAPH",
	"GWGAPHWG",
	"GAPHWGAP",
}

// recorder captures renderer and scorer traffic.
type recorder struct {
	spawned   int
	swaps     [][2]core.Position
	destroyed []core.Position
	falls     []core.FallRequest
	selects   []core.Position
	deselects []core.Position
	events    []core.MatchEvent
	moves     int
	onMatch   func(ev core.MatchEvent)
}

func (r *recorder) SpawnTile(core.Position, core.TileType) { r.spawned++ }
func (r *recorder) SwapTiles(a, b core.Position)           { r.swaps = append(r.swaps, [2]core.Position{a, b}) }
func (r *recorder) DestroyTile(p core.Position)            { r.destroyed = append(r.destroyed, p) }
func (r *recorder) Fall(req core.FallRequest)              { r.falls = append(r.falls, req) }
func (r *recorder) Select(p core.Position)                 { r.selects = append(r.selects, p) }
func (r *recorder) Deselect(p core.Position)               { r.deselects = append(r.deselects, p) }
func (r *recorder) MoveConsumed()                          { r.moves++ }

func (r *recorder) MatchResolved(ev core.MatchEvent) {
	r.events = append(r.events, ev)
	if r.onMatch != nil {
		r.onMatch(ev)
	}
}

// newFixtureSession builds a session over rows with a recorder attached.
func newFixtureSession(rows []string, seed int64) (*core.Session, *recorder) {
	rec := &recorder{}
	s := core.NewSession(core.Options{
		Seed:     seed,
		Grid:     core.MustParseGrid(rows...),
		Renderer: rec,
		Scorer:   rec,
	})
	return s, rec
}
