package core

// Renderer receives the visual side of the engine. Every FallRequest passed
// to Fall must eventually be answered with exactly one Session.CompleteFall.
// Renderers must not call back into the session from inside these methods.
type Renderer interface {
	SpawnTile(p Position, t TileType)
	// SwapTiles reports an accepted swap; the grid already holds the
	// exchanged tiles.
	SwapTiles(a, b Position)
	DestroyTile(p Position)
	Fall(req FallRequest)
	Select(p Position)
	Deselect(p Position)
}

// MatchEvent describes one match destroyed during a cascade pass.
type MatchEvent struct {
	Type       TileType
	Count      int // Tiles in the match, shared cells included
	Multiplier int // Multiplier the match was scored at
	Points     int // Count * Multiplier
	Pass       int // Cascade pass, 1-based
}

// Scorer is the score/objective collaborator. MatchResolved may call
// Session.WinConditionReached synchronously.
type Scorer interface {
	MatchResolved(ev MatchEvent)
	MoveConsumed()
}

// NopRenderer ignores every request. Falls still have to be completed,
// typically with Session.RunToIdle.
type NopRenderer struct{}

func (NopRenderer) SpawnTile(Position, TileType) {}
func (NopRenderer) SwapTiles(Position, Position) {}
func (NopRenderer) DestroyTile(Position)         {}
func (NopRenderer) Fall(FallRequest)             {}
func (NopRenderer) Select(Position)              {}
func (NopRenderer) Deselect(Position)            {}

// NopScorer ignores score events.
type NopScorer struct{}

func (NopScorer) MatchResolved(MatchEvent) {}
func (NopScorer) MoveConsumed()            {}
