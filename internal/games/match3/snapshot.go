package match3

import (
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay checks.
type Snapshot struct {
	Tick       uint64
	Level      string
	Score      int
	MovesLeft  int
	TicksLeft  int
	Objectives [core.NumTypes]int
	Board      string
	Cursor     core.Position
	Multiplier int
	State      GameStateType
	Stars      int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver && g.board.Won():
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.session.Engine().Resolving():
		state = StateResolving
	}

	return Snapshot{
		Tick:       g.tick,
		Level:      g.level.ID,
		Score:      g.board.Score(),
		MovesLeft:  g.board.MovesLeft(),
		TicksLeft:  g.board.TicksLeft(),
		Objectives: g.board.Objectives(),
		Board:      g.session.Grid().String(),
		Cursor:     g.cursor,
		Multiplier: g.session.Engine().Multiplier(),
		State:      state,
		Stars:      g.board.Stars(),
	}
}
