package match3

import (
	"testing"

	"github.com/vovakirdan/fruitmatch/internal/config"
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

func TestScoreboardObjectivesAndWin(t *testing.T) {
	wins := 0
	sb := NewScoreboard(config.DefaultMatch3Config().Session, 30, func() { wins++ })

	for round := 0; round < 3; round++ {
		for _, tt := range core.AllTypes() {
			sb.MatchResolved(core.MatchEvent{Type: tt, Count: 3, Multiplier: 2, Points: 6})
		}
	}

	if !sb.Won() || wins != 1 {
		t.Errorf("Won() = %v, onWin calls = %d; want true, 1", sb.Won(), wins)
	}
	if sb.Score() != 15*6 {
		t.Errorf("Score() = %d, want %d", sb.Score(), 15*6)
	}

	// Further matches keep scoring but never re-trigger the win or go negative.
	sb.MatchResolved(core.MatchEvent{Type: core.Apple, Count: 4, Multiplier: 5, Points: 20})
	if wins != 1 {
		t.Error("onWin fired twice")
	}
	if sb.Objectives()[core.Apple.Index()] != 0 {
		t.Error("objective went below zero")
	}
	if sb.LastEvent().Points != 20 {
		t.Errorf("LastEvent = %+v", sb.LastEvent())
	}
}

func TestScoreboardMovesAndTimer(t *testing.T) {
	cfg := config.SessionConfig{Moves: 2, TimeLimitSecs: 1, ObjectivePerType: 3, StarThresholds: []int{0, 500, 1000}}
	sb := NewScoreboard(cfg, 5, nil)

	sb.MoveConsumed()
	if sb.Exhausted() {
		t.Fatal("exhausted with a move left")
	}
	sb.MoveConsumed()
	if !sb.Exhausted() || sb.MovesUsed() != 2 {
		t.Errorf("Exhausted() = %v, MovesUsed() = %d", sb.Exhausted(), sb.MovesUsed())
	}

	sb = NewScoreboard(cfg, 5, nil)
	for i := 0; i < 4; i++ {
		sb.Tick()
	}
	if sb.Exhausted() {
		t.Fatal("timer expired early")
	}
	sb.Tick()
	sb.Tick()
	if !sb.Exhausted() || sb.TicksLeft() != 0 {
		t.Errorf("TicksLeft() = %d", sb.TicksLeft())
	}
}

func TestScoreboardStarsOnlyOnWin(t *testing.T) {
	cfg := config.DefaultMatch3Config().Session
	cfg.ObjectivePerType = 1
	sb := NewScoreboard(cfg, 30, nil)

	sb.MatchResolved(core.MatchEvent{Type: core.Apple, Points: 600})
	if sb.Stars() != 0 {
		t.Errorf("Stars() = %d before win, want 0", sb.Stars())
	}

	for _, tt := range core.AllTypes()[1:] {
		sb.MatchResolved(core.MatchEvent{Type: tt, Points: 100})
	}
	if sb.Stars() != 3 {
		t.Errorf("Stars() = %d with score %d, want 3", sb.Stars(), sb.Score())
	}
}
