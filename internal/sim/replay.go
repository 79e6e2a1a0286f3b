package sim

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruitmatch/internal/config"
	"github.com/vovakirdan/fruitmatch/internal/games/match3"
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

// Move is one recorded swap attempt.
type Move struct {
	A, B     core.Position
	Accepted bool
}

// ReplayResult is the state reached after re-applying a journal.
type ReplayResult struct {
	Board     string
	Score     int
	MovesUsed int
	Won       bool
	Stars     int
	Accepted  int
	Rejected  int
}

// ErrReplayDiverged is returned when a recorded outcome does not match the
// outcome observed during replay.
var ErrReplayDiverged = errors.New("sim: replay diverged from journal")

// headless bundles a session with its scoreboard, wired the same way the
// interactive game wires them.
type headless struct {
	session *core.Session
	board   *match3.Scoreboard
}

func newHeadless(kind core.StrategyKind, cfg config.Match3Config, seed int64, logger *log.Logger) (*headless, error) {
	strategy, err := match3.StrategyFor(kind, cfg)
	if err != nil {
		return nil, err
	}
	h := &headless{}
	// The time limit does not apply off-screen; tickRate only sizes the timer.
	h.board = match3.NewScoreboard(cfg.Session, 1, func() {
		h.session.WinConditionReached()
	})
	h.session = core.NewSession(core.Options{
		Seed:      seed,
		Strategy:  strategy,
		Scorer:    h.board,
		Logger:    logger,
		MaxPasses: cfg.Cascade.MaxPasses,
	})
	return h, nil
}

// Replay rebuilds a session from its seed and re-applies every recorded
// swap, running each accepted cascade to completion. Recorded acceptance
// flags are checked against the replayed outcome.
func Replay(kind core.StrategyKind, cfg config.Match3Config, seed int64, moves []Move, logger *log.Logger) (ReplayResult, error) {
	h, err := newHeadless(kind, cfg, seed, logger)
	if err != nil {
		return ReplayResult{}, err
	}

	var res ReplayResult
	for i, m := range moves {
		out, err := h.session.Swap(m.A, m.B)
		if err != nil {
			return res, fmt.Errorf("sim: move %d: %w", i, err)
		}
		if out.Accepted != m.Accepted {
			return res, fmt.Errorf("%w: move %d %v<->%v recorded accepted=%t", ErrReplayDiverged, i, m.A, m.B, m.Accepted)
		}
		if !out.Accepted {
			res.Rejected++
			continue
		}
		res.Accepted++
		h.session.RunToIdle()
		if err := h.session.Engine().Err(); err != nil {
			return res, fmt.Errorf("sim: move %d: %w", i, err)
		}
	}

	res.Board = h.session.Grid().String()
	res.Score = h.board.Score()
	res.MovesUsed = h.board.MovesUsed()
	res.Won = h.board.Won()
	res.Stars = h.board.Stars()
	return res, nil
}
