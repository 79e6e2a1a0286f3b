package match3

import (
	"github.com/vovakirdan/fruitmatch/internal/config"
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

// Scoreboard tracks score, remaining moves, the timer and the per-fruit
// objectives. It is the session's Scorer.
type Scoreboard struct {
	cfg config.SessionConfig

	score      int
	movesLeft  int
	movesUsed  int
	ticksLeft  int
	timed      bool
	objectives [core.NumTypes]int
	won        bool
	lastEvent  core.MatchEvent

	onWin func()
}

// NewScoreboard creates a scoreboard for one session. onWin runs once, the
// first time every objective reaches zero.
func NewScoreboard(cfg config.SessionConfig, tickRate int, onWin func()) *Scoreboard {
	sb := &Scoreboard{
		cfg:       cfg,
		movesLeft: cfg.Moves,
		ticksLeft: cfg.TimeLimitTicks(tickRate),
		timed:     cfg.TimeLimitSecs > 0,
		onWin:     onWin,
	}
	for i := range sb.objectives {
		sb.objectives[i] = cfg.ObjectivePerType
	}
	return sb
}

// MatchResolved implements core.Scorer.
func (sb *Scoreboard) MatchResolved(ev core.MatchEvent) {
	sb.score += ev.Points
	sb.lastEvent = ev

	if i := ev.Type.Index(); sb.objectives[i] > 0 {
		sb.objectives[i]--
	}
	if sb.won {
		return
	}
	for _, left := range sb.objectives {
		if left > 0 {
			return
		}
	}
	sb.won = true
	if sb.onWin != nil {
		sb.onWin()
	}
}

// MoveConsumed implements core.Scorer.
func (sb *Scoreboard) MoveConsumed() {
	sb.movesUsed++
	if sb.movesLeft > 0 {
		sb.movesLeft--
	}
}

// Tick counts one tick off the timer.
func (sb *Scoreboard) Tick() {
	if sb.timed && sb.ticksLeft > 0 {
		sb.ticksLeft--
	}
}

// Exhausted reports whether the moves or the time ran out.
func (sb *Scoreboard) Exhausted() bool {
	return sb.movesLeft <= 0 || (sb.timed && sb.ticksLeft <= 0)
}

// Score returns the total points.
func (sb *Scoreboard) Score() int { return sb.score }

// MovesLeft returns the remaining move budget.
func (sb *Scoreboard) MovesLeft() int { return sb.movesLeft }

// MovesUsed returns the number of accepted swaps.
func (sb *Scoreboard) MovesUsed() int { return sb.movesUsed }

// Timed reports whether the session has a time limit.
func (sb *Scoreboard) Timed() bool { return sb.timed }

// TicksLeft returns the remaining timer ticks.
func (sb *Scoreboard) TicksLeft() int { return sb.ticksLeft }

// Objectives returns the matches still required per fruit, indexed by TileType.Index.
func (sb *Scoreboard) Objectives() [core.NumTypes]int { return sb.objectives }

// Won reports whether every objective was met.
func (sb *Scoreboard) Won() bool { return sb.won }

// LastEvent returns the most recent match event.
func (sb *Scoreboard) LastEvent() core.MatchEvent { return sb.lastEvent }

// Stars returns the star rating, which is zero unless the session was won.
func (sb *Scoreboard) Stars() int {
	if !sb.won {
		return 0
	}
	return sb.cfg.Stars(sb.score)
}
