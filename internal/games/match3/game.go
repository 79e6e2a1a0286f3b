// Package match3 is the fruitmatch arcade game: a tick-driven wrapper around
// the resolution engine that owns the cursor, the fall animations, the
// scoreboard and the end-of-game rules.
package match3

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruitmatch/internal/config"
	platformcore "github.com/vovakirdan/fruitmatch/internal/core"
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

// messageTicks is how long a status line stays visible.
const messageTicks = 45

// EndReason explains why a session ended.
type EndReason string

const (
	EndNone      EndReason = ""
	EndObjective EndReason = "objectives complete"
	EndMoves     EndReason = "out of moves"
	EndTime      EndReason = "time is up"
	EndStuck     EndReason = "no swaps left"
)

// Game implements registry.Game for one level.
type Game struct {
	level  Level
	cfg    config.Match3Config
	logger *log.Logger

	runtime platformcore.RuntimeConfig
	layout  layout

	session  *core.Session
	board    *Scoreboard
	animator *Animator

	cursor    core.Position
	tick      uint64
	paused    bool
	tooSmall  bool
	gameOver  bool
	endReason EndReason
	message   string
	msgTicks  int
	swaps     []platformcore.SwapAttempt
}

// New creates a game for the given level.
func New(level Level) *Game {
	return &Game{level: level}
}

// ID returns the level identifier.
func (g *Game) ID() string { return g.level.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.level.Title }

// Description returns the level blurb shown in menus.
func (g *Game) Description() string { return g.level.Description }

// Level returns the level definition.
func (g *Game) Level() Level { return g.level }

// Session exposes the underlying engine session.
func (g *Game) Session() *core.Session { return g.session }

// Scoreboard exposes the score collaborator.
func (g *Game) Scoreboard() *Scoreboard { return g.board }

// Reset starts a new session seeded from cfg.Seed with the active config.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = platformcore.DefaultConfig().TickRate
	}
	g.runtime = cfg
	g.cfg = activeConfig
	g.logger = activeLogger.With("level", g.level.ID)

	strategy, err := StrategyFor(g.level.Kind, g.cfg)
	if err != nil {
		g.logger.Warn("falling back to gravity refill", "err", err)
		strategy = core.DefaultGravityFill()
	}

	g.animator = NewAnimator(g.cfg.Animation.FallTicks)
	g.board = NewScoreboard(g.cfg.Session, cfg.TickRate, g.onWin)
	g.session = core.NewSession(core.Options{
		Seed:      cfg.Seed,
		Strategy:  strategy,
		Renderer:  g.animator,
		Scorer:    g.board,
		Logger:    g.logger,
		MaxPasses: g.cfg.Cascade.MaxPasses,
	})

	g.cursor = core.P(core.Size/2, core.Size/2)
	g.tick = 0
	g.paused = false
	g.gameOver = false
	g.endReason = EndNone
	g.message = ""
	g.msgTicks = 0
	g.swaps = nil
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.logger.Debug("session started", "seed", cfg.Seed, "strategy", strategy.Kind())
}

// Resize recomputes the layout without touching the session.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.layout = computeLayout(width, height)
	g.tooSmall = !g.layout.fits
}

// onWin forwards the scoreboard's win signal to the engine.
func (g *Game) onWin() {
	g.session.WinConditionReached()
	g.say("All objectives complete! Bonus multiplier +2")
	g.logger.Info("objectives complete", "score", g.board.Score(), "moves_used", g.board.MovesUsed())
}

func (g *Game) say(msg string) {
	g.message = msg
	g.msgTicks = messageTicks
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.swaps = g.swaps[:0]

	if g.tooSmall || g.gameOver {
		return g.result()
	}

	if in.Has(platformcore.ActionPause) {
		g.togglePause()
	}
	if g.paused {
		return g.result()
	}

	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}

	g.board.Tick()
	g.animator.Tick(g.session)
	if g.session.Engine().Resolving() {
		g.session.Advance()
		if err := g.session.Engine().Err(); err != nil && !g.session.Engine().Resolving() {
			g.say("Cascade stopped early")
		}
	}

	g.handleInput(in)
	g.checkEnd()
	return g.result()
}

// togglePause pauses or resumes. Pausing is refused during a cascade.
func (g *Game) togglePause() {
	if g.paused {
		g.paused = false
		return
	}
	if g.session.Engine().Resolving() {
		g.say("Cannot pause while fruit is falling")
		return
	}
	g.paused = true
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	switch {
	case in.Has(platformcore.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(platformcore.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(platformcore.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(platformcore.ActionRight):
		g.moveCursor(0, 1)
	}

	if in.Has(platformcore.ActionCancel) {
		g.session.ClearSelection()
	}

	if in.Click {
		p, ok := g.layout.cellAt(in.ClickX, in.ClickY)
		if !ok {
			return
		}
		g.cursor = p
		g.activate(p)
		return
	}
	if in.Has(platformcore.ActionSelect) {
		g.activate(g.cursor)
	}
}

func (g *Game) moveCursor(dRow, dCol int) {
	g.cursor = core.P(
		platformcore.Clamp(g.cursor.Row+dRow, 0, core.Size-1),
		platformcore.Clamp(g.cursor.Col+dCol, 0, core.Size-1),
	)
}

// activate applies a select-or-swap at p and records swap attempts.
func (g *Game) activate(p core.Position) {
	first, hadSelection := g.session.Selected()

	out, err := g.session.SelectOrSwap(p)
	switch {
	case errors.Is(err, core.ErrResolving):
		return
	case err != nil:
		g.logger.Warn("input rejected", "cell", p, "err", err)
		return
	}

	if out.Kind != core.Swapped || !hadSelection {
		return
	}

	g.swaps = append(g.swaps, platformcore.SwapAttempt{
		ARow: first.Row, ACol: first.Col,
		BRow: p.Row, BCol: p.Col,
		Accepted: out.Swap.Accepted,
	})

	switch {
	case errors.Is(out.Swap.Reason, core.ErrNotAdjacent):
		g.say("Pick a neighbouring fruit")
	case errors.Is(out.Swap.Reason, core.ErrNoMatch):
		g.say("No match")
	}
}

// checkEnd ends the session once the board is stable and a limit is reached.
func (g *Game) checkEnd() {
	if g.session.Engine().Resolving() || g.animator.Busy() {
		return
	}

	reason := EndNone
	switch {
	case g.board.Exhausted():
		reason = EndTime
		if g.board.MovesLeft() <= 0 {
			reason = EndMoves
		}
	case len(g.session.ValidSwaps()) == 0:
		reason = EndStuck
	}
	if reason == EndNone {
		return
	}
	if g.board.Won() {
		g.endReason = EndObjective
	} else {
		g.endReason = reason
	}
	g.gameOver = true
	g.session.End()
	g.logger.Info("session ended",
		"reason", reason,
		"won", g.board.Won(),
		"score", g.board.Score(),
		"stars", g.board.Stars(),
		"moves_used", g.board.MovesUsed(),
	)
}

func (g *Game) result() platformcore.StepResult {
	res := platformcore.StepResult{State: g.State()}
	if len(g.swaps) > 0 {
		res.Swaps = append([]platformcore.SwapAttempt(nil), g.swaps...)
	}
	return res
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.board == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:    g.board.Score(),
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
		Won:      g.board.Won(),
		Stars:    g.board.Stars(),
		Moves:    g.board.MovesUsed(),
	}
}

// EndReason returns why the session ended, or EndNone while playing.
func (g *Game) EndReason() EndReason { return g.endReason }

// Board returns the current board dump, one row per line.
func (g *Game) Board() string { return g.session.Grid().String() }
