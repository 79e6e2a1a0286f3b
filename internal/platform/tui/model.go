package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/fruitmatch/internal/core"
	"github.com/vovakirdan/fruitmatch/internal/registry"
	"github.com/vovakirdan/fruitmatch/internal/storage"
)

// helpHeight is the number of rows reserved below the game screen.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// resizer is implemented by games that can relayout without a restart.
type resizer interface {
	Resize(width, height int)
}

// Model is the Bubble Tea model for running a level.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model

	journalID uuid.UUID // uuid.Nil when the session is not journaled
	finished  bool      // Whether the journal entry has been closed
	quitting  bool
	back      bool
}

// NewModel creates a new Bubble Tea model for the given game and starts its
// first session. store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       h,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())
	m.startSession(cfg.Seed)
	return m
}

func (m Model) gameHeight() int {
	return max(m.config.ScreenH-helpHeight, 1)
}

// startSession resets the game with seed (0 means time-based) and opens a
// journal entry for it.
func (m *Model) startSession(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.config.Seed = seed

	cfg := m.config
	cfg.ScreenH = m.gameHeight()
	m.game.Reset(cfg)
	m.gameState = m.game.State()
	m.finished = false
	m.journalID = uuid.Nil

	if m.store == nil {
		return
	}
	id, err := m.store.StartSession(m.game.ID(), seed)
	if err != nil {
		m.logger.Warn("journal disabled for session", "err", err)
		return
	}
	m.journalID = id
	m.logger.Info("session journaled", "id", id, "level", m.game.ID(), "seed", seed)
}

// Init starts the tick loop. The session was already started by NewModel.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.inputFrame.SetClick(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.back = true
		return m, tea.Quit
	case action == core.ActionRestart && !m.gameState.GameOver:
		// Restart only applies to a finished game.
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, m.gameHeight())

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, m.gameHeight())
		return m, nil
	}
	if !m.gameState.GameOver {
		m.startSession(m.config.Seed)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.startSession(0)
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.journalSwaps(result.Swaps)

	if m.gameState.GameOver && !m.finished {
		m.finishJournal()
		m.finished = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) journalSwaps(swaps []core.SwapAttempt) {
	if m.journalID == uuid.Nil {
		return
	}
	for _, sw := range swaps {
		_, err := m.store.RecordSwap(m.journalID, storage.SwapRecord{
			ARow: sw.ARow, ACol: sw.ACol,
			BRow: sw.BRow, BCol: sw.BCol,
			Accepted: sw.Accepted,
		})
		if err != nil {
			m.logger.Warn("cannot journal swap", "id", m.journalID, "err", err)
		}
	}
}

func (m Model) finishJournal() {
	if m.journalID == uuid.Nil {
		return
	}
	var board string
	if d, ok := m.game.(registry.BoardDumper); ok {
		board = d.Board()
	}
	st := m.gameState
	if err := m.store.FinishSession(m.journalID, st.Score, st.Moves, st.Won, board); err != nil {
		m.logger.Warn("cannot finish journal entry", "id", m.journalID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".fruitmatch", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// JournalID returns the journal entry of the current session, or uuid.Nil.
func (m Model) JournalID() uuid.UUID {
	return m.journalID
}

// Result reports how the player left the game.
type Result struct {
	Back      bool // Back to the menu rather than quit
	JournalID uuid.UUID
	State     core.GameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (Result, error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return Result{Back: m.back, JournalID: m.journalID, State: m.gameState}, nil
}
