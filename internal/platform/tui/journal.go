package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruitmatch/internal/registry"
	"github.com/vovakirdan/fruitmatch/internal/storage"
)

// Journal layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the level sidebar
	sidebarWidth       = 24  // Width of level sidebar
	maxSessions        = 200 // Max sessions to load
)

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing journaled sessions.
type JournalModel struct {
	levels      []registry.GameInfo
	levelCursor int
	store       *storage.Store
	sessions    []storage.SessionRecord // All loaded sessions, newest first
	stats       map[string]*storage.LevelStats
	table       table.Model
	help        help.Model
	keys        JournalKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewJournalModel creates a new journal browser.
func NewJournalModel(store *storage.Store, width, height int) JournalModel {
	h := help.New()
	h.ShowAll = false

	m := JournalModel{
		levels:      registry.List(),
		store:       store,
		keys:        DefaultJournalKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Session", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Moves", Width: 6},
		{Title: "Result", Width: 8},
		{Title: "Started", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads recent sessions and per-level stats from the store.
func (m *JournalModel) load() {
	if m.store == nil {
		return
	}
	if sessions, err := m.store.RecentSessions(maxSessions); err == nil {
		m.sessions = sessions
	}
	if stats, err := m.store.AllLevelStats(); err == nil {
		m.stats = stats
	}
}

// currentLevel returns the ID of the level being browsed.
func (m JournalModel) currentLevel() string {
	if len(m.levels) == 0 {
		return ""
	}
	return m.levels[m.levelCursor].ID
}

// levelSessions returns the loaded sessions of the current level.
func (m JournalModel) levelSessions() []storage.SessionRecord {
	level := m.currentLevel()
	var out []storage.SessionRecord
	for _, s := range m.sessions {
		if s.Level == level {
			out = append(out, s)
		}
	}
	return out
}

func sessionResult(s storage.SessionRecord) string {
	switch {
	case !s.Finished():
		return "open"
	case s.Won:
		return "won"
	default:
		return "lost"
	}
}

// updateTableRows refills the table for the current level.
func (m *JournalModel) updateTableRows() {
	sessions := m.levelSessions()
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = table.Row{
			s.ID.String()[:8],
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.MovesUsed),
			sessionResult(s),
			s.StartedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.levels) > 0 {
				m.levelCursor = (m.levelCursor + 1) % len(m.levels)
				m.updateTableRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.levels) > 0 {
				m.levelCursor = (m.levelCursor + len(m.levels) - 1) % len(m.levels)
				m.updateTableRows()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "SESSION JOURNAL"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("SESSION JOURNAL - %s", m.levels[m.levelCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderSidebar())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", boxStyle.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar lists the levels with their aggregate stats.
func (m JournalModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Levels\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, l := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.levelCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sb.WriteString(style.Render(cursor + l.Title))
		sb.WriteString("\n")
		if st, ok := m.stats[l.ID]; ok {
			sb.WriteString(menuDescStyle.Render(fmt.Sprintf("    %d played, %d won", st.Sessions, st.Wins)))
			sb.WriteString("\n")
			sb.WriteString(menuDescStyle.Render(fmt.Sprintf("    best %d", st.BestScore)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderTableContent renders the table or empty message.
func (m JournalModel) renderTableContent() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions journaled yet.\nPlay a level to start one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m JournalModel) IsGoingBack() bool {
	return m.goingBack
}

// RunJournal runs the journal browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunJournal(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewJournalModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(JournalModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
