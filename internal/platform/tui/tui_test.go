package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruitmatch/internal/core"
	"github.com/vovakirdan/fruitmatch/internal/games/match3"
	match3core "github.com/vovakirdan/fruitmatch/internal/games/match3/core"
	"github.com/vovakirdan/fruitmatch/internal/registry"
	"github.com/vovakirdan/fruitmatch/internal/sim"
	"github.com/vovakirdan/fruitmatch/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey("w"), core.ActionUp, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"x", runeKey("x"), core.ActionCancel, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey = (%v, %v), want (%v, %v)", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionJournal},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.SetCell(2, 0, core.Cell{Rune: 'c', Color: core.ColorRed, Bold: true})
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "c", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}
}

func TestMenuListsLevels(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(m.items) != len(registry.List()) || len(m.items) == 0 {
		t.Fatalf("menu has %d items, registry %d", len(m.items), len(registry.List()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(MenuModel).Selected()
	if got == nil || got.LevelID != m.items[1].LevelID {
		t.Fatalf("Selected = %+v, want %s", got, m.items[1].LevelID)
	}

	view := m.View()
	for _, item := range m.items {
		if !strings.Contains(view, item.Title) {
			t.Errorf("menu view missing %q", item.Title)
		}
	}
}

// send applies msg and then one tick, as the program loop would.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	next, _ = next.Update(TickMsg{})
	return next.(Model)
}

func moveTo(t *testing.T, m Model, from, to match3core.Position) Model {
	t.Helper()
	for from.Row < to.Row {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
		from.Row++
	}
	for from.Row > to.Row {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
		from.Row--
	}
	for from.Col < to.Col {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
		from.Col++
	}
	for from.Col > to.Col {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		from.Col--
	}
	return m
}

func TestModelJournalsSessionForReplay(t *testing.T) {
	prev := match3.ActiveConfig()
	t.Cleanup(func() { match3.SetConfig(prev) })
	cfg := prev
	cfg.Session.Moves = 1
	match3.SetConfig(cfg)

	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	game, err := registry.Create("orchard")
	if err != nil {
		t.Fatalf("registry.Create: %v", err)
	}
	const seed = 4242
	m := NewModel(game, store, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: seed})
	if m.JournalID().String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("session was not journaled")
	}

	g := game.(*match3.Game)
	valid := g.Session().ValidSwaps()
	if len(valid) == 0 {
		t.Fatal("seeded board has no valid swap")
	}
	a, b := valid[0][0], valid[0][1]

	cursor := match3core.P(match3core.Size/2, match3core.Size/2)
	m = moveTo(t, m, cursor, a)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = moveTo(t, m, a, b)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})

	for i := 0; i < 2000 && !m.gameState.GameOver; i++ {
		m = send(t, m, TickMsg{})
	}
	if !m.gameState.GameOver {
		t.Fatal("game did not end after the only move")
	}

	rec, err := store.Session(m.JournalID())
	if err != nil {
		t.Fatalf("store.Session: %v", err)
	}
	if !rec.Finished() || rec.Seed != seed || rec.Level != "orchard" || rec.MovesUsed != 1 {
		t.Fatalf("unexpected journal record %+v", rec)
	}

	swaps, err := store.Swaps(m.JournalID())
	if err != nil {
		t.Fatalf("store.Swaps: %v", err)
	}
	if len(swaps) != 1 || !swaps[0].Accepted {
		t.Fatalf("journaled swaps = %+v, want one accepted", swaps)
	}

	moves := []sim.Move{{
		A:        match3core.P(swaps[0].ARow, swaps[0].ACol),
		B:        match3core.P(swaps[0].BRow, swaps[0].BCol),
		Accepted: swaps[0].Accepted,
	}}
	res, err := sim.Replay(match3core.KindGravity, cfg, rec.Seed, moves, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Board != rec.FinalBoard {
		t.Errorf("replayed board differs\nreplay:\n%s\njournal:\n%s", res.Board, rec.FinalBoard)
	}
	if res.Score != rec.Score {
		t.Errorf("replayed score %d, journal %d", res.Score, rec.Score)
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	game, err := registry.Create("vineyard")
	if err != nil {
		t.Fatalf("registry.Create: %v", err)
	}
	m := NewModel(game, nil, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 9})
	before := game.(*match3.Game).Board()

	m = send(t, m, runeKey("r"))
	if after := game.(*match3.Game).Board(); after != before {
		t.Error("restart applied while the game was running")
	}
	if m.config.Seed != 9 {
		t.Errorf("seed changed to %d", m.config.Seed)
	}
}
