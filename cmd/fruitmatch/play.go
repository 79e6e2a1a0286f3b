package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fruitmatch/internal/core"
	"github.com/vovakirdan/fruitmatch/internal/platform/tui"
	"github.com/vovakirdan/fruitmatch/internal/registry"
	"github.com/vovakirdan/fruitmatch/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level, or the level set in the config.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Select a fruit, then a neighbour to swap
  Mouse click  - Select or swap the clicked fruit
  X            - Drop the selection
  P            - Pause (not while fruit is falling)
  R            - Restart (after game over)
  Esc          - Leave the level
  Q/Ctrl+C     - Quit

Difficulty options:
  easy     - 20 moves, 120 s, 2 of each fruit
  normal   - values from the config (15 moves, 90 s, 3 of each)
  hard     - 10 moves, 60 s, 4 of each fruit
  untimed  - no timer

Examples:
  fruitmatch play
  fruitmatch play orchard
  fruitmatch play 2 --difficulty hard
  fruitmatch play vineyard --seed 42
  fruitmatch play --config ./my-fruitmatch.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openJournal opens the journal, or returns nil with a warning so play can
// continue without it.
func openJournal() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session journal: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	level, err := resolveLevel(name)
	if err != nil {
		return err
	}

	game, err := registry.Create(level.ID)
	if err != nil {
		return fmt.Errorf("creating level: %w", err)
	}

	store := openJournal()
	if store != nil {
		defer store.Close()
	}

	res, err := tui.Run(game, store, logger, terminalConfig())
	if err != nil {
		return fmt.Errorf("running level: %w", err)
	}
	if st := res.State; st.GameOver {
		fmt.Printf("%s: score %d in %d moves", level.Title, st.Score, st.Moves)
		if st.Won {
			fmt.Printf(", won with %d star(s)", st.Stars)
		}
		fmt.Println()
	}
	if res.JournalID != uuid.Nil {
		fmt.Printf("Session %s (replay with 'fruitmatch replay %s')\n", res.JournalID, res.JournalID)
	}
	return nil
}
