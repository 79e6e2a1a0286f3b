package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitmatch/internal/platform/tui"
	"github.com/vovakirdan/fruitmatch/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
Press Esc in a level to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Browse the session journal
  Q            - Quit

Examples:
  fruitmatch menu
  fruitmatch menu --fps 60
  fruitmatch menu --db ./journal.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openJournal()
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsJournal {
			goBack, jErr := tui.RunJournal(store, cfg.ScreenW, cfg.ScreenH)
			if jErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", jErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(menuResult.LevelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
			continue
		}

		// Each game gets a fresh seed unless one was pinned.
		res, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
			continue
		}
		if !res.Back {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
