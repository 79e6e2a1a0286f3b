package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitmatch/internal/games/match3"
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
	"github.com/vovakirdan/fruitmatch/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows a list of all registered levels.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	levels := registry.List()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-----------")

	for _, l := range levels {
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, l.ID, l.Title, l.Description)
	}

	fmt.Println()
	fmt.Println("Run 'fruitmatch play <id>' to play a level.")
}

// resolveLevel accepts a level ID or its config number (1 or 2).
// An empty name selects the configured level.
func resolveLevel(name string) (match3.Level, error) {
	if name == "" {
		name = strconv.Itoa(gameCfg.Level)
	}
	if n, err := strconv.Atoi(name); err == nil {
		if l, ok := match3.LevelByKind(core.StrategyKind(n)); ok {
			return l, nil
		}
		return match3.Level{}, fmt.Errorf("unknown level number %d (want 1 or 2)", n)
	}
	if l, ok := match3.LevelByID(name); ok {
		return l, nil
	}
	return match3.Level{}, fmt.Errorf("unknown level %q, run 'fruitmatch list' to see available levels", name)
}
