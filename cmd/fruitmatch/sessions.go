package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitmatch/internal/storage"
)

var flagSessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List journaled sessions",
	Long: `Display the most recent sessions from the journal, newest first,
followed by per-level totals.

Examples:
  fruitmatch sessions
  fruitmatch sessions --limit 50`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 20, "Number of sessions to show")
}

func runSessions(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagSessionsLimit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions journaled yet.")
		fmt.Println()
		fmt.Println("Play 'fruitmatch play' to record one.")
		return nil
	}

	fmt.Printf("  %-36s  %-8s  %-6s  %-5s  %-6s  %s\n", "ID", "Level", "Score", "Moves", "Result", "Started")
	fmt.Printf("  %-36s  %-8s  %-6s  %-5s  %-6s  %s\n", "--", "-----", "-----", "-----", "------", "-------")
	for _, s := range sessions {
		result := "open"
		if s.Finished() {
			result = "lost"
			if s.Won {
				result = "won"
			}
		}
		fmt.Printf("  %-36s  %-8s  %-6d  %-5d  %-6s  %s\n",
			s.ID, s.Level, s.Score, s.MovesUsed, result, s.StartedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}
	if len(stats) > 0 {
		fmt.Println()
		for level, st := range stats {
			fmt.Printf("%s: %d finished, %d won, best %d, average %.1f\n",
				level, st.Sessions, st.Wins, st.BestScore, st.AvgScore)
		}
	}
	return nil
}
