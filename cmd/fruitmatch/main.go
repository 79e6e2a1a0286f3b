// fruitmatch is a fruit-matching puzzle for the terminal.
//
// Usage:
//
//	fruitmatch list                - List available levels
//	fruitmatch play [level]        - Play a level (default from config)
//	fruitmatch menu                - Start menu to pick levels interactively
//	fruitmatch sessions            - List journaled sessions
//	fruitmatch replay <session-id> - Re-run a journaled session headlessly
//	fruitmatch sim                 - Autoplay sessions and report statistics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set journal path (default: ~/.fruitmatch/journal.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard, untimed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitmatch/internal/config"
	"github.com/vovakirdan/fruitmatch/internal/games/match3"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger  = log.New(io.Discard)
	logFile *os.File
	gameCfg = config.DefaultMatch3Config()
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fruitmatch",
	Short: "Fruit Match - a match-3 puzzle in your terminal",
	Long: `Fruit Match is a terminal match-3 puzzle. Swap neighbouring fruit to
line up three or more of a kind, clear every fruit objective before your
moves or time run out, and chain cascades for a growing multiplier.

Available commands:
  list      - Show all levels
  play      - Play a level directly
  menu      - Interactive level picker
  sessions  - List journaled sessions
  replay    - Re-run a journaled session and verify its result
  sim       - Autoplay many sessions and report cascade statistics

Examples:
  fruitmatch list
  fruitmatch play orchard
  fruitmatch play vineyard --difficulty untimed
  fruitmatch menu
  fruitmatch replay 6f1c2a7e-...
  fruitmatch sim --level 2 --runs 1000`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fruitmatch/journal.db", "Path to the session journal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, untimed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive commands log nowhere otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(simCmd)
}

// interactive reports whether cmd takes over the terminal.
func interactive(cmd *cobra.Command) bool {
	return cmd == playCmd || cmd == menuCmd
}

// setup builds the logger and loads the configuration for every command.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS < 1 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case interactive(cmd):
		// The TUI owns the terminal.
		w = io.Discard
	}
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fruitmatch",
		Level:           level,
	})

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	gameCfg, err = config.LoadWithPreset(flagConfig, preset)
	if err != nil {
		return err
	}
	match3.SetConfig(gameCfg)
	match3.SetLogger(logger)
	logger.Debug("configuration loaded", "level", gameCfg.Level, "moves", gameCfg.Session.Moves, "preset", preset)
	return nil
}
