package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func summaryRow(name string, s Summary) []string {
	return []string{
		name,
		fmt.Sprintf("%.2f", s.Mean),
		fmt.Sprintf("%.2f", s.StdDev),
		fmt.Sprintf("%.0f", s.P50),
		fmt.Sprintf("%.0f", s.P90),
		fmt.Sprintf("%.0f", s.Max),
	}
}

// Write prints the report as two tables.
func (r Report) Write(w io.Writer, used time.Duration) error {
	stats := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("metric", "mean", "stddev", "p50", "p90", "max").
		Row(summaryRow("score", r.Score)...).
		Row(summaryRow("passes/move", r.Passes)...).
		Row(summaryRow("points/move", r.MovePoints)...)

	spawn := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("fruit", "share")
	for i, share := range r.SpawnShare {
		spawn.Row(core.TypeAt(i).String(), fmt.Sprintf("%.1f%%", share*100))
	}

	_, err := fmt.Fprintf(w,
		"%s refill: %d runs, %d moves in %s\nwin rate %.1f%%  stuck %.1f%%  cascade limit hits %d\n%s\n%s\n",
		r.Kind, r.Runs, r.Moves, used.Round(time.Millisecond),
		r.WinRate*100, r.StuckRate*100, r.CascadeLimit,
		stats.Render(), spawn.Render(),
	)
	return err
}
