// Package sim plays match-3 sessions without a screen: batch autoplay for
// tuning refill weights and deterministic replay of recorded sessions.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/fruitmatch/internal/config"
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

// chooserSalt keeps the move picker's stream independent of the board stream.
const chooserSalt = 0x5eed_f00d

// Options configures a batch run.
type Options struct {
	Kind    core.StrategyKind
	Config  config.Match3Config
	Runs    int
	Seed    int64 // Run i uses Seed+i
	Workers int
	// Progress shows a progress bar on stderr.
	Progress bool
	Logger   *log.Logger
}

// RunResult summarizes one autoplayed session.
type RunResult struct {
	Seed         int64
	Score        int
	MovesUsed    int
	Won          bool
	Stuck        bool // no valid swap was left before moves ran out
	CascadeLimit bool
	Passes       []int // per accepted move
	Points       []int // per accepted move
	Spawned      [core.NumTypes]int
}

// Autoplay plays one session to the end of its move budget, choosing a
// uniformly random valid swap each turn.
func Autoplay(kind core.StrategyKind, cfg config.Match3Config, seed int64, logger *log.Logger) (RunResult, error) {
	h, err := newHeadless(kind, cfg, seed, logger)
	if err != nil {
		return RunResult{}, err
	}
	chooser := rand.New(rand.NewSource(seed ^ chooserSalt))
	res := RunResult{Seed: seed}

	for h.board.MovesLeft() > 0 {
		valid := h.session.ValidSwaps()
		if len(valid) == 0 {
			res.Stuck = true
			break
		}
		pick := valid[chooser.Intn(len(valid))]
		out, err := h.session.Swap(pick[0], pick[1])
		if err != nil {
			return res, err
		}
		if !out.Accepted {
			return res, fmt.Errorf("sim: valid swap %v<->%v rejected: %w", pick[0], pick[1], out.Err())
		}

		stats := h.session.RunToIdle()
		if err := h.session.Engine().Err(); err != nil {
			if !errors.Is(err, core.ErrCascadeLimit) {
				return res, err
			}
			res.CascadeLimit = true
		}
		res.Passes = append(res.Passes, stats.Passes)
		res.Points = append(res.Points, stats.Points)
		for i, n := range stats.Spawned {
			res.Spawned[i] += n
		}
	}

	res.Score = h.board.Score()
	res.MovesUsed = h.board.MovesUsed()
	res.Won = h.board.Won()
	return res, nil
}

// Summary is a descriptive statistic over one sample.
type Summary struct {
	Mean, StdDev float64
	P50, P90     float64
	Max          float64
}

func summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}
	return Summary{
		Mean:   mean,
		StdDev: std,
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

// Report aggregates a batch of runs.
type Report struct {
	Kind         core.StrategyKind
	Runs         int
	Moves        int
	Score        Summary
	Passes       Summary
	MovePoints   Summary
	WinRate      float64
	StuckRate    float64
	CascadeLimit int
	SpawnShare   [core.NumTypes]float64
}

// Aggregate builds a report from finished runs.
func Aggregate(kind core.StrategyKind, runs []RunResult) Report {
	rep := Report{Kind: kind, Runs: len(runs)}
	if len(runs) == 0 {
		return rep
	}

	var scores, passes, points []float64
	var spawned [core.NumTypes]int
	var total, won, stuck int
	for _, r := range runs {
		scores = append(scores, float64(r.Score))
		for _, p := range r.Passes {
			passes = append(passes, float64(p))
		}
		for _, p := range r.Points {
			points = append(points, float64(p))
		}
		for i, n := range r.Spawned {
			spawned[i] += n
			total += n
		}
		rep.Moves += r.MovesUsed
		if r.Won {
			won++
		}
		if r.Stuck {
			stuck++
		}
		if r.CascadeLimit {
			rep.CascadeLimit++
		}
	}

	rep.Score = summarize(scores)
	rep.Passes = summarize(passes)
	rep.MovePoints = summarize(points)
	rep.WinRate = float64(won) / float64(len(runs))
	rep.StuckRate = float64(stuck) / float64(len(runs))
	if total > 0 {
		for i, n := range spawned {
			rep.SpawnShare[i] = float64(n) / float64(total)
		}
	}
	return rep
}

// Run autoplays opts.Runs sessions across opts.Workers goroutines and
// returns the aggregated report with the elapsed time. Results do not depend
// on the worker count.
func Run(opts Options) (Report, time.Duration, error) {
	if opts.Runs < 1 {
		return Report{}, 0, errors.New("sim: runs must be > 0")
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > opts.Runs {
		workers = opts.Runs
	}

	results := make([]RunResult, opts.Runs)
	errs := make([]error, opts.Runs)

	bar := pb.New(opts.Runs)
	if !opts.Progress {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = Autoplay(opts.Kind, opts.Config, opts.Seed+int64(i), opts.Logger)
				bar.Increment()
			}
		}()
	}
	for i := range opts.Runs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	used := time.Since(bar.StartTime())
	bar.Finish()

	if err := errors.Join(errs...); err != nil {
		return Report{}, used, err
	}
	return Aggregate(opts.Kind, results), used, nil
}
