// Package bench plays autoplay games headlessly to measure the agent.
package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"termblocks/engine"
)

// Options controls a bench run.
type Options struct {
	Games     int    // Number of games to play
	Seed      int64  // Game i is seeded with Seed+i
	MaxPieces int    // Placement cap per game; 0 means play until topped out
	Workers   int    // Concurrent games; 0 means runtime.NumCPU()
	OutputDir string // When set, each result is also written as JSON here
}

// Result is the outcome of one game.
type Result struct {
	Game      int         `json:"game"`
	Seed      int64       `json:"seed"`
	Pieces    int         `json:"pieces"`
	Lines     int         `json:"lines"`
	Histogram map[int]int `json:"histogram"`
	GameOver  bool        `json:"game_over"` // Topped out rather than hitting MaxPieces
}

// Summary aggregates a set of results.
type Summary struct {
	Games     int         `json:"games"`
	Pieces    int         `json:"pieces"`
	Lines     int         `json:"lines"`
	ToppedOut int         `json:"topped_out"`
	Histogram map[int]int `json:"histogram"`
	MeanLines float64     `json:"mean_lines"`
	BestLines int         `json:"best_lines"`
}

func (o Options) validate() error {
	if o.Games <= 0 {
		return errors.New("games must be positive")
	}
	if o.MaxPieces < 0 {
		return errors.New("max pieces must not be negative")
	}
	if o.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}

// Run plays opts.Games games on a bounded pool of workers. Results are
// ordered by game index and do not depend on the number of workers.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid bench options: %w", err)
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	results := make([]Result, opts.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Games; i++ {
		g.Go(func() error {
			r, err := playGame(ctx, i, opts)
			if err != nil {
				return err
			}
			results[i] = r
			if opts.OutputDir != "" {
				return writeResult(opts.OutputDir, r)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func playGame(ctx context.Context, index int, opts Options) (Result, error) {
	seed := opts.Seed + int64(index)
	game := engine.NewGame(engine.GameConfig{Autoplay: true, Seed: seed, MaxPieces: opts.MaxPieces})
	for !game.Over() {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("game %d: %w", index, err)
		}
		game.Turn()
	}
	return Result{
		Game:      index,
		Seed:      seed,
		Pieces:    game.Pieces(),
		Lines:     game.Lines(),
		Histogram: game.Histogram(),
		GameOver:  game.ToppedOut(),
	}, nil
}

func writeResult(dir string, r Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode game %d: %w", r.Game, err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("game_%05d.json", r.Game))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write game %d: %w", r.Game, err)
	}
	return nil
}

// Summarize totals a set of results.
func Summarize(results []Result) Summary {
	s := Summary{Games: len(results), Histogram: make(map[int]int)}
	for _, r := range results {
		s.Pieces += r.Pieces
		s.Lines += r.Lines
		if r.GameOver {
			s.ToppedOut++
		}
		for rows, n := range r.Histogram {
			s.Histogram[rows] += n
		}
		s.BestLines = max(s.BestLines, r.Lines)
	}
	if s.Games > 0 {
		s.MeanLines = float64(s.Lines) / float64(s.Games)
	}
	return s
}
