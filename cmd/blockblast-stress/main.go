package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/blockblast/config"
	"github.com/plus3/blockblast/logging"
	"github.com/spf13/cobra"
)

var (
	configFile     string
	games          int
	moves          int
	workers        int
	seed           uint64
	gcPauseMetrics bool
)

var rootCmd = &cobra.Command{
	Use:   "blockblast-stress",
	Short: "Plays many headless games and reports engine and effect timings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := config.Load(configFile, nil)
		if err != nil {
			return err
		}
		cfg := loader.Config()

		flags := cmd.Flags()
		if flags.Changed("games") {
			cfg.Stress.Games = games
		}
		if flags.Changed("moves") {
			cfg.Stress.MovesPerGame = moves
		}
		if flags.Changed("workers") {
			cfg.Stress.Workers = workers
		}
		if flags.Changed("seed") {
			cfg.Seed.Value = seed
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := logging.New("stress", cfg.Log.Level)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		report, err := run(ctx, cfg, logger, gcPauseMetrics)
		if err != nil {
			return err
		}

		fmt.Println("\n\n--- Stress Test Report ---")
		if err := report.Generate(os.Stdout); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		fmt.Println("--- End of Report ---")

		return nil
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "configFile", "", "config file (yaml, toml or json)")
	flags.IntVar(&games, "games", 0, "number of games to play")
	flags.IntVar(&moves, "moves", 0, "moves per game")
	flags.IntVar(&workers, "workers", 0, "games played in parallel")
	flags.Uint64Var(&seed, "seed", 0, "base seed; game i uses seed+i")
	flags.BoolVar(&gcPauseMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")
}

// run plays cfg.Stress.Games games on cfg.Stress.Workers goroutines. It
// stops handing out games once ctx is cancelled.
func run(ctx context.Context, cfg config.Config, logger *log.Logger, gcPause bool) (*Report, error) {
	base := cfg.Seed.Value
	if base == 0 {
		base = rand.Uint64()
	}

	report := &Report{
		Games:          cfg.Stress.Games,
		MovesPerGame:   cfg.Stress.MovesPerGame,
		Workers:        cfg.Stress.Workers,
		Seed:           base,
		Width:          cfg.Grid.Width,
		Height:         cfg.Grid.Height,
		GCPauseMetrics: gcPause,
		CommitTime: Stats{
			Samples: make([]time.Duration, 0, cfg.Stress.Games*cfg.Stress.MovesPerGame),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	logger.Info("starting stress test", "games", cfg.Stress.Games, "moves", cfg.Stress.MovesPerGame, "workers", cfg.Stress.Workers, "seed", base)

	jobs := make(chan int)
	results := make(chan gameResult)
	errs := make(chan error, cfg.Stress.Workers)

	var wg sync.WaitGroup
	for range cfg.Stress.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for game := range jobs {
				result, err := playGame(cfg, base+uint64(game), cfg.Stress.MovesPerGame, logger)
				if err != nil {
					select {
					case errs <- fmt.Errorf("game %d: %w", game, err):
					default:
					}
					continue
				}
				results <- result
			}
		}()
	}

	go func() {
		defer close(jobs)
		for game := range cfg.Stress.Games {
			select {
			case <-ctx.Done():
				logger.Warn("interrupted, finishing running games", "handed out", game)
				return
			case jobs <- game:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	startTime := time.Now()
	played := 0
	for result := range results {
		report.add(result)
		played++
		if played%100 == 0 {
			logger.Debug("progress", "played", played)
		}
	}
	report.TotalTime = time.Since(startTime)
	report.Games = played

	select {
	case err := <-errs:
		return nil, err
	default:
	}

	report.CommitTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	logger.Info("stress test complete", "played", played, "took", report.TotalTime)

	return report, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("stress test failed", "err", err)
		os.Exit(1)
	}
}
