package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/brensch/snektorus/config"
	"github.com/brensch/snektorus/executor/mcts"
	"github.com/brensch/snektorus/executor/selfplay"
	"github.com/brensch/snektorus/game"
	"github.com/brensch/snektorus/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	outDir := flag.String("out-dir", config.GetEnvOrDefault("OUT_DIR", "data/selfplay"), "Output directory for self-play trace parquet batches")
	workers := flag.Int("workers", config.GetEnvIntOrDefault("WORKERS", runtime.NumCPU()), "Number of games played in parallel")
	gamesPerFlush := flag.Int("games-per-flush", config.GetEnvIntOrDefault("GAMES_PER_FLUSH", 50), "Number of games to buffer per parquet flush")
	maxGames := flag.Int64("max-games", int64(config.GetEnvIntOrDefault("MAX_GAMES", 0)), "If > 0, stop after this many games")
	size := flag.Int("size", config.GetEnvIntOrDefault("SIZE", game.DefaultSize), "Board side length")
	sims := flag.Int("sims", config.GetEnvIntOrDefault("SIMS", 200), "MCTS simulations per move")
	cpuct := flag.Float64("cpuct", config.GetEnvFloatOrDefault("CPUCT", 1.0), "MCTS exploration constant")
	rolloutDepth := flag.Int("rollout-depth", config.GetEnvIntOrDefault("ROLLOUT_DEPTH", mcts.DefaultRolloutDepth), "Random playout depth used to value leaves")
	maxTurns := flag.Int("max-turns", config.GetEnvIntOrDefault("MAX_TURNS", 1000), "Truncate games after this many ticks")
	sampleTurns := flag.Int("sample-turns", config.GetEnvIntOrDefault("SAMPLE_TURNS", 4), "Opening turns that sample from the visit distribution")
	planes := flag.Bool("planes", config.GetEnvBoolOrDefault("PLANES", false), "Store the dense board encoding on every row")
	seed := flag.Int64("seed", int64(config.GetEnvIntOrDefault("SEED", 0)), "Base seed; 0 seeds from the clock")
	useTUI := flag.Bool("tui", config.GetEnvBoolOrDefault("TUI", false), "Show a live stats view instead of periodic log lines")
	trace := flag.Bool("trace", config.GetEnvBoolOrDefault("TRACE", false), "Print every tick of the first game")
	statsEvery := flag.Duration("stats-every", config.GetEnvDurationOrDefault("STATS_EVERY", 5*time.Second), "Interval between stats log lines")
	logFormat := flag.String("log-format", config.GetEnvOrDefault("LOG_FORMAT", "text"), "Log format: text, json or pretty")
	logLevel := flag.String("log-level", config.GetEnvOrDefault("LOG_LEVEL", "info"), "Log level: debug, info, warn or error")
	logFile := flag.String("log-file", config.GetEnvOrDefault("LOG_FILE", "selfplay.log"), "Log destination while -tui is on")
	flag.Parse()

	var logOut io.Writer = os.Stderr
	if *useTUI {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := logging.New(logOut, *logFormat, *logLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	slog.SetDefault(logger)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	var traceOut io.Writer
	if *trace && !*useTUI {
		traceOut = os.Stdout
	}
	p := &pool{
		workers:  *workers,
		maxGames: *maxGames,
		seed:     *seed,
		game: selfplay.Config{
			Size:         *size,
			Sims:         *sims,
			MaxTurns:     *maxTurns,
			SampleTurns:  *sampleTurns,
			RolloutDepth: *rolloutDepth,
			MCTS:         mcts.Config{Cpuct: float32(*cpuct)},
			Planes:       *planes,
			Logger:       logger,
		},
		trace:   traceOut,
		updates: make(chan GameUpdate, *workers),
		rows:    make(chan gameWriteRequest, *workers*4),
		log:     logger,
	}

	logger.Info("starting self-play",
		"workers", *workers, "size", *size, "sims", *sims, "seed", *seed, "out_dir", *outDir)

	writerDone := make(chan struct{})
	go func() {
		parquetWriterLoop(*outDir, *gamesPerFlush, p.rows, logger)
		close(writerDone)
	}()

	poolDone := make(chan error, 1)
	go func() {
		poolDone <- p.run(ctx)
		close(p.rows)
	}()

	if *useTUI {
		prog := tea.NewProgram(newStatsModel(p.updates, &p.stats), tea.WithAltScreen())
		go func() {
			<-writerDone
			prog.Quit()
		}()
		if _, err := prog.Run(); err != nil {
			logger.Error("stats view failed", "err", err)
		}
		cancel()
	} else {
		go logStats(ctx, logger, &p.stats, p.updates, *statsEvery)
	}

	if err := <-poolDone; err != nil {
		logger.Error("self-play stopped", "err", err)
	}
	<-writerDone
	fmt.Fprintf(os.Stderr, "self-play finished: games=%d won=%d lost=%d truncated=%d failed=%d\n",
		p.stats.games.Load(), p.stats.won.Load(), p.stats.lost.Load(), p.stats.truncated.Load(), p.stats.failed.Load())
}

// logStats is the non-interactive stand-in for the stats view.
func logStats(ctx context.Context, logger *slog.Logger, st *stats, updates <-chan GameUpdate, every time.Duration) {
	start := time.Now()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-updates:
			logger.Debug("game finished",
				"worker", u.WorkerID, "game_id", u.Result.GameID, "outcome", u.Result.Outcome,
				"turns", u.Result.Turns, "length", u.Result.Length, "rows", u.Rows)
		case <-ticker.C:
			secs := time.Since(start).Seconds()
			logger.Info("stats",
				"games", st.games.Load(),
				"moves_per_sec", fmt.Sprintf("%.1f", float64(st.moves.Load())/secs),
				"games_per_sec", fmt.Sprintf("%.2f", float64(st.games.Load())/secs),
				"won", st.won.Load(), "lost", st.lost.Load(), "truncated", st.truncated.Load())
		}
	}
}
