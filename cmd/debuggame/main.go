package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/brensch/snektorus/config"
	"github.com/brensch/snektorus/executor/mcts"
	"github.com/brensch/snektorus/executor/selfplay"
	"github.com/brensch/snektorus/game"
	"github.com/brensch/snektorus/logging"
	"github.com/brensch/snektorus/store"
)

func main() {
	outDir := flag.String("out-dir", config.GetEnvOrDefault("DEBUG_OUT_DIR", filepath.Join("debug_games")), "Output directory for debug games")
	size := flag.Int("size", config.GetEnvIntOrDefault("SIZE", game.DefaultSize), "Board side length")
	sims := flag.Int("sims", config.GetEnvIntOrDefault("SIMS", 100), "Number of MCTS simulations per move")
	cpuct := flag.Float64("cpuct", config.GetEnvFloatOrDefault("CPUCT", 1.0), "MCTS exploration constant")
	seed := flag.Int64("seed", int64(config.GetEnvIntOrDefault("SEED", 1)), "Game seed")
	maxTurns := flag.Int("max-turns", config.GetEnvIntOrDefault("MAX_TURNS", 500), "Truncate the game after this many ticks")
	timeout := flag.Duration("timeout", config.GetEnvDurationOrDefault("TIMEOUT", 5*time.Minute), "Give up after this long")
	logLevel := flag.String("log-level", config.GetEnvOrDefault("LOG_LEVEL", "debug"), "Log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, "pretty", *logLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := selfplay.Config{
		Size:     *size,
		Sims:     *sims,
		MaxTurns: *maxTurns,
		MCTS:     mcts.Config{Cpuct: float32(*cpuct)},
		GameID:   fmt.Sprintf("debug_%d", *seed),
		Logger:   logger,
		Trace:    os.Stdout,
	}
	logger.Info("generating debug game", "size", *size, "sims", *sims, "cpuct", *cpuct, "seed", *seed)

	rows, result, err := selfplay.PlayGame(ctx, 0, cfg, game.NewRand(*seed), nil)
	if err != nil {
		log.Fatalf("Failed to generate debug game: %v", err)
	}
	for i := range rows {
		rows[i].Source = "debug"
	}

	parquetPath, err := store.WriteBatchParquetAtomic(*outDir, rows)
	if err != nil {
		log.Fatalf("Failed to write debug game: %v", err)
	}

	fmt.Println()
	fmt.Printf("  Game %s: %s after %d turns, length %d (resets %d)\n",
		result.GameID, result.Outcome, result.Turns, result.Length, result.Resets)
	fmt.Printf("  Trace written to %s\n", parquetPath)
	fmt.Println()
}
