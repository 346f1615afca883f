package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/brensch/snektorus/config"
	"github.com/brensch/snektorus/game"
	"github.com/brensch/snektorus/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	size := flag.Int("size", config.GetEnvIntOrDefault("SIZE", game.DefaultSize), "Board side length")
	tick := flag.Duration("tick", config.GetEnvDurationOrDefault("TICK", 250*time.Millisecond), "Time between moves while the timer runs")
	seed := flag.Int64("seed", int64(config.GetEnvIntOrDefault("SEED", 0)), "Food placement seed; 0 seeds from the clock")
	logFile := flag.String("log-file", config.GetEnvOrDefault("LOG_FILE", ""), "Write logs here; empty discards them")
	logFormat := flag.String("log-format", config.GetEnvOrDefault("LOG_FORMAT", "text"), "Log format: text, json or pretty")
	logLevel := flag.String("log-level", config.GetEnvOrDefault("LOG_LEVEL", "info"), "Log level: debug, info, warn or error")
	flag.Parse()

	// The terminal belongs to the game view, so logs never go to stderr.
	var logOut io.Writer = io.Discard
	if *logFile != "" {
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

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *size <= 0 {
		log.Fatalf("size must be positive, got %d", *size)
	}

	m := newModel(*size, *tick, game.NewRand(*seed), logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("play: %v", err)
	}
}
