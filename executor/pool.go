package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sync/atomic"

	"github.com/brensch/snektorus/executor/selfplay"
	"github.com/brensch/snektorus/store"
	"golang.org/x/sync/errgroup"
)

type stats struct {
	moves     atomic.Int64
	games     atomic.Int64
	rows      atomic.Int64
	won       atomic.Int64
	lost      atomic.Int64
	truncated atomic.Int64
	failed    atomic.Int64
}

type GameUpdate struct {
	WorkerID int
	Result   selfplay.GameResult
	Rows     int
}

type gameWriteRequest struct {
	rows []store.TurnRow
}

// pool plays games with at most workers in flight. Game n is seeded from
// seed+n, so a run is reproducible game by game.
type pool struct {
	workers  int
	maxGames int64
	seed     int64
	game     selfplay.Config
	trace    io.Writer

	updates chan GameUpdate
	rows    chan gameWriteRequest
	stats   stats
	log     *slog.Logger
}

func (p *pool) run(ctx context.Context) error {
	workers := p.workers
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for n := int64(0); p.maxGames <= 0 || n < p.maxGames; n++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return p.playOne(gctx, n)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (p *pool) playOne(ctx context.Context, n int64) error {
	cfg := p.game
	cfg.GameID = fmt.Sprintf("selfplay_%d_%d", p.seed, n)
	if n == 0 {
		cfg.Trace = p.trace
	}
	workerID := int(n % int64(max(p.workers, 1)))
	rng := rand.New(rand.NewSource(p.seed + n))

	rows, result, err := selfplay.PlayGame(ctx, workerID, cfg, rng, func() {
		p.stats.moves.Add(1)
	})
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Partial games are dropped.
		return nil
	case err != nil:
		p.stats.failed.Add(1)
		p.log.Warn("game aborted", "game_id", cfg.GameID, "err", err)
		return nil
	}

	p.stats.games.Add(1)
	p.stats.rows.Add(int64(len(rows)))
	switch result.Outcome {
	case selfplay.OutcomeWon:
		p.stats.won.Add(1)
	case selfplay.OutcomeLost:
		p.stats.lost.Add(1)
	case selfplay.OutcomeTruncated:
		p.stats.truncated.Add(1)
	}

	select {
	case p.rows <- gameWriteRequest{rows: rows}:
	case <-ctx.Done():
		return nil
	}
	// Avoid blocking when nobody reads updates.
	select {
	case p.updates <- GameUpdate{WorkerID: workerID, Result: result, Rows: len(rows)}:
	default:
	}
	return nil
}

// parquetWriterLoop appends finished games to a BatchWriter and rotates it
// every gamesPerFlush games. It drains in until it is closed.
func parquetWriterLoop(outDir string, gamesPerFlush int, in <-chan gameWriteRequest, logger *slog.Logger) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 50
	}

	var w *store.BatchWriter
	flush := func(final bool) {
		if w == nil {
			return
		}
		outPath, rows, games, err := w.Finalize()
		w = nil
		switch {
		case err != nil:
			logger.Error("parquet flush failed", "final", final, "err", err)
		case games > 0:
			logger.Info("parquet flush ok", "path", outPath, "games", games, "rows", rows, "final", final)
		}
	}

	for req := range in {
		if len(req.rows) == 0 {
			continue
		}
		if w == nil {
			var err error
			if w, err = store.NewBatchWriter(outDir); err != nil {
				logger.Error("open batch writer", "err", err)
				continue
			}
		}
		if err := w.WriteGame(req.rows); err != nil {
			logger.Error("write game", "game_id", req.rows[0].GameID, "err", err)
			continue
		}
		if w.BufferedGames() >= gamesPerFlush {
			flush(false)
		}
	}
	flush(true)
}
