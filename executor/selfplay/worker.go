package selfplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brensch/snektorus/executor/convert"
	"github.com/brensch/snektorus/executor/mcts"
	"github.com/brensch/snektorus/game"
	"github.com/brensch/snektorus/rules"
	"github.com/brensch/snektorus/store"
)

// Outcome says how a self-play game ended.
type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeLost      Outcome = "lost"
	OutcomeTruncated Outcome = "truncated"
)

// maxResets bounds how often one game may restart after an invariant error.
const maxResets = 3

type Config struct {
	Size     int
	Sims     int
	MaxTurns int
	// SampleTurns is how many opening turns sample from the visit
	// distribution instead of taking the most visited move.
	SampleTurns  int
	RolloutDepth int
	MCTS         mcts.Config
	// Planes stores the dense board encoding on every row.
	Planes bool

	GameID string
	Logger *slog.Logger
	// Trace, when set, receives the board after every tick.
	Trace io.Writer
}

func (c Config) withDefaults() Config {
	if c.Size <= 0 {
		c.Size = game.DefaultSize
	}
	if c.Sims <= 0 {
		c.Sims = 1
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = 1000
	}
	if c.MCTS.Cpuct == 0 {
		c.MCTS.Cpuct = 1.0
	}
	if c.RolloutDepth <= 0 {
		c.RolloutDepth = mcts.DefaultRolloutDepth
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

type GameResult struct {
	GameID  string
	Outcome Outcome
	Turns   int
	Length  int
	Resets  int
}

// PlayGame drives one game from Reset to its end: the search picks a
// direction, the engine ticks, and every tick is recorded as a TurnRow.
// The game stops on game over, on a full board (a win), after MaxTurns, or
// when ctx is cancelled, in which case the rows so far are returned with
// ctx.Err().
func PlayGame(ctx context.Context, workerID int, cfg Config, rng *rand.Rand, onStep func()) ([]store.TurnRow, GameResult, error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger.With("worker", workerID)

	gameID := cfg.GameID
	if gameID == "" {
		gameID = fmt.Sprintf("selfplay_%d_%d", time.Now().UnixNano(), workerID)
	}
	result := GameResult{GameID: gameID}

	if rng == nil {
		rng = game.NewRand(time.Now().UnixNano())
	}
	searchRng := rand.New(rand.NewSource(rng.Int63()))
	evaluator := &mcts.RolloutEvaluator{Depth: cfg.RolloutDepth, Rng: rand.New(rand.NewSource(rng.Int63()))}
	searcher := &mcts.MCTS{Config: cfg.MCTS, Evaluator: evaluator, Rng: searchRng}

	b, err := newGame(cfg.Size, rng)
	if err != nil {
		return nil, result, err
	}
	rows := make([]store.TurnRow, 0, 256)
	turn := 0

	for b.IsTimerRunning() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				result.Turns, result.Length = turn, b.Len()
				return rows, result, ctx.Err()
			default:
			}
		}

		if turn >= cfg.MaxTurns {
			b = b.StopTimer()
			result.Outcome = OutcomeTruncated
			break
		}

		root, _, err := searcher.Search(ctx, b, cfg.Sims)
		if err != nil {
			result.Turns, result.Length = turn, b.Len()
			return rows, result, fmt.Errorf("search turn %d: %w", turn, err)
		}
		policy := mcts.Policy(root)
		move, ok := mcts.BestMove(root)
		switch {
		case !ok:
			// Trapped: every move loses, keep heading the same way.
			move = b.CurrentDirection()
		case turn < cfg.SampleTurns:
			move = sampleMove(rng, policy)
		}

		row := store.NewTurnRow(gameID, turn, b)
		row.Move = int32(move)
		row.PolicyProbs = append([]float32(nil), policy[:]...)
		if cfg.Planes {
			row.Planes = convert.BoardToBytes(b)
		}

		next, err := rules.NextState(b, rng, move)
		switch {
		case errors.Is(err, game.ErrBoardFull):
			rows = append(rows, row)
			b = next.StopTimer()
			result.Outcome = OutcomeWon
		case errors.Is(err, game.ErrEmptySequence), errors.Is(err, game.ErrUnknownDirection):
			result.Resets++
			log.Error("engine invariant violated, resetting game", "game_id", gameID, "turn", turn, "err", err)
			if result.Resets > maxResets {
				return nil, result, fmt.Errorf("game %s: too many resets: %w", gameID, err)
			}
			if b, err = newGame(cfg.Size, rng); err != nil {
				return nil, result, err
			}
			rows = rows[:0]
			turn = 0
			continue
		case err != nil:
			return rows, result, fmt.Errorf("tick %d: %w", turn, err)
		default:
			rows = append(rows, row)
			b = next
		}

		turn++
		if b.IsGameOver() {
			b = b.StopTimer()
			result.Outcome = OutcomeLost
		}
		if cfg.Trace != nil {
			PrintBoard(cfg.Trace, turn, b)
		}
		if onStep != nil {
			onStep()
		}
	}

	if result.Outcome == "" && rules.Won(b) {
		result.Outcome = OutcomeWon
	}
	final := store.NewTurnRow(gameID, turn, b)
	if cfg.Planes {
		final.Planes = convert.BoardToBytes(b)
	}
	rows = append(rows, final)
	for i := range rows {
		rows[i].Outcome = string(result.Outcome)
	}

	result.Turns, result.Length = turn, b.Len()
	log.Debug("game finished", "game_id", gameID, "outcome", result.Outcome, "turns", turn, "length", b.Len())
	return rows, result, nil
}

// newGame is the driver's reset: a fresh board with one food item and the
// timer running. A board too small for food is already won.
func newGame(size int, rng *rand.Rand) (*game.Board, error) {
	b := game.Reset(game.WithSize(size))
	fed, err := b.PlaceFood(rng)
	switch {
	case errors.Is(err, game.ErrBoardFull):
		return b, nil
	case err != nil:
		return nil, err
	}
	return fed.StartTimer(), nil
}

func sampleMove(rng *rand.Rand, policy [4]float32) game.Direction {
	r := rng.Float32()
	sum := float32(0)
	last := game.Up
	for i, p := range policy {
		if p == 0 {
			continue
		}
		last = game.Direction(i)
		sum += p
		if r < sum {
			return last
		}
	}
	return last
}
