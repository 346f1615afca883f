package mcts

import (
	"errors"
	"math/rand"

	"github.com/brensch/snektorus/game"
	"github.com/brensch/snektorus/rules"
)

// DefaultRolloutDepth bounds each random playout.
const DefaultRolloutDepth = 32

// RolloutEvaluator scores a snapshot by playing random legal moves.
// Priors are uniform over legal moves. The value is the fraction of the
// rollout spent growing, -1 if the snake dies and +1 if it fills the board.
// A nil Rng falls back to a source seeded from the snake length.
type RolloutEvaluator struct {
	Depth int
	Rng   *rand.Rand
}

func NewRolloutEvaluator(rng *rand.Rand) *RolloutEvaluator {
	return &RolloutEvaluator{Depth: DefaultRolloutDepth, Rng: rng}
}

func (e *RolloutEvaluator) Evaluate(b *game.Board) ([4]float32, float32, error) {
	var priors [4]float32
	legal := rules.LegalMoves(b)
	for _, d := range legal {
		priors[d] = 1 / float32(len(legal))
	}

	depth := e.Depth
	if depth <= 0 {
		depth = DefaultRolloutDepth
	}

	rng := e.Rng
	if rng == nil {
		rng = game.NewRand(int64(b.Len()))
	}

	start := b.Len()
	cur := b
	for i := 0; i < depth && !rules.IsTerminal(cur); i++ {
		moves := rules.LegalMoves(cur)
		next, err := rules.NextState(cur, rng, moves[rng.Intn(len(moves))])
		if errors.Is(err, game.ErrBoardFull) {
			return priors, 1, nil
		}
		if err != nil {
			return priors, 0, err
		}
		cur = next
	}

	if rules.IsTerminal(cur) {
		return priors, rules.Result(cur), nil
	}
	return priors, float32(cur.Len()-start) / float32(depth), nil
}
