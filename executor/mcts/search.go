package mcts

import (
	"context"
	"errors"
	"math"

	"github.com/brensch/snektorus/game"
	"github.com/brensch/snektorus/rules"
)

// Search runs the MCTS simulations from root and returns the tree and its
// deepest selected path.
func (m *MCTS) Search(ctx context.Context, rootState *game.Board, simulations int) (*Node, int, error) {
	root := NewNode(rootState, 1.0)
	maxDepth := 0

	// A nil *rand.Rand must reach the engine as a nil interface.
	var rng game.Rand
	if m.Rng != nil {
		rng = m.Rng
	}

	for i := 0; i < simulations; i++ {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return root, maxDepth, ctx.Err()
			default:
			}
		}

		node := root
		path := []*Node{node}

		// Selection
		for node.IsExpanded {
			bestMove := -1
			bestScore := float32(-1e9)

			// Calculate sqrt(sum(N)) for parent
			sqrtSumN := float32(math.Sqrt(float64(node.VisitCount)))

			for move, child := range node.Children {
				if child == nil {
					continue
				}

				// PUCT formula
				// U(s,a) = Q(s,a) + C_puct * P(s,a) * sqrt(sum(N)) / (1 + N)
				u := child.Q() + m.Config.Cpuct*child.PriorProb*sqrtSumN/(1+float32(child.VisitCount))

				if u > bestScore {
					bestScore = u
					bestMove = move
				}
			}
			if bestMove < 0 {
				break
			}

			node = node.Children[bestMove]
			path = append(path, node)
		}

		if d := len(path) - 1; d > maxDepth {
			maxDepth = d
		}

		// Expansion & Evaluation
		var value float32
		if rules.IsTerminal(node.State) {
			value = rules.Result(node.State)
		} else {
			priors, v, err := m.Evaluator.Evaluate(node.State)
			if err != nil {
				return nil, 0, err
			}
			value = v

			for _, move := range rules.LegalMoves(node.State) {
				next, err := rules.NextState(node.State, rng, move)
				if err != nil && !errors.Is(err, game.ErrBoardFull) {
					return nil, 0, err
				}
				node.Children[move] = NewNode(next, priors[move])
			}
			node.IsExpanded = true
		}

		// Backpropagation
		for _, n := range path {
			n.VisitCount++
			n.ValueSum += value
		}
	}

	return root, maxDepth, nil
}

// Policy returns the visit distribution over root children.
func Policy(root *Node) [4]float32 {
	var out [4]float32
	total := 0
	for _, c := range root.Children {
		if c != nil {
			total += c.VisitCount
		}
	}
	if total == 0 {
		return out
	}
	for i, c := range root.Children {
		if c != nil {
			out[i] = float32(c.VisitCount) / float32(total)
		}
	}
	return out
}

// BestMove picks the most visited root child. ok is false when the root was
// never expanded or has no legal move.
func BestMove(root *Node) (move game.Direction, ok bool) {
	best := -1
	for i, c := range root.Children {
		if c == nil {
			continue
		}
		if !ok || c.VisitCount > best {
			best = c.VisitCount
			move = game.Direction(i)
			ok = true
		}
	}
	return move, ok
}
