package mcts

import (
	"math/rand"

	"github.com/brensch/snektorus/game"
)

// Node represents a snapshot in the MCTS tree. Children are indexed by
// game.Direction.
type Node struct {
	VisitCount int
	ValueSum   float32
	PriorProb  float32
	Children   [4]*Node
	State      *game.Board
	IsExpanded bool
}

// NewNode creates a new MCTS node
func NewNode(state *game.Board, prior float32) *Node {
	return &Node{
		State:     state,
		PriorProb: prior,
	}
}

// Q is the mean backed-up value.
func (n *Node) Q() float32 {
	if n.VisitCount == 0 {
		return 0
	}
	return n.ValueSum / float32(n.VisitCount)
}

// Config holds MCTS configuration
type Config struct {
	Cpuct float32
}

// Evaluator scores a non-terminal snapshot: a prior per direction and a
// value in [-1, 1].
type Evaluator interface {
	Evaluate(b *game.Board) (priors [4]float32, value float32, err error)
}

// MCTS holds the search context. Rng feeds food placement in expanded
// children; nil uses the engine's deterministic placement.
type MCTS struct {
	Config    Config
	Evaluator Evaluator
	Rng       *rand.Rand
}
