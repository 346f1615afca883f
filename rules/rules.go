// Package rules answers what drivers and search code ask about a snapshot
// before issuing a command: which moves survive and whether the game has
// ended.
package rules

import (
	"github.com/brensch/snektorus/game"
)

// LegalMoves returns the directions the snake can take next tick without
// ending the game, in enumeration order.
func LegalMoves(b *game.Board) []game.Direction {
	if b == nil || b.IsGameOver() {
		return nil
	}

	moves := make([]game.Direction, 0, 4)
	for _, d := range game.Directions {
		if isSafe(b, d) {
			moves = append(moves, d)
		}
	}
	return moves
}

func isSafe(b *game.Board, d game.Direction) bool {
	// 1. Neck check (SetDirection would ignore the reversal anyway)
	if b.Len() > 1 && game.IsOpposite(b.CurrentDirection(), d) {
		return false
	}

	// 2. Collisions, with the vacating tail counted as free
	p := b.Head().Step(d).Trim(b.Size())
	obj, occupied := b.ObjectAt(p)
	if !occupied || obj.Kind == game.KindFood {
		return true
	}
	return p == b.Tail() && b.Len() != 2
}

// NextState turns towards move and advances one tick, the way a driver
// handles a key press followed by a timer tick.
func NextState(b *game.Board, rng game.Rand, move game.Direction) (*game.Board, error) {
	turned, err := b.SetDirection(move)
	if err != nil {
		return nil, err
	}
	return turned.Move(rng)
}

// Won reports whether the snake covers the whole board.
func Won(b *game.Board) bool {
	return b.Len() == b.Size()*b.Size()
}

// IsTerminal returns true once no further tick can make progress.
func IsTerminal(b *game.Board) bool {
	if b == nil || b.IsGameOver() || Won(b) {
		return true
	}
	return len(LegalMoves(b)) == 0
}

// Result scores a snapshot: +1 for a full board, -1 for a lost or trapped
// snake, 0 while the game is still open.
func Result(b *game.Board) float32 {
	switch {
	case b == nil:
		return -1
	case Won(b):
		return 1
	case IsTerminal(b):
		return -1
	}
	return 0
}
