package game

import (
	"errors"
	"fmt"
)

// SetDirection turns the snake. Reversing straight into the neck is ignored
// and b itself is returned; a one-segment snake may reverse freely.
func (b *Board) SetDirection(d Direction) (*Board, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("set direction %v: %w", d, ErrUnknownDirection)
	}
	if IsOpposite(b.direction, d) && b.body.Len() > 1 {
		return b, nil
	}
	return b.derive(func(next *Board) {
		next.direction = d
	}), nil
}

// Move advances one tick in the current direction.
func (b *Board) Move(rng Rand) (*Board, error) {
	return b.MoveInDirection(rng, b.direction)
}

// MoveInDirection advances one tick towards d without changing the stored
// direction.
//
// A free cell moves the snake. Food grows it by one and a replacement is
// placed with rng. Anything else ends the game and leaves the rest of the
// snapshot untouched. The cell the tail is about to vacate counts as free,
// except for a two-segment snake, whose tail is its neck.
//
// When the snake fills the board by eating, the grown snapshot is returned
// together with ErrBoardFull. A game-over board is returned unchanged.
func (b *Board) MoveInDirection(rng Rand, d Direction) (*Board, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("move %v: %w", d, ErrUnknownDirection)
	}
	if b.gameOver {
		return b, nil
	}

	newHead := b.body.Head().Step(d).Trim(b.size)
	obj, occupied := b.objects[newHead]

	if !occupied || (newHead == b.body.Tail() && b.body.Len() != 2) {
		body := b.body.Clone()
		body.PushHead(newHead)
		if _, err := body.PopTail(); err != nil {
			return nil, fmt.Errorf("move %v: %w", d, err)
		}
		return b.derive(func(next *Board) {
			next.body = body
		}), nil
	}

	if obj.Kind == KindFood {
		body := b.body.Clone()
		body.PushHead(newHead)
		grown := b.derive(func(next *Board) {
			next.body = body
			next.food = without(b.food, newHead)
		})
		fed, err := grown.PlaceFood(rng)
		if errors.Is(err, ErrBoardFull) {
			return grown, err
		}
		if err != nil {
			return nil, err
		}
		return fed, nil
	}

	return b.derive(func(next *Board) {
		next.gameOver = true
	}), nil
}

// StartTimer marks the game as ticking. The engine keeps no clock; drivers
// poll IsTimerRunning to decide whether to keep calling Move.
func (b *Board) StartTimer() *Board {
	return b.derive(func(next *Board) {
		next.timerRunning = true
	})
}

func (b *Board) StopTimer() *Board {
	return b.derive(func(next *Board) {
		next.timerRunning = false
	})
}

func without(pts []Point, p Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, q := range pts {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}
