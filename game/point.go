// Package game implements the snake engine: a single snake on an N×N torus.
//
// Every transition takes a *Board snapshot and returns a new one. Snapshots
// are never mutated after construction, so goroutines and search trees can
// share them.
package game

import "fmt"

// Point is a board coordinate.
// (0,0) is the top-left cell; Y grows downward.
type Point struct {
	X int
	Y int
}

// trimCoordinate reduces v into [0, n), including for negative v.
func trimCoordinate(v, n int) int {
	return ((v % n) + n) % n
}

// Trim wraps p onto an n×n torus.
func (p Point) Trim(n int) Point {
	return Point{X: trimCoordinate(p.X, n), Y: trimCoordinate(p.Y, n)}
}

// Step returns the neighbour of p in direction d without wrapping.
// Callers trim the result against the board size.
func (p Point) Step(d Direction) Point {
	switch d {
	case Up:
		return Point{X: p.X, Y: p.Y - 1}
	case Down:
		return Point{X: p.X, Y: p.Y + 1}
	case Right:
		return Point{X: p.X + 1, Y: p.Y}
	case Left:
		return Point{X: p.X - 1, Y: p.Y}
	}
	return p
}

func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d|%d)", p.X, p.Y)
}
