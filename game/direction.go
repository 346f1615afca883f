package game

import "fmt"

// Direction is one of the four moves: 0=Up, 1=Down, 2=Left, 3=Right.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every valid direction in enumeration order.
var Directions = [4]Direction{Up, Down, Left, Right}

var directionNames = [4]string{"up", "down", "left", "right"}

// Valid reports whether d is inside the enumeration.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Opposite returns the reverse of d. Invalid directions are returned as-is.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// IsOpposite reports whether a and b point in reverse directions.
func IsOpposite(a, b Direction) bool {
	return a.Valid() && b.Valid() && a.Opposite() == b
}

// ParseDirection accepts the lower-case names produced by String.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("parse %q: %w", s, ErrUnknownDirection)
}

// DirectionForKey maps the w/a/s/d movement keys to directions.
func DirectionForKey(key string) (Direction, bool) {
	switch key {
	case "w":
		return Up, true
	case "s":
		return Down, true
	case "a":
		return Left, true
	case "d":
		return Right, true
	}
	return 0, false
}
