package game

import "errors"

var (
	// ErrEmptySequence means an operation would have left the body empty.
	// It indicates a bug; drivers should log it and reset the game.
	ErrEmptySequence = errors.New("body must keep at least one segment")

	// ErrBoardFull is returned by PlaceFood when no free cell remains.
	ErrBoardFull = errors.New("board is full")

	// ErrUnknownDirection is returned for a Direction outside Up..Right.
	ErrUnknownDirection = errors.New("unknown direction")

	// ErrInvalidBoard is returned by NewBoard for inconsistent Params.
	ErrInvalidBoard = errors.New("invalid board")
)
