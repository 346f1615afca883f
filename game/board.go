package game

import (
	"fmt"
	"strings"
)

// DefaultSize is the board edge length used by Reset.
const DefaultSize = 5

// ObjectKind says what occupies a cell.
type ObjectKind int

const (
	KindFood ObjectKind = iota
	KindBomb
	KindSnake
)

func (k ObjectKind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindBomb:
		return "bomb"
	case KindSnake:
		return "snake"
	}
	return fmt.Sprintf("ObjectKind(%d)", int(k))
}

// Object is an entry of the object index.
type Object struct {
	Kind ObjectKind
	Pos  Point
}

// Board is an immutable game snapshot.
//
// The object index is derived from body, food and bombs and is rebuilt from
// scratch whenever a snapshot is constructed. It is never patched in place.
type Board struct {
	size         int
	body         *Body
	food         []Point
	bombs        []Point
	direction    Direction
	gameOver     bool
	timerRunning bool

	objects map[Point]Object
}

// Params is the plain description of a snapshot, used to build custom boards
// and to inspect existing ones. The zero Direction is Up.
type Params struct {
	Size         int
	Body         []Point
	Food         []Point
	Bombs        []Point
	Direction    Direction
	GameOver     bool
	TimerRunning bool
}

// NewBoard validates p and builds a snapshot from it.
func NewBoard(p Params) (*Board, error) {
	if p.Size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidBoard, p.Size)
	}
	if !p.Direction.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownDirection, p.Direction)
	}
	body, err := NewBody(p.Body...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}

	seen := make(map[Point]string, len(p.Body)+len(p.Food)+len(p.Bombs))
	claim := func(what string, pts []Point) error {
		for _, pt := range pts {
			if pt.X < 0 || pt.X >= p.Size || pt.Y < 0 || pt.Y >= p.Size {
				return fmt.Errorf("%w: %s at %v outside %dx%d", ErrInvalidBoard, what, pt, p.Size, p.Size)
			}
			if prev, ok := seen[pt]; ok {
				return fmt.Errorf("%w: %s at %v overlaps %s", ErrInvalidBoard, what, pt, prev)
			}
			seen[pt] = what
		}
		return nil
	}
	if err := claim("snake", p.Body); err != nil {
		return nil, err
	}
	if err := claim("food", p.Food); err != nil {
		return nil, err
	}
	if err := claim("bomb", p.Bombs); err != nil {
		return nil, err
	}

	b := &Board{
		size:         p.Size,
		body:         body,
		food:         clonePoints(p.Food),
		bombs:        clonePoints(p.Bombs),
		direction:    p.Direction,
		gameOver:     p.GameOver,
		timerRunning: p.TimerRunning,
	}
	b.index()
	return b, nil
}

// Option adjusts Reset.
type Option func(*resetConfig)

type resetConfig struct {
	size int
}

// WithSize sets the board edge length. Non-positive values keep DefaultSize.
func WithSize(n int) Option {
	return func(c *resetConfig) {
		if n > 0 {
			c.size = n
		}
	}
}

// Reset returns the initial snapshot: a one-segment snake in the centre cell
// heading right, no food, timer stopped.
func Reset(opts ...Option) *Board {
	cfg := resetConfig{size: DefaultSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	h := cfg.size / 2
	body, _ := NewBody(Point{X: h, Y: h})
	b := &Board{
		size:      cfg.size,
		body:      body,
		direction: Right,
	}
	b.index()
	return b
}

// index rebuilds the object index. Food and bombs are disjoint from the body
// by construction, so later writes never shadow a snake segment.
func (b *Board) index() {
	objects := make(map[Point]Object, b.body.Len()+len(b.food)+len(b.bombs))
	for i := 0; i < b.body.Len(); i++ {
		p := b.body.At(i)
		objects[p] = Object{Kind: KindSnake, Pos: p}
	}
	for _, p := range b.food {
		objects[p] = Object{Kind: KindFood, Pos: p}
	}
	for _, p := range b.bombs {
		objects[p] = Object{Kind: KindBomb, Pos: p}
	}
	b.objects = objects
}

// derive copies the snapshot fields, lets edit change them and rebuilds the
// index. Slices and the body are shared until edit replaces them; neither is
// ever written through after construction.
func (b *Board) derive(edit func(next *Board)) *Board {
	next := &Board{
		size:         b.size,
		body:         b.body,
		food:         b.food,
		bombs:        b.bombs,
		direction:    b.direction,
		gameOver:     b.gameOver,
		timerRunning: b.timerRunning,
	}
	edit(next)
	next.index()
	return next
}

func (b *Board) Size() int { return b.size }

// ObjectAt returns the occupant of p, if any.
func (b *Board) ObjectAt(p Point) (Object, bool) {
	o, ok := b.objects[p]
	return o, ok
}

// AllObjects returns a copy of the object index.
func (b *Board) AllObjects() map[Point]Object {
	out := make(map[Point]Object, len(b.objects))
	for k, v := range b.objects {
		out[k] = v
	}
	return out
}

func (b *Board) IsGameOver() bool { return b.gameOver }

func (b *Board) IsTimerRunning() bool { return b.timerRunning }

func (b *Board) CurrentDirection() Direction { return b.direction }

func (b *Board) Len() int { return b.body.Len() }

func (b *Board) Head() Point { return b.body.Head() }

func (b *Board) Tail() Point { return b.body.Tail() }

// Body returns the snake head to tail.
func (b *Board) Body() []Point { return b.body.Points() }

func (b *Board) Food() []Point { return clonePoints(b.food) }

func (b *Board) Bombs() []Point { return clonePoints(b.bombs) }

// FreeCells counts cells not present in the object index.
func (b *Board) FreeCells() int { return b.size*b.size - len(b.objects) }

// Params returns a copy of the snapshot's fields.
func (b *Board) Params() Params {
	return Params{
		Size:         b.size,
		Body:         b.body.Points(),
		Food:         clonePoints(b.food),
		Bombs:        clonePoints(b.bombs),
		Direction:    b.direction,
		GameOver:     b.gameOver,
		TimerRunning: b.timerRunning,
	}
}

// String draws the board: H head, o body, * food, x bomb.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "size=%d len=%d dir=%v over=%t timer=%t\n", b.size, b.body.Len(), b.direction, b.gameOver, b.timerRunning)
	head := b.body.Head()
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			p := Point{X: x, Y: y}
			o, ok := b.objects[p]
			switch {
			case !ok:
				sb.WriteByte('.')
			case o.Kind == KindSnake && p == head:
				sb.WriteByte('H')
			case o.Kind == KindSnake:
				sb.WriteByte('o')
			case o.Kind == KindFood:
				sb.WriteByte('*')
			default:
				sb.WriteByte('x')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func clonePoints(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
