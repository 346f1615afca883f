package game

import "fmt"

// Body is the snake, head first. It is a ring-buffer deque so that growing at
// the head and shrinking at the tail are both O(1).
//
// A Body always holds at least one segment: NewBody rejects an empty list and
// the pop operations refuse to remove the last segment.
type Body struct {
	buf  []Point
	head int
	n    int
}

// NewBody builds a body from points ordered head to tail.
func NewBody(points ...Point) (*Body, error) {
	if len(points) == 0 {
		return nil, ErrEmptySequence
	}
	buf := make([]Point, len(points)+1)
	copy(buf, points)
	return &Body{buf: buf, n: len(points)}, nil
}

func (b *Body) Len() int { return b.n }

func (b *Body) Head() Point { return b.At(0) }

func (b *Body) Tail() Point { return b.At(b.n - 1) }

// At returns segment i, counted from the head.
func (b *Body) At(i int) Point {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("body index %d out of range [0,%d)", i, b.n))
	}
	return b.buf[(b.head+i)%len(b.buf)]
}

// PushHead inserts p in front of the current head.
func (b *Body) PushHead(p Point) {
	b.grow()
	b.head = (b.head - 1 + len(b.buf)) % len(b.buf)
	b.buf[b.head] = p
	b.n++
}

// PushTail appends p after the current tail.
func (b *Body) PushTail(p Point) {
	b.grow()
	b.buf[(b.head+b.n)%len(b.buf)] = p
	b.n++
}

// PopHead removes and returns the head.
func (b *Body) PopHead() (Point, error) {
	if b.n <= 1 {
		return Point{}, fmt.Errorf("pop head: %w", ErrEmptySequence)
	}
	p := b.buf[b.head]
	b.head = (b.head + 1) % len(b.buf)
	b.n--
	return p, nil
}

// PopTail removes and returns the tail.
func (b *Body) PopTail() (Point, error) {
	if b.n <= 1 {
		return Point{}, fmt.Errorf("pop tail: %w", ErrEmptySequence)
	}
	p := b.Tail()
	b.n--
	return p, nil
}

// Points returns a head-to-tail copy of the body.
func (b *Body) Points() []Point {
	out := make([]Point, b.n)
	for i := range out {
		out[i] = b.buf[(b.head+i)%len(b.buf)]
	}
	return out
}

// Clone returns an independent copy with room for one more segment.
func (b *Body) Clone() *Body {
	buf := make([]Point, b.n+1)
	for i := 0; i < b.n; i++ {
		buf[i] = b.buf[(b.head+i)%len(b.buf)]
	}
	return &Body{buf: buf, n: b.n}
}

func (b *Body) grow() {
	if b.n < len(b.buf) {
		return
	}
	size := 2 * len(b.buf)
	if size < 4 {
		size = 4
	}
	buf := make([]Point, size)
	for i := 0; i < b.n; i++ {
		buf[i] = b.buf[(b.head+i)%len(b.buf)]
	}
	b.buf = buf
	b.head = 0
}
