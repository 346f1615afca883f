package game

import (
	"errors"
	"strings"
	"testing"
)

func mustBoard(t *testing.T, p Params) *Board {
	t.Helper()
	b, err := NewBoard(p)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func TestReset_InitialSnapshot(t *testing.T) {
	b := Reset()
	if b.Size() != DefaultSize {
		t.Fatalf("size=%d want=%d", b.Size(), DefaultSize)
	}
	if got := b.Body(); len(got) != 1 || got[0] != (Point{X: 2, Y: 2}) {
		t.Fatalf("body=%v want=[(2|2)]", got)
	}
	if len(b.Food()) != 0 || b.IsGameOver() || b.IsTimerRunning() || b.CurrentDirection() != Right {
		t.Fatalf("unexpected initial state:\n%s", b)
	}
	if len(b.AllObjects()) != 1 {
		t.Fatalf("objects=%d want=1", len(b.AllObjects()))
	}
}

func TestReset_WithSize(t *testing.T) {
	b := Reset(WithSize(8))
	if b.Size() != 8 || b.Head() != (Point{X: 4, Y: 4}) {
		t.Fatalf("size=%d head=%v", b.Size(), b.Head())
	}
	if Reset(WithSize(0)).Size() != DefaultSize {
		t.Fatalf("non-positive size must keep default")
	}
}

func TestNewBoard_Validation(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		want error
	}{
		{"zero size", Params{Size: 0, Body: pts(0, 0)}, ErrInvalidBoard},
		{"empty body", Params{Size: 3}, ErrInvalidBoard},
		{"body out of range", Params{Size: 3, Body: pts(3, 0)}, ErrInvalidBoard},
		{"self overlap", Params{Size: 3, Body: pts(0, 0, 0, 0)}, ErrInvalidBoard},
		{"food on body", Params{Size: 3, Body: pts(0, 0), Food: pts(0, 0)}, ErrInvalidBoard},
		{"duplicate food", Params{Size: 3, Body: pts(0, 0), Food: pts(1, 1, 1, 1)}, ErrInvalidBoard},
		{"bomb on food", Params{Size: 3, Body: pts(0, 0), Food: pts(1, 1), Bombs: pts(1, 1)}, ErrInvalidBoard},
		{"bad direction", Params{Size: 3, Body: pts(0, 0), Direction: Direction(7)}, ErrUnknownDirection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewBoard(tc.p); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestBoard_ObjectIndex(t *testing.T) {
	b := mustBoard(t, Params{
		Size:  5,
		Body:  pts(2, 2, 1, 2, 0, 2),
		Food:  pts(4, 4, 3, 0),
		Bombs: pts(0, 0),
	})
	objs := b.AllObjects()
	if len(objs) != 6 {
		t.Fatalf("objects=%d want=6", len(objs))
	}
	if o, ok := b.ObjectAt(Point{X: 1, Y: 2}); !ok || o.Kind != KindSnake {
		t.Fatalf("(1|2)=%v,%t", o, ok)
	}
	if o, ok := b.ObjectAt(Point{X: 4, Y: 4}); !ok || o.Kind != KindFood || o.Pos != (Point{X: 4, Y: 4}) {
		t.Fatalf("(4|4)=%v,%t", o, ok)
	}
	if o, ok := b.ObjectAt(Point{X: 0, Y: 0}); !ok || o.Kind != KindBomb {
		t.Fatalf("(0|0)=%v,%t", o, ok)
	}
	if _, ok := b.ObjectAt(Point{X: 3, Y: 3}); ok {
		t.Fatalf("(3|3) should be free")
	}
	if b.FreeCells() != 25-6 {
		t.Fatalf("free=%d", b.FreeCells())
	}

	// Mutating the returned copies must not leak into the snapshot.
	delete(objs, Point{X: 2, Y: 2})
	b.Body()[0] = Point{X: 9, Y: 9}
	b.Food()[0] = Point{X: 9, Y: 9}
	if _, ok := b.ObjectAt(Point{X: 2, Y: 2}); !ok || b.Head() != (Point{X: 2, Y: 2}) || b.Food()[0] != (Point{X: 4, Y: 4}) {
		t.Fatalf("snapshot was mutated through an accessor")
	}
}

func TestBoard_ParamsRoundTrip(t *testing.T) {
	p := Params{Size: 4, Body: pts(1, 1, 1, 2), Food: pts(3, 3), Direction: Up, TimerRunning: true}
	b := mustBoard(t, p)
	again := mustBoard(t, b.Params())
	if again.String() != b.String() {
		t.Fatalf("round trip mismatch:\n%s\n%s", b, again)
	}
}

func TestBoard_String(t *testing.T) {
	b := mustBoard(t, Params{Size: 3, Body: pts(1, 1, 0, 1), Food: pts(2, 0), Bombs: pts(0, 2), Direction: Right})
	want := "..*\noH.\nx..\n"
	if got := b.String(); !strings.HasSuffix(got, want) {
		t.Fatalf("String=\n%s\nwant suffix\n%s", got, want)
	}
}
