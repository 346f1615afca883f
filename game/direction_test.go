package game

import (
	"errors"
	"testing"
)

func TestIsOpposite_SymmetricAndTotal(t *testing.T) {
	pairs := 0
	for _, a := range Directions {
		for _, b := range Directions {
			if IsOpposite(a, b) != IsOpposite(b, a) {
				t.Fatalf("IsOpposite(%v,%v) not symmetric", a, b)
			}
			if IsOpposite(a, b) {
				pairs++
				if a.Opposite() != b {
					t.Fatalf("%v.Opposite()=%v", a, a.Opposite())
				}
			}
		}
	}
	if pairs != 4 {
		t.Fatalf("opposite pairs=%d want=4", pairs)
	}
	if IsOpposite(Direction(9), Up) {
		t.Fatalf("invalid direction must not be opposite")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Fatalf("ParseDirection(%q)=%v,%v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("north"); !errors.Is(err, ErrUnknownDirection) {
		t.Fatalf("err=%v want ErrUnknownDirection", err)
	}
}

func TestDirectionForKey(t *testing.T) {
	want := map[string]Direction{"w": Up, "a": Left, "s": Down, "d": Right}
	for k, d := range want {
		got, ok := DirectionForKey(k)
		if !ok || got != d {
			t.Errorf("key %q -> %v,%t want %v", k, got, ok, d)
		}
	}
	if _, ok := DirectionForKey("x"); ok {
		t.Errorf("unexpected mapping for x")
	}
}
