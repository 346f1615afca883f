package mcts

import (
	"context"
	"errors"
	"testing"

	"github.com/brensch/snektorus/game"
)

// MockEvaluator returns uniform priors and a fixed value.
type MockEvaluator struct{}

func (m *MockEvaluator) Evaluate(b *game.Board) ([4]float32, float32, error) {
	return [4]float32{0.25, 0.25, 0.25, 0.25}, 0.5, nil
}

func openBoard(t testing.TB) *game.Board {
	b, err := game.NewBoard(game.Params{
		Size:      11,
		Body:      []game.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}},
		Food:      []game.Point{{X: 8, Y: 8}},
		Direction: game.Up,
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func TestSearch(t *testing.T) {
	m := MCTS{Config: Config{Cpuct: 1.0}, Evaluator: &MockEvaluator{}}

	simulations := 10
	root, _, err := m.Search(context.Background(), openBoard(t), simulations)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if root.VisitCount != simulations {
		t.Errorf("Expected VisitCount %d, got %d", simulations, root.VisitCount)
	}

	totalChildVisits := 0
	childrenFound := 0
	for _, child := range root.Children {
		if child != nil {
			childrenFound++
			totalChildVisits += child.VisitCount
		}
	}
	if childrenFound != 3 {
		t.Errorf("Expected 3 children (no reversal), got %d", childrenFound)
	}
	if root.Children[game.Down] != nil {
		t.Errorf("reversal into the neck must not be expanded")
	}
	if totalChildVisits != simulations-1 {
		t.Errorf("Expected sum of child visits %d, got %d", simulations-1, totalChildVisits)
	}

	p := Policy(root)
	sum := p[0] + p[1] + p[2] + p[3]
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("policy sums to %f", sum)
	}
}

func TestSearch_AvoidsBombs(t *testing.T) {
	b, err := game.NewBoard(game.Params{
		Size:      5,
		Body:      []game.Point{{X: 2, Y: 2}, {X: 1, Y: 2}},
		Bombs:     []game.Point{{X: 3, Y: 2}, {X: 2, Y: 1}},
		Direction: game.Right,
	})
	if err != nil {
		t.Fatal(err)
	}
	m := MCTS{Config: Config{Cpuct: 1.0}, Evaluator: NewRolloutEvaluator(game.NewRand(1)), Rng: game.NewRand(2)}
	root, _, err := m.Search(context.Background(), b, 50)
	if err != nil {
		t.Fatal(err)
	}
	move, ok := BestMove(root)
	if !ok || move != game.Down {
		t.Fatalf("best=%v,%t want down", move, ok)
	}
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := MCTS{Config: Config{Cpuct: 1.0}, Evaluator: &MockEvaluator{}}
	root, _, err := m.Search(ctx, openBoard(t), 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
	if root == nil || root.VisitCount != 0 {
		t.Fatalf("cancelled search should return an unvisited root")
	}
	if _, ok := BestMove(root); ok {
		t.Fatalf("unexpanded root has no best move")
	}
}

func TestRolloutEvaluator_Bounds(t *testing.T) {
	e := NewRolloutEvaluator(game.NewRand(5))
	b, err := game.Reset().PlaceFood(game.NewRand(5))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		priors, v, err := e.Evaluate(b)
		if err != nil {
			t.Fatal(err)
		}
		if v < -1 || v > 1 {
			t.Fatalf("value=%f outside [-1,1]", v)
		}
		if sum := priors[0] + priors[1] + priors[2] + priors[3]; sum < 0.999 || sum > 1.001 {
			t.Fatalf("priors sum %f", sum)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	m := MCTS{Config: Config{Cpuct: 1.0}, Evaluator: NewRolloutEvaluator(game.NewRand(1))}
	state := openBoard(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := m.Search(context.Background(), state, 200); err != nil {
			b.Fatalf("Search failed: %v", err)
		}
	}
}
