package selfplay

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/brensch/snektorus/executor/convert"
	"github.com/brensch/snektorus/game"
)

func testConfig() Config {
	return Config{Size: 5, Sims: 16, MaxTurns: 40, RolloutDepth: 8, GameID: "test"}
}

func TestPlayGame_RowsAreConsistent(t *testing.T) {
	steps := 0
	rows, res, err := PlayGame(context.Background(), 0, testConfig(), rand.New(rand.NewSource(1)), func() { steps++ })
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome == "" {
		t.Fatalf("game ended without an outcome: %+v", res)
	}
	if len(rows) != res.Turns+1 || steps != res.Turns {
		t.Fatalf("rows=%d steps=%d turns=%d", len(rows), steps, res.Turns)
	}
	for i, r := range rows {
		if int(r.Turn) != i || r.GameID != "test" || r.Outcome != string(res.Outcome) {
			t.Fatalf("row %d = %+v", i, r)
		}
		if i < len(rows)-1 && (r.Move < 0 || r.Move > 3) {
			t.Fatalf("row %d has no move", i)
		}
	}
	last := rows[len(rows)-1]
	if last.Move != -1 || len(last.BodyX) != res.Length {
		t.Fatalf("final row %+v vs result %+v", last, res)
	}
	if res.Outcome == OutcomeTruncated && res.Turns != 40 {
		t.Fatalf("truncated at %d turns", res.Turns)
	}
}

func TestPlayGame_Deterministic(t *testing.T) {
	_, a, err := PlayGame(context.Background(), 0, testConfig(), rand.New(rand.NewSource(7)), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, b, err := PlayGame(context.Background(), 0, testConfig(), rand.New(rand.NewSource(7)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same seed, different games: %+v vs %+v", a, b)
	}
}

func TestPlayGame_TinyBoardIsWon(t *testing.T) {
	cfg := testConfig()
	cfg.Size = 1
	rows, res, err := PlayGame(context.Background(), 0, cfg, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatal(err)
	}
	// The lone segment already covers the board, so no tick is played.
	if res.Outcome != OutcomeWon || res.Turns != 0 || len(rows) != 1 {
		t.Fatalf("res=%+v rows=%d", res, len(rows))
	}
}

func TestPlayGame_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := PlayGame(ctx, 0, testConfig(), rand.New(rand.NewSource(1)), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}

func TestPlayGame_Trace(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.MaxTurns = 2
	cfg.Trace = &buf
	if _, _, err := PlayGame(context.Background(), 0, cfg, rand.New(rand.NewSource(3)), nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "=== TRACE Turn 1") {
		t.Fatalf("trace missing turn header:\n%s", buf.String())
	}
}

func TestPrintBoard(t *testing.T) {
	b, err := game.NewBoard(game.Params{
		Size:      3,
		Body:      []game.Point{{X: 1, Y: 1}, {X: 0, Y: 1}},
		Food:      []game.Point{{X: 2, Y: 2}},
		Bombs:     []game.Point{{X: 1, Y: 0}},
		Direction: game.Right,
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	PrintBoard(&buf, 4, b)
	out := buf.String()
	for _, want := range []string{". X . \n", "o O . \n", ". . F \n", "legal: [down right]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSampleMove_SkipsZeroMass(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if got := sampleMove(rng, [4]float32{0, 0, 1, 0}); got != game.Left {
			t.Fatalf("sampled %v from one-hot left", got)
		}
	}
}

func TestPlayGame_Planes(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTurns = 5
	cfg.Planes = true
	rows, _, err := PlayGame(context.Background(), 0, cfg, rand.New(rand.NewSource(3)), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range rows {
		planes := convert.FromBytes(r.Planes)
		if len(planes) != convert.Len(cfg.Size) {
			t.Fatalf("row %d: %d floats want %d", i, len(planes), convert.Len(cfg.Size))
		}
		head := game.Point{X: int(r.BodyX[0]), Y: int(r.BodyY[0])}
		if planes[convert.ChanHead*25+head.Y*5+head.X] != 1 {
			t.Fatalf("row %d: head plane not set at %s", i, head)
		}
	}
}
