package selfplay

import (
	"fmt"
	"io"
	"strings"

	"github.com/brensch/snektorus/game"
	"github.com/brensch/snektorus/rules"
)

// PrintBoard writes a spaced-out grid of b followed by the legal moves.
func PrintBoard(w io.Writer, turn int, b *game.Board) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n=== TRACE Turn %d (len=%d dir=%v over=%t) ===\n", turn, b.Len(), b.CurrentDirection(), b.IsGameOver())

	head := b.Head()
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			p := game.Point{X: x, Y: y}
			sb.WriteString(cellRune(b, p, head) + " ")
		}
		sb.WriteString("\n")
	}

	moves := rules.LegalMoves(b)
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	fmt.Fprintf(&sb, "legal: [%s]\n", strings.Join(names, " "))
	_, _ = io.WriteString(w, sb.String())
}

func cellRune(b *game.Board, p, head game.Point) string {
	o, ok := b.ObjectAt(p)
	if !ok {
		return "."
	}
	switch o.Kind {
	case game.KindFood:
		return "F"
	case game.KindBomb:
		return "X"
	}
	if p == head {
		return "O"
	}
	return "o"
}
