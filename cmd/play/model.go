package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brensch/snektorus/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	bodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	foodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	bombStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

type tickMsg time.Time

type model struct {
	board *game.Board
	size  int
	tick  time.Duration
	rng   game.Rand
	log   *slog.Logger

	won    bool
	resets int
}

func newModel(size int, tick time.Duration, rng game.Rand, logger *slog.Logger) model {
	m := model{size: size, tick: tick, rng: rng, log: logger}
	m.restart()
	return m
}

// restart is the "r" key: a fresh board with one food item and the timer
// running. A board with no room for food is won before the first move.
func (m *model) restart() {
	b := game.Reset(game.WithSize(m.size))
	fed, err := b.PlaceFood(m.rng)
	m.won = false
	switch {
	case errors.Is(err, game.ErrBoardFull):
		m.board, m.won = b, true
	case err != nil:
		m.log.Error("place initial food", "err", err)
		m.board = b
	default:
		m.board = fed.StartTimer()
	}
}

// resetAfter handles engine invariant errors: log, then start over.
func (m *model) resetAfter(op string, err error) {
	m.resets++
	m.log.Error("engine invariant violated, resetting", "op", op, "err", err, "board", m.board.String())
	m.restart()
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.step()
		return m, m.tickCmd()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.restart()
		m.log.Info("game reset")
		return m, nil
	case " ", "space":
		switch {
		case m.board.IsTimerRunning():
			m.board = m.board.StopTimer()
		case !m.board.IsGameOver() && !m.won:
			m.board = m.board.StartTimer()
		}
		return m, nil
	}

	d, ok := game.DirectionForKey(key)
	if !ok {
		var err error
		if d, err = game.ParseDirection(key); err != nil {
			return m, nil
		}
	}
	next, err := m.board.SetDirection(d)
	if err != nil {
		m.resetAfter("set direction", err)
		return m, nil
	}
	m.board = next
	return m, nil
}

// step advances one tick while the timer runs.
func (m *model) step() {
	if !m.board.IsTimerRunning() {
		return
	}
	next, err := m.board.Move(m.rng)
	switch {
	case errors.Is(err, game.ErrBoardFull):
		m.board = next.StopTimer()
		m.won = true
		m.log.Info("board filled", "length", next.Len())
		return
	case err != nil:
		m.resetAfter("move", err)
		return
	}
	m.board = next
	if m.board.IsGameOver() {
		m.board = m.board.StopTimer()
		m.log.Info("game over", "length", m.board.Len(), "head", m.board.Head().String())
	}
}

func (m model) View() string {
	b := m.board
	var grid strings.Builder
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			grid.WriteString(cell(b, game.Point{X: x, Y: y}))
		}
		if y < b.Size()-1 {
			grid.WriteByte('\n')
		}
	}

	var status string
	switch {
	case m.won:
		status = alertStyle.Render("board full, you win")
	case b.IsGameOver():
		status = alertStyle.Render("game over")
	case b.IsTimerRunning():
		status = "running"
	default:
		status = "paused"
	}

	return fmt.Sprintf("%s\nlength %d  heading %s  %s\n%s\n",
		boardStyle.Render(grid.String()),
		b.Len(), b.CurrentDirection(), status,
		helpStyle.Render("w/a/s/d or arrows steer, space pauses, r restarts, q quits"),
	)
}

func cell(b *game.Board, p game.Point) string {
	if p == b.Head() {
		return headStyle.Render("@ ")
	}
	obj, ok := b.ObjectAt(p)
	if !ok {
		return emptyStyle.Render(". ")
	}
	switch obj.Kind {
	case game.KindSnake:
		return bodyStyle.Render("o ")
	case game.KindFood:
		return foodStyle.Render("* ")
	case game.KindBomb:
		return bombStyle.Render("x ")
	}
	return "? "
}
