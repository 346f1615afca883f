package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	stats       *stats
	gamesPlayed int64
	rows        int64
	moves       int64
	startTime   time.Time
	recentGames []string
	updates     <-chan GameUpdate
}

func newStatsModel(updates <-chan GameUpdate, st *stats) model {
	return model{
		stats:     st,
		startTime: time.Now(),
		updates:   updates,
	}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func waitForUpdate(updates <-chan GameUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.moves = m.stats.moves.Load()
		m.gamesPlayed = m.stats.games.Load()
		m.rows = m.stats.rows.Load()
		return m, tickCmd()
	case GameUpdate:
		line := fmt.Sprintf("Worker %d: %s after %d turns, length %d", msg.WorkerID, msg.Result.Outcome, msg.Result.Turns, msg.Result.Length)
		m.recentGames = append([]string{line}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	gamesPerSec := float64(m.gamesPlayed) / duration.Seconds()
	movesPerSec := float64(m.moves) / duration.Seconds()
	if duration.Seconds() < 1 {
		gamesPerSec = 0
		movesPerSec = 0
	}

	var s strings.Builder
	fmt.Fprintf(&s, "Games Played:   %d\n", m.gamesPlayed)
	fmt.Fprintf(&s, "  won/lost/cut: %d/%d/%d\n", m.stats.won.Load(), m.stats.lost.Load(), m.stats.truncated.Load())
	fmt.Fprintf(&s, "Rows Recorded:  %d\n", m.rows)
	fmt.Fprintf(&s, "Total Moves:    %d\n", m.moves)
	fmt.Fprintf(&s, "Duration:       %s\n", duration.Round(time.Second))
	fmt.Fprintf(&s, "Games/Sec:      %.2f\n", gamesPerSec)
	fmt.Fprintf(&s, "Moves/Sec:      %.2f\n\n", movesPerSec)

	s.WriteString("Recent Games:\n")
	for _, g := range m.recentGames {
		s.WriteString(g + "\n")
	}

	s.WriteString("\nPress q to quit.\n")
	return s.String()
}
