// Package tui runs the game in a terminal with Bubble Tea.
// It maps keys to jumps, pumps the game once per tick and draws frames
// onto a character canvas.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one pump of the game.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after one update period.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
