// Package tui provides the Bubble Tea integration for blockfall.
// It handles the terminal UI loop, key bindings, replay recording, the
// replay browser and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. ID ties the message
// to the tick loop that scheduled it, so a loop left over from a finished
// game cannot drive the next one.
type TickMsg struct {
	Time time.Time
	ID   int64
}

var lastTickID atomic.Int64

func nextTickID() int64 {
	return lastTickID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
