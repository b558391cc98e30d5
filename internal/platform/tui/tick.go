// Package tui provides the Bubble Tea integration for littleman.
// It handles the terminal UI loop, input mapping, the map picker, the
// play history screen and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate < 1 {
		tickRate = 1
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// MapChangedMsg reports that a level file changed on disk.
type MapChangedMsg struct {
	MapID int
}

// watchCmd waits for the next map change. It returns nil once the
// channel is closed, which ends the chain.
func watchCmd(events <-chan int) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		id, ok := <-events
		if !ok {
			return nil
		}
		return MapChangedMsg{MapID: id}
	}
}
