// Package tui renders live query results in the terminal.
package tui

import tea "github.com/charmbracelet/bubbletea"

// WaitForSnapshot returns a Bubble Tea command that reads the next snapshot.
// It returns MsgEnded once the channel is closed.
func WaitForSnapshot(snapshots <-chan Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-snapshots
		if !ok {
			return MsgEnded{}
		}
		return MsgSnapshot{Snapshot: s}
	}
}

func runRefresh(refresh func()) tea.Cmd {
	return func() tea.Msg {
		refresh()
		return msgRefreshed{}
	}
}
