//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Update_Snapshot(t *testing.T) {
	ch := make(chan Snapshot, 1)
	m := NewModel("Stats", ch)

	snap := Snapshot{Body: "customers 3", UpdatedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
	_, cmd := m.Update(MsgSnapshot{Snapshot: snap})

	assert.True(t, m.loaded)
	assert.Equal(t, snap, m.current)
	require.NotNil(t, cmd, "model should keep reading snapshots")

	ch <- Snapshot{Body: "customers 4"}
	msg := cmd()
	assert.Equal(t, MsgSnapshot{Snapshot: Snapshot{Body: "customers 4"}}, msg)
}

func TestModel_Update_EndedQuits(t *testing.T) {
	ch := make(chan Snapshot)
	close(ch)
	m := NewModel("Stats", ch)

	msg := WaitForSnapshot(ch)()
	assert.Equal(t, MsgEnded{}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_Update_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		m := NewModel("Stats", nil)
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.Quit(), cmd(), key.String())
	}
}

func TestModel_Update_Refresh(t *testing.T) {
	calls := 0
	m := NewModel("Stats", nil).WithRefresh(func() { calls++ })
	refreshKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}

	_, cmd := m.Update(refreshKey)
	require.NotNil(t, cmd)
	assert.True(t, m.refreshing)

	// A second press while refreshing is ignored.
	_, again := m.Update(refreshKey)
	assert.Nil(t, again)

	msg := cmd()
	assert.Equal(t, 1, calls)
	m.Update(msg)
	assert.False(t, m.refreshing)
}

func TestModel_Update_RefreshDisabled(t *testing.T) {
	m := NewModel("Stats", nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd)
	assert.False(t, m.refreshing)
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := NewModel("Stats", nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 24, m.height)
}

func TestModel_Update_KeepsErrorWithData(t *testing.T) {
	m := NewModel("Stats", nil)
	m.Update(MsgSnapshot{Snapshot: Snapshot{Body: "customers 3", Err: errors.New("boom")}})
	assert.Equal(t, "customers 3", m.current.Body)
	assert.EqualError(t, m.current.Err, "boom")
}
