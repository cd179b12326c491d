package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/reel/internal/ui/style"
)

const timeLayout = "15:04:05"

type styles struct {
	title  lipgloss.Style
	failed lipgloss.Style
	muted  lipgloss.Style
}

// Model is the Bubble Tea model showing the latest snapshot of one query.
type Model struct {
	title      string
	snapshots  <-chan Snapshot
	refresh    func()
	current    Snapshot
	loaded     bool
	refreshing bool
	width      int
	height     int
	spinner    spinner.Model
	styles     styles
}

// NewModel creates a model titled title that follows snapshots.
func NewModel(title string, snapshots <-chan Snapshot) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Yellow)

	return &Model{
		title:     title,
		snapshots: snapshots,
		spinner:   s,
		styles: styles{
			title:  lipgloss.NewStyle().Bold(true).Foreground(style.Iris),
			failed: lipgloss.NewStyle().Foreground(style.Red),
			muted:  lipgloss.NewStyle().Foreground(style.Slate),
		},
	}
}

// WithRefresh enables the "r" key, which calls refresh in the background.
func (m *Model) WithRefresh(refresh func()) *Model {
	m.refresh = refresh
	return m
}

// Init starts reading snapshots.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForSnapshot(m.snapshots),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgSnapshot:
		m.current = msg.Snapshot
		m.loaded = true
		return m, WaitForSnapshot(m.snapshots)
	case msgRefreshed:
		m.refreshing = false
		return m, nil
	case MsgEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		if m.refresh == nil || m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, runRefresh(m.refresh)
	}
	return m, nil
}

// View renders the title line, the body and a status footer.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render(m.title))
	if !m.loaded || m.current.Fetching || m.refreshing {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	switch {
	case m.current.Body != "":
		b.WriteString(m.fit(m.current.Body))
		b.WriteString("\n")
	case m.loaded && m.current.Err == nil:
		b.WriteString(m.styles.muted.Render("No data") + "\n")
	case !m.loaded:
		b.WriteString(m.styles.muted.Render("Loading…") + "\n")
	}

	if m.current.Err != nil {
		b.WriteString(m.styles.failed.Render(style.Cross+" "+m.current.Err.Error()) + "\n")
	}

	footer := "q quit"
	if m.refresh != nil {
		footer = "r refresh · " + footer
	}
	if !m.current.UpdatedAt.IsZero() {
		footer = "updated " + m.current.UpdatedAt.Format(timeLayout) + " · " + footer
	}
	b.WriteString("\n" + m.styles.muted.Render(footer) + "\n")
	return b.String()
}

// fit drops trailing body lines that would not fit the terminal.
func (m *Model) fit(body string) string {
	body = strings.TrimRight(body, "\n")
	const chrome = 5
	if m.height <= chrome {
		return body
	}
	lines := strings.Split(body, "\n")
	if room := m.height - chrome; len(lines) > room {
		lines = append(lines[:room-1], "…")
	}
	return strings.Join(lines, "\n")
}
