// Package notify renders user-facing notifications on a terminal.
package notify

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/ui/output"
	"go.trai.ch/reel/internal/ui/style"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier prints success and error toasts.
type Notifier struct {
	mu      sync.Mutex
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	detail  lipgloss.Style
}

// New creates a Notifier writing to w, defaulting to stderr.
func New(w io.Writer) *Notifier {
	if w == nil {
		w = os.Stderr
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(output.ColorProfile()))

	return &Notifier{
		w:       w,
		success: r.NewStyle().Foreground(style.Green).Bold(true),
		failure: r.NewStyle().Foreground(style.Red).Bold(true),
		detail:  r.NewStyle().Foreground(style.Slate).PaddingLeft(2),
	}
}

// Success prints a confirmation line.
func (n *Notifier) Success(msg string) {
	n.write(n.success.Render(style.Check+" "+msg) + "\n")
}

// Error prints a title line followed by the indented message.
func (n *Notifier) Error(title, msg string) {
	var b strings.Builder
	b.WriteString(n.failure.Render(style.Cross+" "+title) + "\n")
	if msg != "" {
		b.WriteString(n.detail.Render(msg) + "\n")
	}
	n.write(b.String())
}

func (n *Notifier) write(s string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = io.WriteString(n.w, s)
}
