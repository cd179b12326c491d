package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/reel/internal/ui/style"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(style.Slate)

func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.Slate)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	_, _ = fmt.Fprintln(w, t.Render())
}

func printField(w io.Writer, name, value string) {
	_, _ = fmt.Fprintf(w, "%-12s %s\n", name+":", value)
}
