package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
	"go.trai.ch/reel/internal/tui"
	"go.trai.ch/reel/internal/ui/style"
)

// WatchAnalytics shows the analytics overview, refreshed every interval,
// until the user quits or ctx ends.
func (a *App) WatchAnalytics(ctx context.Context, f domain.Filters, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obs := a.reg.Analytics.WatchOverview(ctx, f, querycache.RefetchInterval(interval))
	defer obs.Close()

	return watchView(ctx, a, "Analytics overview", obs, renderOverview)
}

// WatchStats shows the admin statistics, refreshed every interval, until the
// user quits or ctx ends.
func (a *App) WatchStats(ctx context.Context, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obs := a.reg.Admin.WatchStats(ctx, querycache.RefetchInterval(interval))
	defer obs.Close()

	return watchView(ctx, a, "Platform statistics", obs, renderStats)
}

func watchView[T any](
	ctx context.Context, a *App, title string, obs *querycache.Observer[T], render func(T) string,
) error {
	if err := a.session.WatchToken(ctx); err != nil {
		a.logger.Warn("not following sign-in changes: " + err.Error())
	}

	// Refresh failures show up in the next snapshot.
	model := tui.NewModel(title, snapshots(ctx, obs, render)).WithRefresh(func() {
		_, _ = obs.Refetch(ctx)
	})

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
	_, err := tea.NewProgram(model, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// snapshots renders every observer update until the observer closes or ctx ends.
func snapshots[T any](ctx context.Context, obs *querycache.Observer[T], render func(T) string) <-chan tui.Snapshot {
	out := make(chan tui.Snapshot, 1)
	go func() {
		defer close(out)
		for st := range obs.Updates() {
			snap := tui.Snapshot{Err: st.Err, Fetching: st.IsFetching, UpdatedAt: st.UpdatedAt}
			if st.HasData {
				snap.Body = render(st.Data)
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func renderOverview(o domain.AnalyticsOverview) string {
	return fieldTable(
		[]string{"Views", fmt.Sprint(o.Views)},
		[]string{"Completions", fmt.Sprint(o.Completions)},
		[]string{"Active learners", fmt.Sprint(o.ActiveLearners)},
		[]string{"Watch hours", fmt.Sprintf("%.1f", o.WatchHours)},
	)
}

func renderStats(s domain.AdminStats) string {
	return fieldTable(
		[]string{"Customers", fmt.Sprint(s.Customers)},
		[]string{"Active users", fmt.Sprint(s.ActiveUsers)},
		[]string{"Open tasks", fmt.Sprint(s.OpenTasks)},
	)
}

// fieldTable lays out label/value rows without borders.
func fieldTable(rows ...[]string) string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(style.Slate).PaddingRight(2)
			}
			return lipgloss.NewStyle()
		}).
		Rows(rows...).
		Render()
}
