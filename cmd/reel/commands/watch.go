package commands

import (
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Engagement analytics",
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Show a live analytics overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			raw, _ := cmd.Flags().GetStringSlice("filter")
			f, err := parseFilters(raw)
			if err != nil {
				return err
			}
			return c.app.WatchAnalytics(cmd.Context(), f, interval)
		},
	}
	watch.Flags().Duration("interval", time.Minute, "Refresh interval")
	watch.Flags().StringSliceP("filter", "f", nil, "Filter as key=value (repeatable)")
	cmd.AddCommand(watch)

	return cmd
}

func (c *CLI) newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration views",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show live platform statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			return c.app.WatchStats(cmd.Context(), interval)
		},
	}
	stats.Flags().Duration("interval", 30*time.Second, "Refresh interval")
	cmd.AddCommand(stats)

	return cmd
}
