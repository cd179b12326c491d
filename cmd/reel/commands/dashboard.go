package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your enrolled courses, bookmarks and plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.app.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Welcome back, %s\n\n", d.User.Name)

			courses := make([][]string, 0, len(d.Enrolled))
			for _, course := range d.Enrolled {
				courses = append(courses, []string{course.ID, course.Title})
			}
			printTable(w, []string{"COURSE", "TITLE"}, courses)

			clips := make([][]string, 0, len(d.Bookmarks))
			for _, clip := range d.Bookmarks {
				clips = append(clips, []string{clip.ID, clip.Title})
			}
			printTable(w, []string{"BOOKMARK", "TITLE"}, clips)

			printField(w, "Plan", d.Subscription.PlanID)
			printField(w, "Status", d.Subscription.Status)
			return nil
		},
	}
}
