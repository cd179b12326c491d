package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/reel/internal/core/domain"
)

func (c *CLI) newCoursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse and enroll in courses",
	}

	cmd.AddCommand(c.newCoursesListCmd())
	cmd.AddCommand(c.newCoursesGetCmd())
	cmd.AddCommand(c.newCoursesEnrollCmd())
	cmd.AddCommand(c.newCoursesProgressCmd())

	return cmd
}

func (c *CLI) newCoursesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, _ := cmd.Flags().GetStringSlice("filter")
			f, err := parseFilters(raw)
			if err != nil {
				return err
			}

			courses, err := c.app.Courses(cmd.Context(), f)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(courses))
			for _, course := range courses {
				rows = append(rows, []string{course.ID, course.Title, course.Status})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "TITLE", "STATUS"}, rows)
			return nil
		},
	}

	cmd.Flags().StringSliceP("filter", "f", nil, "Filter as key=value (repeatable)")

	return cmd
}

func (c *CLI) newCoursesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := c.app.Course(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printField(w, "ID", course.ID)
			printField(w, "Title", course.Title)
			printField(w, "Status", course.Status)
			printField(w, "Clips", fmt.Sprint(len(course.ClipIDs)))
			if course.Description != "" {
				_, _ = fmt.Fprintln(w)
				_, _ = fmt.Fprintln(w, course.Description)
			}
			return nil
		},
	}
}

func (c *CLI) newCoursesEnrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll ID",
		Short: "Enroll in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enrollment, err := c.app.Enroll(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Enrolled in %s\n", enrollment.CourseID)
			return nil
		},
	}
}

func (c *CLI) newCoursesProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress ID",
		Short: "Show your progress in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := c.app.Progress(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f%% (%d clips completed)\n",
				progress.CourseID, progress.Percent, len(progress.CompletedClips))
			return nil
		},
	}
}

func parseFilters(raw []string) (domain.Filters, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	f := make(domain.Filters, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", kv)
		}
		f[key] = value
	}
	return f, nil
}
