package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the cache effects of every mutation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := c.app.Graph()
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				effects := strings.Join(e.Effects, "\n")
				if effects == "" {
					effects = "-"
				}
				rows = append(rows, []string{e.Mutation, effects})
			}
			printTable(cmd.OutOrStdout(), []string{"MUTATION", "EFFECTS"}, rows)
			return nil
		},
	}
}
