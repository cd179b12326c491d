package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/reel/internal/app"
	"go.trai.ch/reel/internal/core/domain"
)

func (c *CLI) newClipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clips",
		Short: "Manage training clips",
	}

	cmd.AddCommand(c.newClipsUploadCmd())

	return cmd
}

func (c *CLI) newClipsUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a video file as a new clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			quiet, _ := cmd.Flags().GetBool("quiet")

			stderr := cmd.ErrOrStderr()
			opts := app.UploadOptions{
				Path:        args[0],
				Title:       title,
				Description: description,
			}
			if !quiet {
				opts.Progress = func(p domain.UploadProgress) {
					_, _ = fmt.Fprintf(stderr, "\rUploading %3.0f%%", p.Fraction*100)
				}
			}

			clip, err := c.app.UploadClip(cmd.Context(), opts)
			if !quiet {
				_, _ = fmt.Fprintln(stderr)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%s)\n", clip.Title, clip.ID)
			return nil
		},
	}

	cmd.Flags().StringP("title", "t", "", "Clip title (defaults to the file name)")
	cmd.Flags().StringP("description", "d", "", "Clip description")
	cmd.Flags().BoolP("quiet", "q", false, "Do not report upload progress")

	return cmd
}
