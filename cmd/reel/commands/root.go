// Package commands implements the CLI commands for the reel client.
package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/reel/internal/app"
	"go.trai.ch/reel/internal/build"
	"go.trai.ch/reel/internal/core/domain"
)

// CLI represents the command line interface for reel.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) (domain.User, error)
	Dashboard(ctx context.Context) (app.Dashboard, error)
	Courses(ctx context.Context, f domain.Filters) ([]domain.Course, error)
	Course(ctx context.Context, id string) (domain.Course, error)
	Enroll(ctx context.Context, id string) (domain.Enrollment, error)
	Progress(ctx context.Context, id string) (domain.CourseProgress, error)
	UploadClip(ctx context.Context, opts app.UploadOptions) (domain.Clip, error)
	WatchAnalytics(ctx context.Context, f domain.Filters, interval time.Duration) error
	WatchStats(ctx context.Context, interval time.Duration) error
	Graph() []app.GraphEntry
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "reel",
		Short:         "Command line client for the reel learning platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newLoginCmd())
	rootCmd.AddCommand(c.newLogoutCmd())
	rootCmd.AddCommand(c.newWhoamiCmd())
	rootCmd.AddCommand(c.newDashboardCmd())
	rootCmd.AddCommand(c.newCoursesCmd())
	rootCmd.AddCommand(c.newClipsCmd())
	rootCmd.AddCommand(c.newAnalyticsCmd())
	rootCmd.AddCommand(c.newAdminCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the input stream for the root command. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}
