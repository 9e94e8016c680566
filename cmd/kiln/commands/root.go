// Package commands implements the CLI commands for the kiln build pipeline.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/core/domain"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app       Application
	rootCmd   *cobra.Command
	directory string
	outDir    string
}

// Application represents the application logic interface.
type Application interface {
	Configure(ctx context.Context, opts app.ConfigureOptions) error
	Generate(ctx context.Context, opts app.GenerateOptions) error
	Build(ctx context.Context, opts app.BuildOptions) error
	Clean(ctx context.Context, layout domain.Layout) error
	Distclean(ctx context.Context, layout domain.Layout) error
	Test(ctx context.Context, opts app.TestOptions) error
	Graph(ctx context.Context, opts app.GraphOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:              "kiln",
		Short:            "Configure, generate, build and test a native project",
		SilenceUsage:     true,
		SilenceErrors:    true,
		TraverseChildren: true,
		Version:          build.Version,
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

	rootCmd.PersistentFlags().StringVarP(&c.directory, "directory", "C", ".", "Project root")
	rootCmd.PersistentFlags().StringVar(&c.outDir, "out", domain.DefaultOutputDir, "Output directory, relative to the project root")

	rootCmd.AddCommand(c.newConfigureCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newDistcleanCmd())
	rootCmd.AddCommand(c.newTestCmd())
	rootCmd.AddCommand(c.newModeTestCmd(domain.ModeParallel))
	rootCmd.AddCommand(c.newModeTestCmd(domain.ModeSequential))
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

func (c *CLI) layout() domain.Layout {
	return domain.NewLayout(c.directory, c.outDir)
}
