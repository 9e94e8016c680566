package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the Makefile and build.ninja for the configured build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Generate(cmd.Context(), app.GenerateOptions{
				Layout: c.layout(),
				Force:  force,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Regenerate even when the build files are up to date")
	return cmd
}

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [target]",
		Short: "Build a target with make or ninja",
		Long:  "Build a target, the primary target by default, regenerating stale build files first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			opts := app.BuildOptions{Layout: c.layout(), Jobs: jobs}
			if len(args) == 1 {
				opts.Target = args[0]
			}
			return c.app.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel jobs passed to the orchestrator")
	return cmd
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove compiled outputs, keeping the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context(), c.layout())
		},
	}
}

func (c *CLI) newDistcleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distclean",
		Short: "Remove everything configure, generate and build produced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Distclean(cmd.Context(), c.layout())
		},
	}
}

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [target]",
		Short: "Print the target dependency tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.GraphOptions{Layout: c.layout()}
			if len(args) == 1 {
				opts.Target = args[0]
			}
			return c.app.Graph(cmd.Context(), opts)
		},
	}
}
