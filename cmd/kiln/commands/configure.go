package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure [options]",
		Short: "Resolve build options and write config.mk and config.json",
		Long: "Resolve build options against the host and write config.mk and config.json " +
			"into the output directory. Run 'kiln configure --help' for the option listing.",
		// Options are declared in one table and parsed by the resolver.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Configure(cmd.Context(), app.ConfigureOptions{
				Layout: c.layout(),
				Args:   args,
			})
		},
	}
}
