package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/adapters/report"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
)

// filterEnv narrows the selection when --filter is not given.
const filterEnv = "KILN_TEST_FILTER"

func (c *CLI) newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [group|path...]",
		Short: "Run the test corpus against the built binary",
		Long: "Run the test corpus against the built binary. Arguments select group directories " +
			"or test paths relative to the test root; without arguments every case runs.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTests(cmd, args, "")
		},
	}
	addTestFlags(cmd)
	return cmd
}

func (c *CLI) newModeTestCmd(mode domain.TestMode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-" + string(mode),
		Short: "Run only the " + string(mode) + " test cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTests(cmd, nil, mode)
		},
	}
	addTestFlags(cmd)
	return cmd
}

func addTestFlags(cmd *cobra.Command) {
	cmd.Flags().String("filter", os.Getenv(filterEnv), "Run only cases whose path contains this text (env "+filterEnv+")")
	cmd.Flags().String("format", report.FormatLinear, "Report format: linear or tap")
	cmd.Flags().IntP("jobs", "j", 0, "Parallel workers (default: manifest, then host core count)")
}

func (c *CLI) runTests(cmd *cobra.Command, selection []string, mode domain.TestMode) error {
	filter, _ := cmd.Flags().GetString("filter")
	format, _ := cmd.Flags().GetString("format")
	jobs, _ := cmd.Flags().GetInt("jobs")

	return c.app.Test(cmd.Context(), app.TestOptions{
		Layout:    c.layout(),
		Selection: selection,
		Mode:      mode,
		Filter:    filter,
		Format:    format,
		Jobs:      jobs,
	})
}
