package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/scenario"
	"github.com/mesh-intelligence/larder/pkg/larder"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var capacity int

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario against a fresh world and print the report",
		Long: `Run a scenario against a fresh in-memory world.

Query and resource steps are collected into a report that is printed
after the last step. Nothing is persisted.

Example:
  larder run sweep.yaml
  larder run --format json sweep.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return withCode(exitUserError, err)
			}

			world := larder.NewWorld(
				larder.WithLogger(opts.logger),
				larder.WithCapacity(capacity),
			)
			report, err := scenario.Run(world, s)
			if err != nil {
				return withCode(exitUserError, err)
			}

			if err := writeReport(cmd.OutOrStdout(), opts.outputFormat(), report); err != nil {
				return withCode(exitSysError, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 0, "expected entity count used to size buffers")
	return cmd
}
