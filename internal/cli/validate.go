package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/scenario"
)

// validateResult is the JSON form of a successful validation.
type validateResult struct {
	Scenario   string `json:"scenario"`
	Valid      bool   `json:"valid"`
	Components int    `json:"components"`
	Resources  int    `json:"resources"`
	Steps      int    `json:"steps"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return withCode(exitUserError, err)
			}

			result := validateResult{
				Scenario:   s.Name,
				Valid:      true,
				Components: len(s.Components),
				Resources:  len(s.Resources),
				Steps:      len(s.Steps),
			}
			if opts.outputFormat() == formatJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scenario %s is valid: %d components, %d resources, %d steps\n",
				result.Scenario, result.Components, result.Resources, result.Steps)
			return nil
		},
	}
}
