package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  "Create the configuration directory and a default config.yaml.\nAn existing config.yaml is left unchanged.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, written, err := writeConfigIfMissing(opts.resolvedDir)
			if err != nil {
				return withCode(exitSysError, err)
			}
			if written {
				opts.logger.Debug("config written", "path", path)
				fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
			return nil
		},
	}
}
