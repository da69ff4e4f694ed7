package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/larder"
	"github.com/mesh-intelligence/larder/pkg/types"
)

const modulePath = "github.com/mesh-intelligence/larder"

// versionInfo describes the build and the value model scenarios can use.
type versionInfo struct {
	Version  string   `json:"version"`
	Module   string   `json:"module"`
	Kinds    []string `json:"kinds"`
	Reserved []string `json:"reserved_components"`
}

func currentVersion() versionInfo {
	kinds := make([]string, len(types.Kinds))
	for i, k := range types.Kinds {
		kinds[i] = string(k)
	}
	return versionInfo{
		Version:  larder.Version,
		Module:   modulePath,
		Kinds:    kinds,
		Reserved: types.ReservedComponentNames,
	}
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the larder version and supported value kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersion()
			if opts.outputFormat() == formatJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "larder v%s\n", info.Version)
			fmt.Fprintf(w, "module: %s\n", info.Module)
			fmt.Fprintf(w, "kinds: %s\n", strings.Join(info.Kinds, ", "))
			fmt.Fprintf(w, "reserved components: %s\n", strings.Join(info.Reserved, ", "))
			return nil
		},
	}
}
