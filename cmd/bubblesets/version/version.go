// Package version provides the version command.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Cmd is the version command.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "bubblesets %s\n", Version())
		return err
	},
}

// Version returns the module version the binary was built from.
func Version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}
