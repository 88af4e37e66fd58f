package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var VersionName = "n/a"
var GitCommit = "n/a"
var BuildDate = "n/a"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Printing the version needs neither configuration nor a store.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nCommit: %s\nDate: %s\n", VersionName, GitCommit, BuildDate)
		},
	}
}
