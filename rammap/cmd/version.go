package cmd

import (
	"github.com/spf13/cobra"
)

// Version is the version of rammap. It can be overridden at build time with
// -ldflags.
var Version = "0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of rammap.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			summaryColor.Fprintf(cmd.OutOrStdout(), "rammap %s\n", Version)
		},
	}
}
