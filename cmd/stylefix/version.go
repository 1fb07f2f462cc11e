package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"stylefix.dev/stylefix/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stylefix %s\n", version.GetFullVersion())
	},
}
