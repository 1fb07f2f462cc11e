package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "stylefix [flags] <glob>...",
	Short: "CSS linter and fixer",
	Long: `stylefix lints CSS files and optionally rewrites them in place.

File arguments are glob patterns; ** matches nested directories.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runLint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().Bool("fix", false, "rewrite violations in place")
	rootCmd.Flags().String("config", "", "path to a .stylefixrc file")
	rootCmd.Flags().Bool("quiet", false, "suppress diagnostic output, only set the exit code")
	rootCmd.Flags().Bool("no-color", false, "disable colored output")

	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("stylefix: " + err.Error() + "\n")
		os.Exit(2)
	}
	os.Exit(exitCode)
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
