package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scriptctl",
	Short: "Inspect and run the embedded expression language",
	Long: `scriptctl is a debugging CLI for the expression language that powers
a media-subscription tool's preset templating system: format strings
mixing literal text, variables, function calls, lambdas, maps, arrays,
and user-defined custom functions.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
