package cmd

import (
	"github.com/spf13/cobra"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "exprlang",
	Short: "A mathematical expression engine",
	Long: `exprlang evaluates mathematical expressions: exact rational arithmetic,
IEEE-754 doubles, percents, units, vectors, matrices, ranges, lambdas,
and user-defined functions over a three-stage lex -> parse -> evaluate
pipeline.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
