// Package cmd contains all cobra command definitions for the contentidx CLI.
package cmd

import (
	"github.com/spf13/cobra"
)

// global flags shared by every command.
var (
	flagEnvFile string
	flagOutput  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "contentidx",
	Short: "contentidx: index a Markdown content directory",
	Long: `contentidx reads Markdown documents with TOML or YAML frontmatter
and prints the indexes a static site renders from them.

Flat collections (blog, events) are listed newest first and support
previous/next navigation. Hierarchical collections (docs) are built
into a directory tree titled by each directory's index document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to a .env file with CONTENT_* settings")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output format: pretty, json or yaml (default pretty on a terminal, json otherwise)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.AddCommand(
		newTreeCmd(),
		newListCmd(),
		newShowCmd(),
		newAdjacentCmd(),
		newSearchCmd(),
		newValidateCmd(),
	)
}
