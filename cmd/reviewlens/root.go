// Command reviewlens is a thin CLI front-end over the review engine core:
// argument parsing, git diff invocation, working-directory management, and
// logging setup. The engine contracts in internal/engine do all the work.
package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "reviewlens is a local, non-interactive code-review engine",
	Long: `reviewlens parses a unified diff, runs security and convention
scanners restricted to added lines, augments findings with retrieved
repository context, and emits a deterministic Markdown or JSON report.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the reviewlens TOML config file (default: ./reviewlens.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose step output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(printConfigCmd)
	rootCmd.AddCommand(versionCmd)
}
