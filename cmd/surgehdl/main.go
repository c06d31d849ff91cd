package main

import (
	"os"

	"github.com/spf13/cobra"

	"surgehdl/internal/logging"
	"surgehdl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "surgehdl",
	Short: "surgehdl language toolchain",
	Long:  `surgehdl lexes, preprocesses, parses, and elaborates hardware description language source files.`,
}

// main registers subcommands and persistent flags, then executes the root
// command, exiting with status 1 on error.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 1000, "maximum number of diagnostics to report per file")
	rootCmd.PersistentFlags().String("project", "", "path to search for surgehdl.toml (defaults to the current directory)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveColor reads the --color persistent flag and decides whether f
// should actually receive ANSI color, falling back to terminal detection
// for "auto".
func resolveColor(cmd *cobra.Command, f *os.File) bool {
	modeStr, _ := cmd.Root().PersistentFlags().GetString("color")
	return logging.Resolve(logging.ColorMode(modeStr), f)
}
