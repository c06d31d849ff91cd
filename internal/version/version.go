// Package version holds build-time identity for the surgehdl CLI.
package version

import "github.com/fatih/color"

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is set at build time via -ldflags.
	GitCommit = ""

	// BuildDate is set at build time via -ldflags, ISO-8601.
	BuildDate = ""
)
