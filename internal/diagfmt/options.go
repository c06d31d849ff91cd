// Package diagfmt renders a diag.Bag for humans (Pretty) or tools (JSON),
// and dumps a lexed token stream for the tokens CLI subcommand.
package diagfmt

// PathMode selects how a diagnostic's file path is displayed.
type PathMode uint8

const (
	// PathModeAuto shows a short path as-is, falling back to the basename
	// for long absolute paths.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// pathModeString maps a PathMode to the string mode source.File.FormatPath
// expects; FormatPath is string-keyed rather than enum-keyed because it
// predates this package and is also called directly by a few source-package
// internals that don't want to import diagfmt.
func (m PathMode) pathModeString() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int8 // extra source lines shown above/below the primary span, 0 = caret line only
	PathMode  PathMode
	Width     uint8 // wrap long messages at this column; 0 = unlimited
	ShowNotes bool
}

// JSONOpts configures FormatDiagnosticsJSON.
type JSONOpts struct {
	PathMode         PathMode
	IncludePositions bool
	IncludeNotes     bool
	Max              int // truncate the emitted array at this many entries, 0 = unlimited
}
