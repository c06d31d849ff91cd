package preprocessor

import (
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// Options configures a Preprocessor's include search, predefine set, and the
// lexer settings it hands down to every frame it pushes.
type Options struct {
	Reporter       diag.Reporter
	KeywordVersion token.KeywordVersion

	// MaxIncludeDepth bounds the include stack; exceeding it is a diagnostic
	// and the offending include is ignored rather than aborting the run.
	MaxIncludeDepth int

	// IncludeDirs is searched for angle-bracket includes and as a fallback
	// for quoted includes that are not found next to the including file.
	IncludeDirs source.IncludeDirs

	// PredefineSource labels the origin of Predefines in diagnostics
	// ("command line", "config file", ...).
	PredefineSource string

	// Predefines are NAME or NAME=value entries pushed as macros before the
	// first token is read.
	Predefines []string

	// Undefines removes a predefine (or an intrinsic-adjacent name) before
	// the first token is read; intrinsics themselves cannot be undefined.
	Undefines []string

	// MaxLexerErrors caps the number of lexical errors each pushed frame's
	// lexer tolerates before abandoning the rest of its buffer; forwarded
	// verbatim to lexer.Options.MaxErrors.
	MaxLexerErrors uint32
}

const defaultMaxIncludeDepth = 1024

const defaultMaxExpansionDepth = 1000

func (o Options) maxIncludeDepth() int {
	if o.MaxIncludeDepth <= 0 {
		return defaultMaxIncludeDepth
	}
	return o.MaxIncludeDepth
}
