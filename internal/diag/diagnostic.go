package diag

import (
	"surgehdl/internal/source"
)

// Note is a secondary span attached to a Diagnostic, e.g. the evaluator's
// own diagnostics reattached as notes under ExpressionNotConstant.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single coded finding with a primary source range and
// optional notes. Diagnostics are immutable value objects appended to a Bag.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote appends a note and returns the updated value.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
