package lexer

import "surgehdl/internal/token"

// scanDirectiveName scans a leading backtick immediately followed by an
// identifier (“ `include “, “ `define “, “ `FOO “ as a macro-usage
// site) into a single Directive token whose Value is the bare name (no
// backtick). The preprocessor dispatches on this token; everything after it
// up to EndOfDirective is the directive's raw payload, scanned by further
// Next() calls once the preprocessor puts the lexer into directive mode.
func (lx *Lexer) scanDirectiveName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`'

	nameStart := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	nameSpan := lx.cursor.SpanFrom(nameStart)
	name := string(lx.file.Content[nameSpan.Start:nameSpan.End])

	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  token.Directive,
		Span:  sp,
		Text:  string(lx.file.Content[sp.Start:sp.End]),
		Value: name,
	}
}
