package lexer

import (
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
)

const utf8RuneSelf = 0x80

// maxTokenLength bounds a single lexeme; a lexer that never stops growing a
// token (e.g. runaway identifier in a corrupted file) aborts with a
// diagnostic instead of allocating without limit.
const maxTokenLength = 1 << 16

// scanIdentOrKeyword scans a plain identifier and checks it against the
// keyword table for the lexer's active version. Keywords are lowercase and
// case-sensitive; any other casing is always Identifier.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
			if lx.cursor.Off-uint32(start) > maxTokenLength {
				return lx.tokenTooLong(start)
			}
		}
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
			if lx.cursor.Off-uint32(start) > maxTokenLength {
				return lx.tokenTooLong(start)
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text, lx.keywordVersion()); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Identifier, Span: sp, Text: text}
}

// scanSystemIdentifier scans a `$name` system task/function/identifier: the
// leading '$' plus the same identifier-continue character class.
func (lx *Lexer) scanSystemIdentifier() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.SystemIdentifier, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanEscapedIdentifier scans a `\name` escaped identifier: everything up to
// (not including) the next whitespace character. The leading backslash stays
// in Text for round-trip fidelity; Value carries the stripped form.
func (lx *Lexer) scanEscapedIdentifier() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	for {
		b := lx.cursor.Peek()
		if lx.cursor.EOF() || b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	value := ""
	if len(text) > 1 {
		value = text[1:]
	}
	if value == "" {
		lx.errLex(diag.LexExpectedVectorDigits, sp, "escaped identifier has no characters after '\\'")
	}
	return token.Token{Kind: token.EscapedIdentifier, Span: sp, Text: text, Value: value}
}

func (lx *Lexer) tokenTooLong(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexTokenTooLong, sp, "token exceeds the maximum supported length")
	for !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start), Text: string(lx.file.Content[sp.Start:lx.cursor.Off])}
}
