package lexer

import (
	"math/big"
	"strconv"
	"strings"
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
)

// scanNumber scans an unsized decimal integer, a real literal, a time
// literal, or the magic "1step" keyword-like token. Based/unsized vector
// literals (8'hFF, 'x, 'bzz01) start with an apostrophe and are scanned
// separately by scanApostropheLiteral.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.tryStr("1step") {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.OneStep, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	if lx.cursor.Peek() == '.' {
		return lx.scanRealAfterDot(start, "")
	}

	digits := lx.scanDigitRun(isDec)

	if lx.cursor.Peek() == '.' {
		return lx.scanRealAfterDot(start, digits)
	}
	if c := lx.cursor.Peek(); c == 'e' || c == 'E' {
		if lx.looksLikeExponent() {
			return lx.scanExponentAndEmit(start, digits, digits)
		}
	}
	if tu, ok := lx.peekTimeUnit(); ok {
		sp := lx.cursor.SpanFrom(start)
		v, _ := strconv.ParseFloat(strings.ReplaceAll(digits, "_", ""), 64)
		return token.Token{
			Kind:  token.TimeLiteral,
			Span:  sp,
			Text:  string(lx.file.Content[sp.Start:sp.End]),
			Value: token.TimeValue{Value: v, Unit: tu},
		}
	}

	sp := lx.cursor.SpanFrom(start)
	bits := new(big.Int)
	bits.SetString(strings.ReplaceAll(digits, "_", ""), 10)
	return token.Token{
		Kind: token.IntegerLiteral,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Value: token.IntValue{
			Bits:    bits,
			Unknown: new(big.Int),
			HighZ:   new(big.Int),
			Width:   0,
		},
	}
}

// scanDigitRun consumes a run of digits (matching pred) and underscores,
// returning the matched text with underscores intact.
func (lx *Lexer) scanDigitRun(pred func(byte) bool) string {
	start := lx.cursor.Mark()
	for pred(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) scanRealAfterDot(start Mark, intPart string) token.Token {
	lx.cursor.Bump() // '.'
	if !isDec(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexMissingFractionalDigits, sp, "expected digit after '.'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	frac := lx.scanDigitRun(isDec)
	if c := lx.cursor.Peek(); c == 'e' || c == 'E' {
		return lx.scanExponentAndEmit(start, intPart+"."+frac, intPart+frac)
	}
	return lx.emitReal(start)
}

// looksLikeExponent reports whether the upcoming 'e'/'E' begins a real
// exponent (requires an optional sign then at least one digit).
func (lx *Lexer) looksLikeExponent() bool {
	off := lx.cursor.Off + 1
	content := lx.file.Content
	if int(off) < len(content) && (content[off] == '+' || content[off] == '-') {
		off++
	}
	return int(off) < len(content) && isDec(content[off])
}

func (lx *Lexer) scanExponentAndEmit(start Mark, _, _ string) token.Token {
	lx.cursor.Bump() // e/E
	if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexMissingExponentDigits, sp, "expected digit after exponent")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	lx.scanDigitRun(isDec)
	return lx.emitReal(start)
}

func (lx *Lexer) emitReal(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		lx.errLex(diag.LexRealExponentOverflow, sp, "real literal exponent overflows to infinity")
	}
	return token.Token{Kind: token.RealLiteral, Span: sp, Text: text, Value: v}
}

// peekTimeUnit checks for (and consumes) a trailing time-unit suffix:
// s, ms, us, ns, ps, fs.
func (lx *Lexer) peekTimeUnit() (token.TimeUnit, bool) {
	switch lx.cursor.Peek() {
	case 's':
		lx.cursor.Bump()
		return token.TimeUnitSeconds, true
	case 'm':
		if lx.peekNext() == 's' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return token.TimeUnitMilliseconds, true
		}
	case 'u':
		if lx.peekNext() == 's' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return token.TimeUnitMicroseconds, true
		}
	case 'n':
		if lx.peekNext() == 's' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return token.TimeUnitNanoseconds, true
		}
	case 'p':
		if lx.peekNext() == 's' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return token.TimeUnitPicoseconds, true
		}
	case 'f':
		if lx.peekNext() == 's' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return token.TimeUnitFemtoseconds, true
		}
	}
	return token.TimeUnitUnknown, false
}

func (lx *Lexer) peekNext() byte {
	if _, b1, ok := lx.cursor.Peek2(); ok {
		return b1
	}
	return 0
}
