package lexer

import (
	"math/big"
	"strings"
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
)

// scanApostropheLiteral scans everything that can start with `'`:
//   - '0 '1 'x 'X 'z 'Z '? -> UnbasedUnsizedLiteral
//   - '[s]<b|o|d|h><digits> -> IntegerBase, digits decoded eagerly
//   - '{ -> TickLBrace (assignment-pattern opener)
//   - '( -> TickLParen (cast operator, e.g. int'(x))
func (lx *Lexer) scanApostropheLiteral() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\''

	switch c := lx.cursor.Peek(); c {
	case '0', '1':
		lx.cursor.Bump()
		bits := big.NewInt(int64(c - '0'))
		return lx.emitUnbasedUnsized(start, bits, nil, nil)
	case 'x', 'X':
		lx.cursor.Bump()
		return lx.emitUnbasedUnsized(start, big.NewInt(0), big.NewInt(1), nil)
	case 'z', 'Z', '?':
		lx.cursor.Bump()
		return lx.emitUnbasedUnsized(start, big.NewInt(0), nil, big.NewInt(1))
	case '{':
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.TickLBrace, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	case '(':
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.TickLParen, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	case 's', 'S':
		lx.cursor.Bump()
		base, ok := baseFromChar(lx.cursor.Peek())
		if !ok {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexExpectedIntegerBaseAfterSign, sp, "expected integer base after signed specifier")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
		return lx.scanVectorDigits(start, base, true)
	default:
		if base, ok := baseFromChar(c); ok {
			lx.cursor.Bump()
			return lx.scanVectorDigits(start, base, false)
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexExpectedIntegerBaseAfterSign, sp, "stray apostrophe outside a based literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}

func (lx *Lexer) emitUnbasedUnsized(start Mark, bits, unknown, highZ *big.Int) token.Token {
	sp := lx.cursor.SpanFrom(start)
	if unknown == nil {
		unknown = new(big.Int)
	}
	if highZ == nil {
		highZ = new(big.Int)
	}
	return token.Token{
		Kind: token.UnbasedUnsizedLiteral,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Value: token.IntValue{
			Bits:    bits,
			Unknown: unknown,
			HighZ:   highZ,
			Width:   1,
		},
	}
}

func baseFromChar(c byte) (byte, bool) {
	switch c {
	case 'b', 'B':
		return 'b', true
	case 'o', 'O':
		return 'o', true
	case 'd', 'D':
		return 'd', true
	case 'h', 'H':
		return 'h', true
	default:
		return 0, false
	}
}

// scanVectorDigits scans the digit run following a base specifier, decoding
// it (4-state aware: x/z/? digits set Unknown/HighZ bit ranges) into a
// single IntegerBase token.
func (lx *Lexer) scanVectorDigits(start Mark, base byte, signed bool) token.Token {
	digitsStart := lx.cursor.Mark()
	for {
		c := lx.cursor.Peek()
		if c == '_' || isVectorDigit(c, base) {
			lx.cursor.Bump()
			continue
		}
		break
	}
	digitsSpan := lx.cursor.SpanFrom(digitsStart)
	digits := string(lx.file.Content[digitsSpan.Start:digitsSpan.End])
	if digits == "" {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexExpectedVectorDigits, sp, "expected digits after base specifier")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	bits := new(big.Int)
	unknown := new(big.Int)
	highZ := new(big.Int)
	width := uint32(0)

	if base == 'd' {
		// A decimal based literal is either an ordinary base-10 integer, or
		// a single x/z/? digit standing for the whole (self-determined)
		// value (IEEE 1800-2017 5.7.1) -- never a per-digit 4-state mix.
		switch {
		case digits == "x" || digits == "X":
			unknown.SetInt64(1)
		case digits == "z" || digits == "Z" || digits == "?":
			highZ.SetInt64(1)
		default:
			bits.SetString(stripUnderscores(digits), 10)
		}
	} else {
		bitsPerDigit := bitsPerDigitOf(base)
		for _, ch := range digits {
			if ch == '_' {
				continue
			}
			bits.Lsh(bits, uint(bitsPerDigit))
			unknown.Lsh(unknown, uint(bitsPerDigit))
			highZ.Lsh(highZ, uint(bitsPerDigit))
			mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bitsPerDigit)), big.NewInt(1))
			switch {
			case ch == 'x' || ch == 'X':
				unknown.Or(unknown, mask)
			case ch == 'z' || ch == 'Z' || ch == '?':
				highZ.Or(highZ, mask)
			default:
				bits.Or(bits, big.NewInt(int64(digitValue(byte(ch)))))
			}
			width += uint32(bitsPerDigit)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: token.IntegerBase,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Value: token.IntValue{
			Bits:    bits,
			Unknown: unknown,
			HighZ:   highZ,
			Width:   width,
			Flags:   token.NumericFlags{Base: base, Signed: signed},
		},
	}
}

func isVectorDigit(c, base byte) bool {
	switch c {
	case 'x', 'X', 'z', 'Z', '?':
		return true
	}
	switch base {
	case 'b':
		return c == '0' || c == '1'
	case 'o':
		return c >= '0' && c <= '7'
	case 'd':
		return isDec(c)
	case 'h':
		return isHex(c)
	}
	return false
}

func stripUnderscores(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	return strings.ReplaceAll(s, "_", "")
}

func bitsPerDigitOf(base byte) int {
	switch base {
	case 'b':
		return 1
	case 'o':
		return 3
	case 'h':
		return 4
	default:
		return 0
	}
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}
