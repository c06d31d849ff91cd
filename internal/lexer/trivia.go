package lexer

import (
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
)

// collectLeadingTrivia gathers the run of non-significant text preceding the
// next token:
//   - ' ', '\t', '\v', and '\f' coalesce into one TriviaWhitespace
//   - consecutive '\n' coalesce into one TriviaEndOfLine
//   - //... up to \n -> TriviaLineComment ('///...' -> TriviaDocLine)
//   - /* ... */ -> TriviaBlockComment (SystemVerilog block comments do not
//     nest; a '/*' seen while already inside one is a warning, not a second
//     level)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\v' || b == '\f' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\v' && b2 != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaWhitespace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if lx.inDirective && b == '\\' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '\\' && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				lx.hold = append(lx.hold, token.Trivia{
					Kind: token.TriviaLineContinuation,
					Span: sp,
					Text: string(lx.file.Content[sp.Start:sp.End]),
				})
				continue
			}
		}

		if b == '\n' {
			if lx.inDirective {
				break
			}
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaEndOfLine,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '/' {
			if lx.scanCommentOrDocLineIntoHold() {
				if lx.forceEndDirective {
					break
				}
				continue
			}
		}

		break
	}
}

// scanCommentOrDocLineIntoHold scans "//...", "/*...*/", or "///...".
func (lx *Lexer) scanCommentOrDocLineIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	b := lx.cursor.Peek()
	switch b {
	case '/':
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		if lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			if lx.cursor.Peek() == 0 {
				lx.errLex(diag.LexEmbeddedNull, lx.cursor.SpanFrom(lx.cursor.Mark()), "embedded NUL in line comment")
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true

	case '*':
		lx.cursor.Bump()
		closed := false
		split := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					nestedSp := lx.cursor.SpanFrom(lx.cursor.Mark())
					lx.warnLex(diag.LexNestedBlockComment, nestedSp, "'/*' inside block comment is not nested")
					lx.cursor.Bump()
					lx.cursor.Bump()
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					closed = true
					break
				}
			}
			if lx.cursor.Peek() == 0 {
				lx.errLex(diag.LexEmbeddedNull, lx.cursor.SpanFrom(lx.cursor.Mark()), "embedded NUL in block comment")
			}
			if lx.inDirective && !split && lx.cursor.Peek() == '\n' {
				split = true
				lx.errLex(diag.LexSplitBlockCommentInDirective, lx.cursor.SpanFrom(lx.cursor.Mark()),
					"block comment spanning a newline is not allowed inside a directive")
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{
			Kind: token.TriviaBlockComment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		if split {
			lx.forceEndDirective = true
		}
		return true
	default:
		lx.cursor.Reset(start)
		return false
	}
}
