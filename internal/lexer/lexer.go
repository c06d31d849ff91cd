package lexer

import (
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// Lexer turns a source.File into a stream of significant tokens, each
// carrying its preceding trivia (whitespace, comments, directives already
// resolved by the preprocessor layer above it).
type Lexer struct {
	file              *source.File
	cursor            Cursor
	opts              Options
	look              *token.Token   // one-token lookahead buffer
	hold              []token.Trivia // accumulated leading trivia
	inDirective       bool           // true while scanning a directive's payload tokens
	forceEndDirective bool           // a split block comment closed the directive early
	errorCount        int
	abandoned         bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token, with its leading trivia already
// attached. Once EOF is reached, every subsequent call returns EOF again.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.abandoned {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	lx.collectLeadingTrivia()

	if lx.inDirective && lx.forceEndDirective {
		lx.forceEndDirective = false
		tok := token.Token{Kind: token.EndOfDirective, Span: lx.emptySpan()}
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}

	if lx.inDirective && !lx.cursor.EOF() && lx.cursor.Peek() == '\n' {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		tok := token.Token{Kind: token.EndOfDirective, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}

	if lx.cursor.EOF() {
		if lx.inDirective {
			tok := token.Token{Kind: token.EndOfDirective, Span: lx.emptySpan()}
			tok.Leading = lx.hold
			lx.hold = nil
			return tok
		}
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '`' && lx.nextIsIdentStart():
		tok = lx.scanDirectiveName()
	case ch == '$':
		tok = lx.scanSystemIdentifier()
	case ch == '\\':
		tok = lx.scanEscapedIdentifier()
	case ch == '\'':
		tok = lx.scanApostropheLiteral()
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Kind != token.EOF && uint32(lx.errorCount) > lx.maxErrors() {
		lx.errLex(diag.LexTooManyLexerErrors, tok.Span, "too many lexer errors; abandoning the rest of the file")
		lx.abandoned = true
		lx.cursor.Off = lx.cursor.limit()
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// DrainDirective consumes tokens up to and including the next EndOfDirective,
// discarding them. Callers that only need a directive's first token or two
// (e.g. `undef NAME) use this to skip whatever payload remains.
func (lx *Lexer) DrainDirective() {
	for {
		if lx.Next().Kind == token.EndOfDirective {
			return
		}
	}
}

// SetDirectiveMode toggles directive-payload scanning: while on, a bare
// newline ends the current token run with a synthetic EndOfDirective token
// instead of folding into ordinary trivia. The preprocessor turns this on
// after reading a Directive token and off again once it sees EndOfDirective.
func (lx *Lexer) SetDirectiveMode(on bool) {
	lx.inDirective = on
}

func (lx *Lexer) nextIsIdentStart() bool {
	_, b1, ok := lx.cursor.Peek2()
	return ok && isIdentStartByte(b1)
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
