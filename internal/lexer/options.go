package lexer

import (
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// Options configures a Lexer. KeywordVersion gates which reserved words are
// recognized; the zero value means DefaultKeywordVersion. The preprocessor
// sets it on each lexer it creates for a file, from its current default
// (its Options, or the most recent “ `begin_keywords “); a lexer keeps that
// version once created, and “ `end_keywords “ restores no earlier version.
// Reporter receives every diagnostic the lexer raises and may be nil to
// discard them.
type Options struct {
	Reporter       diag.Reporter
	KeywordVersion token.KeywordVersion
	// MaxErrors caps the number of lexical errors raised before the rest of
	// the buffer is abandoned and replaced with a forced EOF. Zero means use
	// defaultMaxLexerErrors.
	MaxErrors uint32
}

// defaultMaxLexerErrors mirrors the teacher's own lexer error cap.
const defaultMaxLexerErrors = 16

func (lx *Lexer) maxErrors() uint32 {
	if lx.opts.MaxErrors == 0 {
		return defaultMaxLexerErrors
	}
	return lx.opts.MaxErrors
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errorCount++
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

func (lx *Lexer) keywordVersion() token.KeywordVersion {
	if lx.opts.KeywordVersion == token.KeywordVersionNone {
		return token.DefaultKeywordVersion
	}
	return lx.opts.KeywordVersion
}
