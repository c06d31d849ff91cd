// Package parser is the ambient, shape-only recursive-descent parser (C6)
// acknowledged but not contracted by the specification: its job is solely to
// give the expression binder (C9) real ast.Expr input to consume, over the
// exact node shapes enumerated in spec 3. Grammar coverage is intentionally
// narrow; error recovery produces a single bad-expression placeholder and
// resumes at the next statement-boundary token rather than attempting full
// diagnosis of malformed input.
package parser

import (
	"fmt"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/preprocessor"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// maxParseDepth bounds expression/statement recursion (spec 5: "a per-parser
// depth guard ... implemented as a scoped counter").
const maxParseDepth = 250

// Parser drives one preprocessed token stream into an *ast.File.
type Parser struct {
	pp       *preprocessor.Preprocessor
	file     *ast.File
	strings  *source.Interner
	reporter diag.Reporter

	tok    token.Token
	peeked *token.Token
	depth  int
}

// New constructs a Parser over pp, allocating syntax into file.
func New(pp *preprocessor.Preprocessor, file *ast.File, strings *source.Interner, reporter diag.Reporter) *Parser {
	p := &Parser{pp: pp, file: file, strings: strings, reporter: reporter}
	p.tok = pp.Next()
	return p
}

// cur returns the current lookahead token without consuming it.
func (p *Parser) cur() token.Token { return p.tok }

// peek returns the token after cur without consuming either.
func (p *Parser) peek() token.Token {
	if p.peeked == nil {
		t := p.pp.Next()
		p.peeked = &t
	}
	return *p.peeked
}

// advance consumes cur and returns it, refilling cur from the lookahead
// buffer or the preprocessor.
func (p *Parser) advance() token.Token {
	cur := p.tok
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
	} else {
		p.tok = p.pp.Next()
	}
	return cur
}

// at reports whether cur's kind matches k.
func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

// accept consumes and returns true if cur matches k.
func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes cur if it matches k, else reports SynExpectedToken and
// returns the token unconsumed (the caller proceeds with best effort).
func (p *Parser) expect(k token.Kind, what string) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.errorf(diag.SynExpectedToken, p.tok.Span, "expected %s", what)
	return p.tok
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	if p.reporter == nil {
		return
	}
	diag.ReportError(p.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// intern is a small convenience wrapper so parser code reads at the same
// altitude whether it's interning an identifier or a synthesized name.
func (p *Parser) intern(s string) source.StringID {
	if p.strings == nil {
		return source.NoStringID
	}
	return p.strings.Intern(s)
}

func (p *Parser) enterDepth(sp source.Span) bool {
	p.depth++
	if p.depth > maxParseDepth {
		p.errorf(diag.SynExpectedExpression, sp, "expression nesting exceeds parser depth limit")
		return false
	}
	return true
}

func (p *Parser) leaveDepth() { p.depth-- }

// badExpr allocates the single bad-expression placeholder used for error
// recovery (spec 4.6: "a single bad-expression placeholder is produced").
func (p *Parser) badExpr(sp source.Span) ast.ExprID {
	return p.file.Literal(sp, token.Invalid, nil)
}

// skipToStatementBoundary discards tokens until a semicolon, a block
// terminator keyword, or end-of-file, so one malformed statement does not
// desynchronize the rest of the file.
func (p *Parser) skipToStatementBoundary() {
	for {
		switch p.tok.Kind {
		case token.EOF, token.Semi:
			return
		case token.KwEndmodule, token.KwEndinterface, token.KwEndprogram,
			token.KwEndfunction, token.KwEndtask, token.KwEnd:
			return
		}
		p.advance()
	}
}

// ParseFile parses the entire token stream into a fresh *ast.File containing
// every top-level module/interface/program definition found.
func ParseFile(pp *preprocessor.Preprocessor, fileID ast.FileID, sourceFile source.FileID, strings *source.Interner, reporter diag.Reporter) *ast.File {
	file := ast.NewFile(fileID, sourceFile)
	p := New(pp, file, strings, reporter)
	for p.tok.Kind != token.EOF {
		switch p.tok.Kind {
		case token.KwModule, token.KwMacromodule:
			file.Definitions = append(file.Definitions, p.parseDefinition(ast.DefinitionModule))
		case token.KwInterface:
			file.Definitions = append(file.Definitions, p.parseDefinition(ast.DefinitionInterface))
		case token.KwProgram:
			file.Definitions = append(file.Definitions, p.parseDefinition(ast.DefinitionProgram))
		default:
			// Anything else at the top level (package declarations, bare
			// directives already consumed as trivia, stray tokens) is skipped;
			// package-shaped input is outside the parser's narrow grammar.
			p.advance()
		}
	}
	return file
}
