package token

import "surgehdl/internal/source"

// DirectiveTrivia captures the preprocessed shape of a backtick directive or
// macro-usage trivia that the preprocessor has already handled; it travels
// as payload on a TriviaDirective entry so a reader that only wants the
// resolved token stream can still recover what drove it.
type DirectiveTrivia struct {
	Name    string // "define", "ifdef", "include", macro name for usage, ...
	Payload string // raw text following the directive name, before dispatch
}

// TriviaKind enumerates the kinds of non-significant text attached to a
// token's Leading list. Trivia is retained (not discarded) so that the
// original source text is reconstructible from a token stream byte-for-byte.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaEndOfLine
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaDocBlock
	TriviaDirective        // a resolved `` `directive `` or macro-usage site
	TriviaDisabledText     // source skipped inside a false `` `ifdef ``/`` `ifndef `` branch
	TriviaSkippedTokens    // tokens the parser recovered past during error recovery
	TriviaLineContinuation // a backslash-newline inside a macro definition body
)

// Trivia is a single piece of non-significant text preceding a token.
type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *DirectiveTrivia // set only when Kind == TriviaDirective
}
