// Package token defines lexical token kinds, literal values, and trivia for
// the HDL front end.
//
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Directives (“ `define “, “ `ifdef “, macro usage) are represented
//     as leading Trivia (TriviaDirective) once the preprocessor has resolved
//     them; they never appear in the main token stream.
//   - Keyword recognition is parameterized by KeywordVersion: the same
//     identifier lexeme may or may not be a keyword depending on which
//     dialect is active at the point it is scanned.
package token
