package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"surgehdl/internal/diag"
	"surgehdl/internal/lexer"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sv", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\nerrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) token.Token {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != expectedKind {
		t.Errorf("expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("expected text %q, got %q", expectedText, tok.Text)
	}
	return tok
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ====== identifiers ======

func TestIdentifiers_ASCII(t *testing.T) {
	tests := []string{"foo", "_bar", "__test", "x123", "camelCase", "UPPER"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.Identifier, in)
		})
	}
}

func TestIdentifiers_Unicode(t *testing.T) {
	tests := []string{"переменная", "δ", "変数"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.Identifier, in)
		})
	}
}

func TestSystemIdentifier(t *testing.T) {
	expectSingleToken(t, "$display", token.SystemIdentifier, "$display")
	expectSingleToken(t, "$bits", token.SystemIdentifier, "$bits")
}

func TestEscapedIdentifier(t *testing.T) {
	tok := expectSingleToken(t, `\weird-name more`, token.EscapedIdentifier, `\weird-name`)
	if tok.Value.(string) != "weird-name" {
		t.Errorf("expected decoded value %q, got %q", "weird-name", tok.Value)
	}
}

func TestKeywords_CaseSensitive(t *testing.T) {
	expectSingleToken(t, "module", token.KwModule, "module")
	expectSingleToken(t, "always_ff", token.KwAlwaysFF, "always_ff")
	expectSingleToken(t, "unique0", token.KwUnique0, "unique0")
	expectSingleToken(t, "Module", token.Identifier, "Module")
	expectSingleToken(t, "MODULE", token.Identifier, "MODULE")
}

// ====== numbers ======

func TestNumbers_Decimal(t *testing.T) {
	for _, in := range []string{"0", "123", "1_000_000"} {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.IntegerLiteral, in)
		})
	}
}

func TestNumbers_Real(t *testing.T) {
	for _, in := range []string{"1.0", "3.14", "1_000.5", "1e10", "1.5e-2"} {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.RealLiteral, in)
		})
	}
}

func TestNumbers_InvalidExponent(t *testing.T) {
	lx, reporter := makeTestLexer("1e")
	tok := lx.Next()
	if tok.Kind != token.IntegerLiteral || tok.Text != "1" || reporter.HasErrors() {
		t.Errorf("expected IntegerLiteral %q without diagnostic for %q, got %v %q", "1", "1e", tok.Kind, tok.Text)
	}
}

func TestNumbers_Time(t *testing.T) {
	tok := expectSingleToken(t, "10ns", token.TimeLiteral, "10ns")
	tv := tok.Value.(token.TimeValue)
	if tv.Unit != token.TimeUnitNanoseconds || tv.Value != 10 {
		t.Errorf("unexpected time value %+v", tv)
	}
}

func TestNumbers_OneStep(t *testing.T) {
	expectSingleToken(t, "1step", token.OneStep, "1step")
}

func TestNumbers_UnbasedUnsized(t *testing.T) {
	tests := []struct {
		input string
		zero  bool
	}{{"'0", true}, {"'1", true}}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := expectSingleToken(t, tt.input, token.UnbasedUnsizedLiteral, tt.input)
			iv := tok.Value.(token.IntValue)
			if iv.Width != 1 {
				t.Errorf("expected width 1, got %d", iv.Width)
			}
		})
	}
	tokX := expectSingleToken(t, "'x", token.UnbasedUnsizedLiteral, "'x")
	if tokX.Value.(token.IntValue).Unknown.Sign() == 0 {
		t.Errorf("expected unknown bit set for 'x")
	}
	tokZ := expectSingleToken(t, "'z", token.UnbasedUnsizedLiteral, "'z")
	if tokZ.Value.(token.IntValue).HighZ.Sign() == 0 {
		t.Errorf("expected high-z bit set for 'z")
	}
}

func TestNumbers_BasedHex(t *testing.T) {
	tok := expectSingleToken(t, "'hFF", token.IntegerBase, "'hFF")
	iv := tok.Value.(token.IntValue)
	if iv.Bits.Int64() != 0xFF || iv.Width != 8 {
		t.Errorf("unexpected decode: %+v", iv)
	}
}

func TestNumbers_BasedFourState(t *testing.T) {
	tok := expectSingleToken(t, "'bx01z", token.IntegerBase, "'bx01z")
	iv := tok.Value.(token.IntValue)
	if iv.Width != 4 {
		t.Fatalf("expected width 4, got %d", iv.Width)
	}
	if iv.Unknown.Bit(3) != 1 {
		t.Errorf("expected top bit unknown")
	}
	if iv.HighZ.Bit(0) != 1 {
		t.Errorf("expected bottom bit high-z")
	}
}

func TestNumbers_SizedBasedSequence(t *testing.T) {
	// "8'hFF" lexes as IntegerLiteral("8") + IntegerBase("'hFF"); the
	// binder is responsible for combining them into a sized literal.
	expectTokens(t, "8'hFF", []token.Kind{token.IntegerLiteral, token.IntegerBase})
}

func TestNumbers_SignedBase(t *testing.T) {
	tok := expectSingleToken(t, "'sd5", token.IntegerBase, "'sd5")
	iv := tok.Value.(token.IntValue)
	if !iv.Flags.Signed || iv.Flags.Base != 'd' {
		t.Errorf("expected signed decimal base, got %+v", iv.Flags)
	}
}

// ====== strings ======

func TestString_Simple(t *testing.T) {
	tok := expectSingleToken(t, `"hello"`, token.StringLiteral, `"hello"`)
	if tok.Value.(string) != "hello" {
		t.Errorf("expected decoded %q, got %q", "hello", tok.Value)
	}
}

func TestString_Escapes(t *testing.T) {
	tok := expectSingleToken(t, `"a\nb"`, token.StringLiteral, `"a\nb"`)
	if tok.Value.(string) != "a\nb" {
		t.Errorf("expected decoded %q, got %q", "a\nb", tok.Value)
	}
}

func TestString_UnknownEscape(t *testing.T) {
	lx, reporter := makeTestLexer(`"a\qb"`)
	lx.Next()
	if !reporter.HasErrors() {
		t.Error("expected diagnostic for unknown escape sequence")
	}
}

func TestString_Unterminated(t *testing.T) {
	lx, reporter := makeTestLexer(`"hello`)
	tok := lx.Next()
	if tok.Kind != token.Invalid || !reporter.HasErrors() {
		t.Error("expected invalid token with diagnostic for unterminated string")
	}
}

// ====== operators ======

func TestOperators_Greedy(t *testing.T) {
	expectTokens(t, "<<<=", []token.Kind{token.LessLessLessEquals})
	expectTokens(t, "<<<", []token.Kind{token.LessLessLess})
	expectTokens(t, "<<", []token.Kind{token.LessLess})
	expectTokens(t, "===", []token.Kind{token.EqualsEqualsEquals})
	expectTokens(t, "==?", []token.Kind{token.EqualsEqualsQuestion})
	expectTokens(t, "*::*", []token.Kind{token.StarColonColonStar})
}

func TestOperators_Misc(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"+:", token.PlusColon},
		{"-:", token.MinusColon},
		{"->", token.MinusGreater},
		{"|->", token.PipeMinusGreater},
		{"|=>", token.PipeEqualsGreater},
		{"~&", token.TildeAmp},
		{"^~", token.CaretTilde},
		{"@*", token.AtStar},
		{"'{", token.TickLBrace},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

// ====== trivia ======

func TestTrivia_Whitespace(t *testing.T) {
	tok := expectSingleToken(t, "  \t  foo", token.Identifier, "foo")
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaWhitespace {
		t.Fatalf("expected single TriviaWhitespace, got %v", tok.Leading)
	}
}

func TestTrivia_LineComment(t *testing.T) {
	tok := expectSingleToken(t, "// a comment\nfoo", token.Identifier, "foo")
	if len(tok.Leading) != 2 || tok.Leading[0].Kind != token.TriviaLineComment {
		t.Fatalf("expected line comment + newline, got %v", tok.Leading)
	}
}

func TestTrivia_BlockCommentUnterminated(t *testing.T) {
	lx, reporter := makeTestLexer("/* unterminated")
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Errorf("expected EOF after unterminated comment consumes input, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected diagnostic for unterminated block comment")
	}
}

func TestTrivia_NestedBlockCommentWarns(t *testing.T) {
	lx, reporter := makeTestLexer("/* outer /* inner */ foo")
	lx.Next()
	warned := false
	for _, d := range reporter.diagnostics {
		if d.Severity == diag.SevWarning && d.Code == diag.LexNestedBlockComment {
			warned = true
		}
	}
	if !warned {
		t.Error("expected warning diagnostic for nested block comment marker")
	}
}

// ====== integration ======

func TestLexer_ModuleHeader(t *testing.T) {
	input := "module counter #(parameter WIDTH = 8) (input logic clk, output logic [WIDTH-1:0] q);"
	expectTokens(t, input, []token.Kind{
		token.KwModule, token.Identifier, token.Hash, token.LParen, token.KwParameter,
		token.Identifier, token.Equals, token.IntegerLiteral, token.RParen, token.LParen,
		token.KwInput, token.KwLogic, token.Identifier, token.Comma,
		token.KwOutput, token.KwLogic, token.LBracket, token.Identifier, token.Minus,
		token.IntegerLiteral, token.Colon, token.IntegerLiteral, token.RBracket, token.Identifier,
		token.RParen, token.Semi,
	})
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1.Text != p2.Text || p1.Text != "a" {
		t.Fatalf("peek should be idempotent, got %q then %q", p1.Text, p2.Text)
	}
	n1 := lx.Next()
	if n1.Text != "a" {
		t.Fatalf("expected next to return peeked token, got %q", n1.Text)
	}
	n2 := lx.Next()
	if n2.Text != "b" {
		t.Fatalf("expected 'b', got %q", n2.Text)
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF again, got %v", tok.Kind)
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	lx, _ := makeTestLexer("")
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
}

func BenchmarkLexer_ModuleHeader(b *testing.B) {
	input := "module counter #(parameter WIDTH = 8) (input logic clk, output logic [WIDTH-1:0] q);"
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.sv", []byte(input))
	file := fs.Get(fileID)

	b.ResetTimer()
	for b.Loop() {
		lx := lexer.New(file, lexer.Options{})
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
		}
	}
}
