package token_test

import (
	"strings"
	"testing"

	"surgehdl/internal/token"
)

func TestKindStringStructural(t *testing.T) {
	cases := map[token.Kind]string{
		token.Invalid:    "Invalid",
		token.EOF:        "EOF",
		token.Identifier: "Identifier",
		token.OneStep:    "1step",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", k, got, want)
		}
	}
}

func TestKindStringKeyword(t *testing.T) {
	cases := map[token.Kind]string{
		token.KwModule: "module",
		token.KwEnd:    "end",
		token.KwAlways: "always",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", k, got, want)
		}
	}
}

func TestKindStringPunctuator(t *testing.T) {
	cases := map[token.Kind]string{
		token.PlusColon:          "+:",
		token.Semi:               ";",
		token.EqualsEquals:       "==",
		token.LessLessLessEquals: "<<<=",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", k, got, want)
		}
	}
}

func TestKindStringUnknownFallback(t *testing.T) {
	got := token.Kind(0xFFFF).String()
	if !strings.HasPrefix(got, "Kind(") {
		t.Errorf("expected a Kind(N) fallback for an unmapped kind, got %q", got)
	}
}

func TestTriviaKindString(t *testing.T) {
	if got := token.TriviaLineComment.String(); got != "LineComment" {
		t.Errorf("TriviaLineComment.String() = %q, want %q", got, "LineComment")
	}
	got := token.TriviaKind(0xFF).String()
	if !strings.HasPrefix(got, "TriviaKind(") {
		t.Errorf("expected a TriviaKind(N) fallback for an unmapped kind, got %q", got)
	}
}
