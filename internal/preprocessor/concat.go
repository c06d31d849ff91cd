package preprocessor

import (
	"surgehdl/internal/lexer"
	"surgehdl/internal/token"
)

// relexConcat joins two tokens' raw texts with no intervening whitespace and
// re-lexes the result. It succeeds only if that text lexes to exactly one
// token followed by end-of-file; the merged token keeps a's span extended to
// b's end so diagnostics still point at real source.
func (p *Preprocessor) relexConcat(a, b token.Token) (token.Token, bool) {
	text := a.Text + b.Text
	fileID := p.scratch.AddVirtual("<paste>", []byte(text))
	file := p.scratch.Get(fileID)

	lx := lexer.New(file, lexer.Options{KeywordVersion: p.opts.KeywordVersion})
	first := lx.Next()
	if first.Kind == token.Invalid || first.Kind == token.EOF {
		return token.Token{}, false
	}
	if second := lx.Next(); second.Kind != token.EOF {
		return token.Token{}, false
	}

	merged := first
	merged.Span = a.Span
	merged.Span.End = b.Span.End
	merged.Text = text
	return merged, true
}
