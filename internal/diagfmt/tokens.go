package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// TokenOutput is the JSON-serializable view of a single token, used by the
// tokens CLI subcommand's --json output.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// FormatTokensPretty writes one line per token: its index, kind, text (if
// any), resolved line:col range, and a summary of its leading trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}

		fmt.Fprintf(w, "%3d: %-22s", i+1, tok.Kind.String())

		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}

		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)

		if len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}

		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as a JSON array, one object per
// token, stopping after EOF.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	var output []TokenOutput

	for _, tok := range tokens {
		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}

		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if len(leading) > 0 {
			out.Leading = leading
		}
		output = append(output, out)

		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
