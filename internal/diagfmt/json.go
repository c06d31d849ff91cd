package diagfmt

import (
	"encoding/json"
	"io"

	"surgehdl/internal/diag"
	"surgehdl/internal/source"
)

// DiagnosticOutput is the JSON-serializable view of a single diagnostic.
type DiagnosticOutput struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Path     string       `json:"path"`
	Line     uint32       `json:"line,omitempty"`
	Col      uint32       `json:"col,omitempty"`
	Notes    []NoteOutput `json:"notes,omitempty"`
}

// NoteOutput is the JSON-serializable view of a diagnostic note.
type NoteOutput struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

// FormatDiagnosticsJSON writes bag's sorted diagnostics as a JSON array,
// truncated to opts.Max entries when non-zero.
func FormatDiagnosticsJSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	bag.Sort()
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	output := make([]DiagnosticOutput, 0, len(items))
	for _, d := range items {
		f := fs.Get(d.Primary.File)
		out := DiagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Path:     f.FormatPath(opts.PathMode.pathModeString(), fs.BaseDir()),
		}
		if opts.IncludePositions {
			start, _ := fs.Resolve(d.Primary)
			out.Line, out.Col = start.Line, start.Col
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				nf := fs.Get(n.Span.File)
				note := NoteOutput{
					Message: n.Msg,
					Path:    nf.FormatPath(opts.PathMode.pathModeString(), fs.BaseDir()),
				}
				if opts.IncludePositions {
					start, _ := fs.Resolve(n.Span)
					note.Line, note.Col = start.Line, start.Col
				}
				out.Notes = append(out.Notes, note)
			}
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
