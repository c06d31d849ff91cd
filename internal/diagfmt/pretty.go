package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"surgehdl/internal/diag"
	"surgehdl/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.FgHiBlack)
	noteColor    = color.New(color.FgBlue)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty writes every diagnostic in bag, sorted, as one human-readable
// report per diagnostic: a location-prefixed summary line, an optional
// source excerpt with a caret under the primary span, and optional notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	bag.Sort()
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	path := f.FormatPath(opts.PathMode.pathModeString(), fs.BaseDir())

	sevText := d.Severity.String()
	codeText := d.Code.ID()
	if opts.Color {
		sevText = severityColor(d.Severity).Sprint(sevText)
		codeText = codeColor.Sprint(codeText)
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, codeText, wrapMessage(d.Message, opts.Width))

	writeExcerpt(w, f, fs, d.Primary, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			noteStart, _ := fs.Resolve(n.Span)
			noteFile := fs.Get(n.Span.File)
			notePath := noteFile.FormatPath(opts.PathMode.pathModeString(), fs.BaseDir())
			line := fmt.Sprintf("note: %s:%d:%d: %s", notePath, noteStart.Line, noteStart.Col, n.Msg)
			if opts.Color {
				line = noteColor.Sprint(line)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func writeExcerpt(w io.Writer, f *source.File, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	start, end := fs.Resolve(span)
	context := uint32(opts.Context)
	firstLine := start.Line
	if firstLine > context {
		firstLine -= context
	} else {
		firstLine = 1
	}
	lastLine := end.Line + context

	for line := firstLine; line <= lastLine; line++ {
		text := f.GetLine(line)
		if text == "" && line != start.Line {
			continue
		}
		fmt.Fprintf(w, "  %4d | %s\n", line, strings.TrimRight(text, "\r\n"))
		if line == start.Line {
			startCol := fs.DisplayColumn(f.ID, span.Start)
			width := end.Col - start.Col
			if end.Line != start.Line || width == 0 {
				width = 1
			}
			caret := strings.Repeat(" ", int(startCol-1)) + strings.Repeat("^", int(width))
			if opts.Color {
				caret = caretColor.Sprint(caret)
			}
			fmt.Fprintf(w, "       | %s\n", caret)
		}
	}
}

func wrapMessage(msg string, width uint8) string {
	if width == 0 || len(msg) <= int(width) {
		return msg
	}
	var b strings.Builder
	col := 0
	for _, word := range strings.Fields(msg) {
		if col > 0 && col+1+len(word) > int(width) {
			b.WriteString("\n    ")
			col = 0
		} else if col > 0 {
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}
