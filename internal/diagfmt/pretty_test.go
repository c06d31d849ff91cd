package diagfmt

import (
	"strings"
	"testing"

	"surgehdl/internal/diag"
	"surgehdl/internal/source"
)

func TestPrettyBasicExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	content := "module top;\n  wire foo\nendmodule\n"
	fileID := fs.AddVirtual("top.sv", []byte(content))

	start := uint32(strings.Index(content, "foo"))
	end := start + 3
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SynExpectedToken, source.Span{File: fileID, Start: start, End: end}, "expected ';'"))

	var buf strings.Builder
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 0})
	out := buf.String()

	if !strings.Contains(out, "top.sv:2:") {
		t.Errorf("expected location prefix in output, got: %s", out)
	}
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "SYN2001") {
		t.Errorf("expected severity and code in output, got: %s", out)
	}
	if !strings.Contains(out, "expected ';'") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "wire foo") {
		t.Errorf("expected source excerpt line in output, got: %s", out)
	}
	if !strings.Contains(out, "^^^") {
		t.Errorf("expected a three-wide caret under \"foo\", got: %s", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.sv", []byte("module m;\nendmodule\n"))

	d := diag.New(diag.SevError, diag.SemaDuplicateDefinition, source.Span{File: fileID, Start: 0, End: 1}, "duplicate definition")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 1}, "first defined here")
	bag := diag.NewBag(10)
	bag.Add(d)

	var buf strings.Builder
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(buf.String(), "note:") {
		t.Errorf("expected a note: line in output, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "first defined here") {
		t.Errorf("expected note message in output, got: %s", buf.String())
	}
}

func TestPrettyNoNotesWhenNotRequested(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.sv", []byte("module m;\nendmodule\n"))

	d := diag.New(diag.SevError, diag.SemaDuplicateDefinition, source.Span{File: fileID, Start: 0, End: 1}, "duplicate definition")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 1}, "first defined here")
	bag := diag.NewBag(10)
	bag.Add(d)

	var buf strings.Builder
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("did not expect a note: line when ShowNotes is false, got: %s", buf.String())
	}
}
