// Package logging provides the CLI's leveled, optionally colored status
// output (distinct from internal/diagfmt, which renders diagnostics tied to
// a source span). Grounded on the teacher CLI's --color auto|on|off flag and
// its fatih/color usage for version banners.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode mirrors the CLI's --color flag.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// IsTerminal reports whether f is attached to a terminal, used to resolve
// ColorAuto without forcing color onto redirected output.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Resolve turns a --color flag value and a destination stream into a
// definite on/off decision.
func Resolve(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return IsTerminal(f)
	}
}

var (
	infoPrefixColor  = color.New(color.FgCyan, color.Bold)
	warnPrefixColor  = color.New(color.FgYellow, color.Bold)
	errPrefixColor   = color.New(color.FgRed, color.Bold)
	timingValueColor = color.New(color.FgHiBlack)
)

// Logger writes leveled status lines to w, honoring Quiet (suppressing
// Info) and Color (whether prefixes are colorized). It is not safe to
// share across goroutines without external synchronization, matching the
// CLI's own single-threaded-per-command usage.
type Logger struct {
	w       io.Writer
	Quiet   bool
	Color   bool
	Timings bool
}

// New builds a Logger writing to w.
func New(w io.Writer, quiet, useColor, timings bool) *Logger {
	return &Logger{w: w, Quiet: quiet, Color: useColor, Timings: timings}
}

func (l *Logger) prefix(c *color.Color, text string) string {
	if l.Color {
		return c.Sprint(text)
	}
	return text
}

// Info writes a suppressible informational line.
func (l *Logger) Info(format string, args ...any) {
	if l.Quiet {
		return
	}
	fmt.Fprintf(l.w, "%s %s\n", l.prefix(infoPrefixColor, "info:"), fmt.Sprintf(format, args...))
}

// Warn writes a warning line; never suppressed by Quiet.
func (l *Logger) Warn(format string, args ...any) {
	fmt.Fprintf(l.w, "%s %s\n", l.prefix(warnPrefixColor, "warn:"), fmt.Sprintf(format, args...))
}

// Error writes an error line; never suppressed by Quiet.
func (l *Logger) Error(format string, args ...any) {
	fmt.Fprintf(l.w, "%s %s\n", l.prefix(errPrefixColor, "error:"), fmt.Sprintf(format, args...))
}

// Timing writes a stage-duration line when l.Timings is set, e.g. from a
// deferred call bracketing a compile phase.
func (l *Logger) Timing(stage string, d fmt.Stringer) {
	if !l.Timings {
		return
	}
	value := d.String()
	if l.Color {
		value = timingValueColor.Sprint(value)
	}
	fmt.Fprintf(l.w, "  %-12s %s\n", stage+":", value)
}
