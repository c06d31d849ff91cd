package preprocessor

import (
	"strconv"
	"strings"

	"surgehdl/internal/diag"
	"surgehdl/internal/token"
)

// TimeMagnitude is the ordered unit scale a timescale value/precision uses:
// s > ms > us > ns > ps > fs.
type TimeMagnitude int8

const (
	MagSeconds TimeMagnitude = iota
	MagMilliseconds
	MagMicroseconds
	MagNanoseconds
	MagPicoseconds
	MagFemtoseconds
)

// Timescale is a parsed `timescale directive: <value><unit> / <value><unit>,
// value in {1, 10, 100}.
type Timescale struct {
	UnitValue      int
	UnitMagnitude  TimeMagnitude
	PrecisionValue int
	PrecisionMag   TimeMagnitude
	Set            bool
}

func magnitudeFromUnit(unit string) (TimeMagnitude, bool) {
	switch unit {
	case "s":
		return MagSeconds, true
	case "ms":
		return MagMilliseconds, true
	case "us":
		return MagMicroseconds, true
	case "ns":
		return MagNanoseconds, true
	case "ps":
		return MagPicoseconds, true
	case "fs":
		return MagFemtoseconds, true
	default:
		return 0, false
	}
}

// parseTimescaleOperand splits "100ns" into (100, ns-magnitude).
func parseTimescaleOperand(text string) (int, TimeMagnitude, bool) {
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0, false
	}
	value, err := strconv.Atoi(text[:i])
	if err != nil || (value != 1 && value != 10 && value != 100) {
		return 0, 0, false
	}
	mag, ok := magnitudeFromUnit(strings.TrimSpace(text[i:]))
	if !ok {
		return 0, 0, false
	}
	return value, mag, true
}

// handleTimescale reads the raw payload of a `timescale directive as plain
// text (its two operands never contain macro usage in practice) and parses
// it into a Timescale, validating precision <= unit.
func (p *Preprocessor) handleTimescale(directiveTok token.Token) {
	lx := p.lx()
	lx.SetDirectiveMode(true)
	var sb strings.Builder
	for {
		t := lx.Next()
		if t.Kind == token.EndOfDirective {
			break
		}
		sb.WriteString(t.Text)
	}
	lx.SetDirectiveMode(false)

	raw := sb.String()
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		p.report(diag.PreMalformedTimescale, directiveTok.Span, "malformed `timescale directive")
		return
	}
	unitVal, unitMag, ok1 := parseTimescaleOperand(strings.TrimSpace(parts[0]))
	precVal, precMag, ok2 := parseTimescaleOperand(strings.TrimSpace(parts[1]))
	if !ok1 || !ok2 {
		p.report(diag.PreMalformedTimescale, directiveTok.Span, "malformed `timescale directive")
		return
	}
	if precMag < unitMag {
		p.report(diag.PreMalformedTimescale, directiveTok.Span, "`timescale precision must not be coarser than its unit")
		return
	}
	p.timescale = Timescale{
		UnitValue:      unitVal,
		UnitMagnitude:  unitMag,
		PrecisionValue: precVal,
		PrecisionMag:   precMag,
		Set:            true,
	}
}

// GetTimescale returns the most recently parsed `timescale, if any.
func (p *Preprocessor) GetTimescale() (Timescale, bool) {
	return p.timescale, p.timescale.Set
}
