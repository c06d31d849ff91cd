// Package preprocessor implements the directive/macro/include layer (C5)
// that sits atop internal/lexer: a stack of lexer frames, one per open
// include, feeding a single resolved token stream to the parser.
package preprocessor

import (
	"math/big"
	"strconv"
	"strings"

	"surgehdl/internal/diag"
	"surgehdl/internal/lexer"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

func bigFromUint(v uint32) *big.Int {
	return new(big.Int).SetUint64(uint64(v))
}

// frame is one entry of the include stack: a lexer over one file, plus the
// `line-directive override state used to compute __LINE__/__FILE__.
type frame struct {
	lx   *lexer.Lexer
	file *source.File

	lineOverrideActive bool
	overrideFileName   string
	overrideLine       uint32
	overrideAtLine     uint32
}

// Preprocessor drives a stack of lexer frames through directive dispatch,
// macro expansion, and conditional-inclusion, exposing a flat token stream.
type Preprocessor struct {
	opts     Options
	fset     *source.FileSet
	scratch  *source.FileSet // throwaway virtual files for token-paste re-lexing
	reporter diag.Reporter

	stack    []*frame
	macros   map[string]*macroDef
	branches []branchFrame

	timescale      Timescale
	defaultNettype string
	resetallCount  int

	mergeHold *token.Token
	pending   []token.Token

	defaultKeywordVersion token.KeywordVersion
}

var knownDirectives = map[string]bool{
	"include": true, "define": true, "undef": true, "undefineall": true,
	"ifdef": true, "ifndef": true, "elsif": true, "else": true, "endif": true,
	"timescale": true, "default_nettype": true, "line": true, "resetall": true,
	"begin_keywords": true, "end_keywords": true, "pragma": true,
	"celldefine": true, "endcelldefine": true,
	"unconnected_drive": true, "nounconnected_drive": true,
}

func isConditionalDirective(name string) bool {
	switch name {
	case "ifdef", "ifndef", "elsif", "else", "endif":
		return true
	default:
		return false
	}
}

// New creates a Preprocessor over the top-level file, with intrinsics
// registered and any configured predefines/undefines applied.
func New(fset *source.FileSet, top *source.File, opts Options) *Preprocessor {
	p := &Preprocessor{
		opts:                  opts,
		fset:                  fset,
		scratch:               source.NewFileSet(),
		reporter:              opts.Reporter,
		macros:                make(map[string]*macroDef),
		defaultNettype:        "wire",
		defaultKeywordVersion: opts.KeywordVersion,
	}
	p.macros["__LINE__"] = &macroDef{name: "__LINE__", intrinsic: intrinsicLine}
	p.macros["__FILE__"] = &macroDef{name: "__FILE__", intrinsic: intrinsicFile}

	for _, def := range opts.Predefines {
		name, value := splitPredefine(def)
		p.macros[name] = &macroDef{name: name, body: predefineBody(value)}
	}
	for _, name := range opts.Undefines {
		if m, ok := p.macros[name]; ok && m.intrinsic == intrinsicNone {
			delete(p.macros, name)
		}
	}

	p.pushFile(top)
	return p
}

func splitPredefine(def string) (name, value string) {
	if i := strings.IndexByte(def, '='); i >= 0 {
		return def[:i], def[i+1:]
	}
	return def, "1"
}

func predefineBody(value string) []token.Token {
	if value == "" {
		return nil
	}
	return []token.Token{{Kind: token.Identifier, Text: value, Value: nil}}
}

func (p *Preprocessor) pushFile(file *source.File) {
	lxOpts := lexer.Options{
		Reporter:       p.reporter,
		KeywordVersion: p.defaultKeywordVersion,
		MaxErrors:      p.opts.MaxLexerErrors,
	}
	p.stack = append(p.stack, &frame{lx: lexer.New(file, lxOpts), file: file})
}

func (p *Preprocessor) lx() *lexer.Lexer {
	return p.stack[len(p.stack)-1].lx
}

func (p *Preprocessor) topFrame() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *Preprocessor) report(code diag.Code, sp source.Span, msg string) {
	if p.reporter == nil {
		return
	}
	diag.ReportError(p.reporter, code, sp, msg).Emit()
}

func (p *Preprocessor) warn(code diag.Code, sp source.Span, msg string) {
	if p.reporter == nil {
		return
	}
	diag.ReportWarning(p.reporter, code, sp, msg).Emit()
}

func (p *Preprocessor) reportElseWithoutIf(sp source.Span) {
	p.report(diag.PreElseWithoutIf, sp, "`else/`elsif without matching `ifdef/`ifndef")
}

func (p *Preprocessor) reportElsifAfterElse(sp source.Span) {
	p.report(diag.PreElsifAfterElse, sp, "`elsif directive after `else")
}

func (p *Preprocessor) reportEndifWithoutIf(sp source.Span) {
	p.report(diag.PreEndifWithoutIf, sp, "`endif without matching `ifdef/`ifndef")
}

// peekRaw/nextRaw read directly from the current include frame's lexer, with
// no macro expansion or directive dispatch applied — used while collecting a
// directive's own payload (argument lists, condition names, filenames).
func (p *Preprocessor) peekRaw() token.Token {
	return p.lx().Peek()
}

func (p *Preprocessor) nextRaw() token.Token {
	return p.lx().Next()
}

func (p *Preprocessor) drainToEndOfDirective() {
	lx := p.lx()
	lx.SetDirectiveMode(true)
	lx.DrainDirective()
	lx.SetDirectiveMode(false)
}

// IsDefined reports whether name is currently a macro (used both for
// `ifdef/`ifndef and for the public predefine(name) API).
func (p *Preprocessor) IsDefined(name string) bool {
	_, ok := p.macros[name]
	return ok
}

// Predefine registers name (optionally =value) as a macro from outside the
// directive stream, mirroring the `define semantics for a bare value.
func (p *Preprocessor) Predefine(name, value string) {
	p.macros[name] = &macroDef{name: name, body: predefineBody(value)}
}

// Undefine removes name unless it is an intrinsic.
func (p *Preprocessor) Undefine(name string) {
	if m, ok := p.macros[name]; ok && m.intrinsic == intrinsicNone {
		delete(p.macros, name)
	}
}

// UndefineAll removes every non-intrinsic macro.
func (p *Preprocessor) UndefineAll() {
	for name, m := range p.macros {
		if m.intrinsic == intrinsicNone {
			delete(p.macros, name)
		}
	}
}

// SetKeywordVersion changes the keyword version that frames pushed after
// this call will use; a frame whose lexer already exists keeps its version.
func (p *Preprocessor) SetKeywordVersion(v token.KeywordVersion) {
	p.defaultKeywordVersion = v
}

// GetDefaultNetType returns the net type spelling installed by the most
// recent `default_nettype directive ("wire" initially).
func (p *Preprocessor) GetDefaultNetType() string {
	return p.defaultNettype
}

// ResetAllDirectives implements `resetall: restores the default keyword
// version, default net type, and clears any `line override, without
// touching macro definitions or the conditional stack.
func (p *Preprocessor) ResetAllDirectives() {
	p.defaultKeywordVersion = token.DefaultKeywordVersion
	p.defaultNettype = "wire"
	p.resetallCount++
	f := p.topFrame()
	f.lineOverrideActive = false
}

func (p *Preprocessor) intrinsicLineToken(sp source.Span) token.Token {
	line := p.currentLine(sp)
	return token.Token{
		Kind: token.IntegerLiteral,
		Span: sp,
		Text: strconv.FormatUint(uint64(line), 10),
		Value: token.IntValue{
			Bits:    bigFromUint(line),
			Unknown: new(big.Int),
			HighZ:   new(big.Int),
		},
	}
}

func (p *Preprocessor) intrinsicFileToken(sp source.Span) token.Token {
	name := p.currentFileName()
	return token.Token{
		Kind:  token.StringLiteral,
		Span:  sp,
		Text:  `"` + name + `"`,
		Value: name,
	}
}

func (p *Preprocessor) currentLine(sp source.Span) uint32 {
	f := p.topFrame()
	lc, _ := p.fset.Resolve(sp)
	if !f.lineOverrideActive {
		return lc.Line
	}
	return f.overrideLine + (lc.Line - f.overrideAtLine)
}

func (p *Preprocessor) currentFileName() string {
	f := p.topFrame()
	if f.lineOverrideActive {
		return f.overrideFileName
	}
	return f.file.Path
}

// Next returns the next fully-resolved significant token: directives are
// dispatched and consumed, disabled-branch text is dropped, macro usages are
// expanded, and adjacent token boundaries are silently re-lexed into one
// where that yields exactly one valid token (implicit concatenation).
func (p *Preprocessor) Next() token.Token {
	for len(p.pending) == 0 {
		if !p.fill() {
			break
		}
	}
	if len(p.pending) == 0 {
		if p.mergeHold != nil {
			t := *p.mergeHold
			p.mergeHold = nil
			return t
		}
		return token.Token{Kind: token.EOF}
	}
	t := p.pending[0]
	p.pending = p.pending[1:]
	return t
}

// appendOut feeds one resolved token into the merge/output pipeline.
func (p *Preprocessor) appendOut(t token.Token) {
	if p.mergeHold == nil {
		p.mergeHold = &t
		return
	}
	if adjacent(*p.mergeHold, t) {
		if merged, ok := p.relexConcat(*p.mergeHold, t); ok {
			p.mergeHold = &merged
			return
		}
	}
	p.pending = append(p.pending, *p.mergeHold)
	p.mergeHold = &t
}

func adjacent(a, b token.Token) bool {
	return a.Span.File == b.Span.File && a.Span.End == b.Span.Start && len(b.Leading) == 0
}

// fill advances the underlying machinery by exactly one raw token's worth of
// work, appending zero or more resolved tokens to the output pipeline.
// It returns false once there is nothing left anywhere on the include stack.
func (p *Preprocessor) fill() bool {
	if len(p.stack) == 0 {
		return false
	}
	raw := p.nextRaw()

	if raw.Kind == token.EOF {
		if len(p.stack) > 1 {
			p.stack = p.stack[:len(p.stack)-1]
			return true
		}
		if len(p.branches) > 0 {
			p.report(diag.PreUnterminatedConditional, raw.Span, "unterminated conditional directive at end of file")
			p.branches = nil
		}
		if p.mergeHold != nil {
			p.pending = append(p.pending, *p.mergeHold)
			p.mergeHold = nil
		}
		p.stack = p.stack[:len(p.stack)-1]
		return len(p.pending) > 0
	}

	if raw.Kind == token.Directive {
		name, _ := raw.Value.(string)
		p.dispatchDirective(name, raw)
		return true
	}

	if !p.active() {
		return true // disabled-branch text: dropped
	}

	p.appendOut(raw)
	return true
}

func (p *Preprocessor) dispatchDirective(name string, tok token.Token) {
	if isConditionalDirective(name) {
		p.dispatchConditional(name, tok)
		return
	}
	if !p.active() {
		return // non-conditional directives inside a disabled branch are dropped
	}
	if !knownDirectives[name] {
		expanded := p.expand(name, tok.Span, 0)
		for _, t := range expanded {
			p.appendOut(t)
		}
		return
	}

	switch name {
	case "include":
		p.handleInclude(tok)
	case "define":
		p.handleDefine(tok)
	case "undef":
		p.handleUndef(tok)
	case "undefineall":
		p.handleUndefineAll(tok)
	case "timescale":
		p.handleTimescale(tok)
	case "default_nettype":
		p.handleDefaultNettype(tok)
	case "line":
		p.handleLine(tok)
	case "resetall":
		p.drainToEndOfDirective()
		p.ResetAllDirectives()
	case "begin_keywords":
		p.handleBeginKeywords(tok)
	case "end_keywords":
		p.drainToEndOfDirective()
	case "pragma", "celldefine", "endcelldefine", "unconnected_drive", "nounconnected_drive":
		p.drainToEndOfDirective()
	}
}

func (p *Preprocessor) dispatchConditional(name string, tok token.Token) {
	switch name {
	case "ifdef", "ifndef":
		lx := p.lx()
		lx.SetDirectiveMode(true)
		condName := p.conditionName(lx.Next())
		lx.DrainDirective()
		lx.SetDirectiveMode(false)
		defined := p.IsDefined(condName)
		if name == "ifndef" {
			defined = !defined
		}
		p.pushIf(defined)
	case "elsif":
		lx := p.lx()
		lx.SetDirectiveMode(true)
		condName := p.conditionName(lx.Next())
		lx.DrainDirective()
		lx.SetDirectiveMode(false)
		p.doElsif(p.IsDefined(condName), tok.Span)
	case "else":
		p.drainToEndOfDirective()
		p.doElse(tok.Span)
	case "endif":
		p.drainToEndOfDirective()
		p.doEndif(tok.Span)
	}
}

// conditionName returns the macro name an `ifdef/`ifndef/`elsif tests; a
// macro usage in that position is expanded and its first token's text used.
func (p *Preprocessor) conditionName(condTok token.Token) string {
	if n, ok := condTok.Value.(string); ok && condTok.Kind == token.Directive {
		if exp := p.expand(n, condTok.Span, 0); len(exp) > 0 {
			return exp[0].Text
		}
	}
	return condTok.Text
}

func (p *Preprocessor) handleDefaultNettype(tok token.Token) {
	lx := p.lx()
	lx.SetDirectiveMode(true)
	nt := lx.Next()
	lx.DrainDirective()
	lx.SetDirectiveMode(false)
	p.defaultNettype = nt.Text
}

func (p *Preprocessor) handleBeginKeywords(tok token.Token) {
	lx := p.lx()
	lx.SetDirectiveMode(true)
	spec := lx.Next()
	lx.DrainDirective()
	lx.SetDirectiveMode(false)
	if v, ok := keywordVersionFromSpelling(strings.Trim(spec.Text, `"`)); ok {
		p.defaultKeywordVersion = v
	} else {
		p.report(diag.PreMalformedTimescale, tok.Span, "unrecognized `begin_keywords version string")
	}
}

func keywordVersionFromSpelling(s string) (token.KeywordVersion, bool) {
	switch s {
	case "1364-1995":
		return token.KeywordVersion1364_1995, true
	case "1364-2001-noconfig":
		return token.KeywordVersion1364_2001NoConfig, true
	case "1364-2001":
		return token.KeywordVersion1364_2001, true
	case "1364-2005":
		return token.KeywordVersion1364_2005, true
	case "1800-2005":
		return token.KeywordVersion1800_2005, true
	case "1800-2009":
		return token.KeywordVersion1800_2009, true
	case "1800-2012":
		return token.KeywordVersion1800_2012, true
	case "1800-2017":
		return token.KeywordVersion1800_2017, true
	default:
		return 0, false
	}
}

func (p *Preprocessor) handleLine(tok token.Token) {
	lx := p.lx()
	lx.SetDirectiveMode(true)
	lineTok := lx.Next()
	nameTok := lx.Next()
	lx.DrainDirective()
	lx.SetDirectiveMode(false)

	n, err := strconv.ParseUint(lineTok.Text, 10, 32)
	if err != nil {
		p.report(diag.PreMalformedTimescale, tok.Span, "malformed `line directive")
		return
	}
	f := p.topFrame()
	lc, _ := p.fset.Resolve(tok.Span)
	f.lineOverrideActive = true
	f.overrideLine = uint32(n)
	f.overrideAtLine = lc.Line + 1
	if name := strings.Trim(nameTok.Text, `"`); name != "" {
		f.overrideFileName = name
	} else {
		f.overrideFileName = f.file.Path
	}
}

func (p *Preprocessor) handleInclude(tok token.Token) {
	lx := p.lx()
	lx.SetDirectiveMode(true)
	nameTok := lx.Next()
	raw := nameTok.Text
	// An angle-bracket name arrives as several tokens; join them up to '>'.
	for nameTok.Kind == token.Less && !strings.HasSuffix(raw, ">") {
		next := lx.Peek()
		if next.Kind == token.EndOfDirective || next.Kind == token.EOF {
			break
		}
		raw += lx.Next().Text
	}
	lx.DrainDirective()
	lx.SetDirectiveMode(false)

	firstOnLine := tok.Span.Start == 0
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaEndOfLine {
			firstOnLine = true
		}
	}
	if !firstOnLine {
		p.warn(diag.PreIncludeNotFirstOnLine, tok.Span, "`include is not the first token on its line")
	}

	quoted := strings.HasPrefix(raw, `"`)
	name := strings.Trim(raw, `"<>`)
	if raw == "" || (!quoted && !strings.HasPrefix(raw, "<")) {
		p.report(diag.PreExpectedIncludeFileName, tok.Span, "expected a quoted or angle-bracketed include filename")
		return
	}

	if len(p.stack) >= p.opts.maxIncludeDepth() {
		p.report(diag.PreIncludeDepthExceeded, tok.Span, "include depth exceeds configured maximum")
		return
	}

	resolved, ok := p.fset.ResolveInclude(name, p.topFrame().file.ID, quoted, p.opts.IncludeDirs)
	if !ok {
		p.report(diag.PreIncludeFileNotFound, tok.Span, "cannot find or open include file '"+name+"'")
		return
	}
	if existing, ok := p.fset.GetByPath(resolved); ok {
		p.pushFile(existing)
		return
	}
	id, err := p.fset.Load(resolved)
	if err != nil {
		p.report(diag.PreIncludeFileNotFound, tok.Span, "cannot find or open include file '"+name+"'")
		return
	}
	p.pushFile(p.fset.Get(id))
}
