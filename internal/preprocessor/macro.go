package preprocessor

import (
	"strings"

	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// macroDef is a stored `define: a name, its formal parameter list (empty for
// an object-like macro), per-parameter default token lists, and a raw body
// token list exactly as captured at definition time.
type macroDef struct {
	name         string
	functionLike bool
	params       []string
	defaults     map[string][]token.Token
	body         []token.Token
	intrinsic    intrinsicKind
}

type intrinsicKind uint8

const (
	intrinsicNone intrinsicKind = iota
	intrinsicLine
	intrinsicFile
)

func bodiesEqual(a, b []token.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}

func paramsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// handleDefine reads a `define directive's name, optional parameter list,
// and body, registering (or re-registering) the macro.
func (p *Preprocessor) handleDefine(directiveTok token.Token) {
	lx := p.lx()
	lx.SetDirectiveMode(true)
	defer lx.SetDirectiveMode(false)

	nameTok := lx.Next()
	if nameTok.Kind != token.Identifier && !nameTok.Kind.IsKeyword() {
		p.drainToEndOfDirective()
		return
	}
	name := nameTok.Text

	var params []string
	defaults := map[string][]token.Token{}
	functionLike := false

	if peek := lx.Peek(); peek.Kind == token.LParen && len(peek.Leading) == 0 && peek.Span.Start == nameTok.Span.End {
		functionLike = true
		lx.Next() // consume '('
		for {
			t := lx.Peek()
			if t.Kind == token.RParen {
				lx.Next()
				break
			}
			if t.Kind == token.EndOfDirective {
				break
			}
			if t.Kind == token.Comma {
				lx.Next()
				continue
			}
			pt := lx.Next()
			if pt.Kind != token.Identifier {
				continue
			}
			params = append(params, pt.Text)
			if lx.Peek().Kind == token.Equals {
				lx.Next()
				var def []token.Token
				for {
					dk := lx.Peek()
					if dk.Kind == token.Comma || dk.Kind == token.RParen || dk.Kind == token.EndOfDirective {
						break
					}
					def = append(def, lx.Next())
				}
				defaults[pt.Text] = def
			}
		}
	}

	var body []token.Token
	for {
		t := lx.Next()
		if t.Kind == token.EndOfDirective {
			break
		}
		body = append(body, t)
	}

	if existing, ok := p.macros[name]; ok {
		if existing.intrinsic != intrinsicNone || !paramsEqual(existing.params, params) || !bodiesEqual(existing.body, body) {
			p.report(diag.PreMacroRedefinition, directiveTok.Span, "macro '"+name+"' redefined with a different body")
		}
	}
	p.macros[name] = &macroDef{
		name:         name,
		functionLike: functionLike,
		params:       params,
		defaults:     defaults,
		body:         body,
	}
}

func (p *Preprocessor) handleUndef(directiveTok token.Token) {
	lx := p.lx()
	lx.SetDirectiveMode(true)
	nameTok := lx.Next()
	lx.DrainDirective()
	lx.SetDirectiveMode(false)
	if m, ok := p.macros[nameTok.Text]; ok && m.intrinsic == intrinsicNone {
		delete(p.macros, nameTok.Text)
	}
	_ = directiveTok
}

func (p *Preprocessor) handleUndefineAll(directiveTok token.Token) {
	p.drainToEndOfDirective()
	for name, m := range p.macros {
		if m.intrinsic == intrinsicNone {
			delete(p.macros, name)
		}
	}
	_ = directiveTok
}

// expand produces the token list a macro usage expands to, driving the
// argument-collection and recursive substitution pipeline.
func (p *Preprocessor) expand(name string, usageSpan source.Span, depth int) []token.Token {
	if depth > defaultMaxExpansionDepth {
		p.report(diag.PreMacroRecursionLimit, usageSpan, "macro expansion exceeded recursion depth guard")
		return nil
	}

	switch name {
	case "__LINE__":
		return []token.Token{p.intrinsicLineToken(usageSpan)}
	case "__FILE__":
		return []token.Token{p.intrinsicFileToken(usageSpan)}
	}

	m, ok := p.macros[name]
	if !ok {
		p.report(diag.PreUnknownDirective, usageSpan, "unknown preprocessor directive or undefined macro '"+name+"'")
		return nil
	}

	var actuals [][]token.Token
	if m.functionLike {
		if p.peekRaw().Kind != token.LParen {
			p.report(diag.PreExpectedMacroArgs, usageSpan, "function-like macro '"+name+"' used without an argument list")
			return nil
		}
		p.nextRaw() // consume '('
		actuals = p.collectMacroArgs()

		if len(actuals) < len(m.params) {
			for i := len(actuals); i < len(m.params); i++ {
				if def, has := m.defaults[m.params[i]]; has {
					actuals = append(actuals, def)
				} else {
					p.report(diag.PreNotEnoughMacroArgs, usageSpan, "not enough arguments provided to macro '"+name+"'")
					break
				}
			}
		} else if len(actuals) > len(m.params) {
			p.report(diag.PreTooManyActualMacroArgs, usageSpan, "too many arguments provided to macro '"+name+"'")
			actuals = actuals[:len(m.params)]
		}
	}

	bind := make(map[string][]token.Token, len(m.params))
	for i, param := range m.params {
		if i < len(actuals) {
			bind[param] = actuals[i]
		}
	}

	return p.substituteBody(m.body, bind, depth+1)
}

// collectMacroArgs scans actual macro arguments starting just after the
// opening '(': comma-separated token runs, tracking paren/bracket/brace
// nesting so that a comma inside a nested call does not split an argument.
func (p *Preprocessor) collectMacroArgs() [][]token.Token {
	var args [][]token.Token
	var cur []token.Token
	depth := 0
	for {
		t := p.peekRaw()
		if t.Kind == token.EOF || t.Kind == token.EndOfDirective {
			args = append(args, cur)
			return args
		}
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace, token.TickLBrace:
			depth++
		case token.RParen:
			if depth == 0 {
				p.nextRaw()
				args = append(args, cur)
				return args
			}
			depth--
		case token.RBracket, token.RBrace:
			depth--
		case token.Comma:
			if depth == 0 {
				p.nextRaw()
				args = append(args, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, p.nextRaw())
	}
}

// substituteBody runs the full macro-body substitution pipeline: flatten
// formal-parameter identifiers to their raw actual-argument tokens,
// resolve stringification (expanding any nested macro usage inside the
// stringified span first), resolve token-paste, then recursively expand any
// remaining nested macro usages.
func (p *Preprocessor) substituteBody(body []token.Token, bind map[string][]token.Token, depth int) []token.Token {
	flattened := make([]token.Token, 0, len(body))
	for _, t := range body {
		if t.Kind == token.Identifier {
			if actual, ok := bind[t.Text]; ok {
				flattened = append(flattened, actual...)
				continue
			}
		}
		flattened = append(flattened, t)
	}

	flattened = p.resolveStringify(flattened, depth)
	flattened = p.resolvePaste(flattened)

	return p.expandTokens(flattened, depth)
}

// resolveStringify collapses each `" ... `" span into a single string
// literal. The enclosed tokens are macro-expanded first (spec step 3:
// stringify the span after recursive expansion), so a nested macro usage
// inside the span is stringified to its expansion, not its raw spelling.
func (p *Preprocessor) resolveStringify(toks []token.Token, depth int) []token.Token {
	out := make([]token.Token, 0, len(toks))
	i := 0
	for i < len(toks) {
		if toks[i].Kind == token.BacktickQuote {
			start := toks[i].Span
			j := i + 1
			var inner []token.Token
			for j < len(toks) && toks[j].Kind != token.BacktickQuote {
				inner = append(inner, toks[j])
				j++
			}
			if j >= len(toks) {
				p.report(diag.PreExpectedMacroStringifyEnd, start, "unterminated macro stringification operator")
				out = append(out, toks[i+1:]...)
				return out
			}
			expanded := p.expandTokens(inner, depth)
			var sb strings.Builder
			for _, t := range expanded {
				sb.WriteString(t.Text)
			}
			quoted := sb.String()
			out = append(out, token.Token{
				Kind:  token.StringLiteral,
				Span:  start,
				Text:  `"` + quoted + `"`,
				Value: quoted,
			})
			i = j + 1
			continue
		}
		out = append(out, toks[i])
		i++
	}
	return out
}

// expandTokens expands any Directive (macro-usage) tokens found in an
// already-materialized token slice, collecting a function-like macro's
// argument list from the slice itself rather than from the live lexer: used
// wherever a nested macro usage must be resolved inside a macro body rather
// than at a top-level call site.
func (p *Preprocessor) expandTokens(toks []token.Token, depth int) []token.Token {
	out := make([]token.Token, 0, len(toks))
	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.Kind != token.Directive {
			out = append(out, t)
			i++
			continue
		}
		i++
		name, _ := t.Value.(string)

		switch name {
		case "__LINE__":
			out = append(out, p.intrinsicLineToken(t.Span))
			continue
		case "__FILE__":
			out = append(out, p.intrinsicFileToken(t.Span))
			continue
		}

		m, ok := p.macros[name]
		if !ok {
			p.report(diag.PreUnknownDirective, t.Span, "unknown preprocessor directive or undefined macro '"+name+"'")
			continue
		}
		if depth > defaultMaxExpansionDepth {
			p.report(diag.PreMacroRecursionLimit, t.Span, "macro expansion exceeded recursion depth guard")
			continue
		}

		var actuals [][]token.Token
		if m.functionLike {
			if i >= len(toks) || toks[i].Kind != token.LParen {
				p.report(diag.PreExpectedMacroArgs, t.Span, "function-like macro '"+name+"' used without an argument list")
				continue
			}
			i++ // consume '('
			var arg []token.Token
			nesting := 0
			for i < len(toks) {
				at := toks[i]
				if nesting == 0 && at.Kind == token.RParen {
					actuals = append(actuals, arg)
					i++
					break
				}
				if nesting == 0 && at.Kind == token.Comma {
					actuals = append(actuals, arg)
					arg = nil
					i++
					continue
				}
				switch at.Kind {
				case token.LParen, token.LBracket, token.LBrace, token.TickLBrace:
					nesting++
				case token.RParen, token.RBracket, token.RBrace:
					nesting--
				}
				arg = append(arg, at)
				i++
			}

			if len(actuals) < len(m.params) {
				for k := len(actuals); k < len(m.params); k++ {
					if def, has := m.defaults[m.params[k]]; has {
						actuals = append(actuals, def)
					} else {
						p.report(diag.PreNotEnoughMacroArgs, t.Span, "not enough arguments provided to macro '"+name+"'")
						break
					}
				}
			} else if len(actuals) > len(m.params) {
				p.report(diag.PreTooManyActualMacroArgs, t.Span, "too many arguments provided to macro '"+name+"'")
				actuals = actuals[:len(m.params)]
			}
		}

		bind := make(map[string][]token.Token, len(m.params))
		for k, param := range m.params {
			if k < len(actuals) {
				bind[param] = actuals[k]
			}
		}
		out = append(out, p.substituteBody(m.body, bind, depth+1)...)
	}
	return out
}

// resolvePaste collapses every "lhs``rhs" run into a single token,
// chaining left to right so "a``b``c" pastes as (a``b)``c rather than only
// resolving the first pair and leaving the rest of the chain untouched.
func (p *Preprocessor) resolvePaste(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	i := 0
	for i < len(toks) {
		if i+1 >= len(toks) || toks[i+1].Kind != token.BacktickBacktick {
			out = append(out, toks[i])
			i++
			continue
		}
		left := toks[i]
		i++
		for i < len(toks) && toks[i].Kind == token.BacktickBacktick {
			opSpan := toks[i].Span
			i++
			if i >= len(toks) {
				p.report(diag.PrePasteProducedMultipleTokens, opSpan, "token paste operator has no right operand")
				break
			}
			right := toks[i]
			i++
			merged, ok := p.relexConcat(left, right)
			if !ok {
				p.report(diag.PrePasteProducedMultipleTokens, opSpan, "token paste did not produce a single token")
				out = append(out, left)
				left = right
				continue
			}
			left = merged
		}
		out = append(out, left)
	}
	return out
}
