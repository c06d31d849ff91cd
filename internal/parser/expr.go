package parser

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// parseExpr parses a full expression, including assignment if one follows.
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseAssignment()
}

// parseAssignment implements the single, right-associative assignment
// precedence level (spec 4.4: "assignment and compound assignment").
func (p *Parser) parseAssignment() ast.ExprID {
	start := p.tok.Span
	left := p.parseConditional()
	if assignOps[p.tok.Kind] {
		op := p.advance()
		right := p.parseAssignment()
		sp := start.Cover(p.lastSpan())
		return p.file.Binary(sp, op.Kind, left, right)
	}
	return left
}

func (p *Parser) lastSpan() source.Span { return p.tok.Span }

// parseConditional implements `pred ? then : else`, right-associative.
func (p *Parser) parseConditional() ast.ExprID {
	start := p.tok.Span
	pred := p.parseBinary(0)
	if p.accept(token.Question) {
		thenExpr := p.parseAssignment()
		p.expect(token.Colon, "':' in conditional expression")
		elseExpr := p.parseConditional()
		sp := start.Cover(p.lastSpan())
		return p.file.Conditional(sp, pred, thenExpr, elseExpr)
	}
	return pred
}

// parseBinary is the precedence-climbing loop over binaryPrec.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	start := p.tok.Span
	left := p.parseUnary()
	for {
		info, ok := binaryPrec[p.tok.Kind]
		if !ok || info.prec < minPrec {
			return left
		}
		op := p.advance()
		nextMin := info.prec + 1
		if info.assoc == rightAssoc {
			nextMin = info.prec
		}
		right := p.parseBinary(nextMin)
		sp := start.Cover(p.lastSpan())
		left = p.file.Binary(sp, op.Kind, left, right)
	}
}

// parseUnary handles prefix unary operators, deferring to parsePostfix for
// everything else.
func (p *Parser) parseUnary() ast.ExprID {
	sp := p.tok.Span
	if unaryPrefixOps[p.tok.Kind] {
		op := p.advance()
		if !p.enterDepth(sp) {
			p.leaveDepth()
			return p.badExpr(sp)
		}
		operand := p.parseUnary()
		p.leaveDepth()
		full := sp.Cover(p.lastSpan())
		return p.file.UnaryPrefix(full, op.Kind, operand)
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// selectors, calls, and post-increment/decrement.
func (p *Parser) parsePostfix() ast.ExprID {
	start := p.tok.Span
	expr := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.advance()
			name := p.expectIdentText()
			sp := start.Cover(p.lastSpan())
			expr = p.file.SelectedName(sp, expr, name)
		case token.ColonColon:
			p.advance()
			name := p.expectIdentText()
			sp := start.Cover(p.lastSpan())
			expr = p.file.ScopedName(sp, expr, name)
		case token.LBracket:
			expr = p.parseSelect(start, expr)
		case token.LParen:
			expr = p.parseCall(start, expr)
		case token.PlusPlus, token.MinusMinus:
			op := p.advance()
			sp := start.Cover(p.lastSpan())
			expr = p.file.UnaryPostfix(sp, op.Kind, expr)
		default:
			return expr
		}
	}
}

func (p *Parser) expectIdentText() source.StringID {
	if p.tok.IsIdent() {
		t := p.advance()
		return p.intern(t.Text)
	}
	p.errorf(diag.SynExpectedToken, p.tok.Span, "expected an identifier")
	return source.NoStringID
}

// parseSelect parses `a[i]`, `a[l:r]`, `a[l+:w]`, `a[l-:w]`.
func (p *Parser) parseSelect(start source.Span, base ast.ExprID) ast.ExprID {
	p.advance() // '['
	left := p.parseExpr()
	switch p.tok.Kind {
	case token.Colon:
		p.advance()
		right := p.parseExpr()
		p.expect(token.RBracket, "']' closing a range select")
		sp := start.Cover(p.lastSpan())
		return p.file.RangeSelect(sp, base, left, right, ast.RangeSelectConstant)
	case token.PlusColon:
		p.advance()
		width := p.parseExpr()
		p.expect(token.RBracket, "']' closing an indexed-up select")
		sp := start.Cover(p.lastSpan())
		return p.file.RangeSelect(sp, base, left, width, ast.RangeSelectIndexedUp)
	case token.MinusColon:
		p.advance()
		width := p.parseExpr()
		p.expect(token.RBracket, "']' closing an indexed-down select")
		sp := start.Cover(p.lastSpan())
		return p.file.RangeSelect(sp, base, left, width, ast.RangeSelectIndexedDown)
	default:
		p.expect(token.RBracket, "']' closing an element select")
		sp := start.Cover(p.lastSpan())
		return p.file.ElementSelect(sp, base, left)
	}
}

// parseCall parses `f(args)`, where args may be empty, positional, or
// `.name(expr)` named.
func (p *Parser) parseCall(start source.Span, callee ast.ExprID) ast.ExprID {
	p.advance() // '('
	var args []ast.ExprID
	var names []source.StringID
	for !p.at(token.RParen) && p.tok.Kind != token.EOF {
		if p.at(token.Dot) {
			p.advance()
			name := p.expectIdentText()
			p.expect(token.LParen, "'(' after named-argument name")
			arg := p.parseExpr()
			p.expect(token.RParen, "')' closing named argument")
			args = append(args, arg)
			names = append(names, name)
		} else {
			args = append(args, p.parseExpr())
			names = append(names, source.NoStringID)
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "')' closing call argument list")
	sp := start.Cover(p.lastSpan())
	return p.file.Invocation(sp, callee, args, names)
}

// parsePrimary parses literals, identifiers, parenthesized expressions,
// concatenation/replication, assignment patterns, data types in expression
// position, and casts (a size, type, or parenthesized expression followed by
// `'(`).
func (p *Parser) parsePrimary() ast.ExprID {
	sp := p.tok.Span
	var result ast.ExprID
	switch {
	case p.looksLikeDataType():
		result = p.parseDataType()
	case p.tok.IsLiteral():
		t := p.advance()
		result = p.file.Literal(t.Span, t.Kind, t.Value)
	case p.tok.IsIdent():
		t := p.advance()
		result = p.file.Name(t.Span, p.intern(t.Text))
	case p.at(token.LParen):
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, "')' closing parenthesized expression")
		result = inner
	case p.at(token.LBrace):
		return p.parseBraceExpr()
	case p.at(token.TickLBrace):
		return p.parseAssignPattern()
	default:
		p.errorf(diag.SynExpectedExpression, sp, "expected an expression")
		p.advance()
		return p.badExpr(sp)
	}
	for p.at(token.TickLParen) {
		result = p.parseCast(sp, result)
	}
	return result
}

// parseCast parses the `'(operand)` suffix of a cast expression, castType
// having already been parsed as a size, a data type, or a parenthesized
// expression.
func (p *Parser) parseCast(start source.Span, castType ast.ExprID) ast.ExprID {
	p.advance() // '('
	operand := p.parseExpr()
	p.expect(token.RParen, "')' closing cast expression")
	sp := start.Cover(p.lastSpan())
	return p.file.Cast(sp, castType, operand)
}

// parseBraceExpr parses `{a, b, ...}` (concatenation) or `{N{x}}`
// (replication), disambiguated by whether the first element is itself
// immediately followed by a nested `{`.
func (p *Parser) parseBraceExpr() ast.ExprID {
	start := p.tok.Span
	p.advance() // '{'
	first := p.parseExpr()
	if p.at(token.LBrace) {
		// Replication: `{N{x}}` or `{N{x,y,...}}`.
		p.advance()
		inner := p.parseConcatElements()
		p.expect(token.RBrace, "'}' closing replication body")
		p.expect(token.RBrace, "'}' closing replication")
		sp := start.Cover(p.lastSpan())
		var body ast.ExprID
		if len(inner) == 1 {
			body = inner[0]
		} else {
			body = p.file.Concat(sp, inner)
		}
		return p.file.Replication(sp, first, body)
	}
	elements := []ast.ExprID{first}
	for p.accept(token.Comma) {
		elements = append(elements, p.parseExpr())
	}
	p.expect(token.RBrace, "'}' closing concatenation")
	sp := start.Cover(p.lastSpan())
	return p.file.Concat(sp, elements)
}

func (p *Parser) parseConcatElements() []ast.ExprID {
	var elements []ast.ExprID
	elements = append(elements, p.parseExpr())
	for p.accept(token.Comma) {
		elements = append(elements, p.parseExpr())
	}
	return elements
}

// parseAssignPattern parses `'{a, b, ...}`.
func (p *Parser) parseAssignPattern() ast.ExprID {
	start := p.tok.Span
	p.advance() // '{
	var elements []ast.ExprID
	if !p.at(token.RBrace) {
		elements = p.parseConcatElements()
	}
	p.expect(token.RBrace, "'}' closing assignment pattern")
	sp := start.Cover(p.lastSpan())
	return p.file.AssignPattern(sp, elements)
}
