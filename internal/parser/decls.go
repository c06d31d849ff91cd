package parser

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// endKeywordFor returns the matching end-keyword for a definition kind.
func endKeywordFor(kind ast.DefinitionKind) token.Kind {
	switch kind {
	case ast.DefinitionInterface:
		return token.KwEndinterface
	case ast.DefinitionProgram:
		return token.KwEndprogram
	default:
		return token.KwEndmodule
	}
}

// parseDefinition parses a module/interface/program from its leading
// keyword (consumed here) through its matching end-keyword.
func (p *Parser) parseDefinition(kind ast.DefinitionKind) ast.Definition {
	start := p.tok.Span
	p.advance() // 'module'/'macromodule'/'interface'/'program'

	def := ast.Definition{Kind: kind}
	if p.tok.IsIdent() {
		t := p.advance()
		def.Name = p.intern(t.Text)
	} else {
		p.errorf(diag.SynExpectedToken, p.tok.Span, "expected a definition name")
	}

	if p.at(token.Hash) {
		def.Params = p.parseParamPortList()
	}
	if p.at(token.LParen) {
		def.Ports = p.parsePortList()
	}
	p.expect(token.Semi, "';' after definition header")

	endKw := endKeywordFor(kind)
	for p.tok.Kind != endKw && p.tok.Kind != token.EOF {
		if members, nested, ok := p.parseMember(kind); ok {
			if nested != nil {
				def.Nested = append(def.Nested, *nested)
			} else {
				def.Body = append(def.Body, members...)
			}
		} else {
			p.skipToStatementBoundary()
			if p.tok.Kind == token.Semi {
				p.advance()
			}
		}
	}
	if p.tok.Kind == endKw {
		p.advance()
	}
	def.Span = start.Cover(p.lastSpan())
	return def
}

// parseParamPortList parses a `#( parameter ... , ... )` header list.
func (p *Parser) parseParamPortList() []ast.ParamDecl {
	p.advance() // '#'
	p.expect(token.LParen, "'(' opening parameter port list")
	var params []ast.ParamDecl
groups:
	for !p.at(token.RParen) && p.tok.Kind != token.EOF {
		isLocal := false
		switch p.tok.Kind {
		case token.KwParameter:
			p.advance()
		case token.KwLocalparam:
			isLocal = true
			p.advance()
		}
		var typeExpr ast.ExprID
		if p.looksLikeDataType() {
			typeExpr = p.parseDataType()
		}
		// Declarators within one group (up to the next 'parameter'/'localparam'
		// keyword or the closing paren) share typeExpr and isLocal, so an
		// undecorated entry inherits the keyword of the preceding one.
		for {
			pd := ast.ParamDecl{IsPort: true, IsLocal: isLocal, TypeExpr: typeExpr}
			sp := p.tok.Span
			if p.tok.IsIdent() {
				t := p.advance()
				pd.Name = p.intern(t.Text)
			} else {
				p.errorf(diag.SynExpectedToken, sp, "expected a parameter name")
			}
			if p.accept(token.Equals) {
				pd.Default = p.parseExpr()
			}
			pd.Span = sp.Cover(p.lastSpan())
			params = append(params, pd)
			if !p.accept(token.Comma) {
				break groups
			}
			if p.at(token.KwParameter) || p.at(token.KwLocalparam) {
				continue groups
			}
		}
	}
	p.expect(token.RParen, "')' closing parameter port list")
	return params
}

// parsePortList parses a definition's `( ... )` port list. Each entry is a
// name, optionally preceded by a data type and direction keyword; direction
// keywords are consumed but not separately recorded (the binder infers
// directionality from context where it matters).
func (p *Parser) parsePortList() []ast.PortDecl {
	p.advance() // '('
	var ports []ast.PortDecl
	for !p.at(token.RParen) && p.tok.Kind != token.EOF {
		switch p.tok.Kind {
		case token.KwInput, token.KwOutput, token.KwInout:
			p.advance()
		}
		var typeExpr ast.ExprID
		if p.looksLikeDataType() {
			typeExpr = p.parseDataType()
		}
		sp := p.tok.Span
		pd := ast.PortDecl{TypeExpr: typeExpr}
		if p.tok.IsIdent() {
			t := p.advance()
			pd.Name = p.intern(t.Text)
		} else {
			p.errorf(diag.SynExpectedToken, sp, "expected a port name")
		}
		pd.Span = sp.Cover(p.lastSpan())
		ports = append(ports, pd)
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "')' closing port list")
	return ports
}

// dataTypeKeywords are the leading tokens that begin a data-type expression.
var dataTypeKeywords = map[token.Kind]bool{
	token.KwWire: true, token.KwReg: true, token.KwLogic: true, token.KwBit: true,
	token.KwInt: true, token.KwInteger: true, token.KwByte: true, token.KwShortint: true, token.KwLongint: true,
	token.KwReal: true, token.KwShortreal: true, token.KwRealtime: true, token.KwString: true,
	token.KwStruct: true, token.KwUnion: true, token.KwEnum: true, token.KwVoid: true,
	token.KwSigned: true, token.KwUnsigned: true, token.KwConst: true, token.KwAutomatic: true,
	token.KwPacked: true, token.KwTri: true,
}

func (p *Parser) looksLikeDataType() bool {
	return dataTypeKeywords[p.tok.Kind]
}

// parseDataType parses a (possibly multi-keyword) data type name followed by
// zero or more packed/unpacked dimension selects, producing a single
// ast.DataType expression node. struct, union, and enum are recognized here
// too, since they begin a data type wherever one of the keyword spellings
// does; their member/enumerator body is parsed inline.
func (p *Parser) parseDataType() ast.ExprID {
	switch p.tok.Kind {
	case token.KwStruct, token.KwUnion:
		return p.parseStructUnionType()
	case token.KwEnum:
		return p.parseEnumType()
	}

	start := p.tok.Span
	var nameText string
	for p.looksLikeDataType() || p.tok.IsIdent() {
		t := p.advance()
		if nameText != "" {
			nameText += " "
		}
		nameText += t.Text
		if !p.looksLikeDataType() {
			break
		}
	}
	name := p.intern(nameText)
	var dims []ast.ExprID
	for p.at(token.LBracket) {
		p.advance()
		if p.at(token.RBracket) {
			dims = append(dims, ast.NoExprID)
		} else {
			hi := p.parseExpr()
			if p.accept(token.Colon) {
				lo := p.parseExpr()
				sp := start.Cover(p.lastSpan())
				dims = append(dims, p.file.RangeSelect(sp, ast.NoExprID, hi, lo, ast.RangeSelectConstant))
			} else {
				dims = append(dims, hi)
			}
		}
		p.expect(token.RBracket, "']' closing data type dimension")
	}
	sp := start.Cover(p.lastSpan())
	return p.file.DataType(sp, name, dims)
}

// parseStructUnionType parses `struct|union [packed] [signed|unsigned] { member_decl ... }`.
func (p *Parser) parseStructUnionType() ast.ExprID {
	start := p.tok.Span
	kw := p.advance() // 'struct' or 'union'
	isUnion := kw.Kind == token.KwUnion
	name := p.intern(kw.Text)

	p.accept(token.KwPacked)
	if !p.accept(token.KwSigned) {
		p.accept(token.KwUnsigned)
	}

	var members []ast.VariableDecl
	p.expect(token.LBrace, "'{' opening struct/union body")
	for !p.at(token.RBrace) && p.tok.Kind != token.EOF {
		members = append(members, p.parseAggregateMembers()...)
	}
	p.expect(token.RBrace, "'}' closing struct/union body")

	sp := start.Cover(p.lastSpan())
	return p.file.StructType(sp, name, isUnion, members)
}

// parseAggregateMembers parses one `<type> name [, name, ...];` entry of a
// struct/union body, sharing the declared type across every comma-separated
// name, mirroring parseVariableOrInstance's declarator-list handling.
func (p *Parser) parseAggregateMembers() []ast.VariableDecl {
	typeExpr := p.parseDataType()

	var members []ast.VariableDecl
	for {
		nameSp := p.tok.Span
		name := p.expectIdentText()
		vd := ast.VariableDecl{Name: name, TypeExpr: typeExpr}
		if p.accept(token.Equals) {
			vd.Initializer = p.parseExpr()
		}
		vd.Span = nameSp.Cover(p.lastSpan())
		members = append(members, vd)
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.Semi, "';' after struct/union member declaration")
	return members
}

// parseEnumType parses `enum [base_type] { name [= value], ... }`.
func (p *Parser) parseEnumType() ast.ExprID {
	start := p.tok.Span
	kw := p.advance() // 'enum'
	name := p.intern(kw.Text)

	base := ast.NoExprID
	if p.looksLikeDataType() {
		base = p.parseDataType()
	}

	var enumerators []ast.EnumeratorDecl
	p.expect(token.LBrace, "'{' opening enum body")
	for !p.at(token.RBrace) && p.tok.Kind != token.EOF {
		enumSp := p.tok.Span
		enumName := p.expectIdentText()
		ed := ast.EnumeratorDecl{Name: enumName, Value: ast.NoExprID}
		if p.accept(token.Equals) {
			ed.Value = p.parseExpr()
		}
		ed.Span = enumSp.Cover(p.lastSpan())
		enumerators = append(enumerators, ed)
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "'}' closing enum body")

	sp := start.Cover(p.lastSpan())
	return p.file.EnumType(sp, name, base, enumerators)
}

// parseMember recognizes one body-level member of a module/interface/program
// and returns it (occasionally more than one, for comma-separated variable
// declarators), or (for nested definitions) returns nested instead.
func (p *Parser) parseMember(enclosing ast.DefinitionKind) (members []ast.Member, nested *ast.Definition, ok bool) {
	sp := p.tok.Span
	switch p.tok.Kind {
	case token.KwModule, token.KwMacromodule:
		d := p.parseDefinition(ast.DefinitionModule)
		return nil, &d, true
	case token.KwInterface:
		d := p.parseDefinition(ast.DefinitionInterface)
		return nil, &d, true
	case token.KwProgram:
		d := p.parseDefinition(ast.DefinitionProgram)
		return nil, &d, true

	case token.KwAssign:
		p.advance()
		lhs := p.parseUnary()
		p.expect(token.Equals, "'=' in continuous assignment")
		rhs := p.parseExpr()
		p.expect(token.Semi, "';' after continuous assignment")
		assignSp := sp.Cover(p.lastSpan())
		m := ast.Member{Kind: ast.MemberContinuousAssign, Span: assignSp, Assign: p.file.Binary(assignSp, token.Equals, lhs, rhs)}
		return []ast.Member{m}, nil, true

	case token.KwParameter, token.KwLocalparam:
		isLocal := p.tok.Kind == token.KwLocalparam
		p.advance()
		var typeExpr ast.ExprID
		if p.looksLikeDataType() {
			typeExpr = p.parseDataType()
		}
		name := p.expectIdentText()
		var def ast.ExprID
		if p.accept(token.Equals) {
			def = p.parseExpr()
		}
		p.expect(token.Semi, "';' after parameter declaration")
		pd := ast.ParamDecl{Name: name, Span: sp.Cover(p.lastSpan()), TypeExpr: typeExpr, Default: def, IsLocal: isLocal}
		return []ast.Member{{Kind: ast.MemberParam, Span: pd.Span, Param: pd}}, nil, true

	case token.KwGenvar:
		p.advance()
		name := p.expectIdentText()
		p.expect(token.Semi, "';' after genvar declaration")
		return []ast.Member{{Kind: ast.MemberGenvar, Span: sp.Cover(p.lastSpan()), GenvarName: name}}, nil, true

	case token.KwFunction, token.KwTask:
		sub := p.parseSubroutine()
		return []ast.Member{{Kind: ast.MemberSubroutine, Span: sub.Span, Subroutine: sub}}, nil, true

	case token.KwInitial, token.KwFinal, token.KwAlways, token.KwAlwaysComb, token.KwAlwaysFF, token.KwAlwaysLatch:
		pd := p.parseProceduralBlock()
		return []ast.Member{{Kind: ast.MemberProcedural, Span: pd.Span, Procedural: pd}}, nil, true

	default:
		if p.looksLikeDataType() {
			return p.parseVariableOrInstance(sp)
		}
		if p.tok.IsIdent() {
			return p.parseVariableOrInstance(sp)
		}
		return nil, nil, false
	}
}

// parseVariableOrInstance disambiguates `<type-or-definition-name> decl-or-inst-list ;`
// as either a variable/net declaration or a module instantiation, by looking
// ahead for a `(` immediately following the declared name (an instance's
// connection list) versus `=`/`,`/`;` (a variable declaration, possibly with
// further comma-separated declarators sharing the same type).
func (p *Parser) parseVariableOrInstance(start source.Span) ([]ast.Member, *ast.Definition, bool) {
	var netKind source.StringID
	isNet := false
	switch p.tok.Kind {
	case token.KwWire, token.KwTri:
		isNet = true
		t := p.advance()
		netKind = p.intern(t.Text)
	}
	// A net name directly after wire/tri ("wire clk;") carries no data type.
	typeExpr := ast.NoExprID
	if !isNet || !p.tok.IsIdent() || p.peek().IsIdent() {
		typeExpr = p.parseDataType()
	}

	firstSp := p.tok.Span
	if !p.tok.IsIdent() {
		p.errorf(diag.SynExpectedToken, firstSp, "expected a declaration name")
		return nil, nil, false
	}
	nameTok := p.advance()
	instName := p.intern(nameTok.Text)

	if p.at(token.LParen) {
		inst := ast.InstanceDecl{InstName: instName}
		// The "type" we parsed is really the definition name for an
		// instantiation; reconstruct it from the data type's textual name.
		if dt := p.file.Get(typeExpr); dt != nil {
			inst.DefName = dt.DataTypeName
		}
		p.advance() // '('
		for !p.at(token.RParen) && p.tok.Kind != token.EOF {
			conn := ast.InstanceConnection{Name: ast.NoExprID}
			if p.at(token.Dot) {
				p.advance()
				portSp := p.tok.Span
				portName := p.expectIdentText()
				conn.Name = p.file.Name(portSp, portName)
				p.expect(token.LParen, "'(' after named port connection")
				if !p.at(token.RParen) {
					conn.Expr = p.parseExpr()
				}
				p.expect(token.RParen, "')' closing named port connection")
			} else {
				conn.Expr = p.parseExpr()
			}
			inst.PortConns = append(inst.PortConns, conn)
			if !p.accept(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "')' closing instance connection list")
		p.expect(token.Semi, "';' after instantiation")
		inst.Span = start.Cover(p.lastSpan())
		return []ast.Member{{Kind: ast.MemberInstance, Span: inst.Span, Instance: inst}}, nil, true
	}

	vd := ast.VariableDecl{Name: instName, TypeExpr: typeExpr, IsNet: isNet, NetKind: netKind}
	declSp := start
	if p.accept(token.Equals) {
		vd.Initializer = p.parseExpr()
	}
	vd.Span = declSp.Cover(p.lastSpan())
	members := []ast.Member{{Kind: ast.MemberVariable, Span: vd.Span, Variable: vd}}

	for p.accept(token.Comma) {
		extraSp := p.tok.Span
		if !p.tok.IsIdent() {
			break
		}
		extraTok := p.advance()
		extraDecl := ast.VariableDecl{Name: p.intern(extraTok.Text), TypeExpr: typeExpr, IsNet: isNet, NetKind: netKind}
		if p.accept(token.Equals) {
			extraDecl.Initializer = p.parseExpr()
		}
		extraDecl.Span = extraSp.Cover(p.lastSpan())
		members = append(members, ast.Member{Kind: ast.MemberVariable, Span: extraDecl.Span, Variable: extraDecl})
	}
	p.expect(token.Semi, "';' after variable declaration")
	return members, nil, true
}

// proceduralKindFor maps a procedural-block leading keyword to its
// ast.ProceduralKind; token.KwAlways is the fallback for any caller reached
// only through one of the recognized keywords.
func proceduralKindFor(k token.Kind) ast.ProceduralKind {
	switch k {
	case token.KwInitial:
		return ast.ProcInitial
	case token.KwFinal:
		return ast.ProcFinal
	case token.KwAlwaysComb:
		return ast.ProcAlwaysComb
	case token.KwAlwaysFF:
		return ast.ProcAlwaysFF
	case token.KwAlwaysLatch:
		return ast.ProcAlwaysLatch
	default:
		return ast.ProcAlways
	}
}

// parseProceduralBlock parses `initial|final|always[_comb|_ff|_latch]
// [@(sensitivity)|@*] stmt-or-block`. posedge/negedge qualifiers in an
// explicit sensitivity list are consumed but not retained; only the
// underlying event expression is kept.
func (p *Parser) parseProceduralBlock() ast.ProceduralDecl {
	start := p.tok.Span
	kw := p.advance()
	pd := ast.ProceduralDecl{Kind: proceduralKindFor(kw.Kind)}

	switch {
	case p.accept(token.AtStar):
		pd.ImplicitSensitivity = true
	case p.at(token.At):
		p.advance()
		if p.accept(token.Star) {
			pd.ImplicitSensitivity = true
		} else {
			p.expect(token.LParen, "'(' opening sensitivity list")
			if p.accept(token.Star) {
				pd.ImplicitSensitivity = true
			} else {
				for !p.at(token.RParen) && p.tok.Kind != token.EOF {
					switch p.tok.Kind {
					case token.KwPosedge, token.KwNegedge:
						p.advance()
					}
					pd.Sensitivity = append(pd.Sensitivity, p.parseExpr())
					if !p.accept(token.Comma) && !p.accept(token.KwOr) {
						break
					}
				}
			}
			p.expect(token.RParen, "')' closing sensitivity list")
		}
	}

	if kw.Kind == token.KwAlwaysComb || kw.Kind == token.KwAlwaysLatch {
		pd.ImplicitSensitivity = true
	}
	if st, ok := p.parseStmt(); ok {
		pd.Body = []ast.Stmt{st}
	}
	pd.Span = start.Cover(p.lastSpan())
	return pd
}

// parseStmtOrBlock parses a single statement or a begin/end block, the shape
// if/else branches accept; a begin/end block's statements are returned
// directly rather than wrapped in a StmtBlock.
func (p *Parser) parseStmtOrBlock() []ast.Stmt {
	if p.at(token.KwBegin) {
		st, ok := p.parseStmt()
		if !ok {
			return nil
		}
		return st.Body
	}
	st, ok := p.parseStmt()
	if !ok {
		return nil
	}
	return []ast.Stmt{st}
}

// parseSubroutine parses a function or task declaration through its matching
// end keyword, with a narrow statement-body grammar.
func (p *Parser) parseSubroutine() ast.SubroutineDecl {
	start := p.tok.Span
	isFunction := p.tok.Kind == token.KwFunction
	p.advance()

	sub := ast.SubroutineDecl{IsFunction: isFunction}
	endKw := token.KwEndtask
	if isFunction {
		endKw = token.KwEndfunction
		if p.looksLikeDataType() {
			sub.ReturnTypeExpr = p.parseDataType()
		} else if p.tok.Kind == token.KwVoid {
			p.advance()
		}
	}

	if p.tok.IsIdent() {
		t := p.advance()
		sub.Name = p.intern(t.Text)
	} else {
		p.errorf(diag.SynExpectedToken, p.tok.Span, "expected a subroutine name")
	}

	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) && p.tok.Kind != token.EOF {
			switch p.tok.Kind {
			case token.KwInput, token.KwOutput, token.KwInout:
				p.advance()
			}
			var typeExpr ast.ExprID
			if p.looksLikeDataType() {
				typeExpr = p.parseDataType()
			}
			fSp := p.tok.Span
			f := ast.Formal{TypeExpr: typeExpr}
			if p.tok.IsIdent() {
				t := p.advance()
				f.Name = p.intern(t.Text)
			}
			if p.accept(token.Equals) {
				f.Default = p.parseExpr()
			}
			f.Span = fSp.Cover(p.lastSpan())
			sub.Formals = append(sub.Formals, f)
			if !p.accept(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "')' closing formal argument list")
	}
	p.expect(token.Semi, "';' after subroutine header")

	for p.tok.Kind != endKw && p.tok.Kind != token.EOF {
		// begin/end blocks are flattened: the delimiters are consumed here
		// and their contents fold into the same body list as the
		// subroutine's top level.
		if p.tok.Kind == token.KwBegin || p.tok.Kind == token.KwEnd {
			p.advance()
			continue
		}
		if st, ok := p.parseStmt(); ok {
			sub.Body = append(sub.Body, st)
		} else {
			p.skipToStatementBoundary()
			if p.tok.Kind == token.Semi {
				p.advance()
			}
		}
	}
	if p.tok.Kind == endKw {
		p.advance()
	}
	sub.Span = start.Cover(p.lastSpan())
	return sub
}

// parseStmt parses a single statement in a subroutine or procedural-block
// body: a local variable declaration, a return, an if/else, a begin/end
// block, a blocking or nonblocking assignment, or a bare expression
// statement (a subroutine call). A subroutine body's own caller flattens
// begin/end at its own top level before ever calling parseStmt; a
// procedural-block body reaches this case directly.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	sp := p.tok.Span
	switch p.tok.Kind {
	case token.KwReturn:
		p.advance()
		var expr ast.ExprID = ast.NoExprID
		if !p.at(token.Semi) {
			expr = p.parseExpr()
		}
		p.expect(token.Semi, "';' after return statement")
		return ast.Stmt{Kind: ast.StmtReturn, Span: sp.Cover(p.lastSpan()), Expr: expr}, true

	case token.KwBegin:
		p.advance()
		var body []ast.Stmt
		for !p.at(token.KwEnd) && p.tok.Kind != token.EOF {
			if st, ok := p.parseStmt(); ok {
				body = append(body, st)
			} else {
				p.skipToStatementBoundary()
				if p.tok.Kind == token.Semi {
					p.advance()
				}
			}
		}
		p.expect(token.KwEnd, "'end' closing begin/end block")
		return ast.Stmt{Kind: ast.StmtBlock, Span: sp.Cover(p.lastSpan()), Body: body}, true

	case token.KwIf:
		p.advance()
		p.expect(token.LParen, "'(' after 'if'")
		cond := p.parseExpr()
		p.expect(token.RParen, "')' after if condition")
		then := p.parseStmtOrBlock()
		var elseBody []ast.Stmt
		if p.accept(token.KwElse) {
			elseBody = p.parseStmtOrBlock()
		}
		return ast.Stmt{Kind: ast.StmtIf, Span: sp.Cover(p.lastSpan()), Expr: cond, Then: then, Else: elseBody}, true

	default:
		if p.looksLikeDataType() {
			typeExpr := p.parseDataType()
			nameSp := p.tok.Span
			name := p.expectIdentText()
			vd := ast.VariableDecl{Name: name, TypeExpr: typeExpr}
			if p.accept(token.Equals) {
				vd.Initializer = p.parseExpr()
			}
			p.expect(token.Semi, "';' after local variable declaration")
			vd.Span = nameSp.Cover(p.lastSpan())
			return ast.Stmt{Kind: ast.StmtVarDecl, Span: vd.Span, VarDecl: vd}, true
		}

		// A bare lvalue/call is parsed at unary precedence first so a leading
		// '<=' is never mistaken for the relational operator: at statement
		// position it can only be a nonblocking assignment.
		lhs := p.parseUnary()
		switch {
		case p.at(token.LessEquals):
			p.advance()
			rhs := p.parseExpr()
			assignSp := sp.Cover(p.lastSpan())
			expr := p.file.Binary(assignSp, token.Equals, lhs, rhs)
			p.expect(token.Semi, "';' after nonblocking assignment")
			return ast.Stmt{Kind: ast.StmtExpr, Span: sp.Cover(p.lastSpan()), Expr: expr, Nonblocking: true}, true
		case assignOps[p.tok.Kind]:
			op := p.advance()
			rhs := p.parseAssignment()
			assignSp := sp.Cover(p.lastSpan())
			expr := p.file.Binary(assignSp, op.Kind, lhs, rhs)
			p.expect(token.Semi, "';' after assignment")
			return ast.Stmt{Kind: ast.StmtExpr, Span: sp.Cover(p.lastSpan()), Expr: expr}, true
		default:
			p.expect(token.Semi, "';' after statement")
			return ast.Stmt{Kind: ast.StmtExpr, Span: sp.Cover(p.lastSpan()), Expr: lhs}, true
		}
	}
}
