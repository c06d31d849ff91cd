package compilation

import (
	"surgehdl/internal/diag"
	"surgehdl/internal/symbols"
)

// realize turns a queued DeferredMember into a concrete Symbol, installed as
// symbols.Table's Realizer (spec 3: "lookup triggers realization exactly
// once"). Realization is purely structural here: it builds the Symbol shape
// from the ast.Member payload without resolving types, which remains the
// binder's job against the TypeExpr/Initializer fields this leaves behind.
func (c *Compilation) realize(scope symbols.ScopeID, d *symbols.DeferredMember) symbols.SymbolID {
	switch d.Kind {
	case symbols.DeferredVariable:
		return c.realizeVariable(scope, d)
	case symbols.DeferredParam:
		return c.realizeParam(scope, d)
	case symbols.DeferredInstance:
		return c.realizeInstance(scope, d)
	case symbols.DeferredSubroutine:
		return c.realizeSubroutine(scope, d)
	case symbols.DeferredGenvar:
		return c.realizeGenvar(scope, d)
	default:
		return symbols.NoSymbolID
	}
}

func (c *Compilation) realizeVariable(scope symbols.ScopeID, d *symbols.DeferredMember) symbols.SymbolID {
	v := d.Member.Variable
	kind := symbols.SymbolVariable
	if v.IsNet {
		kind = symbols.SymbolNet
	}
	sym := symbols.Symbol{
		Name:         v.Name,
		Kind:         kind,
		Span:         v.Span,
		TypeExprFile: d.File,
		TypeExpr:     v.TypeExpr,
		Initializer:  v.Initializer,
		NetKind:      v.NetKind,
		Decl:         symbols.SymbolDecl{ASTFile: d.File, MemberIndex: -1},
	}
	return c.Resolver.DeclareSymbol(scope, sym)
}

func (c *Compilation) realizeParam(scope symbols.ScopeID, d *symbols.DeferredMember) symbols.SymbolID {
	p := d.Member.Param
	var flags symbols.SymbolFlags
	if p.IsLocal {
		flags |= symbols.FlagLocalParam
	}
	if p.IsPort {
		flags |= symbols.FlagPortParam
	}
	sym := symbols.Symbol{
		Name:         p.Name,
		Kind:         symbols.SymbolParameter,
		Span:         p.Span,
		Flags:        flags,
		TypeExprFile: d.File,
		TypeExpr:     p.TypeExpr,
		Initializer:  p.Default,
		Decl:         symbols.SymbolDecl{ASTFile: d.File, MemberIndex: -1},
	}
	return c.Resolver.DeclareSymbol(scope, sym)
}

func (c *Compilation) realizeInstance(scope symbols.ScopeID, d *symbols.DeferredMember) symbols.SymbolID {
	inst := d.Member.Instance
	defID, ok := c.GetDefinition(inst.DefName, scope)
	if !ok {
		diag.ReportError(c.Reporter, diag.SemaUnknownName, d.Span, "unknown definition '"+c.Strings.MustLookup(inst.DefName)+"'").Emit()
	}
	sym := symbols.Symbol{
		Name:       inst.InstName,
		Kind:       symbols.SymbolInstance,
		Span:       inst.Span,
		InstanceOf: defID,
		Decl:       symbols.SymbolDecl{ASTFile: d.File, MemberIndex: -1},
	}
	return c.Resolver.DeclareSymbol(scope, sym)
}

func (c *Compilation) realizeSubroutine(scope symbols.ScopeID, d *symbols.DeferredMember) symbols.SymbolID {
	sub := d.Member.Subroutine
	subScope := c.Table.Scopes.New(symbols.ScopeSubroutine, scope, symbols.ScopeOwner{
		Kind:            symbols.ScopeOwnerSubroutine,
		ASTFile:         d.File,
		DefinitionIndex: -1,
	}, sub.Span)

	formals := make([]symbols.FormalInfo, 0, len(sub.Formals))
	for _, f := range sub.Formals {
		formalSym := c.Resolver.DeclareSymbol(subScope, symbols.Symbol{
			Name:         f.Name,
			Kind:         symbols.SymbolFormalArgument,
			Span:         f.Span,
			TypeExprFile: d.File,
			TypeExpr:     f.TypeExpr,
			Initializer:  f.Default,
			Decl:         symbols.SymbolDecl{ASTFile: d.File, MemberIndex: -1},
		})
		formals = append(formals, symbols.FormalInfo{
			Name: f.Name, Span: f.Span, TypeExpr: f.TypeExpr, Default: f.Default, Symbol: formalSym,
		})
	}

	sym := symbols.Symbol{
		Name:           sub.Name,
		Kind:           symbols.SymbolSubroutine,
		Span:           sub.Span,
		OwnScope:       subScope,
		Formals:        formals,
		ReturnTypeExpr: sub.ReturnTypeExpr,
		IsFunction:     sub.IsFunction,
		Decl:           symbols.SymbolDecl{ASTFile: d.File, MemberIndex: -1},
	}
	return c.Resolver.DeclareSymbol(scope, sym)
}

func (c *Compilation) realizeGenvar(scope symbols.ScopeID, d *symbols.DeferredMember) symbols.SymbolID {
	sym := symbols.Symbol{
		Name: d.Name,
		Kind: symbols.SymbolGenvar,
		Span: d.Span,
		Decl: symbols.SymbolDecl{ASTFile: d.File, MemberIndex: -1},
	}
	return c.Resolver.DeclareSymbol(scope, sym)
}
