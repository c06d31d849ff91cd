package binder

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
	"surgehdl/internal/types"
)

// constantKindMask restricts a name lookup to compile-time-constant kinds
// (spec 4.4's Constant context flag): parameters, genvars, and enum values.
var constantKindMask = symbols.KindMask(0) |
	symbols.SymbolParameter.Mask() |
	symbols.SymbolGenvar.Mask() |
	symbols.SymbolEnumValue.Mask()

// lookupMask picks the KindMask a bare-identifier lookup runs under: the
// context's explicit mask if it set one, narrowed further to constant kinds
// under the Constant flag, and KindMaskAny otherwise.
func lookupMask(ctx BindContext) symbols.KindMask {
	mask := ctx.KindMask
	if mask == symbols.KindMaskNone {
		mask = symbols.KindMaskAny
	}
	if ctx.Flags.Has(Constant) {
		mask &= constantKindMask
	}
	return mask
}

// bindName resolves an identifier, scoped name, or dotted selection to
// either a named value, a member access on a struct/union base, or (when
// nothing resolves and the base looks like an instance) a hierarchical
// reference (spec 4.4: name binding).
func (b *Binder) bindName(ctx BindContext, syn *ast.Expr) *Expression {
	switch syn.Kind {
	case ast.ExprNameIdentifier:
		return b.bindIdentifier(ctx, syn)
	case ast.ExprNameScoped:
		return b.bindScopedName(ctx, syn)
	case ast.ExprNameSelected:
		return b.bindSelectedName(ctx, syn)
	default:
		return b.bad(syn.Span, diag.SemaUnknownName, "unrecognized name form")
	}
}

func (b *Binder) bindIdentifier(ctx BindContext, syn *ast.Expr) *Expression {
	nameStr := b.name(syn.NameText)
	sym, ok := b.Resolver.LookupFrom(ctx.Scope, syn.NameText, lookupMask(ctx))
	if !ok {
		return b.bad(syn.Span, diag.SemaUnknownName, "unknown identifier '"+nameStr+"'")
	}
	return b.namedValueOf(ctx, syn.Span, sym)
}

func (b *Binder) bindScopedName(ctx BindContext, syn *ast.Expr) *Expression {
	pkgSyn := b.File.Get(syn.NameBase)
	if pkgSyn == nil {
		return b.bad(syn.Span, diag.SemaUnknownName, "unresolved package qualifier")
	}
	pkgSym, ok := b.Resolver.LookupFrom(ctx.Scope, pkgSyn.NameText, symbols.SymbolPackage.Mask())
	if !ok {
		return b.bad(pkgSyn.Span, diag.SemaUnknownName, "unknown package '"+b.name(pkgSyn.NameText)+"'")
	}
	pkg := b.Table.Symbols.Get(pkgSym)
	if pkg == nil || !pkg.OwnScope.IsValid() {
		return b.bad(syn.Span, diag.SemaUnknownName, "package has no members")
	}
	memberStr := b.name(syn.NameMember)
	memberSym, ok := b.Resolver.LookupFrom(pkg.OwnScope, syn.NameMember, lookupMask(ctx))
	if !ok {
		return b.bad(syn.Span, diag.SemaUnknownName, "unknown member '"+memberStr+"' in package '"+b.name(pkgSyn.NameText)+"'")
	}
	return b.namedValueOf(ctx, syn.Span, memberSym)
}

func (b *Binder) bindSelectedName(ctx BindContext, syn *ast.Expr) *Expression {
	base := b.Bind(ctx.WithoutFlags(AllowDataType), syn.NameBase)
	if base.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadMemberAccess, "invalid base of member access")
	}
	memberStr := b.name(syn.NameMember)

	baseType, ok := b.Types.Lookup(b.Types.ResolveAlias(base.Type))
	if ok && (baseType.Kind == types.KindStruct || baseType.Kind == types.KindUnion) && baseType.Scope.IsValid() {
		fieldSym, found := b.Resolver.LookupFrom(baseType.Scope, syn.NameMember, symbols.SymbolField.Mask())
		if !found {
			return b.bad(syn.Span, diag.SemaBadMemberAccess, "no member '"+memberStr+"' on this type")
		}
		field := b.Table.Symbols.Get(fieldSym)
		if field == nil {
			return b.bad(syn.Span, diag.SemaBadMemberAccess, "no member '"+memberStr+"' on this type")
		}
		fieldType := b.BindDataType(ctx, field.TypeExprFile, field.TypeExpr)
		return &Expression{
			Kind: ExprMemberAccess, Type: fieldType, Span: syn.Span,
			MemberBase: base, MemberName: syn.NameMember, Symbol: fieldSym,
		}
	}

	if base.Kind == ExprNamedValue || base.Kind == ExprHierarchicalName {
		return &Expression{
			Kind: ExprHierarchicalName, Type: b.Types.Builtins().Error, Span: syn.Span,
			MemberBase: base, MemberName: syn.NameMember,
		}
	}
	return b.bad(syn.Span, diag.SemaBadMemberAccess, "cannot select member '"+memberStr+"' from this expression")
}

// namedValueOf builds the Expression for a resolved symbol, dispatching on
// its kind to compute a type (or, for kinds that have none, an
// ExprHierarchicalName placeholder for definitions/instances reached by
// name).
func (b *Binder) namedValueOf(ctx BindContext, span source.Span, sym symbols.SymbolID) *Expression {
	s := b.Table.Symbols.Get(sym)
	if s == nil {
		return b.bad(span, diag.SemaUnknownName, "unresolved symbol")
	}
	switch s.Kind {
	case symbols.SymbolVariable, symbols.SymbolNet, symbols.SymbolParameter,
		symbols.SymbolGenvar, symbols.SymbolFormalArgument, symbols.SymbolPort:
		t := b.BindDataType(ctx, s.TypeExprFile, s.TypeExpr)
		return &Expression{Kind: ExprNamedValue, Type: t, Span: span, Symbol: sym}
	case symbols.SymbolEnumValue:
		t := b.enumValueType(s)
		return &Expression{Kind: ExprNamedValue, Type: t, Span: span, Symbol: sym}
	case symbols.SymbolDefinition, symbols.SymbolInstance:
		return &Expression{Kind: ExprHierarchicalName, Type: b.Types.Builtins().Error, Span: span, Symbol: sym}
	case symbols.SymbolSubroutine:
		return &Expression{Kind: ExprNamedValue, Type: b.Types.Builtins().Error, Span: span, Symbol: sym}
	case symbols.SymbolImported:
		return b.namedValueOf(ctx, span, s.Target)
	default:
		return b.bad(span, diag.SemaNotAValue, "name does not refer to a value")
	}
}

// enumValueType returns the type of an enumerant by way of the enum scope
// it was declared into: a Symbol carries a ScopeID but never a TypeID
// (symbols sits beneath types in the dependency order), so the binder keeps
// its own scope-to-type map for aggregate types realized by BindDataType.
func (b *Binder) enumValueType(s *symbols.Symbol) types.TypeID {
	if t, ok := b.scopeToType[s.Parent]; ok {
		return t
	}
	return b.Types.Builtins().Error
}
