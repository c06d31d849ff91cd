package binder

import (
	"strings"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
)

// SystemSubroutineInfo mirrors the compilation manager's registered
// system-task/function arity info, kept as its own type here so this
// package doesn't need to import internal/compilation; a driver wires a
// Compilation's SystemSubroutine method into a Binder through the
// SystemSubroutines interface.
type SystemSubroutineInfo struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for unbounded
	IsVoid  bool
}

// SystemSubroutines resolves a system task/function name (including the
// leading '$') to its registered arity, for call-checking.
type SystemSubroutines interface {
	SystemSubroutine(name string) (SystemSubroutineInfo, bool)
}

// bindInvocation binds a subroutine call or system task/function call (spec
// 4.4). A callee spelled as a bare `$name` identifier is always a system
// call; anything else resolves through the symbol table to a
// SymbolSubroutine.
func (b *Binder) bindInvocation(ctx BindContext, syn *ast.Expr) *Expression {
	calleeSyn := b.File.Get(syn.InvocationCallee)
	if calleeSyn == nil {
		return b.bad(syn.Span, diag.SemaExpressionNotCallable, "invalid call target")
	}
	if calleeSyn.Kind == ast.ExprNameIdentifier && strings.HasPrefix(b.name(calleeSyn.NameText), "$") {
		return b.bindSystemCall(ctx, syn, calleeSyn)
	}
	return b.bindUserCall(ctx, syn, calleeSyn)
}

func (b *Binder) bindSystemCall(ctx BindContext, syn, calleeSyn *ast.Expr) *Expression {
	name := b.name(calleeSyn.NameText)
	argCtx := ctx.WithFlags(AllowDataType)
	args := make([]*Expression, 0, len(syn.InvocationArgs))
	bad := false
	for _, argID := range syn.InvocationArgs {
		arg := b.selfDetermined(argCtx, argID)
		if arg.IsInvalid() {
			bad = true
		}
		args = append(args, arg)
	}
	if bad {
		return b.bad(syn.Span, diag.SemaBadBinaryExpression, "invalid argument to "+name)
	}

	resultType := b.Types.Builtins().Int
	isVoid := false
	if b.Systems != nil {
		info, ok := b.Systems.SystemSubroutine(name)
		if !ok {
			return b.bad(syn.Span, diag.SemaUnknownName, "unknown system task or function '"+name+"'")
		}
		if len(args) < info.MinArgs {
			return b.bad(syn.Span, diag.SemaNotEnoughArguments, "not enough arguments to "+name)
		}
		if info.MaxArgs >= 0 && len(args) > info.MaxArgs {
			return b.bad(syn.Span, diag.SemaTooManyArguments, "too many arguments to "+name)
		}
		isVoid = info.IsVoid
	}
	switch name {
	case "$bits", "$clog2", "$size", "$left", "$right", "$high", "$low":
		resultType = b.Types.Builtins().Int
	case "$signed":
		if len(args) == 1 {
			resultType = b.Types.GetType(b.Types.BitWidth(args[0].Type), true, b.Types.IsFourState(args[0].Type), false)
		}
	case "$unsigned":
		if len(args) == 1 {
			resultType = b.Types.GetType(b.Types.BitWidth(args[0].Type), false, b.Types.IsFourState(args[0].Type), false)
		}
	}
	if isVoid {
		resultType = b.Types.Builtins().Void
	}
	return &Expression{
		Kind: ExprSystemCall, Type: resultType, Span: syn.Span,
		SystemName: calleeSyn.NameText, IsSystemTask: isVoid, CallArgs: args,
	}
}

func (b *Binder) bindUserCall(ctx BindContext, syn, calleeSyn *ast.Expr) *Expression {
	sym, ok := b.resolveCallee(ctx, calleeSyn)
	if !ok {
		return b.bad(syn.Span, diag.SemaExpressionNotCallable, "call target does not name a subroutine")
	}
	subroutine := b.Table.Symbols.Get(sym)
	if subroutine == nil || subroutine.Kind != symbols.SymbolSubroutine {
		return b.bad(syn.Span, diag.SemaNotASubroutine, "call target is not a task or function")
	}

	positional, named := 0, 0
	for _, n := range syn.InvocationArgNames {
		if n == source.NoStringID {
			positional++
		} else {
			named++
		}
	}
	if named > 0 && positional > 0 && positionalAfterNamed(syn.InvocationArgNames) {
		return b.bad(syn.Span, diag.SemaBadBinaryExpression, "positional argument follows named argument")
	}

	byName := make(map[source.StringID]int, len(subroutine.Formals))
	for i, f := range subroutine.Formals {
		byName[f.Name] = i
	}
	bound := make([]*Expression, len(subroutine.Formals))
	filled := make([]bool, len(subroutine.Formals))

	pos := 0
	for i, argID := range syn.InvocationArgs {
		argName := syn.InvocationArgNames[i]
		var formalIdx int
		if argName == source.NoStringID {
			if pos >= len(subroutine.Formals) {
				return b.bad(syn.Span, diag.SemaTooManyArguments, "too many arguments in call")
			}
			formalIdx = pos
			pos++
		} else {
			idx, ok := byName[argName]
			if !ok {
				return b.bad(syn.Span, diag.SemaNamedArgumentUnknown, "no formal argument named '"+b.name(argName)+"'")
			}
			formalIdx = idx
		}
		formal := subroutine.Formals[formalIdx]
		formalType := b.BindDataType(ctx, subroutine.Decl.ASTFile, formal.TypeExpr)
		arg := b.Bind(ctx.WithoutFlags(AllowDataType), argID)
		bound[formalIdx] = b.ConvertAssignment(formalType, arg)
		filled[formalIdx] = true
	}
	for i, formal := range subroutine.Formals {
		if filled[i] {
			continue
		}
		if !formal.Default.IsValid() {
			return b.bad(syn.Span, diag.SemaNotEnoughArguments, "missing argument '"+b.name(formal.Name)+"'")
		}
	}

	resultType := b.Types.Builtins().Void
	if subroutine.IsFunction {
		resultType = b.BindDataType(ctx, subroutine.Decl.ASTFile, subroutine.ReturnTypeExpr)
	}
	args := make([]*Expression, 0, len(bound))
	for i, e := range bound {
		if filled[i] {
			args = append(args, e)
		}
	}
	return &Expression{Kind: ExprCall, Type: resultType, Span: syn.Span, Symbol: sym, CallArgs: args}
}

// resolveCallee looks up a bare-identifier or scoped callee restricted to
// SymbolSubroutine, without going through the general bindName path (which
// would build an ExprNamedValue rather than exposing the SymbolID directly).
func (b *Binder) resolveCallee(ctx BindContext, calleeSyn *ast.Expr) (symbols.SymbolID, bool) {
	switch calleeSyn.Kind {
	case ast.ExprNameIdentifier:
		return b.Resolver.LookupFrom(ctx.Scope, calleeSyn.NameText, symbols.SymbolSubroutine.Mask())
	case ast.ExprNameScoped:
		pkgSyn := b.File.Get(calleeSyn.NameBase)
		if pkgSyn == nil {
			return symbols.NoSymbolID, false
		}
		pkgSym, ok := b.Resolver.LookupFrom(ctx.Scope, pkgSyn.NameText, symbols.SymbolPackage.Mask())
		if !ok {
			return symbols.NoSymbolID, false
		}
		pkg := b.Table.Symbols.Get(pkgSym)
		if pkg == nil || !pkg.OwnScope.IsValid() {
			return symbols.NoSymbolID, false
		}
		return b.Resolver.LookupFrom(pkg.OwnScope, calleeSyn.NameMember, symbols.SymbolSubroutine.Mask())
	default:
		return symbols.NoSymbolID, false
	}
}

func positionalAfterNamed(names []source.StringID) bool {
	sawNamed := false
	for _, n := range names {
		if n != source.NoStringID {
			sawNamed = true
			continue
		}
		if sawNamed {
			return true
		}
	}
	return false
}
