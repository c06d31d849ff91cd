package binder

import (
	"math/big"
	"testing"

	"surgehdl/internal/ast"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
	"surgehdl/internal/token"
	"surgehdl/internal/types"
)

func TestBindStructVariableAndMemberAccess(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	fieldType := f.DataType(source.Span{}, intern(b.Strings, "byte"), nil)
	structType := f.StructType(source.Span{}, intern(b.Strings, "struct"), false, []ast.VariableDecl{
		{Name: intern(b.Strings, "a"), TypeExpr: fieldType},
		{Name: intern(b.Strings, "b"), TypeExpr: fieldType},
	})

	varName := intern(b.Strings, "s")
	sym, ok := b.Resolver.Declare(varName, source.Span{}, symbols.SymbolVariable, 0, symbols.SymbolDecl{})
	if !ok {
		t.Fatalf("failed to declare variable 's'")
	}
	v := b.Table.Symbols.Get(sym)
	v.TypeExprFile = f.ID
	v.TypeExpr = structType

	nameExpr := f.Name(source.Span{}, varName)
	base := b.Bind(ctx, nameExpr)
	if base.IsInvalid() {
		t.Fatalf("expected a valid named value")
	}
	if got := b.Types.MustLookup(base.Type).Kind; got != types.KindStruct {
		t.Fatalf("expected a struct type, got kind %v", got)
	}

	memberExpr := f.SelectedName(source.Span{}, nameExpr, intern(b.Strings, "a"))
	m := b.Bind(ctx, memberExpr)
	if m.IsInvalid() {
		t.Fatalf("expected a valid member access")
	}
	if got := b.Types.BitWidth(m.Type); got != 8 {
		t.Fatalf("expected field 'a' to resolve to an 8-bit type, got %d", got)
	}
}

func TestBindStructTypeIdentityIsStableAcrossRepeatBind(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	structType := f.StructType(source.Span{}, intern(b.Strings, "struct"), false, []ast.VariableDecl{
		{Name: intern(b.Strings, "a"), TypeExpr: f.DataType(source.Span{}, intern(b.Strings, "int"), nil)},
	})

	first := b.BindDataType(ctx, f.ID, structType)
	second := b.BindDataType(ctx, f.ID, structType)
	if first != second {
		t.Fatalf("expected repeat binds of the same struct syntax to return the same TypeID, got %d and %d", first, second)
	}
}

func TestBindEnumDefaultsAndExplicitValues(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	four := f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(4), Width: 32})
	enumType := f.EnumType(source.Span{}, intern(b.Strings, "enum"), ast.NoExprID, []ast.EnumeratorDecl{
		{Name: intern(b.Strings, "IDLE"), Value: ast.NoExprID},
		{Name: intern(b.Strings, "RUNNING"), Value: ast.NoExprID},
		{Name: intern(b.Strings, "DONE"), Value: four},
	})

	result := b.BindDataType(ctx, f.ID, enumType)
	if !result.IsValid() {
		t.Fatalf("expected a valid enum type")
	}
	if !b.Types.IsIntegral(result) {
		t.Fatalf("expected an enum's default base to be integral")
	}
	if got := b.Types.BitWidth(result); got != 32 {
		t.Fatalf("expected the default 'int' base to report width 32, got %d", got)
	}

	idle, ok := b.Resolver.LookupFrom(root, intern(b.Strings, "IDLE"), symbols.SymbolEnumValue.Mask())
	if !ok {
		t.Fatalf("expected IDLE to resolve in the declaring scope")
	}
	idleExpr := b.namedValueOf(ctx, source.Span{}, idle)
	if idleExpr.IsInvalid() || idleExpr.Type != result {
		t.Fatalf("expected IDLE's type to be the enclosing enum type")
	}
}

func TestBindEnumExplicitBaseType(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	base := f.DataType(source.Span{}, intern(b.Strings, "byte"), nil)
	enumType := f.EnumType(source.Span{}, intern(b.Strings, "enum"), base, []ast.EnumeratorDecl{
		{Name: intern(b.Strings, "A"), Value: ast.NoExprID},
	})

	result := b.BindDataType(ctx, f.ID, enumType)
	if got := b.Types.BitWidth(result); got != 8 {
		t.Fatalf("expected the explicit 'byte' base to report width 8, got %d", got)
	}
}
