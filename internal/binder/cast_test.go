package binder

import (
	"math/big"
	"testing"

	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
	"surgehdl/internal/token"
)

func TestBindDataTypeCastNarrows(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	operand := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{
		Bits: big.NewInt(0xFF), Width: 32,
	})
	castType := f.DataType(source.Span{}, intern(b.Strings, "byte"), nil)
	castID := f.Cast(source.Span{}, castType, operand)

	e := b.Bind(ctx, castID)
	if e.IsInvalid() {
		t.Fatalf("expected a valid cast expression")
	}
	if got := b.Types.BitWidth(e.Type); got != 8 {
		t.Fatalf("expected the cast target's width 8, got %d", got)
	}
}

func TestBindSizeCastReinterpretsWidth(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	operand := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{
		Bits: big.NewInt(0b1010), Width: 4,
	})
	size := f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(8), Width: 32})
	castID := f.Cast(source.Span{}, size, operand)

	e := b.Bind(ctx, castID)
	if e.IsInvalid() {
		t.Fatalf("expected a valid size-cast expression")
	}
	if got := b.Types.BitWidth(e.Type); got != 8 {
		t.Fatalf("expected the cast size 8, got %d", got)
	}
}

func TestBindSizeCastRejectsNonPositiveSize(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	operand := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{Bits: big.NewInt(1), Width: 4})
	size := f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(0), Width: 32})
	castID := f.Cast(source.Span{}, size, operand)

	e := b.Bind(ctx, castID)
	if !e.IsInvalid() {
		t.Fatalf("expected a zero cast size to be rejected")
	}
}

func TestBindCastRejectsBareTypeWithoutOperandContext(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	// A data type used directly as a value (no cast wrapper) must fail: the
	// binder only allows ExprDataType nodes where AllowDataType is set.
	dt := f.DataType(source.Span{}, intern(b.Strings, "int"), nil)
	e := b.Bind(ctx, dt)
	if !e.IsInvalid() {
		t.Fatalf("expected a bare data type outside cast/AllowDataType context to be rejected")
	}
}
