package binder

import (
	"golang.org/x/text/unicode/norm"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
)

// bindLiteral creates a self-determined literal expression (spec 4.4:
// literals are always self-determined; an unsized integer literal takes its
// width from context only through the binary-operator result-type rule, not
// by mutating the literal node itself).
func (b *Binder) bindLiteral(ctx BindContext, syn *ast.Expr) *Expression {
	switch syn.LiteralKind {
	case token.IntegerLiteral, token.IntegerBase, token.UnbasedUnsizedLiteral:
		return b.bindIntLiteral(ctx, syn)
	case token.RealLiteral:
		f, _ := syn.LiteralValue.(float64)
		return &Expression{Kind: ExprRealLiteral, Type: b.Types.Builtins().Real, Span: syn.Span, Real: f}
	case token.StringLiteral:
		s, _ := syn.LiteralValue.(string)
		// Normalize to NFC so two string literals spelled with different
		// combining-sequence forms but the same visible text compare equal
		// under the language's string relational operators.
		s = norm.NFC.String(s)
		return &Expression{Kind: ExprStringLiteral, Type: b.Types.Builtins().String, Span: syn.Span, Str: s}
	case token.TimeLiteral:
		tv, _ := syn.LiteralValue.(token.TimeValue)
		return &Expression{Kind: ExprTimeLiteral, Type: b.Types.Builtins().Event, Span: syn.Span, Time: tv}
	default:
		return b.bad(syn.Span, diag.SemaNotAValue, "unrecognized literal token")
	}
}

func (b *Binder) bindIntLiteral(ctx BindContext, syn *ast.Expr) *Expression {
	tv, ok := syn.LiteralValue.(token.IntValue)
	if !ok {
		return b.bad(syn.Span, diag.SemaNotAValue, "malformed integer literal")
	}
	value := FromTokenValue(tv)
	if value.Width == 0 {
		// Unsized literal: self-determined width is 32 bits per the
		// language's default, widened further only if a surrounding
		// context-determined operator requires it.
		value = value.Resized(32, value.Signed)
	}
	if ctx.Flags.Has(IntegralConstant) && value.HasUnknown() {
		return b.bad(syn.Span, diag.SemaValueMustNotBeUnknown, "value must not contain unknown bits in this context")
	}
	resultType := b.Types.GetType(value.Width, value.Signed, value.HasUnknown(), false)
	return &Expression{Kind: ExprIntegerLiteral, Type: resultType, Span: syn.Span, Int: value}
}
