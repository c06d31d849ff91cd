package binder

import (
	"surgehdl/internal/diag"
	"surgehdl/internal/types"
)

// convertImplicit is the context-propagation step's conversion insertion:
// if expr already has target's type, it is returned unchanged; otherwise a
// wrapping ExprConversion node records whether the change widens or
// truncates the bit width (spec 4.4's "widen, then truncate if needed").
func (b *Binder) convertImplicit(target types.TypeID, expr *Expression) *Expression {
	if expr.IsInvalid() || target == types.NoTypeID {
		return expr
	}
	if b.Types.IsMatching(expr.Type, target) {
		return expr
	}
	kind := b.conversionKind(target, expr.Type)
	return &Expression{
		Kind: ExprConversion, Type: target, Span: expr.Span,
		ConversionOperand: expr, ConversionKind: kind,
	}
}

func (b *Binder) conversionKind(target, from types.TypeID) ConversionKind {
	targetReal := b.Types.IsNumeric(target) && !b.Types.IsIntegral(target)
	fromReal := b.Types.IsNumeric(from) && !b.Types.IsIntegral(from)
	switch {
	case targetReal && !fromReal:
		return ConversionIntToReal
	case !targetReal && fromReal:
		return ConversionRealToInt
	case b.Types.BitWidth(target) > b.Types.BitWidth(from):
		return ConversionWiden
	case b.Types.BitWidth(target) < b.Types.BitWidth(from):
		return ConversionTruncate
	default:
		return ConversionNone
	}
}

// ConvertAssignment implements the assignment conversion algorithm (spec
// 4.4): rhs must be assignment-compatible with lhsType, after which an
// implicit conversion is inserted if the shapes differ. Returns an invalid
// expression (with a diagnostic already emitted) when the types are
// incompatible outright.
func (b *Binder) ConvertAssignment(lhsType types.TypeID, rhs *Expression) *Expression {
	if rhs.IsInvalid() {
		return rhs
	}
	if !b.Types.IsAssignmentCompatible(lhsType, rhs.Type) {
		return b.bad(rhs.Span, diag.SemaBadAssignment, "value is not assignment compatible with target type")
	}
	return b.convertImplicit(lhsType, rhs)
}

// ExplicitCast implements a type-cast expression's conversion, which is a
// strict superset of assignment conversion (spec 4.4: "cast permits
// narrowing and int/real interconversion the assignment rule forbids").
func (b *Binder) ExplicitCast(targetType types.TypeID, expr *Expression) *Expression {
	if expr.IsInvalid() {
		return expr
	}
	if !b.Types.IsCastCompatible(targetType, expr.Type) {
		return expr
	}
	converted := b.convertImplicit(targetType, expr)
	if converted.Kind == ExprConversion {
		converted.ConversionKind = ConversionExplicitCast
	}
	return converted
}
