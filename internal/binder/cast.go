package binder

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/types"
)

// bindCast binds `castType'(operand)`: a data-type cast permits a strict
// superset of assignment conversion (ExplicitCast), while a size cast
// (`4'(operand)`) reinterprets operand at a different bit width, keeping its
// own signedness and four-statedness.
func (b *Binder) bindCast(ctx BindContext, syn *ast.Expr) *Expression {
	castTypeCtx := ctx.WithFlags(AllowDataType | Constant | IntegralConstant)
	castType := b.selfDetermined(castTypeCtx, syn.CastType)
	operand := b.Bind(ctx.WithoutFlags(AllowDataType), syn.CastOperand)
	if castType.IsInvalid() || operand.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadAssignment, "invalid cast expression")
	}

	var target types.TypeID
	if castType.Kind == ExprDataType {
		target = castType.Type
	} else {
		if !b.Types.IsIntegral(castType.Type) {
			return b.bad(castType.Span, diag.SemaExpressionNotConstant, "cast size must be a constant integral expression")
		}
		ev := NewEvaluator(b.Types, nil)
		val, ok := ev.Evaluate(castType)
		if !ok || val.Kind != ConstantInteger || val.Int.HasUnknown() {
			return b.bad(castType.Span, diag.SemaExpressionNotConstant, "cast size must be a constant")
		}
		sv := val.Int.SignedValue()
		if sv.Sign() <= 0 {
			return b.bad(castType.Span, diag.SemaValueMustBePositive, "cast size must be positive")
		}
		width := uint32(sv.Uint64())
		target = b.Types.GetType(width, b.Types.IsSigned(operand.Type), b.Types.IsFourState(operand.Type), false)
	}

	return b.ExplicitCast(target, operand)
}
