package binder

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
)

// reductionOps are the unary reduction spellings (&, |, ^, ~&, ~|, ~^/^~),
// which always fold their integral operand down to a single bit.
var reductionOps = map[token.Kind]bool{
	token.Amp: true, token.Pipe: true, token.Caret: true,
	token.TildeAmp: true, token.TildePipe: true,
	token.TildeCaret: true, token.CaretTilde: true,
}

// incDecOps are pre/post ++ and -- (spec 4.4: operate on an lvalue,
// self-determined, result type equal to the operand's).
var incDecOps = map[token.Kind]bool{token.PlusPlus: true, token.MinusMinus: true}

// bindUnary binds a prefix or postfix unary operator (spec 4.4): the
// operand is always self-determined; the result type depends on the
// operator — arithmetic +/- and bitwise ~ keep the operand's type, logical
// ! and the reduction operators collapse to a single bit, and ++/-- require
// an lvalue operand.
func (b *Binder) bindUnary(ctx BindContext, syn *ast.Expr) *Expression {
	operand := b.selfDetermined(ctx.WithoutFlags(AllowDataType), syn.UnaryOperand)
	if operand.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadUnaryExpression, "invalid operand in unary expression")
	}

	switch syn.UnaryOp {
	case token.Plus, token.Minus:
		if !b.Types.IsNumeric(operand.Type) {
			return b.bad(syn.Span, diag.SemaBadUnaryExpression, "operator requires a numeric operand")
		}
		return &Expression{Kind: ExprUnary, Type: operand.Type, Span: syn.Span, UnaryOp: syn.UnaryOp, UnaryOperand: operand}
	case token.Tilde:
		if !b.Types.IsIntegral(operand.Type) {
			return b.bad(syn.Span, diag.SemaBadUnaryExpression, "operator requires an integral operand")
		}
		return &Expression{Kind: ExprUnary, Type: operand.Type, Span: syn.Span, UnaryOp: syn.UnaryOp, UnaryOperand: operand}
	case token.Bang:
		if !b.Types.IsNumeric(operand.Type) {
			return b.bad(syn.Span, diag.SemaBadUnaryExpression, "operator requires a numeric operand")
		}
		resultType := b.Types.SingleBitResultType(operand.Type, operand.Type)
		return &Expression{Kind: ExprUnary, Type: resultType, Span: syn.Span, UnaryOp: syn.UnaryOp, UnaryOperand: operand}
	case token.PlusPlus, token.MinusMinus:
		if !operand.IsLValue() {
			return b.bad(syn.Span, diag.SemaLhsMustBeLvalue, "increment/decrement operand must be an lvalue")
		}
		return &Expression{Kind: ExprUnary, Type: operand.Type, Span: syn.Span, UnaryOp: syn.UnaryOp, UnaryOperand: operand}
	default:
		if reductionOps[syn.UnaryOp] {
			if !b.Types.IsIntegral(operand.Type) {
				return b.bad(syn.Span, diag.SemaBadUnaryExpression, "reduction operator requires an integral operand")
			}
			resultType := b.Types.SingleBitResultType(operand.Type, operand.Type)
			return &Expression{Kind: ExprUnary, Type: resultType, Span: syn.Span, UnaryOp: syn.UnaryOp, UnaryOperand: operand}
		}
		return b.bad(syn.Span, diag.SemaBadUnaryExpression, "unrecognized unary operator")
	}
}
