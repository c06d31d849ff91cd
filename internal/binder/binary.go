package binder

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
	"surgehdl/internal/types"
)

// binaryOpFor maps a parsed operator token to the result-type table's
// BinaryOp, grounded on parser/op_table.go's binaryPrec spellings.
var binaryOpFor = map[token.Kind]types.BinaryOp{
	token.Plus:                  types.BinAdd,
	token.Minus:                 types.BinSub,
	token.Star:                  types.BinMul,
	token.Slash:                 types.BinDiv,
	token.Percent:               types.BinMod,
	token.StarStar:              types.BinPow,
	token.Amp:                   types.BinBitAnd,
	token.Pipe:                  types.BinBitOr,
	token.Caret:                 types.BinBitXor,
	token.CaretTilde:            types.BinBitXnor,
	token.TildeCaret:            types.BinBitXnor,
	token.LessLess:              types.BinShl,
	token.GreaterGreater:        types.BinShr,
	token.LessLessLess:          types.BinAShl,
	token.GreaterGreaterGreater: types.BinAShr,
	token.Less:                  types.BinLess,
	token.LessEquals:            types.BinLessEq,
	token.Greater:               types.BinGreater,
	token.GreaterEquals:         types.BinGreaterEq,
	token.AmpAmp:                types.BinLogicalAnd,
	token.PipePipe:              types.BinLogicalOr,
	token.MinusGreater:          types.BinLogicalImplies,
	token.LessMinusGreater:      types.BinLogicalEquiv,
	token.EqualsEquals:          types.BinEq,
	token.BangEquals:            types.BinNotEq,
	token.EqualsEqualsEquals:    types.BinCaseEq,
	token.BangEqualsEquals:      types.BinCaseNotEq,
	token.EqualsEqualsQuestion:  types.BinWildcardEq,
	token.BangEqualsQuestion:    types.BinWildcardNotEq,
}

// bindBinary implements the two-phase algorithm of spec 4.4: both operands
// bind self-determined first, then for a context-determined operator a
// unified type is computed and implicit conversions are inserted on
// whichever operand didn't already have it; the result type may still
// differ from the operand type (relational/equality operators reduce to a
// single bit).
func (b *Binder) bindBinary(ctx BindContext, syn *ast.Expr) *Expression {
	op, ok := binaryOpFor[syn.BinaryOp]
	if !ok {
		return b.bad(syn.Span, diag.SemaBadBinaryExpression, "unrecognized binary operator")
	}
	spec := types.SpecFor(op)

	operandCtx := ctx.WithoutFlags(AllowDataType)
	left := b.selfDetermined(operandCtx, syn.BinaryLeft)
	right := b.selfDetermined(operandCtx, syn.BinaryRight)
	if left.IsInvalid() || right.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadBinaryExpression, "invalid operand in binary expression")
	}
	if spec.Integral && (!b.Types.IsIntegral(left.Type) || !b.Types.IsIntegral(right.Type)) {
		return b.bad(syn.Span, diag.SemaBadBinaryExpression, "operator requires integral operands")
	}
	if !spec.Integral && (!b.Types.IsNumeric(left.Type) || !b.Types.IsNumeric(right.Type)) {
		return b.bad(syn.Span, diag.SemaBadBinaryExpression, "operator requires numeric operands")
	}

	if spec.Typing == types.SelfDetermined {
		resultType := b.Types.SingleBitResultType(left.Type, right.Type)
		return &Expression{Kind: ExprBinary, Type: resultType, Span: syn.Span, BinaryOp: op, BinaryLeft: left, BinaryRight: right}
	}

	var operandType types.TypeID
	if types.ShiftAmountIsSelfDetermined(op) {
		// The shift amount never widens the left operand; the shifted
		// value's type is exactly the left operand's own type.
		operandType = left.Type
	} else {
		operandType = b.Types.BinaryOperatorType(left.Type, right.Type, spec.ForceDivMod)
		left = b.convertImplicit(operandType, left)
		right = b.convertImplicit(operandType, right)
	}

	resultType := operandType
	switch op {
	case types.BinLess, types.BinLessEq, types.BinGreater, types.BinGreaterEq,
		types.BinEq, types.BinNotEq, types.BinCaseEq, types.BinCaseNotEq,
		types.BinWildcardEq, types.BinWildcardNotEq:
		resultType = b.Types.SingleBitResultType(left.Type, right.Type)
	}
	return &Expression{Kind: ExprBinary, Type: resultType, Span: syn.Span, BinaryOp: op, BinaryLeft: left, BinaryRight: right}
}
