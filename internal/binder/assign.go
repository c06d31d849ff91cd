package binder

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
	"surgehdl/internal/types"
)

// assignOps are the assignment/compound-assignment spellings, grounded on
// parser/op_table.go's assignOps table (the parser builds one ast.ExprBinary
// node per spelling, so the binder distinguishes them by operator token
// rather than by a separate ast.ExprKind).
var assignOps = map[token.Kind]bool{
	token.Equals: true, token.PlusEquals: true, token.MinusEquals: true,
	token.StarEquals: true, token.SlashEquals: true, token.PercentEquals: true,
	token.AmpEquals: true, token.PipeEquals: true, token.CaretEquals: true,
	token.LessLessEquals: true, token.GreaterGreaterEquals: true,
	token.LessLessLessEquals: true, token.GreaterGreaterGreaterEquals: true,
}

// compoundAssignOp maps a compound-assignment spelling to the binary
// operator it implicitly applies (spec 4.4: `a op= b` behaves as
// `a = a op b` with the usual operand-type conversions, then assigns the
// result back, truncating to the target's own width if needed).
var compoundAssignOp = map[token.Kind]types.BinaryOp{
	token.PlusEquals:                  types.BinAdd,
	token.MinusEquals:                 types.BinSub,
	token.StarEquals:                  types.BinMul,
	token.SlashEquals:                 types.BinDiv,
	token.PercentEquals:               types.BinMod,
	token.AmpEquals:                   types.BinBitAnd,
	token.PipeEquals:                  types.BinBitOr,
	token.CaretEquals:                 types.BinBitXor,
	token.LessLessEquals:              types.BinShl,
	token.GreaterGreaterEquals:        types.BinShr,
	token.LessLessLessEquals:          types.BinAShl,
	token.GreaterGreaterGreaterEquals: types.BinAShr,
}

// bindAssignment binds `lhs op= rhs` (spec 4.4): lhs must be an lvalue;
// plain `=` assigns rhs through the assignment-conversion algorithm, a
// compound operator first combines lhs and rhs per the operator's own
// result-type rule and then converts that result back to lhs's type.
func (b *Binder) bindAssignment(ctx BindContext, syn *ast.Expr) *Expression {
	lvalueCtx := ctx.WithFlags(ProceduralAssignmentContext).WithoutFlags(AllowDataType | Constant)
	target := b.Bind(lvalueCtx, syn.BinaryLeft)
	if target.IsInvalid() {
		return b.bad(syn.Span, diag.SemaLhsMustBeLvalue, "invalid assignment target")
	}
	if !target.IsLValue() {
		return b.bad(target.Span, diag.SemaLhsMustBeLvalue, "assignment target must be an lvalue")
	}

	value := b.Bind(ctx.WithoutFlags(AllowDataType), syn.BinaryRight)
	if value.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadAssignment, "invalid right-hand side of assignment")
	}

	if syn.BinaryOp != token.Equals {
		op := compoundAssignOp[syn.BinaryOp]
		var combinedType types.TypeID
		if types.ShiftAmountIsSelfDetermined(op) {
			combinedType = target.Type
		} else {
			combinedType = b.Types.BinaryOperatorType(target.Type, value.Type, types.SpecFor(op).ForceDivMod)
			value = b.convertImplicit(combinedType, value)
		}
		value = &Expression{Kind: ExprBinary, Type: combinedType, Span: syn.Span, BinaryOp: op, BinaryLeft: target, BinaryRight: value}
	}

	converted := b.ConvertAssignment(target.Type, value)
	if converted.IsInvalid() {
		return converted
	}
	return &Expression{
		Kind: ExprAssignment, Type: target.Type, Span: syn.Span,
		AssignOp: syn.BinaryOp, AssignTarget: target, AssignValue: converted,
	}
}
