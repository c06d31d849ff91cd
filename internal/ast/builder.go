package ast

import (
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// Literal allocates an ExprLiteral node.
func (f *File) Literal(span source.Span, kind token.Kind, value any) ExprID {
	return f.Alloc(Expr{Kind: ExprLiteral, Span: span, LiteralKind: kind, LiteralValue: value})
}

// Name allocates a plain-identifier name node.
func (f *File) Name(span source.Span, text source.StringID) ExprID {
	return f.Alloc(Expr{Kind: ExprNameIdentifier, Span: span, NameText: text})
}

// Binary allocates an ExprBinary node.
func (f *File) Binary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprBinary, Span: span, BinaryOp: op, BinaryLeft: left, BinaryRight: right})
}

// ElementSelect allocates an a[i] node.
func (f *File) ElementSelect(span source.Span, base, index ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprElementSelect, Span: span, SelectBase: base, SelectIndex: index})
}

// RangeSelect allocates an a[l:r] / a[l+:w] / a[l-:w] node.
func (f *File) RangeSelect(span source.Span, base, left, right ExprID, mode RangeSelectMode) ExprID {
	return f.Alloc(Expr{
		Kind:        ExprRangeSelect,
		Span:        span,
		SelectBase:  base,
		SelectIndex: left,
		SelectRight: right,
		SelectMode:  mode,
	})
}

// Concat allocates a {a, b, ...} node.
func (f *File) Concat(span source.Span, elements []ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprConcat, Span: span, Elements: elements})
}

// Replication allocates a {N{x}} node.
func (f *File) Replication(span source.Span, count, expr ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprReplication, Span: span, ReplicationCount: count, ReplicationExpr: expr})
}

// Conditional allocates a `pred ? thenExpr : elseExpr` node.
func (f *File) Conditional(span source.Span, pred, thenExpr, elseExpr ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprConditional, Span: span, CondPredicate: pred, CondThen: thenExpr, CondElse: elseExpr})
}

// UnaryPrefix allocates a prefix-unary node (+x, -x, !x, ~x, reduction ops, ++x, --x).
func (f *File) UnaryPrefix(span source.Span, op token.Kind, operand ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprUnaryPrefix, Span: span, UnaryOp: op, UnaryOperand: operand})
}

// UnaryPostfix allocates a postfix-unary node (x++, x--).
func (f *File) UnaryPostfix(span source.Span, op token.Kind, operand ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprUnaryPostfix, Span: span, UnaryOp: op, UnaryOperand: operand})
}

// Invocation allocates a call node: f(args) or a system task/function call.
func (f *File) Invocation(span source.Span, callee ExprID, args []ExprID, argNames []source.StringID) ExprID {
	return f.Alloc(Expr{Kind: ExprInvocation, Span: span, InvocationCallee: callee, InvocationArgs: args, InvocationArgNames: argNames})
}

// AssignPattern allocates a '{a, b, ...} assignment-pattern node.
func (f *File) AssignPattern(span source.Span, elements []ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprAssignPattern, Span: span, Elements: elements})
}

// ScopedName allocates a `base::member` name node.
func (f *File) ScopedName(span source.Span, base ExprID, member source.StringID) ExprID {
	return f.Alloc(Expr{Kind: ExprNameScoped, Span: span, NameBase: base, NameMember: member})
}

// SelectedName allocates a `base.member` name node.
func (f *File) SelectedName(span source.Span, base ExprID, member source.StringID) ExprID {
	return f.Alloc(Expr{Kind: ExprNameSelected, Span: span, NameBase: base, NameMember: member})
}

// DataType allocates a data-type-in-expression-position node (casts, $bits, ...).
// Packed-array/range selectors that follow the name are attached as Elements.
func (f *File) DataType(span source.Span, name source.StringID, dims []ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprDataType, Span: span, DataTypeName: name, Elements: dims})
}

// StructType allocates an inline struct/union data-type node. name is the
// interned spelling "struct" or "union", matching isUnion.
func (f *File) StructType(span source.Span, name source.StringID, isUnion bool, members []VariableDecl) ExprID {
	return f.Alloc(Expr{Kind: ExprDataType, Span: span, DataTypeName: name, IsUnion: isUnion, Members: members})
}

// EnumType allocates an inline enum data-type node. name is the interned
// spelling "enum"; base is NoExprID when the declaration supplies no
// explicit underlying type.
func (f *File) EnumType(span source.Span, name source.StringID, base ExprID, enumerators []EnumeratorDecl) ExprID {
	return f.Alloc(Expr{Kind: ExprDataType, Span: span, DataTypeName: name, EnumBase: base, Enumerators: enumerators})
}

// Cast allocates a `castType'(operand)` node.
func (f *File) Cast(span source.Span, castType, operand ExprID) ExprID {
	return f.Alloc(Expr{Kind: ExprCast, Span: span, CastType: castType, CastOperand: operand})
}
