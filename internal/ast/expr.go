package ast

import (
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// ExprKind discriminates the syntax-expression variants the binder consumes.
// This is a shape-only catalog: no semantic information (type, constness)
// lives here, only what the parser observed.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprLiteral
	ExprUnaryPrefix
	ExprUnaryPostfix
	ExprBinary
	ExprConditional    // a ? b : c
	ExprConcat         // {a, b, ...}
	ExprReplication    // {N{x}}
	ExprElementSelect  // a[i]
	ExprRangeSelect    // a[l:r], a[l+:w], a[l-:w]
	ExprInvocation     // f(args) or system task/function call
	ExprAssignPattern  // '{a, b, ...}
	ExprNameIdentifier // plain identifier
	ExprNameScoped     // pkg::name
	ExprNameSelected   // base.member (before binder decides struct-field vs hierarchical)
	ExprDataType       // a data-type used in expression position (casts, $bits, ...)
	ExprCast           // type'(expr) or size'(expr)
)

// RangeSelectMode distinguishes the three range-select spellings.
type RangeSelectMode uint8

const (
	RangeSelectConstant    RangeSelectMode = iota // a[l:r]
	RangeSelectIndexedUp                          // a[l+:w]
	RangeSelectIndexedDown                        // a[l-:w]
)

// Expr is a single syntax-expression node. Only the fields relevant to
// Kind are populated; it is stored by value in a File's expression arena
// and referenced elsewhere by ExprID.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// ExprLiteral
	LiteralKind  token.Kind
	LiteralValue any

	// ExprUnaryPrefix, ExprUnaryPostfix
	UnaryOp      token.Kind
	UnaryOperand ExprID

	// ExprBinary
	BinaryOp    token.Kind
	BinaryLeft  ExprID
	BinaryRight ExprID

	// ExprConditional
	CondPredicate ExprID
	CondThen      ExprID
	CondElse      ExprID

	// ExprConcat, ExprAssignPattern: ordered member expressions.
	Elements []ExprID

	// ExprReplication
	ReplicationCount ExprID
	ReplicationExpr  ExprID

	// ExprElementSelect, ExprRangeSelect
	SelectBase  ExprID
	SelectIndex ExprID // element-select index, or range-select left/base bound
	SelectRight ExprID // range-select right bound or width expression
	SelectMode  RangeSelectMode

	// ExprInvocation
	InvocationCallee   ExprID
	InvocationArgs     []ExprID
	InvocationArgNames []source.StringID // parallel to InvocationArgs; NoStringID for positional

	// ExprNameIdentifier, ExprNameScoped, ExprNameSelected
	NameText   source.StringID
	NameBase   ExprID // ExprNameScoped: package/class; ExprNameSelected: base expr
	NameMember source.StringID

	// ExprDataType: textual spelling, resolved later by the binder against
	// the enclosing scope; width/signed selectors applied as trailing
	// Elements (e.g. packed-array ranges) when present.
	//
	// DataTypeName is "struct"/"union" for an inline aggregate (Members
	// populated, IsUnion distinguishing the two) and "enum" for an inline
	// enumeration (Enumerators populated, EnumBase the underlying integral
	// type or NoExprID for the implicit 'int' base).
	DataTypeName source.StringID
	Members      []VariableDecl   // ExprDataType struct/union
	IsUnion      bool             // ExprDataType struct/union
	Enumerators  []EnumeratorDecl // ExprDataType enum
	EnumBase     ExprID           // ExprDataType enum; NoExprID for the implicit base

	// ExprCast
	CastType    ExprID // an ExprDataType (or, for a size cast, any constant expression)
	CastOperand ExprID
}
