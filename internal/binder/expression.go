package binder

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
	"surgehdl/internal/token"
	"surgehdl/internal/types"
)

// ExprKind discriminates the bound-expression variants. Unlike ast.ExprKind
// this also distinguishes nodes the binder itself introduces (conversions)
// and nodes the parser left ambiguous (ExprNameSelected resolves to either
// MemberAccess or HierarchicalName once a type is known).
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIntegerLiteral
	ExprRealLiteral
	ExprStringLiteral
	ExprTimeLiteral
	ExprNamedValue
	ExprUnary
	ExprBinary
	ExprConditional
	ExprConcat
	ExprReplication
	ExprElementSelect
	ExprRangeSelect
	ExprMemberAccess
	ExprHierarchicalName
	ExprCall
	ExprSystemCall
	ExprAssignmentPattern
	ExprConversion
	ExprAssignment
	ExprDataType
)

// Expression is an owned, typed node produced by binding an ast.Expr. It is
// a tree (not arena-indexed): every bind call that needs a sub-expression
// allocates its own node, since expressions are rebuilt fresh per use site
// rather than shared like symbols or types.
type Expression struct {
	Kind ExprKind
	Type types.TypeID
	Span source.Span

	// Bad is set once and sticks: any expression built from a Bad child is
	// itself Bad, so diagnostics are reported at most once per root bind.
	Bad bool

	// ExprIntegerLiteral
	Int *ConstantInt

	// ExprRealLiteral
	Real float64

	// ExprStringLiteral
	Str string

	// ExprTimeLiteral
	Time token.TimeValue

	// ExprNamedValue, ExprCall (callee), ExprMemberAccess (resolved field)
	Symbol symbols.SymbolID

	// ExprUnary
	UnaryOp      token.Kind
	UnaryOperand *Expression

	// ExprBinary
	BinaryOp    types.BinaryOp
	BinaryLeft  *Expression
	BinaryRight *Expression

	// ExprConditional
	CondPredicate *Expression
	CondThen      *Expression
	CondElse      *Expression

	// ExprConcat, ExprAssignmentPattern
	Elements []*Expression

	// ExprReplication
	ReplicationCount *Expression
	ReplicationBody  *Expression

	// ExprElementSelect, ExprRangeSelect
	SelectBase  *Expression
	SelectIndex *Expression
	SelectRight *Expression
	SelectMode  ast.RangeSelectMode

	// ExprMemberAccess, ExprHierarchicalName
	MemberBase *Expression
	MemberName source.StringID

	// ExprCall, ExprSystemCall
	CallArgs     []*Expression
	SystemName   source.StringID
	IsSystemTask bool

	// ExprConversion
	ConversionOperand *Expression
	ConversionKind    ConversionKind

	// ExprAssignment
	AssignOp     token.Kind
	AssignTarget *Expression
	AssignValue  *Expression

	// ExprDataType
	DataType types.TypeID
}

// ConversionKind classifies why the binder inserted an implicit conversion
// node, for diagnostics and for the constant evaluator (a truncating
// conversion on a constant still evaluates, a widening one never loses bits).
type ConversionKind uint8

const (
	ConversionNone ConversionKind = iota
	ConversionWiden
	ConversionTruncate
	ConversionIntToReal
	ConversionRealToInt
	ConversionExplicitCast
)

// invalidExpression is the process-wide singleton InvalidExpression stands
// for: an irrecoverable bind failure. It carries no span of its own because
// it is shared across every failure site; callers needing a located failure
// wrap it or set Bad on a fresh node instead (see bad in binder.go).
var invalidExpression = &Expression{Kind: ExprInvalid, Type: types.NoTypeID, Bad: true}

// InvalidExpression returns the shared placeholder for an unrecoverable
// bind failure.
func InvalidExpression() *Expression { return invalidExpression }

// IsInvalid reports whether e is nil or the invalid placeholder.
func (e *Expression) IsInvalid() bool {
	return e == nil || e.Kind == ExprInvalid
}

// IsLValue reports whether e denotes an assignable storage location per
// spec 4.4: a named value (simple or hierarchical), an element/range select
// or a member access (transitively, through their base), and a non-empty
// concatenation whose elements are all lvalues; everything else is not.
func (e *Expression) IsLValue() bool {
	if e.IsInvalid() {
		return false
	}
	switch e.Kind {
	case ExprNamedValue, ExprHierarchicalName:
		return true
	case ExprElementSelect:
		return e.SelectBase.IsLValue()
	case ExprRangeSelect:
		return e.SelectBase.IsLValue()
	case ExprMemberAccess:
		return e.MemberBase.IsLValue()
	case ExprConcat:
		for _, el := range e.Elements {
			if !el.IsLValue() {
				return false
			}
		}
		return len(e.Elements) > 0
	default:
		return false
	}
}
