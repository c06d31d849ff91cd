// Package binder implements the expression binder (spec 4.4): it turns a
// shape-only ast.Expr tree into a typed Expression tree, resolving names
// against a symbols.Resolver and computing result types through
// internal/types's operator tables.
package binder

import "surgehdl/internal/symbols"

// ContextFlags are the bind-time bit flags a caller sets on a BindContext to
// steer name lookup and operator legality without threading extra
// parameters through every bind method.
type ContextFlags uint16

const (
	// Constant requires every name the expression touches to resolve to a
	// parameter, genvar, enum value, or other compile-time constant.
	Constant ContextFlags = 1 << iota
	// InsideConcatenation relaxes the "replication count must be positive"
	// rule: a zero count is legal only inside a concatenation.
	InsideConcatenation
	// IntegralConstant additionally forbids real-valued constants, for
	// contexts like array bounds and case-item widths.
	IntegralConstant
	// AllowDataType lets a bare type name bind as an ExprDataType operand
	// instead of requiring it to resolve to a value (casts, $bits(T)).
	AllowDataType
	// ProceduralAssignmentContext permits binding a variable (not just a
	// net) as an lvalue.
	ProceduralAssignmentContext
	// EventExpressionContext permits edge-qualified operands (posedge/negedge)
	// that would otherwise be rejected as non-values.
	EventExpressionContext
	// AllowPatternMatch lets an assignment-pattern expression bind against
	// an aggregate target type instead of requiring a concatenation shape.
	AllowPatternMatch
)

// Has reports whether every bit in want is set in f.
func (f ContextFlags) Has(want ContextFlags) bool { return f&want == want }

// BindContext carries everything the binder needs beyond the syntax node
// itself: where names resolve from, which kinds of symbol a bare name may
// refer to, and which of the flags above apply to this expression position.
type BindContext struct {
	Scope    symbols.ScopeID
	KindMask symbols.KindMask
	Flags    ContextFlags
}

// WithFlags returns a copy of c with extra flags set, leaving Scope and
// KindMask untouched. Used when recursing into a sub-expression that needs
// a narrower or wider context than its parent (e.g. a replication count is
// always Constant even if the surrounding expression is not).
func (c BindContext) WithFlags(extra ContextFlags) BindContext {
	c.Flags |= extra
	return c
}

// WithoutFlags returns a copy of c with the given flags cleared.
func (c BindContext) WithoutFlags(remove ContextFlags) BindContext {
	c.Flags &^= remove
	return c
}

// InScope returns a copy of c rooted at a different scope, e.g. when
// descending into a subroutine call's argument list bound against the
// caller's scope rather than the callee's.
func (c BindContext) InScope(scope symbols.ScopeID) BindContext {
	c.Scope = scope
	return c
}
