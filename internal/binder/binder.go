package binder

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
	"surgehdl/internal/types"
)

// Binder binds one ast.File's expressions against a shared symbol table and
// type interner. It carries no per-expression state of its own, so a single
// Binder is reused across every expression in a compilation (spec 4.4:
// "Binds a syntax expression to a typed Expression in a BindContext").
type Binder struct {
	File     *ast.File
	Files    map[ast.FileID]*ast.File // every tree in the compilation, for resolving names that live in another file
	Strings  *source.Interner
	Types    *types.Interner
	Resolver *symbols.Resolver
	Table    *symbols.Table
	Reporter diag.Reporter

	// Systems resolves system task/function arity for call-checking. Left
	// nil, system calls still bind (with $bits-family results defaulting to
	// 'int) but arity is not checked.
	Systems SystemSubroutines

	// aggregateTypes memoizes struct/union/enum realization by syntax node,
	// so binding the same declaration's type twice (e.g. two references to
	// a variable declared with an inline struct type) returns the same
	// TypeID rather than a second, nominally-distinct one.
	aggregateTypes map[aggregateTypeKey]types.TypeID
	// scopeToType maps an aggregate type's member scope back to its TypeID,
	// so an enum value symbol (which only records the scope it was declared
	// in, never a TypeID — symbols sits beneath types in the dependency
	// order) can report its owning enum's type.
	scopeToType map[symbols.ScopeID]types.TypeID
}

type aggregateTypeKey struct {
	File ast.FileID
	Expr ast.ExprID
}

// New constructs a Binder over one syntax tree. files may be nil when the
// caller knows every name this Binder will bind stays within file.
func New(file *ast.File, files map[ast.FileID]*ast.File, strings *source.Interner, in *types.Interner, table *symbols.Table, resolver *symbols.Resolver, reporter diag.Reporter) *Binder {
	return &Binder{File: file, Files: files, Strings: strings, Types: in, Resolver: resolver, Table: table, Reporter: reporter}
}

// fileByID returns the syntax tree a FileID belongs to, preferring b.File
// when it matches so single-file callers never need to populate Files.
func (b *Binder) fileByID(id ast.FileID) *ast.File {
	if b.File != nil && b.File.ID == id {
		return b.File
	}
	if b.Files == nil {
		return nil
	}
	return b.Files[id]
}

// exprIn looks up id within a specific file, falling back to Invalid when
// the file is unknown to this Binder.
func (b *Binder) exprIn(fileID ast.FileID, id ast.ExprID) (*ast.File, *ast.Expr) {
	f := b.fileByID(fileID)
	if f == nil {
		return nil, nil
	}
	return f, f.Get(id)
}

// Bind is the entry point: it binds id under ctx, running the create phase
// and, for operators whose operands are context-determined, the
// context-propagation phase that inserts implicit conversion nodes.
func (b *Binder) Bind(ctx BindContext, id ast.ExprID) *Expression {
	if !id.IsValid() {
		return InvalidExpression()
	}
	syn := b.File.Get(id)
	if syn == nil {
		return InvalidExpression()
	}
	switch syn.Kind {
	case ast.ExprLiteral:
		return b.bindLiteral(ctx, syn)
	case ast.ExprNameIdentifier, ast.ExprNameScoped, ast.ExprNameSelected:
		return b.bindName(ctx, syn)
	case ast.ExprUnaryPrefix, ast.ExprUnaryPostfix:
		return b.bindUnary(ctx, syn)
	case ast.ExprBinary:
		if assignOps[syn.BinaryOp] {
			return b.bindAssignment(ctx, syn)
		}
		return b.bindBinary(ctx, syn)
	case ast.ExprConditional:
		return b.bindConditional(ctx, syn)
	case ast.ExprConcat:
		return b.bindConcat(ctx, syn)
	case ast.ExprReplication:
		return b.bindReplication(ctx, syn)
	case ast.ExprElementSelect:
		return b.bindElementSelect(ctx, syn)
	case ast.ExprRangeSelect:
		return b.bindRangeSelect(ctx, syn)
	case ast.ExprInvocation:
		return b.bindInvocation(ctx, syn)
	case ast.ExprAssignPattern:
		return b.bindAssignPattern(ctx, syn)
	case ast.ExprDataType:
		return b.bindDataTypeExpr(ctx, id, syn)
	case ast.ExprCast:
		return b.bindCast(ctx, syn)
	default:
		return InvalidExpression()
	}
}

// bad reports an error at span and returns a Bad placeholder carrying the
// error type, so callers can keep propagating a type without re-checking ok
// everywhere.
func (b *Binder) bad(span source.Span, code diag.Code, msg string) *Expression {
	diag.ReportError(b.Reporter, code, span, msg).Emit()
	return &Expression{Kind: ExprInvalid, Type: b.Types.Builtins().Error, Span: span, Bad: true}
}

func (b *Binder) name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return b.Strings.MustLookup(id)
}

// selfDetermined binds a sub-expression at its own natural type, passing
// ctx to Bind unchanged — used
// for shift-amount and replication-count operands, and as the first pass
// of the create phase for context-determined operators.
func (b *Binder) selfDetermined(ctx BindContext, id ast.ExprID) *Expression {
	return b.Bind(ctx, id)
}

func (b *Binder) bindConditional(ctx BindContext, syn *ast.Expr) *Expression {
	predCtx := ctx.WithoutFlags(AllowDataType)
	pred := b.Bind(predCtx, syn.CondPredicate)
	then := b.Bind(ctx, syn.CondThen)
	els := b.Bind(ctx, syn.CondElse)
	if pred.IsInvalid() || then.IsInvalid() || els.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadBinaryExpression, "invalid operand in conditional expression")
	}
	resultType := b.Types.BinaryOperatorType(then.Type, els.Type, false)
	then = b.convertImplicit(resultType, then)
	els = b.convertImplicit(resultType, els)
	return &Expression{
		Kind: ExprConditional, Type: resultType, Span: syn.Span,
		CondPredicate: pred, CondThen: then, CondElse: els,
	}
}

func (b *Binder) bindConcat(ctx BindContext, syn *ast.Expr) *Expression {
	elemCtx := ctx.WithFlags(InsideConcatenation)
	elements := make([]*Expression, 0, len(syn.Elements))
	width := uint32(0)
	fourState := false
	bad := false
	for _, elID := range syn.Elements {
		el := b.Bind(elemCtx, elID)
		if el.IsInvalid() {
			bad = true
			continue
		}
		if !b.Types.IsIntegral(el.Type) {
			b.bad(el.Span, diag.SemaBadConcatExpression, "concatenation operand must be integral")
			bad = true
			continue
		}
		width += b.Types.BitWidth(el.Type)
		fourState = fourState || b.Types.IsFourState(el.Type)
		elements = append(elements, el)
	}
	if bad {
		return b.bad(syn.Span, diag.SemaBadConcatExpression, "invalid operand inside concatenation")
	}
	resultType := b.Types.GetType(width, false, fourState, false)
	return &Expression{Kind: ExprConcat, Type: resultType, Span: syn.Span, Elements: elements}
}

func (b *Binder) bindReplication(ctx BindContext, syn *ast.Expr) *Expression {
	countCtx := ctx.WithFlags(Constant | IntegralConstant)
	count := b.selfDetermined(countCtx, syn.ReplicationCount)
	body := b.Bind(ctx.WithFlags(InsideConcatenation), syn.ReplicationExpr)
	if count.IsInvalid() || body.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadConcatExpression, "invalid replication")
	}
	if !b.Types.IsIntegral(body.Type) {
		return b.bad(body.Span, diag.SemaBadConcatExpression, "replication operand must be integral")
	}
	ev := NewEvaluator(b.Types, nil)
	countVal, ok := ev.Evaluate(count)
	factor := uint32(0)
	if ok && countVal.Kind == ConstantInteger && !countVal.Int.HasUnknown() {
		sv := countVal.Int.SignedValue()
		if sv.Sign() < 0 {
			return b.bad(count.Span, diag.SemaValueMustBePositive, "replication count must not be negative")
		}
		if sv.Sign() == 0 && !ctx.Flags.Has(InsideConcatenation) {
			return b.bad(count.Span, diag.SemaReplicationZeroOutsideConcat, "replication count of zero is only allowed inside a concatenation")
		}
		factor = uint32(sv.Uint64())
	} else {
		return b.bad(count.Span, diag.SemaExpressionNotConstant, "replication count must be a constant")
	}
	resultType := b.Types.GetType(factor*b.Types.BitWidth(body.Type), false, b.Types.IsFourState(body.Type), false)
	return &Expression{Kind: ExprReplication, Type: resultType, Span: syn.Span, ReplicationCount: count, ReplicationBody: body}
}

func (b *Binder) bindElementSelect(ctx BindContext, syn *ast.Expr) *Expression {
	base := b.Bind(ctx, syn.SelectBase)
	idx := b.selfDetermined(ctx.WithoutFlags(Constant), syn.SelectIndex)
	if base.IsInvalid() || idx.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadIndexExpression, "invalid element select")
	}
	if !b.Types.IsIntegral(idx.Type) {
		return b.bad(idx.Span, diag.SemaIndexMustBeIntegral, "index expression must be integral")
	}
	elemType := b.elementTypeOf(base)
	if elemType == types.NoTypeID {
		return b.bad(base.Span, diag.SemaCannotIndexScalar, "cannot index a scalar value")
	}
	return &Expression{Kind: ExprElementSelect, Type: elemType, Span: syn.Span, SelectBase: base, SelectIndex: idx}
}

// elementTypeOf returns the per-element type a select operates over: a
// packed array's declared element, or the 1-bit scalar underlying any other
// integral type (selecting a single bit out of a vector).
func (b *Binder) elementTypeOf(base *Expression) types.TypeID {
	t, ok := b.Types.Lookup(b.Types.ResolveAlias(base.Type))
	if !ok {
		return types.NoTypeID
	}
	if t.Kind == types.KindPackedArray {
		return t.Elem
	}
	if b.Types.IsIntegral(base.Type) && !b.Types.IsScalar(base.Type) {
		return b.Types.GetType(1, false, b.Types.IsFourState(base.Type), false)
	}
	return types.NoTypeID
}

func (b *Binder) bindRangeSelect(ctx BindContext, syn *ast.Expr) *Expression {
	base := b.Bind(ctx, syn.SelectBase)
	left := b.selfDetermined(ctx.WithFlags(Constant), syn.SelectIndex)
	var right *Expression
	if syn.SelectRight.IsValid() {
		right = b.selfDetermined(ctx.WithFlags(Constant), syn.SelectRight)
	}
	if base.IsInvalid() || left.IsInvalid() {
		return b.bad(syn.Span, diag.SemaBadIndexExpression, "invalid range select")
	}
	elemType := b.elementTypeOf(base)
	if elemType == types.NoTypeID {
		return b.bad(base.Span, diag.SemaCannotIndexScalar, "cannot range-select a scalar value")
	}
	width := uint32(1)
	ev := NewEvaluator(b.Types, nil)
	switch syn.SelectMode {
	case ast.RangeSelectConstant:
		lv, ok1 := ev.Evaluate(left)
		rv, ok2 := ev.Evaluate(right)
		if ok1 && ok2 && lv.Kind == ConstantInteger && rv.Kind == ConstantInteger && !lv.Int.HasUnknown() && !rv.Int.HasUnknown() {
			l, r := lv.Int.SignedValue().Int64(), rv.Int.SignedValue().Int64()
			if l < r {
				l, r = r, l
			}
			width = uint32(l-r) + 1
		}
	default:
		if right != nil {
			rv, ok := ev.Evaluate(right)
			if ok && rv.Kind == ConstantInteger && !rv.Int.HasUnknown() {
				w := rv.Int.SignedValue().Int64()
				if w <= 0 {
					b.bad(right.Span, diag.SemaValueMustBePositive, "indexed part-select width must be positive")
				} else {
					width = uint32(w)
				}
			}
		}
	}
	resultType := b.Types.GetType(width*b.Types.BitWidth(elemType), b.Types.IsSigned(elemType), b.Types.IsFourState(elemType), false)
	return &Expression{Kind: ExprRangeSelect, Type: resultType, Span: syn.Span, SelectBase: base, SelectIndex: left, SelectRight: right, SelectMode: syn.SelectMode}
}

func (b *Binder) bindAssignPattern(ctx BindContext, syn *ast.Expr) *Expression {
	elements := make([]*Expression, 0, len(syn.Elements))
	for _, elID := range syn.Elements {
		elements = append(elements, b.Bind(ctx, elID))
	}
	return &Expression{Kind: ExprAssignmentPattern, Type: b.Types.Builtins().Error, Span: syn.Span, Elements: elements}
}

// bindDataTypeExpr binds a data-type appearing in expression position (a
// cast target, or $bits(T)'s argument), only legal where AllowDataType is
// set.
func (b *Binder) bindDataTypeExpr(ctx BindContext, id ast.ExprID, syn *ast.Expr) *Expression {
	if !ctx.Flags.Has(AllowDataType) {
		return b.bad(syn.Span, diag.SemaNotAValue, "a data type is not allowed as a value here")
	}
	t := b.BindDataType(ctx, b.File.ID, id)
	return &Expression{Kind: ExprDataType, Type: t, Span: syn.Span, MemberName: syn.DataTypeName, DataType: t}
}
