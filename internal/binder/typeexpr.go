package binder

import (
	"strings"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/symbols"
	"surgehdl/internal/types"
)

// primitiveTypeInfo describes one of the keyword-spelled scalar/predefined
// types parseDataType can produce, keyed by its (possibly multi-word)
// textual spelling (spec 4.3's scalar/predefined-integer/floating kinds).
type primitiveTypeInfo struct {
	width     uint32
	signed    bool
	fourState bool
	reg       bool
	real      bool
	predef    types.PredefKind
}

var primitiveTypes = map[string]primitiveTypeInfo{
	"logic":     {width: 1, fourState: true},
	"reg":       {width: 1, fourState: true, reg: true},
	"bit":       {width: 1},
	"wire":      {width: 1, fourState: true},
	"tri":       {width: 1, fourState: true},
	"byte":      {width: 8, signed: true, predef: types.PredefByte},
	"shortint":  {width: 16, signed: true, predef: types.PredefShortint},
	"int":       {width: 32, signed: true, predef: types.PredefInt},
	"longint":   {width: 64, signed: true, predef: types.PredefLongint},
	"integer":   {width: 32, signed: true, fourState: true, predef: types.PredefInteger},
	"real":      {real: true, width: 64},
	"shortreal": {real: true, width: 32},
	"realtime":  {real: true, width: 64},
}

// BindDataType resolves a data-type syntax node to a TypeID: a primitive
// keyword spelling with optional signed/unsigned modifier and packed
// dimensions, or (not yet supported) a named aggregate/typedef, which
// reports SemaUnknownName and falls back to the Error type. fileID is the
// tree id carries TypeExpr was parsed from, which may differ from the tree
// currently being bound (a name can resolve to a symbol declared in another
// file); BindDataType switches the Binder's active file for its duration.
func (b *Binder) BindDataType(ctx BindContext, fileID ast.FileID, id ast.ExprID) types.TypeID {
	f := b.fileByID(fileID)
	if f == nil || !id.IsValid() {
		return b.Types.Builtins().Error
	}
	prev := b.File
	b.File = f
	defer func() { b.File = prev }()

	syn := b.File.Get(id)
	if syn == nil || syn.Kind != ast.ExprDataType {
		return b.Types.Builtins().Error
	}
	spelling := b.name(syn.DataTypeName)
	switch spelling {
	case "struct", "union", "enum":
		key := aggregateTypeKey{File: f.ID, Expr: id}
		if cached, ok := b.aggregateTypes[key]; ok {
			return cached
		}
		var result types.TypeID
		if spelling == "enum" {
			result = b.bindEnumType(ctx, syn)
		} else {
			result = b.bindStructUnionType(ctx, syn)
		}
		if b.aggregateTypes == nil {
			b.aggregateTypes = make(map[aggregateTypeKey]types.TypeID)
		}
		b.aggregateTypes[key] = result
		return result
	}
	fields := strings.Fields(spelling)
	signed, unsigned := false, false
	var baseWord string
	for _, w := range fields {
		switch w {
		case "signed":
			signed = true
		case "unsigned":
			unsigned = true
		case "const", "automatic", "packed":
			// modifiers that don't change the scalar shape the binder tracks
		default:
			baseWord = w
		}
	}
	info, ok := primitiveTypes[baseWord]
	if !ok {
		diag.ReportError(b.Reporter, diag.SemaUnknownName, syn.Span, "unknown type name '"+spelling+"'").Emit()
		return b.Types.Builtins().Error
	}
	if signed {
		info.signed = true
	}
	if unsigned {
		info.signed = false
	}
	if info.real {
		return b.Types.Intern(types.MakeFloating(info.width))
	}

	elemWidth, packedRange, hasRange := b.resolveDims(ctx, syn.Elements)
	width := info.width * elemWidth

	var base types.Type
	if info.predef != types.PredefNone {
		base = types.MakePredef(info.predef)
		base.Signed = info.signed
	} else if info.reg {
		base = types.MakeReg(1, info.signed)
	} else {
		base = types.MakeScalar(1, info.signed, info.fourState)
	}

	if !hasRange && info.predef == types.PredefNone {
		return b.Types.Intern(types.Type{Kind: base.Kind, Width: width, Signed: base.Signed, FourState: base.FourState, Reg: base.Reg, Predef: base.Predef})
	}
	if !hasRange {
		return b.Types.Intern(base)
	}
	elem := b.Types.Intern(types.Type{Kind: types.KindScalar, Width: 1, Signed: info.signed, FourState: info.fourState, Reg: info.reg})
	return b.Types.Intern(types.MakePackedArray(elem, packedRange[0], packedRange[1]))
}

// resolveDims folds a data type's bracketed dimensions into a combined
// element count and, for a single packed range, its left/right bounds
// (needed to preserve a descending range's declared direction).
func (b *Binder) resolveDims(ctx BindContext, dims []ast.ExprID) (count uint32, singleRange [2]int32, hasRange bool) {
	count = 1
	ev := NewEvaluator(b.Types, nil)
	for _, dimID := range dims {
		if !dimID.IsValid() {
			count = 0
			continue
		}
		dim := b.File.Get(dimID)
		if dim == nil {
			continue
		}
		if dim.Kind == ast.ExprRangeSelect && dim.SelectMode == ast.RangeSelectConstant {
			left := b.selfDetermined(ctx.WithFlags(Constant), dim.SelectIndex)
			right := b.selfDetermined(ctx.WithFlags(Constant), dim.SelectRight)
			lv, ok1 := ev.Evaluate(left)
			rv, ok2 := ev.Evaluate(right)
			if ok1 && ok2 && lv.Kind == ConstantInteger && rv.Kind == ConstantInteger {
				l := int32(lv.Int.SignedValue().Int64())
				r := int32(rv.Int.SignedValue().Int64())
				singleRange = [2]int32{l, r}
				hasRange = true
				hi, lo := l, r
				if lo > hi {
					hi, lo = lo, hi
				}
				count *= uint32(hi-lo) + 1
			}
			continue
		}
		expr := b.selfDetermined(ctx.WithFlags(Constant), dimID)
		v, ok := ev.Evaluate(expr)
		if ok && v.Kind == ConstantInteger {
			count *= uint32(v.Int.SignedValue().Int64())
		}
	}
	return count, singleRange, hasRange
}

// recordScopeType remembers which TypeID a struct/union/enum member scope
// belongs to, so a symbol declared into that scope (a field or an enum
// value) can report its owning type without carrying a TypeID itself.
func (b *Binder) recordScopeType(scope symbols.ScopeID, t types.TypeID) {
	if b.scopeToType == nil {
		b.scopeToType = make(map[symbols.ScopeID]types.TypeID)
	}
	b.scopeToType[scope] = t
}

// bindStructUnionType realizes an inline struct/union data type: a fresh
// ScopeStructUnion scope carrying one SymbolField per member, and a
// KindStruct/KindUnion type interned over that scope. Per the nominal-
// aggregate rule, every call allocates a new TypeID even for textually
// identical bodies; BindDataType's memoization is what keeps repeat
// references to the same declaration's type stable.
func (b *Binder) bindStructUnionType(ctx BindContext, syn *ast.Expr) types.TypeID {
	kind := types.KindStruct
	if syn.IsUnion {
		kind = types.KindUnion
	}
	scope := b.Table.Scopes.New(symbols.ScopeStructUnion, ctx.Scope, symbols.ScopeOwner{Kind: symbols.ScopeOwnerNone}, syn.Span)
	result := b.Types.Intern(types.Type{Kind: kind, Scope: scope})
	b.recordScopeType(scope, result)

	for _, m := range syn.Members {
		b.Resolver.DeclareSymbol(scope, symbols.Symbol{
			Name:         m.Name,
			Kind:         symbols.SymbolField,
			Span:         m.Span,
			TypeExprFile: b.File.ID,
			TypeExpr:     m.TypeExpr,
			Initializer:  m.Initializer,
		})
	}
	return result
}

// bindEnumType realizes an inline enum data type: a fresh ScopeStructUnion
// scope carrying one SymbolEnumValue per enumerant, and a KindEnum type over
// an explicit or (LRM default) 'int' base. An enumerator with no explicit
// value takes the previous one's value plus one, or 0 for the first; only
// literal-valued enumerators fold today, since no ConstantEnv yet resolves a
// named value (parameter or enum value) back to its initializer mid-fold.
func (b *Binder) bindEnumType(ctx BindContext, syn *ast.Expr) types.TypeID {
	base := b.Types.Builtins().Int
	if syn.EnumBase.IsValid() {
		base = b.BindDataType(ctx, b.File.ID, syn.EnumBase)
	}

	scope := b.Table.Scopes.New(symbols.ScopeStructUnion, ctx.Scope, symbols.ScopeOwner{Kind: symbols.ScopeOwnerNone}, syn.Span)
	result := b.Types.Intern(types.Type{Kind: types.KindEnum, EnumBase: base, Scope: scope})
	b.recordScopeType(scope, result)

	ev := NewEvaluator(b.Types, nil)
	next := int64(0)
	for _, en := range syn.Enumerators {
		value := next
		if en.Value.IsValid() {
			bound := b.selfDetermined(ctx.WithFlags(Constant|IntegralConstant), en.Value)
			if cv, ok := ev.Evaluate(bound); ok && cv.Kind == ConstantInteger && !cv.Int.HasUnknown() {
				value = cv.Int.SignedValue().Int64()
			}
		}
		next = value + 1
		sym := b.Resolver.DeclareSymbol(scope, symbols.Symbol{
			Name: en.Name,
			Kind: symbols.SymbolEnumValue,
			Span: en.Span,
		})
		// An enum's labels are visible unqualified in the scope the enum is
		// declared in, not only through the enum's own member scope; alias
		// the same symbol into ctx.Scope without duplicating it, so its
		// Parent (used by enumValueType's scope-to-type reverse lookup)
		// still points at the enum's own scope.
		if sym.IsValid() {
			if outer := b.Table.Scopes.Get(ctx.Scope); outer != nil && ctx.Scope != scope {
				outer.Symbols = append(outer.Symbols, sym)
				outer.NameIndex[en.Name] = append(outer.NameIndex[en.Name], sym)
			}
		}
	}
	return result
}
