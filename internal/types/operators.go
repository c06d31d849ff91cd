package types

// OperandTyping classifies how an operator's operands are typed before the
// binder can compute a result: self-determined operands bind independently
// of context, context-determined operands are widened against each other
// (or against an outer target type) after both sides have a provisional
// type.
type OperandTyping uint8

const (
	SelfDetermined OperandTyping = iota
	ContextDetermined
)

// BinaryOp enumerates the binary/compound operators the binder dispatches
// on; unlike the teacher's generic ExprBinaryOp this tracks the exact
// operator spellings the result-type table (spec 4.3/4.4) distinguishes.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinBitAnd
	BinBitOr
	BinBitXor
	BinBitXnor
	BinShl
	BinShr
	BinAShl
	BinAShr
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
	BinLogicalAnd
	BinLogicalOr
	BinLogicalImplies
	BinLogicalEquiv
	BinEq
	BinNotEq
	BinCaseEq    // ===
	BinCaseNotEq // !==
	BinWildcardEq
	BinWildcardNotEq
)

// OperatorSpec describes how an operator's operands are typed.
type OperatorSpec struct {
	Typing      OperandTyping
	Integral    bool // operands must be integral, not merely numeric
	ForceDivMod bool // div/mod force-four-state their result
}

var binaryOperatorSpecs = map[BinaryOp]OperatorSpec{
	BinAdd:            {Typing: ContextDetermined},
	BinSub:            {Typing: ContextDetermined},
	BinMul:            {Typing: ContextDetermined},
	BinDiv:            {Typing: ContextDetermined, ForceDivMod: true},
	BinMod:            {Typing: ContextDetermined, Integral: true, ForceDivMod: true},
	BinPow:            {Typing: ContextDetermined},
	BinBitAnd:         {Typing: ContextDetermined, Integral: true},
	BinBitOr:          {Typing: ContextDetermined, Integral: true},
	BinBitXor:         {Typing: ContextDetermined, Integral: true},
	BinBitXnor:        {Typing: ContextDetermined, Integral: true},
	BinLess:           {Typing: ContextDetermined},
	BinLessEq:         {Typing: ContextDetermined},
	BinGreater:        {Typing: ContextDetermined},
	BinGreaterEq:      {Typing: ContextDetermined},
	BinLogicalAnd:     {Typing: SelfDetermined},
	BinLogicalOr:      {Typing: SelfDetermined},
	BinLogicalImplies: {Typing: SelfDetermined},
	BinLogicalEquiv:   {Typing: SelfDetermined},
	BinEq:             {Typing: ContextDetermined},
	BinNotEq:          {Typing: ContextDetermined},
	BinCaseEq:         {Typing: ContextDetermined},
	BinCaseNotEq:      {Typing: ContextDetermined},
	BinWildcardEq:     {Typing: ContextDetermined},
	BinWildcardNotEq:  {Typing: ContextDetermined},
}

// SpecFor returns the operand-typing rule for a binary operator.
func SpecFor(op BinaryOp) OperatorSpec {
	return binaryOperatorSpecs[op]
}

// ShiftAmountIsSelfDetermined reports the rule that shift/arithmetic-shift
// right-hand operands never widen the left-hand side's type.
func ShiftAmountIsSelfDetermined(op BinaryOp) bool {
	switch op {
	case BinShl, BinShr, BinAShl, BinAShr:
		return true
	default:
		return false
	}
}

// BinaryOperatorType computes the result type of a binary arithmetic/bitwise
// operator per spec 4.3: real operands win outright; otherwise widen to the
// wider integral width, AND the signed/reg flags and OR the four-state flag
// (or force it), preferring a scalar result when the computed width is 1 and
// at least one operand was itself a scalar (not a 1-wide packed array).
func (in *Interner) BinaryOperatorType(lt, rt TypeID, force bool) TypeID {
	ltT, ok1 := in.Lookup(lt)
	rtT, ok2 := in.Lookup(rt)
	if !ok1 || !ok2 {
		return in.builtins.Error
	}
	if ltT.Kind == KindFloating || rtT.Kind == KindFloating {
		width := uint32(32)
		if ltT.Width == 64 || rtT.Width == 64 {
			width = 64
		}
		return in.Intern(MakeFloating(width))
	}

	width := in.BitWidth(lt)
	if w := in.BitWidth(rt); w > width {
		width = w
	}
	signed := in.IsSigned(lt) && in.IsSigned(rt)
	fourState := force || in.IsFourState(lt) || in.IsFourState(rt)
	reg := isReg(ltT) && isReg(rtT)

	if width == 1 && (in.IsScalar(lt) || in.IsScalar(rt)) {
		result := Type{Kind: KindScalar, Width: 1, Signed: signed, FourState: fourState, Reg: reg}
		if alias := in.aliasMatching(lt, result); alias.IsValid() {
			return alias
		}
		if alias := in.aliasMatching(rt, result); alias.IsValid() {
			return alias
		}
		return in.Intern(result)
	}

	elem := in.Intern(Type{Kind: KindScalar, Width: 1, Signed: signed, FourState: fourState, Reg: reg})
	result := MakePackedArray(elem, int32(width)-1, 0)
	if alias := in.aliasMatching(lt, result); alias.IsValid() {
		return alias
	}
	if alias := in.aliasMatching(rt, result); alias.IsValid() {
		return alias
	}
	return in.Intern(result)
}

func isReg(t Type) bool {
	return t.Kind == KindScalar && t.Reg
}

// aliasMatching returns id itself if its underlying shape matches candidate
// exactly (spec 4.3's "alias preservation" rule), so that e.g. adding two
// values of a `typedef logic [7:0] byte_t` alias yields byte_t back rather
// than an anonymous packed array of the same shape.
func (in *Interner) aliasMatching(id TypeID, candidate Type) TypeID {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindAlias {
		return NoTypeID
	}
	under, ok := in.Lookup(t.AliasTarget)
	if !ok {
		return NoTypeID
	}
	if typeKeyOf(under) == typeKeyOf(candidate) {
		return id
	}
	return NoTypeID
}

// SingleBitResultType implements the "logic if either operand is four-state,
// else bit" rule used by relational, logical, and unary-reduction operators.
func (in *Interner) SingleBitResultType(lt, rt TypeID) TypeID {
	if in.IsFourState(lt) || in.IsFourState(rt) {
		return in.builtins.Logic
	}
	return in.builtins.Bit
}

// ForceFourState returns t unchanged if it is real or already four-state;
// otherwise returns the same shape with FourState set.
func (in *Interner) ForceFourState(t TypeID) TypeID {
	tt, ok := in.Lookup(t)
	if !ok {
		return t
	}
	switch tt.Kind {
	case KindFloating:
		return t
	case KindScalar, KindPredefInt:
		if tt.FourState {
			return t
		}
		tt.FourState = true
		return in.Intern(tt)
	case KindPackedArray:
		elem := in.ForceFourState(tt.Elem)
		if elem == tt.Elem {
			return t
		}
		tt.Elem = elem
		return in.Intern(tt)
	case KindAlias:
		target := in.ForceFourState(tt.AliasTarget)
		if target == tt.AliasTarget {
			return t
		}
		return target
	default:
		return t
	}
}

// GetType is the fabricator `getType(width, flags)`: it returns a packed
// array over range [width-1:0] of the matching scalar, cached by
// (width, signed, fourState, reg) through ordinary interning.
func (in *Interner) GetType(width uint32, signed, fourState, reg bool) TypeID {
	if width == 1 {
		return in.Intern(Type{Kind: KindScalar, Width: 1, Signed: signed, FourState: fourState, Reg: reg})
	}
	elem := in.Intern(Type{Kind: KindScalar, Width: 1, Signed: signed, FourState: fourState, Reg: reg})
	return in.Intern(MakePackedArray(elem, int32(width)-1, 0))
}

// IsMatching reports structural identity including width and flags; a
// struct, union or enum type matches only itself.
func (in *Interner) IsMatching(a, b TypeID) bool {
	ta, ok1 := in.Lookup(a)
	tb, ok2 := in.Lookup(b)
	if !ok1 || !ok2 {
		return false
	}
	if ta.Kind == KindStruct || ta.Kind == KindUnion || ta.Kind == KindEnum {
		return a == b
	}
	return typeKeyOf(ta) == typeKeyOf(tb)
}

// IsEquivalent reports matching modulo aliases.
func (in *Interner) IsEquivalent(a, b TypeID) bool {
	return in.IsMatching(in.ResolveAlias(a), in.ResolveAlias(b))
}

// IsAssignmentCompatible reports whether rhs can be assigned to lhs without
// an explicit cast: numeric-to-numeric always qualifies (the binder inserts
// a conversion); otherwise the types must be equivalent (IsEquivalent), so a
// struct, union or enum is compatible only with itself or an alias of it.
func (in *Interner) IsAssignmentCompatible(lhs, rhs TypeID) bool {
	if in.IsNumeric(lhs) && in.IsNumeric(rhs) {
		return true
	}
	lt, ok1 := in.Lookup(in.ResolveAlias(lhs))
	rt, ok2 := in.Lookup(in.ResolveAlias(rhs))
	if !ok1 || !ok2 {
		return false
	}
	if rt.Kind == KindNull && (lt.Kind == KindCHandle || lt.Kind == KindString) {
		return true
	}
	if lt.Kind == KindString && rt.Kind == KindString {
		return true
	}
	if (lt.Kind == KindStruct || lt.Kind == KindUnion) && lt.Kind == rt.Kind {
		return in.IsEquivalent(lhs, rhs)
	}
	return in.IsEquivalent(lhs, rhs)
}

// IsCastCompatible is a superset of assignment compatibility that also
// allows narrowing integer casts and int-to-real/real-to-int conversions.
func (in *Interner) IsCastCompatible(a, b TypeID) bool {
	if in.IsAssignmentCompatible(a, b) {
		return true
	}
	return in.IsNumeric(a) && in.IsNumeric(b)
}
