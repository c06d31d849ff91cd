// Package types implements the interned structural type system: integer
// scalars, packed arrays, predefined integers, floating types, struct/union
// (scope-carrying aggregates), enum, and named aliases. Every Type is
// identified by a TypeID handed out by an Interner; two structurally
// identical descriptors always intern to the same TypeID.
package types

import "surgehdl/internal/symbols"

// TypeID is a stable handle into an Interner. The zero value, NoTypeID,
// never denotes a real type.
type TypeID uint32

const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind discriminates the structural shape of a Type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindNull
	KindCHandle
	KindString
	KindEvent
	KindScalar    // bit/logic/reg, possibly packed-array-of, see Width/FourState/Signed
	KindPredefInt // byte, shortint, int, longint, integer, time
	KindFloating  // shortreal, real, realtime
	KindPackedArray
	KindStruct
	KindUnion
	KindEnum
	KindAlias
	KindError
)

// PredefKind distinguishes the LRM-predefined integer types, each with a
// fixed width and four-state-ness independent of declaration syntax.
type PredefKind uint8

const (
	PredefNone PredefKind = iota
	PredefByte
	PredefShortint
	PredefInt
	PredefLongint
	PredefInteger
	PredefTime
)

var predefInfo = map[PredefKind]struct {
	width     uint32
	signed    bool
	fourState bool
}{
	PredefByte:     {8, true, false},
	PredefShortint: {16, true, false},
	PredefInt:      {32, true, false},
	PredefLongint:  {64, true, false},
	PredefInteger:  {32, true, true},
	PredefTime:     {64, false, true},
}

// Type is the structural descriptor interned by an Interner. Not every
// field is meaningful for every Kind; see the per-Kind comments below.
type Type struct {
	Kind Kind

	// KindScalar, KindPredefInt, KindFloating: bit width, signedness, and
	// whether the type carries the four-value logic set (0/1/X/Z). Reg
	// distinguishes the variable-type spelling 'reg' from 'logic' even
	// though both share the same four-state scalar representation.
	Width     uint32
	Signed    bool
	FourState bool
	Reg       bool
	Predef    PredefKind // set when Kind == KindPredefInt

	// KindPackedArray: element type and a closed, possibly-descending range.
	Elem       TypeID
	RangeLeft  int32
	RangeRight int32

	// KindStruct, KindUnion: the scope carrying member declarations. Two
	// struct/union types are equivalent only by identity (TypeID), never by
	// structural match on members, per the language's nominal-for-aggregates
	// rule — every Intern call for one of them allocates a new TypeID.
	Scope symbols.ScopeID

	// KindEnum: base integral representation and the owning scope for its
	// enumerant members.
	EnumBase TypeID

	// KindAlias: the type this name stands for. Lookups that care about
	// structural identity must resolve through ResolveAlias.
	AliasTarget TypeID
	AliasName   string
}

// BitWidth returns the type's bit width for integral/floating kinds, and 0
// otherwise. For a packed array it is Width(elem) * element count.
func (in *Interner) BitWidth(id TypeID) uint32 {
	t, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	switch t.Kind {
	case KindScalar, KindPredefInt, KindFloating:
		return t.Width
	case KindPackedArray:
		return in.BitWidth(t.Elem) * t.ArrayCount()
	case KindAlias:
		return in.BitWidth(t.AliasTarget)
	case KindEnum:
		return in.BitWidth(t.EnumBase)
	default:
		return 0
	}
}

// ArrayCount returns the number of elements a closed packed-array range
// spans, regardless of ascending ([0:7]) or descending ([7:0]) declaration.
func (t Type) ArrayCount() uint32 {
	lo, hi := t.RangeLeft, t.RangeRight
	if lo > hi {
		lo, hi = hi, lo
	}
	return uint32(hi-lo) + 1
}

// IsFourState reports whether the type carries unknown/high-Z states.
func (in *Interner) IsFourState(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindScalar, KindPredefInt:
		return t.FourState
	case KindPackedArray:
		return in.IsFourState(t.Elem)
	case KindAlias:
		return in.IsFourState(t.AliasTarget)
	case KindEnum:
		return in.IsFourState(t.EnumBase)
	default:
		return false
	}
}

// IsSigned reports the type's signedness; meaningless outside integral kinds.
func (in *Interner) IsSigned(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindScalar, KindPredefInt:
		return t.Signed
	case KindPackedArray:
		return in.IsSigned(t.Elem)
	case KindAlias:
		return in.IsSigned(t.AliasTarget)
	case KindEnum:
		return in.IsSigned(t.EnumBase)
	default:
		return false
	}
}

// IsScalar reports whether the type is a single-bit integral (not an array,
// struct, or enum).
func (in *Interner) IsScalar(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	if t.Kind == KindAlias {
		return in.IsScalar(t.AliasTarget)
	}
	return (t.Kind == KindScalar || t.Kind == KindPredefInt) && in.BitWidth(id) == 1
}

// IsIntegral reports whether id is any bit/logic/reg/predefined-int kind
// (including a packed array of one), as opposed to floating or aggregate.
func (in *Interner) IsIntegral(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindScalar, KindPredefInt:
		return true
	case KindPackedArray:
		return in.IsIntegral(t.Elem)
	case KindAlias:
		return in.IsIntegral(t.AliasTarget)
	case KindEnum:
		return in.IsIntegral(t.EnumBase)
	default:
		return false
	}
}

// IsNumeric reports whether id is integral or floating.
func (in *Interner) IsNumeric(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	if t.Kind == KindFloating {
		return true
	}
	return in.IsIntegral(id)
}

// ResolveAlias follows KindAlias chains to the underlying type.
func (in *Interner) ResolveAlias(id TypeID) TypeID {
	for {
		t, ok := in.Lookup(id)
		if !ok || t.Kind != KindAlias {
			return id
		}
		id = t.AliasTarget
	}
}

// MakeScalar builds a bit/logic/reg descriptor. width is the bit count;
// fourState distinguishes logic/reg (four-state) from bit (two-state); reg
// marks the 'reg' spelling specifically.
func MakeScalar(width uint32, signed, fourState bool) Type {
	return Type{Kind: KindScalar, Width: width, Signed: signed, FourState: fourState}
}

// MakeReg builds a 'reg'-spelled scalar descriptor (always four-state).
func MakeReg(width uint32, signed bool) Type {
	return Type{Kind: KindScalar, Width: width, Signed: signed, FourState: true, Reg: true}
}

// MakePredef builds one of the LRM-predefined integer types.
func MakePredef(k PredefKind) Type {
	info := predefInfo[k]
	return Type{Kind: KindPredefInt, Predef: k, Width: info.width, Signed: info.signed, FourState: info.fourState}
}

// MakeFloating builds shortreal(32)/real(64)/realtime(64).
func MakeFloating(width uint32) Type {
	return Type{Kind: KindFloating, Width: width}
}

// MakePackedArray builds a packed array of elem over the closed range
// [left:right], which may be ascending or descending.
func MakePackedArray(elem TypeID, left, right int32) Type {
	return Type{Kind: KindPackedArray, Elem: elem, RangeLeft: left, RangeRight: right}
}
