package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the handful of primitive types every
// compilation needs without an explicit declaration.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Null    TypeID
	CHandle TypeID
	String  TypeID
	Event   TypeID
	Error   TypeID
	Bit     TypeID // 1-bit two-state
	Logic   TypeID // 1-bit four-state
	Int     TypeID // predefined 'int'
	Integer TypeID // predefined 'integer' (four-state)
	Real    TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors. Two
// requests for the same shape (same Kind, element, range, width, sign,
// four-state-ness) return the same TypeID; struct/union/enum types are
// still interned for TypeID stability, but equivalence between two such
// types is always by identity, never structural match, per the language's
// nominal-aggregate rule.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{index: make(map[typeKey]TypeID, 64)}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Error = in.Intern(Type{Kind: KindError})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	in.builtins.CHandle = in.Intern(Type{Kind: KindCHandle})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Event = in.Intern(Type{Kind: KindEvent})
	in.builtins.Bit = in.Intern(MakeScalar(1, false, false))
	in.builtins.Logic = in.Intern(MakeScalar(1, false, true))
	in.builtins.Int = in.Intern(MakePredef(PredefInt))
	in.builtins.Integer = in.Intern(MakePredef(PredefInteger))
	in.builtins.Real = in.Intern(MakeFloating(64))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID. Struct, union,
// and enum types are never deduplicated — each call allocates a new TypeID,
// even for a Scope already interned, matching the nominal-aggregate rule.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if t.Kind == KindStruct || t.Kind == KindUnion || t.Kind == KindEnum {
		return in.internRaw(t)
	}
	key := typeKeyOf(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes + 1) // reserve 0 as NoTypeID
	in.types = append(in.types, t)
	if t.Kind != KindStruct && t.Kind != KindUnion && t.Kind != KindEnum {
		in.index[typeKeyOf(t)] = id
	}
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) > len(in.types) {
		return Type{}, false
	}
	return in.types[id-1], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

type typeKey struct {
	Kind       Kind
	Elem       TypeID
	RangeLeft  int32
	RangeRight int32
	Width      uint32
	Signed     bool
	FourState  bool
	Reg        bool
	Predef     PredefKind
	EnumBase   TypeID
	AliasName  string
}

func typeKeyOf(t Type) typeKey {
	return typeKey{
		Kind:       t.Kind,
		Elem:       t.Elem,
		RangeLeft:  t.RangeLeft,
		RangeRight: t.RangeRight,
		Width:      t.Width,
		Signed:     t.Signed,
		FourState:  t.FourState,
		Reg:        t.Reg,
		Predef:     t.Predef,
		EnumBase:   t.EnumBase,
		AliasName:  t.AliasName,
	}
}
