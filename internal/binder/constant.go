package binder

import (
	"math/big"

	"surgehdl/internal/ast"
	"surgehdl/internal/symbols"
	"surgehdl/internal/token"
	"surgehdl/internal/types"
)

// ConstantInt is a four-state integer constant value: Bits holds the known
// 0/1 pattern (as an unsigned magnitude over Width bits), Unknown and HighZ
// mark which bits are instead 'x or 'z. A bit set in both Unknown and HighZ
// is nonsensical and never produced by this package.
type ConstantInt struct {
	Bits    *big.Int
	Unknown *big.Int
	HighZ   *big.Int
	Width   uint32
	Signed  bool
}

// ConstantKind discriminates ConstantValue's payload.
type ConstantKind uint8

const (
	ConstantInvalid ConstantKind = iota
	ConstantInteger
	ConstantReal
	ConstantString
)

// ConstantValue is the result of folding a constant expression: exactly one
// of Int/Real/Str is meaningful, selected by Kind.
type ConstantValue struct {
	Kind ConstantKind
	Int  *ConstantInt
	Real float64
	Str  string
}

func zeroBig() *big.Int { return new(big.Int) }

// newConstantInt builds a four-state value from known/unknown/z masks,
// already trimmed to width.
func newConstantInt(bits, unknown, highZ *big.Int, width uint32, signed bool) *ConstantInt {
	mask := maskFor(width)
	c := &ConstantInt{Bits: zeroBig(), Unknown: zeroBig(), HighZ: zeroBig(), Width: width, Signed: signed}
	if bits != nil {
		c.Bits.And(bits, mask)
	}
	if unknown != nil {
		c.Unknown.And(unknown, mask)
	}
	if highZ != nil {
		c.HighZ.And(highZ, mask)
	}
	return c
}

func maskFor(width uint32) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

// FromTokenValue converts the lexer's decoded literal payload into a
// ConstantInt. A zero Width (unsized literal) is left at 0; the binder
// assigns the self-determined width from context before this value is used
// in any sized operation.
func FromTokenValue(v token.IntValue) *ConstantInt {
	width := v.Width
	bits := v.Bits
	unknown := v.Unknown
	highZ := v.HighZ
	if bits == nil {
		bits = zeroBig()
	}
	if unknown == nil {
		unknown = zeroBig()
	}
	if highZ == nil {
		highZ = zeroBig()
	}
	if width == 0 {
		return &ConstantInt{Bits: new(big.Int).Set(bits), Unknown: new(big.Int).Set(unknown), HighZ: new(big.Int).Set(highZ), Signed: v.Flags.Signed}
	}
	return newConstantInt(bits, unknown, highZ, width, v.Flags.Signed)
}

// HasUnknown reports whether any bit is 'x or 'z.
func (c *ConstantInt) HasUnknown() bool {
	return c.Unknown.Sign() != 0 || c.HighZ.Sign() != 0
}

// bitState returns (value, isUnknown) for bit i; value is meaningless when
// isUnknown is true.
func (c *ConstantInt) bitState(i uint) (byte, bool) {
	if c.Unknown.Bit(int(i)) == 1 || c.HighZ.Bit(int(i)) == 1 {
		return 0, true
	}
	return byte(c.Bits.Bit(int(i))), false
}

// SignedValue returns the value of a fully-known constant, read as two's
// complement when Signed is set and as unsigned otherwise.
func (c *ConstantInt) SignedValue() *big.Int {
	v := new(big.Int).Set(c.Bits)
	if c.Width == 0 {
		return v
	}
	if c.Signed && c.Bits.Bit(int(c.Width)-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(c.Width)))
	}
	return v
}

// Resized returns c reinterpreted at a new width: zero/sign-extended when
// growing, truncated (dropping the high bits) when shrinking. This is the
// constant-folding counterpart of ExprConversion.
func (c *ConstantInt) Resized(width uint32, signed bool) *ConstantInt {
	if width <= c.Width {
		return newConstantInt(c.Bits, c.Unknown, c.HighZ, width, signed)
	}
	bits, unknown, highZ := new(big.Int).Set(c.Bits), new(big.Int).Set(c.Unknown), new(big.Int).Set(c.HighZ)
	if c.Signed && c.Width > 0 {
		var fill *big.Int
		switch {
		case c.Bits.Bit(int(c.Width)-1) == 1 && c.Unknown.Bit(int(c.Width)-1) == 0 && c.HighZ.Bit(int(c.Width)-1) == 0:
			fill = maskFor(width-c.Width).Lsh(maskFor(width-c.Width), uint(c.Width))
			bits.Or(bits, fill)
		case c.Unknown.Bit(int(c.Width)-1) == 1:
			fill = new(big.Int).Lsh(maskFor(width-c.Width), uint(c.Width))
			unknown.Or(unknown, fill)
		case c.HighZ.Bit(int(c.Width)-1) == 1:
			fill = new(big.Int).Lsh(maskFor(width-c.Width), uint(c.Width))
			highZ.Or(highZ, fill)
		}
	}
	return newConstantInt(bits, unknown, highZ, width, signed)
}

// Evaluator folds bound Expression trees into ConstantValues, grounded on
// the operator semantics in internal/types/operators.go so that a constant
// add/compare/etc. uses the exact width and signedness the binder already
// computed for e.Type.
type Evaluator struct {
	Types *types.Interner
	Env   ConstantEnv
}

// ConstantEnv resolves a named value's constant initializer; nil when no
// such environment is available (e.g. probing an expression in isolation),
// in which case any ExprNamedValue fails to fold.
type ConstantEnv interface {
	ConstantValueOf(sym symbols.SymbolID) (ConstantValue, bool)
}

// NewEvaluator builds an Evaluator bound to an interner and optional
// constant environment.
func NewEvaluator(in *types.Interner, env ConstantEnv) *Evaluator {
	return &Evaluator{Types: in, Env: env}
}

// Evaluate folds e to a constant value, or reports ok=false when e is not a
// compile-time constant (an unresolved name, a call, an x-containing value
// used where the language forbids unknowns, etc.).
func (ev *Evaluator) Evaluate(e *Expression) (ConstantValue, bool) {
	if e.IsInvalid() {
		return ConstantValue{}, false
	}
	switch e.Kind {
	case ExprIntegerLiteral:
		return ConstantValue{Kind: ConstantInteger, Int: e.Int}, true
	case ExprRealLiteral:
		return ConstantValue{Kind: ConstantReal, Real: e.Real}, true
	case ExprStringLiteral:
		return ConstantValue{Kind: ConstantString, Str: e.Str}, true
	case ExprNamedValue:
		if ev.Env == nil {
			return ConstantValue{}, false
		}
		return ev.Env.ConstantValueOf(e.Symbol)
	case ExprUnary:
		return ev.evalUnary(e)
	case ExprBinary:
		return ev.evalBinary(e)
	case ExprConditional:
		return ev.evalConditional(e)
	case ExprConcat:
		return ev.evalConcat(e)
	case ExprReplication:
		return ev.evalReplication(e)
	case ExprElementSelect:
		return ev.evalElementSelect(e)
	case ExprRangeSelect:
		return ev.evalRangeSelect(e)
	case ExprConversion:
		return ev.evalConversion(e)
	default:
		return ConstantValue{}, false
	}
}

func (ev *Evaluator) evalConversion(e *Expression) (ConstantValue, bool) {
	inner, ok := ev.Evaluate(e.ConversionOperand)
	if !ok {
		return ConstantValue{}, false
	}
	switch e.ConversionKind {
	case ConversionWiden, ConversionTruncate:
		if inner.Kind != ConstantInteger {
			return inner, true
		}
		width := ev.Types.BitWidth(e.Type)
		return ConstantValue{Kind: ConstantInteger, Int: inner.Int.Resized(width, ev.Types.IsSigned(e.Type))}, true
	case ConversionIntToReal:
		if inner.Kind != ConstantInteger || inner.Int.HasUnknown() {
			return ConstantValue{}, false
		}
		f := new(big.Float).SetInt(inner.Int.SignedValue())
		r, _ := f.Float64()
		return ConstantValue{Kind: ConstantReal, Real: r}, true
	case ConversionRealToInt:
		if inner.Kind != ConstantReal {
			return ConstantValue{}, false
		}
		width := ev.Types.BitWidth(e.Type)
		bi, _ := big.NewFloat(inner.Real).Int(nil)
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bi, nil, nil, width, ev.Types.IsSigned(e.Type))}, true
	default:
		return inner, true
	}
}

func (ev *Evaluator) evalConcat(e *Expression) (ConstantValue, bool) {
	width := ev.Types.BitWidth(e.Type)
	bits, unknown, highZ := zeroBig(), zeroBig(), zeroBig()
	shift := uint(0)
	// Concatenation lists elements MSB-first; fold right-to-left so the
	// first element lands in the highest bit positions.
	for i := len(e.Elements) - 1; i >= 0; i-- {
		el := e.Elements[i]
		v, ok := ev.Evaluate(el)
		if !ok || v.Kind != ConstantInteger {
			return ConstantValue{}, false
		}
		elWidth := uint(ev.Types.BitWidth(el.Type))
		bits.Or(bits, new(big.Int).Lsh(v.Int.Bits, shift))
		unknown.Or(unknown, new(big.Int).Lsh(v.Int.Unknown, shift))
		highZ.Or(highZ, new(big.Int).Lsh(v.Int.HighZ, shift))
		shift += elWidth
	}
	return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bits, unknown, highZ, width, false)}, true
}

func (ev *Evaluator) evalReplication(e *Expression) (ConstantValue, bool) {
	count, ok := ev.Evaluate(e.ReplicationCount)
	if !ok || count.Kind != ConstantInteger || count.Int.HasUnknown() {
		return ConstantValue{}, false
	}
	n := count.Int.SignedValue().Int64()
	if n < 0 {
		return ConstantValue{}, false
	}
	body, ok := ev.Evaluate(e.ReplicationBody)
	if !ok || body.Kind != ConstantInteger {
		return ConstantValue{}, false
	}
	bodyWidth := uint(ev.Types.BitWidth(e.ReplicationBody.Type))
	bits, unknown, highZ := zeroBig(), zeroBig(), zeroBig()
	for i := int64(0); i < n; i++ {
		shift := uint(i) * bodyWidth
		bits.Or(bits, new(big.Int).Lsh(body.Int.Bits, shift))
		unknown.Or(unknown, new(big.Int).Lsh(body.Int.Unknown, shift))
		highZ.Or(highZ, new(big.Int).Lsh(body.Int.HighZ, shift))
	}
	width := ev.Types.BitWidth(e.Type)
	return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bits, unknown, highZ, width, false)}, true
}

func (ev *Evaluator) evalElementSelect(e *Expression) (ConstantValue, bool) {
	base, ok := ev.Evaluate(e.SelectBase)
	if !ok || base.Kind != ConstantInteger {
		return ConstantValue{}, false
	}
	idx, ok := ev.Evaluate(e.SelectIndex)
	if !ok || idx.Kind != ConstantInteger || idx.Int.HasUnknown() {
		return ConstantValue{}, false
	}
	i := idx.Int.SignedValue().Int64()
	if i < 0 || uint32(i) >= base.Int.Width {
		return ConstantValue{}, false
	}
	val, unk := base.Int.bitState(uint(i))
	bits, unknown := zeroBig(), zeroBig()
	if val == 1 {
		bits.SetInt64(1)
	}
	if unk {
		unknown.SetInt64(1)
	}
	return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bits, unknown, nil, 1, false)}, true
}

func (ev *Evaluator) evalRangeSelect(e *Expression) (ConstantValue, bool) {
	base, ok := ev.Evaluate(e.SelectBase)
	if !ok || base.Kind != ConstantInteger {
		return ConstantValue{}, false
	}
	width := ev.Types.BitWidth(e.Type)
	lo, ok := ev.constantIndex(e)
	if !ok {
		return ConstantValue{}, false
	}
	bits := new(big.Int).Rsh(base.Int.Bits, uint(lo))
	unknown := new(big.Int).Rsh(base.Int.Unknown, uint(lo))
	highZ := new(big.Int).Rsh(base.Int.HighZ, uint(lo))
	return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bits, unknown, highZ, width, false)}, true
}

// constantIndex resolves a range select's low bit index across all three
// spellings (spec 4.4: `[l:r]`, `[l+:w]`, `[l-:w]`).
func (ev *Evaluator) constantIndex(e *Expression) (int64, bool) {
	left, ok := ev.Evaluate(e.SelectIndex)
	if !ok || left.Kind != ConstantInteger || left.Int.HasUnknown() {
		return 0, false
	}
	l := left.Int.SignedValue().Int64()
	switch e.SelectMode {
	case ast.RangeSelectConstant:
		right, ok := ev.Evaluate(e.SelectRight)
		if !ok || right.Kind != ConstantInteger || right.Int.HasUnknown() {
			return 0, false
		}
		r := right.Int.SignedValue().Int64()
		if l < r {
			return l, true
		}
		return r, true
	case ast.RangeSelectIndexedUp:
		return l, true
	case ast.RangeSelectIndexedDown:
		width, ok := ev.Evaluate(e.SelectRight)
		if !ok || width.Kind != ConstantInteger || width.Int.HasUnknown() {
			return 0, false
		}
		w := width.Int.SignedValue().Int64()
		return l - w + 1, true
	default:
		return 0, false
	}
}
