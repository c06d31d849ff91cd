package binder

import (
	"math/big"

	"surgehdl/internal/token"
	"surgehdl/internal/types"
)

// perBit combines two operand bits under a two-input truth table that also
// handles the four-state absorbing rules (spec 4.4's bitwise operators):
// e.g. 0 AND x is known-0, 1 AND x is x, x AND x is x. known reports
// whether the combined bit is 0/1; when it isn't, the returned bit value is
// ignored.
type perBit func(av, bv byte, aUnk, bUnk bool) (result byte, known bool)

func bitwiseFold(a, b *ConstantInt, width uint32, fn perBit) *ConstantInt {
	bits, unknown := zeroBig(), zeroBig()
	for i := uint(0); i < uint(width); i++ {
		av, aUnk := a.bitState(i)
		bv, bUnk := b.bitState(i)
		v, known := fn(av, bv, aUnk, bUnk)
		if !known {
			unknown.SetBit(unknown, int(i), 1)
		} else if v == 1 {
			bits.SetBit(bits, int(i), 1)
		}
	}
	return newConstantInt(bits, unknown, nil, width, false)
}

func andBit(av, bv byte, aUnk, bUnk bool) (byte, bool) {
	if !aUnk && av == 0 {
		return 0, true
	}
	if !bUnk && bv == 0 {
		return 0, true
	}
	if aUnk || bUnk {
		return 0, false
	}
	return av & bv, true
}

func orBit(av, bv byte, aUnk, bUnk bool) (byte, bool) {
	if !aUnk && av == 1 {
		return 1, true
	}
	if !bUnk && bv == 1 {
		return 1, true
	}
	if aUnk || bUnk {
		return 0, false
	}
	return av | bv, true
}

func xorBit(av, bv byte, aUnk, bUnk bool) (byte, bool) {
	if aUnk || bUnk {
		return 0, false
	}
	return av ^ bv, true
}

func xnorBit(av, bv byte, aUnk, bUnk bool) (byte, bool) {
	v, known := xorBit(av, bv, aUnk, bUnk)
	if !known {
		return 0, false
	}
	return 1 - v, true
}

// toTristate reduces a value to a truth value: 1 (true), 0 (false), or -1
// (unknown), per the logical-operator rule "true if any bit is 1, false if
// every bit is 0, otherwise unknown".
func toTristate(c *ConstantInt) int8 {
	anyOne := false
	anyUnknown := false
	for i := uint(0); i < uint(c.Width); i++ {
		v, unk := c.bitState(i)
		if unk {
			anyUnknown = true
			continue
		}
		if v == 1 {
			anyOne = true
		}
	}
	if anyOne {
		return 1
	}
	if anyUnknown {
		return -1
	}
	return 0
}

func triToConstant(t int8) *ConstantInt {
	bits, unknown := zeroBig(), zeroBig()
	switch t {
	case 1:
		bits.SetInt64(1)
	case -1:
		unknown.SetInt64(1)
	}
	return newConstantInt(bits, unknown, nil, 1, false)
}

func (ev *Evaluator) evalUnary(e *Expression) (ConstantValue, bool) {
	inner, ok := ev.Evaluate(e.UnaryOperand)
	if !ok {
		return ConstantValue{}, false
	}
	if e.UnaryOp == token.Bang {
		if inner.Kind != ConstantInteger {
			return ConstantValue{}, false
		}
		t := toTristate(inner.Int)
		if t < 0 {
			return ConstantValue{Kind: ConstantInteger, Int: triToConstant(-1)}, true
		}
		return ConstantValue{Kind: ConstantInteger, Int: triToConstant(1 - t)}, true
	}
	if inner.Kind == ConstantReal {
		switch e.UnaryOp {
		case token.Minus:
			return ConstantValue{Kind: ConstantReal, Real: -inner.Real}, true
		case token.Plus:
			return inner, true
		default:
			return ConstantValue{}, false
		}
	}
	if inner.Kind != ConstantInteger {
		return ConstantValue{}, false
	}
	width := ev.Types.BitWidth(e.Type)
	switch e.UnaryOp {
	case token.Plus:
		return ConstantValue{Kind: ConstantInteger, Int: inner.Int.Resized(width, inner.Int.Signed)}, true
	case token.Minus:
		if inner.Int.HasUnknown() {
			return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(nil, maskFor(width), nil, width, true)}, true
		}
		neg := new(big.Int).Neg(inner.Int.SignedValue())
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(neg, nil, nil, width, true)}, true
	case token.Tilde:
		bits := new(big.Int).Not(inner.Int.Bits)
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bits, inner.Int.Unknown, inner.Int.HighZ, inner.Int.Width, inner.Int.Signed)}, true
	case token.Amp, token.Pipe, token.Caret, token.TildeAmp, token.TildePipe, token.TildeCaret, token.CaretTilde:
		return ConstantValue{Kind: ConstantInteger, Int: reduceUnary(e.UnaryOp, inner.Int)}, true
	default:
		return ConstantValue{}, false
	}
}

// reduceUnary implements the reduction operators (&, |, ^, ~&, ~|, ~^/^~):
// fold every bit through the corresponding binary operator.
func reduceUnary(op token.Kind, c *ConstantInt) *ConstantInt {
	var fn perBit
	invert := false
	switch op {
	case token.Amp:
		fn = andBit
	case token.TildeAmp:
		fn, invert = andBit, true
	case token.Pipe:
		fn = orBit
	case token.TildePipe:
		fn, invert = orBit, true
	case token.Caret:
		fn = xorBit
	case token.TildeCaret, token.CaretTilde:
		fn, invert = xorBit, true
	}
	acc, unk := c.bitState(0)
	for i := uint(1); i < uint(c.Width); i++ {
		v, u := c.bitState(i)
		acc, unk = combineTri(fn, acc, unk, v, u)
	}
	bits, unknown := zeroBig(), zeroBig()
	if unk {
		unknown.SetInt64(1)
	} else if invert {
		if acc == 0 {
			bits.SetInt64(1)
		}
	} else if acc == 1 {
		bits.SetInt64(1)
	}
	return newConstantInt(bits, unknown, nil, 1, false)
}

func combineTri(fn perBit, av byte, aUnk bool, bv byte, bUnk bool) (byte, bool) {
	v, known := fn(av, bv, aUnk, bUnk)
	return v, !known
}

func (ev *Evaluator) evalBinary(e *Expression) (ConstantValue, bool) {
	lv, ok1 := ev.Evaluate(e.BinaryLeft)
	rv, ok2 := ev.Evaluate(e.BinaryRight)
	if !ok1 || !ok2 {
		return ConstantValue{}, false
	}
	if lv.Kind == ConstantReal || rv.Kind == ConstantReal {
		return ev.evalRealBinary(e, lv, rv)
	}
	if lv.Kind != ConstantInteger || rv.Kind != ConstantInteger {
		return ConstantValue{}, false
	}
	l, r := lv.Int, rv.Int
	switch e.BinaryOp {
	case types.BinBitAnd:
		return ConstantValue{Kind: ConstantInteger, Int: bitwiseFold(l, r, ev.Types.BitWidth(e.Type), andBit)}, true
	case types.BinBitOr:
		return ConstantValue{Kind: ConstantInteger, Int: bitwiseFold(l, r, ev.Types.BitWidth(e.Type), orBit)}, true
	case types.BinBitXor:
		return ConstantValue{Kind: ConstantInteger, Int: bitwiseFold(l, r, ev.Types.BitWidth(e.Type), xorBit)}, true
	case types.BinBitXnor:
		return ConstantValue{Kind: ConstantInteger, Int: bitwiseFold(l, r, ev.Types.BitWidth(e.Type), xnorBit)}, true
	case types.BinLogicalAnd:
		return evalTriLogic(l, r, func(a, b int8) int8 {
			if a == 0 || b == 0 {
				return 0
			}
			if a < 0 || b < 0 {
				return -1
			}
			return 1
		}), true
	case types.BinLogicalOr:
		return evalTriLogic(l, r, func(a, b int8) int8 {
			if a == 1 || b == 1 {
				return 1
			}
			if a < 0 || b < 0 {
				return -1
			}
			return 0
		}), true
	case types.BinLogicalImplies:
		return evalTriLogic(l, r, func(a, b int8) int8 {
			if a == 0 {
				return 1
			}
			if a < 0 {
				if b == 1 {
					return 1
				}
				return -1
			}
			if b < 0 {
				return -1
			}
			if b == 1 {
				return 1
			}
			return 0
		}), true
	case types.BinLogicalEquiv:
		return evalTriLogic(l, r, func(a, b int8) int8 {
			if a < 0 || b < 0 {
				return -1
			}
			if a == b {
				return 1
			}
			return 0
		}), true
	case types.BinShl, types.BinShr, types.BinAShl, types.BinAShr:
		return ev.evalShift(e, l, r), true
	case types.BinAdd, types.BinSub, types.BinMul, types.BinDiv, types.BinMod, types.BinPow:
		return ev.evalArith(e, l, r), true
	case types.BinLess, types.BinLessEq, types.BinGreater, types.BinGreaterEq:
		return evalRelational(e.BinaryOp, l, r), true
	case types.BinEq, types.BinNotEq:
		return evalLogicalEquality(e.BinaryOp, l, r), true
	case types.BinCaseEq, types.BinCaseNotEq:
		return evalCaseEquality(e.BinaryOp, l, r), true
	case types.BinWildcardEq, types.BinWildcardNotEq:
		return evalWildcardEquality(e.BinaryOp, l, r), true
	default:
		return ConstantValue{}, false
	}
}

func evalTriLogic(l, r *ConstantInt, combine func(a, b int8) int8) ConstantValue {
	return ConstantValue{Kind: ConstantInteger, Int: triToConstant(combine(toTristate(l), toTristate(r)))}
}

func (ev *Evaluator) evalRealBinary(e *Expression, lv, rv ConstantValue) (ConstantValue, bool) {
	toReal := func(v ConstantValue) (float64, bool) {
		switch v.Kind {
		case ConstantReal:
			return v.Real, true
		case ConstantInteger:
			if v.Int.HasUnknown() {
				return 0, false
			}
			f := new(big.Float).SetInt(v.Int.SignedValue())
			r, _ := f.Float64()
			return r, true
		default:
			return 0, false
		}
	}
	lf, ok1 := toReal(lv)
	rf, ok2 := toReal(rv)
	if !ok1 || !ok2 {
		return ConstantValue{}, false
	}
	switch e.BinaryOp {
	case types.BinAdd:
		return ConstantValue{Kind: ConstantReal, Real: lf + rf}, true
	case types.BinSub:
		return ConstantValue{Kind: ConstantReal, Real: lf - rf}, true
	case types.BinMul:
		return ConstantValue{Kind: ConstantReal, Real: lf * rf}, true
	case types.BinDiv:
		if rf == 0 {
			return ConstantValue{}, false
		}
		return ConstantValue{Kind: ConstantReal, Real: lf / rf}, true
	case types.BinLess:
		return boolConstant(lf < rf), true
	case types.BinLessEq:
		return boolConstant(lf <= rf), true
	case types.BinGreater:
		return boolConstant(lf > rf), true
	case types.BinGreaterEq:
		return boolConstant(lf >= rf), true
	case types.BinEq, types.BinCaseEq:
		return boolConstant(lf == rf), true
	case types.BinNotEq, types.BinCaseNotEq:
		return boolConstant(lf != rf), true
	default:
		return ConstantValue{}, false
	}
}

func boolConstant(v bool) ConstantValue {
	if v {
		return ConstantValue{Kind: ConstantInteger, Int: triToConstant(1)}
	}
	return ConstantValue{Kind: ConstantInteger, Int: triToConstant(0)}
}

func (ev *Evaluator) evalShift(e *Expression, l, r *ConstantInt) ConstantValue {
	width := ev.Types.BitWidth(e.Type)
	if r.HasUnknown() {
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(nil, maskFor(width), nil, width, false)}
	}
	amount := r.SignedValue()
	if amount.Sign() < 0 {
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(nil, maskFor(width), nil, width, false)}
	}
	n := uint(amount.Uint64())
	resized := l.Resized(width, l.Signed)
	switch e.BinaryOp {
	case types.BinShl, types.BinAShl:
		bits := new(big.Int).Lsh(resized.Bits, n)
		unknown := new(big.Int).Lsh(resized.Unknown, n)
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bits, unknown, nil, width, resized.Signed)}
	case types.BinShr:
		bits := new(big.Int).Rsh(resized.Bits, n)
		unknown := new(big.Int).Rsh(resized.Unknown, n)
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bits, unknown, nil, width, resized.Signed)}
	case types.BinAShr:
		v := resized.SignedValue()
		v.Rsh(v, n)
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(v, resized.Unknown, nil, width, resized.Signed)}
	default:
		return ConstantValue{}
	}
}

func (ev *Evaluator) evalArith(e *Expression, l, r *ConstantInt) ConstantValue {
	width := ev.Types.BitWidth(e.Type)
	signed := ev.Types.IsSigned(e.Type)
	if l.HasUnknown() || r.HasUnknown() {
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(nil, maskFor(width), nil, width, signed)}
	}
	lv, rv := l.SignedValue(), r.SignedValue()
	result := zeroBig()
	switch e.BinaryOp {
	case types.BinAdd:
		result.Add(lv, rv)
	case types.BinSub:
		result.Sub(lv, rv)
	case types.BinMul:
		result.Mul(lv, rv)
	case types.BinDiv:
		if rv.Sign() == 0 {
			return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(nil, maskFor(width), nil, width, signed)}
		}
		result.Quo(lv, rv)
	case types.BinMod:
		if rv.Sign() == 0 {
			return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(nil, maskFor(width), nil, width, signed)}
		}
		result.Rem(lv, rv)
	case types.BinPow:
		if rv.Sign() < 0 {
			return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(nil, maskFor(width), nil, width, signed)}
		}
		result.Exp(lv, rv, nil)
	}
	return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(result, nil, nil, width, signed)}
}

func evalRelational(op types.BinaryOp, l, r *ConstantInt) ConstantValue {
	if l.HasUnknown() || r.HasUnknown() {
		return ConstantValue{Kind: ConstantInteger, Int: triToConstant(-1)}
	}
	cmp := l.SignedValue().Cmp(r.SignedValue())
	var v bool
	switch op {
	case types.BinLess:
		v = cmp < 0
	case types.BinLessEq:
		v = cmp <= 0
	case types.BinGreater:
		v = cmp > 0
	case types.BinGreaterEq:
		v = cmp >= 0
	}
	return boolConstant(v)
}

func evalLogicalEquality(op types.BinaryOp, l, r *ConstantInt) ConstantValue {
	if l.HasUnknown() || r.HasUnknown() {
		return ConstantValue{Kind: ConstantInteger, Int: triToConstant(-1)}
	}
	eq := l.SignedValue().Cmp(r.SignedValue()) == 0
	if op == types.BinNotEq {
		eq = !eq
	}
	return boolConstant(eq)
}

func evalCaseEquality(op types.BinaryOp, l, r *ConstantInt) ConstantValue {
	width := l.Width
	if r.Width > width {
		width = r.Width
	}
	eq := true
	for i := uint(0); i < uint(width); i++ {
		lv, lu := l.bitState(i)
		rv, ru := r.bitState(i)
		lz := l.HighZ.Bit(int(i)) == 1
		rz := r.HighZ.Bit(int(i)) == 1
		if lu != ru || lz != rz || (!lu && lv != rv) {
			eq = false
			break
		}
	}
	if op == types.BinCaseNotEq {
		eq = !eq
	}
	return boolConstant(eq)
}

func evalWildcardEquality(op types.BinaryOp, l, r *ConstantInt) ConstantValue {
	width := l.Width
	if r.Width > width {
		width = r.Width
	}
	eq := true
	for i := uint(0); i < uint(width); i++ {
		_, ru := r.bitState(i)
		if ru {
			continue
		}
		lv, lu := l.bitState(i)
		rv, _ := r.bitState(i)
		if lu || lv != rv {
			eq = false
			break
		}
	}
	if op == types.BinWildcardNotEq {
		eq = !eq
	}
	return boolConstant(eq)
}

func (ev *Evaluator) evalConditional(e *Expression) (ConstantValue, bool) {
	pred, ok := ev.Evaluate(e.CondPredicate)
	if !ok || pred.Kind != ConstantInteger {
		return ConstantValue{}, false
	}
	t := toTristate(pred.Int)
	if t == 1 {
		return ev.Evaluate(e.CondThen)
	}
	if t == 0 {
		return ev.Evaluate(e.CondElse)
	}
	thenV, ok1 := ev.Evaluate(e.CondThen)
	elseV, ok2 := ev.Evaluate(e.CondElse)
	if !ok1 || !ok2 || thenV.Kind != ConstantInteger || elseV.Kind != ConstantInteger {
		width := ev.Types.BitWidth(e.Type)
		return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(nil, maskFor(width), nil, width, false)}, true
	}
	width := ev.Types.BitWidth(e.Type)
	bits, unknown := zeroBig(), zeroBig()
	for i := uint(0); i < uint(width); i++ {
		tv, tu := thenV.Int.bitState(i)
		ev2, eu := elseV.Int.bitState(i)
		if tu || eu || tv != ev2 {
			unknown.SetBit(unknown, int(i), 1)
			continue
		}
		if tv == 1 {
			bits.SetBit(bits, int(i), 1)
		}
	}
	return ConstantValue{Kind: ConstantInteger, Int: newConstantInt(bits, unknown, nil, width, false)}, true
}
