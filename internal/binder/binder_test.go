package binder

import (
	"math/big"
	"testing"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
	"surgehdl/internal/token"
	"surgehdl/internal/types"
)

// newTestBinder builds a Binder over a fresh, empty ast.File with its own
// symbol table rooted at a single scope, for tests that construct syntax
// nodes directly rather than parsing source text.
func newTestBinder(t *testing.T) (*Binder, *ast.File, symbols.ScopeID) {
	t.Helper()
	strings := source.NewInterner()
	in := types.NewInterner()
	table := symbols.NewTable(symbols.Hints{}, strings)
	root := table.Scopes.New(symbols.ScopeRoot, symbols.NoScopeID, symbols.ScopeOwner{Kind: symbols.ScopeOwnerNone, DefinitionIndex: -1}, source.Span{})
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	resolver := symbols.NewResolver(table, root, reporter)

	file := ast.NewFile(ast.FileID(1), source.FileID(1))
	b := New(file, map[ast.FileID]*ast.File{file.ID: file}, strings, in, table, resolver, reporter)
	return b, file, root
}

func intern(strings *source.Interner, s string) source.StringID {
	return strings.Intern(s)
}

func TestBindUnsizedIntegerLiteralDefaultsTo32Bits(t *testing.T) {
	b, f, _ := newTestBinder(t)
	id := f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{
		Bits: big.NewInt(5), Flags: token.NumericFlags{Signed: true},
	})
	e := b.Bind(BindContext{Scope: symbols.NoScopeID, KindMask: symbols.KindMaskAny}, id)
	if e.IsInvalid() {
		t.Fatalf("expected a valid literal expression")
	}
	if e.Int.Width != 32 {
		t.Fatalf("expected default width 32, got %d", e.Int.Width)
	}
	if got := e.Int.SignedValue().Int64(); got != 5 {
		t.Fatalf("expected value 5, got %d", got)
	}
}

func TestBindBinaryAddWidensToWiderOperand(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	narrow := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{
		Bits: big.NewInt(1), Width: 4,
	})
	wide := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{
		Bits: big.NewInt(1), Width: 16,
	})
	sum := f.Binary(source.Span{}, token.Plus, narrow, wide)

	e := b.Bind(ctx, sum)
	if e.IsInvalid() {
		t.Fatalf("expected a valid binary expression")
	}
	if got := b.Types.BitWidth(e.Type); got != 16 {
		t.Fatalf("expected result width 16, got %d", got)
	}
	if e.BinaryLeft.Kind != ExprConversion {
		t.Fatalf("expected the narrower operand to carry an inserted conversion, got %v", e.BinaryLeft.Kind)
	}
}

func TestBindBinaryShiftAmountDoesNotWidenLeftOperand(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	left := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{Bits: big.NewInt(1), Width: 8})
	amount := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{Bits: big.NewInt(20), Width: 32})
	shl := f.Binary(source.Span{}, token.LessLess, left, amount)

	e := b.Bind(ctx, shl)
	if e.IsInvalid() {
		t.Fatalf("expected a valid shift expression")
	}
	if got := b.Types.BitWidth(e.Type); got != 8 {
		t.Fatalf("expected shift result width to stay 8, got %d", got)
	}
	if e.BinaryLeft.Kind == ExprConversion {
		t.Fatalf("shift amount must not widen the left operand")
	}
}

func TestBindReductionAndProducesFourStateUnknown(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	unknown := new(big.Int)
	unknown.SetBit(unknown, 1, 1) // bit 1 is 'x
	lit := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{
		Bits: big.NewInt(0b1101), Unknown: unknown, Width: 4,
	})
	red := f.UnaryPrefix(source.Span{}, token.Amp, lit)

	e := b.Bind(ctx, red)
	if e.IsInvalid() {
		t.Fatalf("expected a valid reduction expression")
	}
	ev := NewEvaluator(b.Types, nil)
	v, ok := ev.Evaluate(e)
	if !ok || v.Kind != ConstantInteger {
		t.Fatalf("expected a constant integer result")
	}
	// bit 0 is 1, bit 1 is x, bit 2 is 1, bit 3 is 1: AND-reduction sees an
	// unknown bit and no 0 bit, so the overall result is unknown.
	if !v.Int.HasUnknown() {
		t.Fatalf("expected an unknown reduction result, got %+v", v.Int)
	}
}

func TestBindNameResolvesDeclaredVariable(t *testing.T) {
	b, f, root := newTestBinder(t)
	widthType := f.DataType(source.Span{}, intern(b.Strings, "logic"), []ast.ExprID{
		f.RangeSelect(source.Span{}, ast.NoExprID,
			f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(7), Width: 32}),
			f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(0), Width: 32}),
			ast.RangeSelectConstant),
	})
	nameID := intern(b.Strings, "count")
	sym := b.Resolver.DeclareSymbol(root, symbols.Symbol{
		Name: nameID, Kind: symbols.SymbolVariable,
	})
	symObj := b.Table.Symbols.Get(sym)
	symObj.TypeExprFile = f.ID
	symObj.TypeExpr = widthType

	ref := f.Name(source.Span{}, nameID)
	e := b.Bind(BindContext{Scope: root, KindMask: symbols.KindMaskAny}, ref)
	if e.IsInvalid() {
		t.Fatalf("expected the identifier to resolve")
	}
	if e.Kind != ExprNamedValue || e.Symbol != sym {
		t.Fatalf("expected a named-value expression bound to the declared symbol")
	}
	if got := b.Types.BitWidth(e.Type); got != 8 {
		t.Fatalf("expected an 8-bit packed type, got %d", got)
	}
}

func TestConvertAssignmentInsertsTruncatingConversion(t *testing.T) {
	b, _, _ := newTestBinder(t)
	wide := &Expression{Kind: ExprIntegerLiteral, Type: b.Types.GetType(16, false, false, false), Int: newConstantInt(big.NewInt(1), nil, nil, 16, false)}
	narrowType := b.Types.GetType(4, false, false, false)

	converted := b.ConvertAssignment(narrowType, wide)
	if converted.IsInvalid() {
		t.Fatalf("expected assignment conversion to succeed")
	}
	if converted.Kind != ExprConversion || converted.ConversionKind != ConversionTruncate {
		t.Fatalf("expected a truncating conversion, got %+v", converted)
	}
}

func TestBindAssignmentRejectsNonLvalueTarget(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	lhs := f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(1), Width: 1})
	rhs := f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(0), Width: 1})
	assign := f.Binary(source.Span{}, token.Equals, lhs, rhs)

	e := b.Bind(ctx, assign)
	if !e.IsInvalid() {
		t.Fatalf("expected assignment to a non-lvalue to fail")
	}
}

func TestBindCaseEqualityIsAlwaysFullyKnown(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	unknown := new(big.Int)
	unknown.SetBit(unknown, 0, 1)
	lhs := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{Unknown: unknown, Width: 4})
	rhs := f.Literal(source.Span{}, token.IntegerBase, token.IntValue{Unknown: unknown, Width: 4})
	caseEq := f.Binary(source.Span{}, token.EqualsEqualsEquals, lhs, rhs)

	e := b.Bind(ctx, caseEq)
	if e.IsInvalid() {
		t.Fatalf("expected a valid case-equality expression")
	}
	ev := NewEvaluator(b.Types, nil)
	v, ok := ev.Evaluate(e)
	if !ok || v.Kind != ConstantInteger || v.Int.HasUnknown() {
		t.Fatalf("expected case equality of two identical x-patterns to be known-true, got %+v", v)
	}
	if v.Int.Bits.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected true, got %+v", v.Int.Bits)
	}
}

func TestBindReplicationRejectsNegativeCount(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	neg := f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(-1), Width: 32, Flags: token.NumericFlags{Signed: true}})
	body := f.Literal(source.Span{}, token.IntegerLiteral, token.IntValue{Bits: big.NewInt(1), Width: 1})
	repl := f.Replication(source.Span{}, neg, body)

	e := b.Bind(ctx, repl)
	if !e.IsInvalid() {
		t.Fatalf("expected a negative replication count to be rejected")
	}
}
