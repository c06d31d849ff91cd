package binder

import (
	"testing"

	"surgehdl/internal/ast"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
	"surgehdl/internal/token"
)

func declareLogic(t *testing.T, b *Binder, f *ast.File, name string) ast.ExprID {
	t.Helper()
	logicType := f.DataType(source.Span{}, intern(b.Strings, "logic"), nil)
	nameID := intern(b.Strings, name)
	sym, ok := b.Resolver.Declare(nameID, source.Span{}, symbols.SymbolVariable, 0, symbols.SymbolDecl{})
	if !ok {
		t.Fatalf("failed to declare variable %q", name)
	}
	v := b.Table.Symbols.Get(sym)
	v.TypeExprFile = f.ID
	v.TypeExpr = logicType
	return f.Name(source.Span{}, nameID)
}

func TestBindProceduralAssignmentBinds(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	q := declareLogic(t, b, f, "q")
	d := declareLogic(t, b, f, "d")
	assign := f.Binary(source.Span{}, token.Equals, q, d)

	pd := ast.ProceduralDecl{Kind: ast.ProcAlwaysComb, ImplicitSensitivity: true, Body: []ast.Stmt{
		{Kind: ast.StmtExpr, Expr: assign},
	}}
	out := b.BindProceduralBlock(ctx, &pd)
	if len(out) != 1 || out[0].IsInvalid() {
		t.Fatalf("expected one valid bound assignment, got %+v", out)
	}
	if out[0].Kind != ExprAssignment {
		t.Fatalf("expected an assignment expression, got %v", out[0].Kind)
	}
}

func TestBindProceduralIfElseBindsBothBranches(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	rst := declareLogic(t, b, f, "rst")
	q := declareLogic(t, b, f, "q")
	d := declareLogic(t, b, f, "d")

	thenAssign := f.Binary(source.Span{}, token.Equals, q, d)
	elseAssign := f.Binary(source.Span{}, token.Equals, q, rst)

	ifStmt := ast.Stmt{
		Kind: ast.StmtIf,
		Expr: rst,
		Then: []ast.Stmt{{Kind: ast.StmtExpr, Expr: thenAssign}},
		Else: []ast.Stmt{{Kind: ast.StmtExpr, Expr: elseAssign}},
	}
	pd := ast.ProceduralDecl{Kind: ast.ProcAlways, Body: []ast.Stmt{ifStmt}}

	out := b.BindProceduralBlock(ctx, &pd)
	if len(out) != 3 {
		t.Fatalf("expected 3 bound expressions (condition + both branches), got %d", len(out))
	}
	for i, e := range out {
		if e.IsInvalid() {
			t.Fatalf("expected bound expression %d to be valid", i)
		}
	}
}

func TestBindProceduralSensitivityListBindsNamedSignals(t *testing.T) {
	b, f, root := newTestBinder(t)
	ctx := BindContext{Scope: root, KindMask: symbols.KindMaskAny}

	clk := declareLogic(t, b, f, "clk")
	pd := ast.ProceduralDecl{Kind: ast.ProcAlways, Sensitivity: []ast.ExprID{clk}}

	out := b.BindProceduralBlock(ctx, &pd)
	if len(out) != 1 || out[0].IsInvalid() {
		t.Fatalf("expected the sensitivity expression to bind, got %+v", out)
	}
}
