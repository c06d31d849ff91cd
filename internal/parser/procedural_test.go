package parser

import (
	"testing"

	"surgehdl/internal/ast"
	"surgehdl/internal/token"
)

func TestParseAlwaysCombWithAssignment(t *testing.T) {
	src := `module m;
  always_comb
    y = a & b;
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	if len(def.Body) != 1 || def.Body[0].Kind != ast.MemberProcedural {
		t.Fatalf("expected one procedural member, got %+v", def.Body)
	}
	pd := def.Body[0].Procedural
	if pd.Kind != ast.ProcAlwaysComb {
		t.Fatalf("expected always_comb, got %v", pd.Kind)
	}
	if !pd.ImplicitSensitivity {
		t.Fatalf("expected always_comb's sensitivity to be implicit")
	}
	if len(pd.Body) != 1 || pd.Body[0].Kind != ast.StmtExpr {
		t.Fatalf("expected one expression statement, got %+v", pd.Body)
	}
}

func TestParseAlwaysWithSensitivityListAndNonblockingAssign(t *testing.T) {
	src := `module m;
  always @(posedge clk, negedge rst_n)
    q <= d;
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	pd := tree.Definitions[0].Body[0].Procedural
	if pd.Kind != ast.ProcAlways {
		t.Fatalf("expected plain always, got %v", pd.Kind)
	}
	if len(pd.Sensitivity) != 2 {
		t.Fatalf("expected 2 sensitivity expressions, got %d", len(pd.Sensitivity))
	}
	if len(pd.Body) != 1 || pd.Body[0].Kind != ast.StmtExpr || !pd.Body[0].Nonblocking {
		t.Fatalf("expected one nonblocking assignment statement, got %+v", pd.Body)
	}
	binExpr := tree.Get(pd.Body[0].Expr)
	if binExpr == nil || binExpr.Kind != ast.ExprBinary || binExpr.BinaryOp != token.Equals {
		t.Fatalf("expected the nonblocking assignment to be stored as an Equals binary node, got %+v", binExpr)
	}
}

func TestParseInitialBlockWithIfElseAndBeginEnd(t *testing.T) {
	src := `module m;
  initial begin
    if (rst)
      state = 0;
    else begin
      state = 1;
      count = count + 1;
    end
  end
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	pd := tree.Definitions[0].Body[0].Procedural
	if pd.Kind != ast.ProcInitial {
		t.Fatalf("expected initial, got %v", pd.Kind)
	}
	if len(pd.Body) != 1 || pd.Body[0].Kind != ast.StmtBlock {
		t.Fatalf("expected the top-level begin/end to parse as one StmtBlock, got %+v", pd.Body)
	}
	inner := pd.Body[0].Body
	if len(inner) != 1 || inner[0].Kind != ast.StmtIf {
		t.Fatalf("expected one if statement inside the block, got %+v", inner)
	}
	ifStmt := inner[0]
	if len(ifStmt.Then) != 1 {
		t.Fatalf("expected one statement in the then branch, got %d", len(ifStmt.Then))
	}
	if len(ifStmt.Else) != 2 {
		t.Fatalf("expected two statements in the else branch, got %d", len(ifStmt.Else))
	}
}

func TestParseAlwaysLatchAtStarSensitivity(t *testing.T) {
	src := `module m;
  always_latch @*
    if (en) q = d;
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	pd := tree.Definitions[0].Body[0].Procedural
	if pd.Kind != ast.ProcAlwaysLatch {
		t.Fatalf("expected always_latch, got %v", pd.Kind)
	}
	if !pd.ImplicitSensitivity {
		t.Fatalf("expected '@*' to set implicit sensitivity")
	}
	if len(pd.Body) != 1 || pd.Body[0].Kind != ast.StmtIf {
		t.Fatalf("expected one if statement, got %+v", pd.Body)
	}
}
