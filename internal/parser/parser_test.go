package parser

import (
	"testing"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/preprocessor"
	"surgehdl/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.File, *diag.Bag) {
	t.Helper()

	fset := source.NewFileSet()
	fileID := fset.AddVirtual("test.sv", []byte(input))
	file := fset.Get(fileID)

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}

	strings := source.NewInterner()
	pp := preprocessor.New(fset, file, preprocessor.Options{Reporter: reporter})

	tree := ParseFile(pp, ast.FileID(1), fileID, strings, reporter)
	return tree, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	s := ""
	for _, d := range bag.Items() {
		s += d.Message + "; "
	}
	return s
}

func TestParseEmptyModule(t *testing.T) {
	tree, bag := parseSource(t, `module foo; endmodule`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	if len(tree.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(tree.Definitions))
	}
	def := tree.Definitions[0]
	if def.Kind != ast.DefinitionModule {
		t.Fatalf("expected a module definition, got kind %d", def.Kind)
	}
	if len(def.Body) != 0 {
		t.Fatalf("expected an empty body, got %d members", len(def.Body))
	}
}

func TestParseModulePortsAndParams(t *testing.T) {
	src := `module adder #(parameter WIDTH = 8) (input logic [WIDTH-1:0] a, input logic [WIDTH-1:0] b, output logic [WIDTH-1:0] sum);
  assign sum = a + b;
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	if len(tree.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(tree.Definitions))
	}
	def := tree.Definitions[0]
	if len(def.Params) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(def.Params))
	}
	if len(def.Ports) != 3 {
		t.Fatalf("expected 3 ports, got %d", len(def.Ports))
	}
	if len(def.Body) != 1 || def.Body[0].Kind != ast.MemberContinuousAssign {
		t.Fatalf("expected a single continuous assign member, got %+v", def.Body)
	}
}

func TestParseVariableDeclarationWithMultipleDeclarators(t *testing.T) {
	tree, bag := parseSource(t, `module m; logic a, b, c; endmodule`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	if len(def.Body) != 3 {
		t.Fatalf("expected 3 variable members, got %d", len(def.Body))
	}
	for _, m := range def.Body {
		if m.Kind != ast.MemberVariable {
			t.Fatalf("expected all members to be variable declarations, got kind %d", m.Kind)
		}
	}
}

func TestParseInstantiation(t *testing.T) {
	src := `module top;
  wire clk;
  adder u_adder (.a(x), .b(y), .sum(z));
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	var found *ast.Member
	for i := range def.Body {
		if def.Body[i].Kind == ast.MemberInstance {
			found = &def.Body[i]
		}
	}
	if found == nil {
		t.Fatalf("expected an instance member in %+v", def.Body)
	}
	if len(found.Instance.PortConns) != 3 {
		t.Fatalf("expected 3 port connections, got %d", len(found.Instance.PortConns))
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	src := `module m;
  function integer add2(integer a, integer b);
    return a + b;
  endfunction
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	if len(def.Body) != 1 || def.Body[0].Kind != ast.MemberSubroutine {
		t.Fatalf("expected a single subroutine member, got %+v", def.Body)
	}
	sub := def.Body[0].Subroutine
	if !sub.IsFunction {
		t.Fatalf("expected IsFunction=true")
	}
	if len(sub.Formals) != 2 {
		t.Fatalf("expected 2 formals, got %d", len(sub.Formals))
	}
	if len(sub.Body) != 1 || sub.Body[0].Kind != ast.StmtReturn {
		t.Fatalf("expected a single return statement, got %+v", sub.Body)
	}
}

func TestParseNestedModule(t *testing.T) {
	src := `module outer;
  module inner; endmodule
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	if len(def.Nested) != 1 {
		t.Fatalf("expected 1 nested definition, got %d", len(def.Nested))
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tree, bag := parseSource(t, `module m; assign y = a + b * c; endmodule`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	assignExpr := tree.Get(def.Body[0].Assign)
	if assignExpr == nil || assignExpr.Kind != ast.ExprBinary {
		t.Fatalf("expected the assign body to be a binary node")
	}
	rhs := tree.Get(assignExpr.BinaryRight)
	if rhs == nil || rhs.Kind != ast.ExprBinary {
		t.Fatalf("expected top-level rhs operator to be '+', got %+v", rhs)
	}
	mulOperand := tree.Get(rhs.BinaryRight)
	if mulOperand == nil || mulOperand.Kind != ast.ExprBinary {
		t.Fatalf("expected b*c to bind tighter than +, got %+v", mulOperand)
	}
}

func TestParseConcatenationAndReplication(t *testing.T) {
	tree, bag := parseSource(t, `module m; assign y = {4{a}}; endmodule`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	assignExpr := tree.Get(def.Body[0].Assign)
	rhs := tree.Get(assignExpr.BinaryRight)
	if rhs == nil || rhs.Kind != ast.ExprReplication {
		t.Fatalf("expected a replication node, got %+v", rhs)
	}
}

func TestParseRangeSelectForms(t *testing.T) {
	tree, bag := parseSource(t, `module m;
  assign a = bus[7:0];
  assign b = bus[off+:8];
  assign c = bus[off-:8];
endmodule`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	wantModes := []ast.RangeSelectMode{ast.RangeSelectConstant, ast.RangeSelectIndexedUp, ast.RangeSelectIndexedDown}
	for i, want := range wantModes {
		assignExpr := tree.Get(def.Body[i].Assign)
		rhs := tree.Get(assignExpr.BinaryRight)
		if rhs == nil || rhs.Kind != ast.ExprRangeSelect {
			t.Fatalf("member %d: expected a range select, got %+v", i, rhs)
		}
		if rhs.SelectMode != want {
			t.Fatalf("member %d: expected mode %d, got %d", i, want, rhs.SelectMode)
		}
	}
}

func TestParseMalformedModuleRecovers(t *testing.T) {
	// A missing semicolon should be reported but must not desynchronize
	// parsing of the rest of the file: the parser should still find
	// endmodule and produce one definition.
	tree, bag := parseSource(t, `module m; assign x = 1 endmodule`)
	if !bag.HasErrors() {
		t.Fatalf("expected at least one diagnostic for malformed input")
	}
	if len(tree.Definitions) != 1 {
		t.Fatalf("expected parsing to still find 1 definition, got %d", len(tree.Definitions))
	}
}
