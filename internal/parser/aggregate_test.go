package parser

import (
	"testing"

	"surgehdl/internal/ast"
)

func TestParseStructVariableDeclaration(t *testing.T) {
	src := `module m;
  struct packed {
    logic [7:0] a;
    logic [7:0] b;
  } s;
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	if len(def.Body) != 1 || def.Body[0].Kind != ast.MemberVariable {
		t.Fatalf("expected one variable member, got %+v", def.Body)
	}
	typeExpr := tree.Get(def.Body[0].Variable.TypeExpr)
	if typeExpr == nil || typeExpr.Kind != ast.ExprDataType {
		t.Fatalf("expected a data type node, got %+v", typeExpr)
	}
	if typeExpr.IsUnion {
		t.Fatalf("expected a struct, not a union")
	}
	if len(typeExpr.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(typeExpr.Members))
	}
}

func TestParseUnionVariableDeclaration(t *testing.T) {
	src := `module m;
  union {
    int i;
    logic [31:0] bits;
  } u;
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	typeExpr := tree.Get(def.Body[0].Variable.TypeExpr)
	if typeExpr == nil || !typeExpr.IsUnion {
		t.Fatalf("expected a union data type, got %+v", typeExpr)
	}
	if len(typeExpr.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(typeExpr.Members))
	}
}

func TestParseEnumVariableDeclaration(t *testing.T) {
	src := `module m;
  enum { IDLE, RUNNING, DONE = 4 } state;
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	typeExpr := tree.Get(def.Body[0].Variable.TypeExpr)
	if typeExpr == nil || typeExpr.Kind != ast.ExprDataType {
		t.Fatalf("expected a data type node, got %+v", typeExpr)
	}
	if typeExpr.EnumBase.IsValid() {
		t.Fatalf("expected the implicit base for an unqualified enum")
	}
	if len(typeExpr.Enumerators) != 3 {
		t.Fatalf("expected 3 enumerators, got %d", len(typeExpr.Enumerators))
	}
	if typeExpr.Enumerators[0].Value.IsValid() {
		t.Fatalf("expected the first enumerator to have no explicit value")
	}
	last := typeExpr.Enumerators[2]
	val := tree.Get(last.Value)
	if val == nil || val.Kind != ast.ExprLiteral {
		t.Fatalf("expected DONE's explicit value to be a literal, got %+v", val)
	}
}

func TestParseEnumWithExplicitBase(t *testing.T) {
	src := `module m;
  enum byte { A, B } tag;
endmodule`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def := tree.Definitions[0]
	typeExpr := tree.Get(def.Body[0].Variable.TypeExpr)
	base := tree.Get(typeExpr.EnumBase)
	if base == nil || base.Kind != ast.ExprDataType {
		t.Fatalf("expected an explicit base data type, got %+v", base)
	}
}
