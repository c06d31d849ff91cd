package compilation

import (
	"testing"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/parser"
	"surgehdl/internal/preprocessor"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
)

func TestAddSyntaxTreeRegistersTopLevelDefinition(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	tree, parseBag, _, strings, _ := parseSnippetWithInterner(t, c, `module top; endmodule`)

	if !c.AddSyntaxTree(tree, parseBag) {
		t.Fatalf("AddSyntaxTree rejected a fresh compilation")
	}

	name := strings.Intern("top")
	id, ok := c.GetDefinition(name, c.RootScope)
	if !ok {
		t.Fatalf("expected 'top' to be registered as a definition")
	}
	sym := c.Table.Symbols.Get(id)
	if sym == nil || sym.Kind != symbols.SymbolDefinition {
		t.Fatalf("expected a SymbolDefinition, got %+v", sym)
	}
	if sym.DefKind != ast.DefinitionModule {
		t.Fatalf("expected DefinitionModule, got %d", sym.DefKind)
	}
}

func TestAddSyntaxTreeRejectsAfterFinalize(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	tree, parseBag, _, _, _ := parseSnippetWithInterner(t, c, `module top; endmodule`)
	c.AddSyntaxTree(tree, parseBag)
	c.GetRoot()

	tree2, parseBag2, _, _, _ := parseSnippetWithInterner(t, c, `module other; endmodule`)
	if c.AddSyntaxTree(tree2, parseBag2) {
		t.Fatalf("expected AddSyntaxTree to reject a tree after finalization")
	}
	diags := c.GetSemanticDiagnostics()
	found := false
	for _, d := range diags {
		if d.Code == diag.SemaCompilationFinalized {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SemaCompilationFinalized diagnostic, got %+v", diags)
	}
}

func TestGetRootSynthesizesOnlyUninstantiatedModules(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	src := `module leaf; endmodule
module top;
  leaf u_leaf ();
endmodule`
	tree, parseBag, _, strings, _ := parseSnippetWithInterner(t, c, src)
	c.AddSyntaxTree(tree, parseBag)

	_, topLevel := c.GetRoot()
	if len(topLevel) != 1 {
		t.Fatalf("expected exactly 1 top-level instance, got %d", len(topLevel))
	}
	sym := c.Table.Symbols.Get(topLevel[0])
	if sym == nil {
		t.Fatalf("expected a valid top-level symbol")
	}
	wantTop := strings.Intern("top")
	if sym.Name != wantTop {
		t.Fatalf("expected top-level instance to be 'top', got %q", strings.MustLookup(sym.Name))
	}
}

func TestGetRootIsIdempotent(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	tree, parseBag, _, _, _ := parseSnippetWithInterner(t, c, `module top; endmodule`)
	c.AddSyntaxTree(tree, parseBag)

	_, first := c.GetRoot()
	_, second := c.GetRoot()
	if len(first) != len(second) {
		t.Fatalf("expected idempotent GetRoot, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected the same SymbolIDs across calls")
		}
	}
}

func TestDuplicateDefinitionReportsDiagnostic(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	src := `module dup; endmodule
module dup; endmodule`
	tree, parseBag, _, _, _ := parseSnippetWithInterner(t, c, src)
	c.AddSyntaxTree(tree, parseBag)

	diags := c.GetSemanticDiagnostics()
	found := false
	for _, d := range diags {
		if d.Code == diag.SemaDuplicateDefinition {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SemaDuplicateDefinition diagnostic, got %+v", diags)
	}
}

func TestRealizeVariableOnLookup(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	tree, parseBag, _, strings, _ := parseSnippetWithInterner(t, c, `module top; logic [7:0] counter; endmodule`)
	c.AddSyntaxTree(tree, parseBag)

	defID, ok := c.GetDefinition(strings.Intern("top"), c.RootScope)
	if !ok {
		t.Fatalf("expected 'top' to be registered")
	}
	defSym := c.Table.Symbols.Get(defID)
	scope := defSym.OwnScope

	id, ok := c.Resolver.LookupFrom(scope, strings.Intern("counter"), symbols.KindMaskAny)
	if !ok {
		t.Fatalf("expected 'counter' to realize on lookup")
	}
	sym := c.Table.Symbols.Get(id)
	if sym == nil || sym.Kind != symbols.SymbolVariable {
		t.Fatalf("expected a SymbolVariable, got %+v", sym)
	}
}

func TestRealizeInstanceResolvesDefinition(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	src := `module leaf; endmodule
module top;
  leaf u_leaf ();
endmodule`
	tree, parseBag, _, strings, _ := parseSnippetWithInterner(t, c, src)
	c.AddSyntaxTree(tree, parseBag)

	defID, _ := c.GetDefinition(strings.Intern("top"), c.RootScope)
	scope := c.Table.Symbols.Get(defID).OwnScope

	id, ok := c.Resolver.LookupFrom(scope, strings.Intern("u_leaf"), symbols.KindMaskAny)
	if !ok {
		t.Fatalf("expected 'u_leaf' to realize on lookup")
	}
	instSym := c.Table.Symbols.Get(id)
	if instSym == nil || instSym.Kind != symbols.SymbolInstance {
		t.Fatalf("expected a SymbolInstance, got %+v", instSym)
	}
	if instSym.InstanceOf == symbols.NoSymbolID {
		t.Fatalf("expected InstanceOf to resolve to the 'leaf' definition")
	}
	leafDef := c.Table.Symbols.Get(instSym.InstanceOf)
	if leafDef == nil || leafDef.Name != strings.Intern("leaf") {
		t.Fatalf("expected InstanceOf to point at 'leaf'")
	}
}

func TestRealizeInstanceOfUnknownDefinitionReportsDiagnostic(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	src := `module top;
  ghost u_ghost ();
endmodule`
	tree, parseBag, _, strings, _ := parseSnippetWithInterner(t, c, src)
	c.AddSyntaxTree(tree, parseBag)

	defID, _ := c.GetDefinition(strings.Intern("top"), c.RootScope)
	scope := c.Table.Symbols.Get(defID).OwnScope
	c.Resolver.LookupFrom(scope, strings.Intern("u_ghost"), symbols.KindMaskAny)

	diags := c.GetSemanticDiagnostics()
	found := false
	for _, d := range diags {
		if d.Code == diag.SemaUnknownName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SemaUnknownName diagnostic, got %+v", diags)
	}
}

func TestRealizeSubroutineDeclaresFormals(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	src := `module top;
  function integer add2(integer a, integer b);
    return a + b;
  endfunction
endmodule`
	tree, parseBag, _, strings, _ := parseSnippetWithInterner(t, c, src)
	c.AddSyntaxTree(tree, parseBag)

	defID, _ := c.GetDefinition(strings.Intern("top"), c.RootScope)
	scope := c.Table.Symbols.Get(defID).OwnScope

	id, ok := c.Resolver.LookupFrom(scope, strings.Intern("add2"), symbols.KindMaskAny)
	if !ok {
		t.Fatalf("expected 'add2' to realize on lookup")
	}
	sub := c.Table.Symbols.Get(id)
	if sub == nil || sub.Kind != symbols.SymbolSubroutine {
		t.Fatalf("expected a SymbolSubroutine, got %+v", sub)
	}
	if len(sub.Formals) != 2 {
		t.Fatalf("expected 2 formals, got %d", len(sub.Formals))
	}
	for _, f := range sub.Formals {
		if f.Symbol == symbols.NoSymbolID {
			t.Fatalf("expected every formal to have a declared SymbolFormalArgument")
		}
	}
}

func TestGetSemanticDiagnosticsForcesUnreachedRealization(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	src := `module top;
  ghost u_ghost ();
endmodule`
	tree, parseBag, _, _, _ := parseSnippetWithInterner(t, c, src)
	c.AddSyntaxTree(tree, parseBag)

	// No explicit lookup of u_ghost here: GetSemanticDiagnostics must force
	// realization of every deferred member itself.
	diags := c.GetSemanticDiagnostics()
	found := false
	for _, d := range diags {
		if d.Code == diag.SemaUnknownName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected forceAllRealization to surface the unresolved instance target, got %+v", diags)
	}
}

func TestGetParseDiagnosticsCollectsAcrossTrees(t *testing.T) {
	fset := source.NewFileSet()
	c := NewCompilation(fset)
	tree1, bag1, _, _, _ := parseSnippetWithInterner(t, c, `module a; assign x = 1 endmodule`)
	tree2, bag2, _, _, _ := parseSnippetWithInterner(t, c, `module b; endmodule`)
	c.AddSyntaxTree(tree1, bag1)
	c.AddSyntaxTree(tree2, bag2)

	diags := c.GetParseDiagnostics()
	if len(diags) == 0 {
		t.Fatalf("expected the malformed first tree's diagnostics to surface")
	}
}

// parseSnippetWithInterner parses src using the compilation's own string
// interner, so identifiers resolve against the same StringIDs the test
// later looks up by name.
func parseSnippetWithInterner(t *testing.T, c *Compilation, src string) (*ast.File, *diag.Bag, *source.FileSet, *source.Interner, source.FileID) {
	t.Helper()

	fileID := c.FileSet.AddVirtual("test.sv", []byte(src))
	file := c.FileSet.Get(fileID)

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	pp := preprocessor.New(c.FileSet, file, preprocessor.Options{Reporter: reporter})

	tree := parser.ParseFile(pp, ast.FileID(len(c.trees)+1), fileID, c.Strings, reporter)
	return tree, bag, c.FileSet, c.Strings, fileID
}
