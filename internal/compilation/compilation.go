// Package compilation implements the compilation manager (C8): the object
// that unifies type interning, the symbol/scope graph, and deferred
// diagnostic realization across every syntax tree added to it.
package compilation

import (
	"sort"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
	"surgehdl/internal/types"
)

// definitionKey is the (name, scope) pair definitionMap is keyed by.
type definitionKey struct {
	name  source.StringID
	scope symbols.ScopeID
}

// treeEntry pairs one added syntax tree with the diagnostics its
// lex/preprocess/parse phases already produced.
type treeEntry struct {
	file       *ast.File
	parseDiags *diag.Bag
	sourceFile source.FileID
	unitScope  symbols.ScopeID
}

// Compilation aggregates every resource shared across a compilation run: the
// type interner, the symbol table, added syntax trees, and the definition
// registry. It is single-threaded by contract once addSyntaxTree has been
// called on it (see Package doc / spec 5); ParseFiles is the only piece of
// this package that runs concurrently, and it does so strictly before any
// tree is registered.
type Compilation struct {
	FileSet  *source.FileSet
	Strings  *source.Interner
	Types    *types.Interner
	Table    *symbols.Table
	Resolver *symbols.Resolver
	Reporter diag.Reporter

	RootScope symbols.ScopeID

	trees []treeEntry

	definitions map[definitionKey]symbols.SymbolID
	// referencedAsInstance records definition names that were seen as the
	// target of an instantiation somewhere in the compilation, so getRoot
	// knows which module definitions still need a synthesized top-level
	// instance.
	referencedAsInstance map[source.StringID]bool

	packages          map[source.StringID]symbols.SymbolID
	systemSubroutines map[string]SystemSubroutineInfo

	semaBag   *diag.Bag
	finalized bool
	topLevel  []symbols.SymbolID
}

// SystemSubroutineInfo describes one registered system task/function, enough
// for the binder's call-checking to validate arity without re-deriving it.
type SystemSubroutineInfo struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for unbounded
	IsVoid  bool
}

// NewCompilation constructs an empty Compilation over fset. Semantic
// diagnostics (duplicate definitions, unresolved names encountered while
// forcing lazy realization) accumulate in the compilation's own Bag,
// retrievable via GetSemanticDiagnostics; Reporter is exposed for callers
// that want to wrap it (e.g. with diag.DedupReporter) before symbols are
// declared.
func NewCompilation(fset *source.FileSet) *Compilation {
	strings := source.NewInterner()
	table := symbols.NewTable(symbols.Hints{}, strings)
	root := table.Scopes.New(symbols.ScopeRoot, symbols.NoScopeID, symbols.ScopeOwner{Kind: symbols.ScopeOwnerNone, DefinitionIndex: -1}, source.Span{})

	semaBag := diag.NewBag(1000)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: semaBag})

	c := &Compilation{
		FileSet:              fset,
		Strings:              strings,
		Types:                types.NewInterner(),
		Table:                table,
		Reporter:             reporter,
		RootScope:            root,
		definitions:          make(map[definitionKey]symbols.SymbolID),
		referencedAsInstance: make(map[source.StringID]bool),
		packages:             make(map[source.StringID]symbols.SymbolID),
		systemSubroutines:    defaultSystemSubroutines(),
		semaBag:              semaBag,
	}
	c.Resolver = symbols.NewResolver(table, root, reporter)
	table.SetRealizer(c.realize)
	return c
}

func defaultSystemSubroutines() map[string]SystemSubroutineInfo {
	entries := []SystemSubroutineInfo{
		{Name: "$bits", MinArgs: 1, MaxArgs: 1},
		{Name: "$clog2", MinArgs: 1, MaxArgs: 1},
		{Name: "$signed", MinArgs: 1, MaxArgs: 1},
		{Name: "$unsigned", MinArgs: 1, MaxArgs: 1},
		{Name: "$size", MinArgs: 1, MaxArgs: 2},
		{Name: "$left", MinArgs: 1, MaxArgs: 2},
		{Name: "$right", MinArgs: 1, MaxArgs: 2},
		{Name: "$high", MinArgs: 1, MaxArgs: 2},
		{Name: "$low", MinArgs: 1, MaxArgs: 2},
		{Name: "$display", MinArgs: 0, MaxArgs: -1, IsVoid: true},
		{Name: "$write", MinArgs: 0, MaxArgs: -1, IsVoid: true},
		{Name: "$finish", MinArgs: 0, MaxArgs: 1, IsVoid: true},
	}
	m := make(map[string]SystemSubroutineInfo, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}

// SystemSubroutine looks up a registered system task/function by name
// (including the leading '$').
func (c *Compilation) SystemSubroutine(name string) (SystemSubroutineInfo, bool) {
	info, ok := c.systemSubroutines[name]
	return info, ok
}

// RegisterPackage installs a package symbol under name, replacing any
// previous registration; used while realizing package declarations that
// this narrow grammar does not yet parse, and by tests.
func (c *Compilation) RegisterPackage(name source.StringID, sym symbols.SymbolID) {
	c.packages[name] = sym
}

// Package looks up a registered package symbol by name.
func (c *Compilation) Package(name source.StringID) (symbols.SymbolID, bool) {
	sym, ok := c.packages[name]
	return sym, ok
}

// GetType is a passthrough factory to the shared type interner (spec 4.5:
// "interning factory; never fails but returns the error type on invalid
// input").
func (c *Compilation) GetType(width uint32, signed, fourState, reg bool) types.TypeID {
	if width == 0 {
		return c.Types.Builtins().Error
	}
	return c.Types.GetType(width, signed, fourState, reg)
}

// checkNoUnknowns reports SemaValueMustNotBeUnknown at sp when ok is false
// (spec 4.5: "two validity helpers ... for constant expressions").
func (c *Compilation) checkNoUnknowns(ok bool, sp source.Span) bool {
	if ok {
		return true
	}
	diag.ReportError(c.Reporter, diag.SemaValueMustNotBeUnknown, sp, "value must not contain unknown or high-impedance bits in this context").Emit()
	return false
}

// checkPositive reports SemaValueMustBePositive at sp when the constant
// value is not strictly positive.
func (c *Compilation) checkPositive(value int64, sp source.Span) bool {
	if value > 0 {
		return true
	}
	diag.ReportError(c.Reporter, diag.SemaValueMustBePositive, sp, "value must be positive in this context").Emit()
	return false
}

// GetParseDiagnostics returns the lexer/preprocessor/parser diagnostics
// recorded for every added tree, sorted by source location.
func (c *Compilation) GetParseDiagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, t := range c.trees {
		if t.parseDiags == nil {
			continue
		}
		out = append(out, t.parseDiags.Items()...)
	}
	sortDiagnostics(out)
	return out
}

// GetSemanticDiagnostics visits every symbol once, forcing lazy evaluation
// of any deferred member reachable from it, and returns the diagnostics
// produced while doing so, sorted by source location.
func (c *Compilation) GetSemanticDiagnostics() []diag.Diagnostic {
	c.forceAllRealization()
	items := append([]diag.Diagnostic(nil), c.semaBag.Items()...)
	sortDiagnostics(items)
	return items
}

// GetAllDiagnostics returns parse and semantic diagnostics together, sorted
// by source location.
func (c *Compilation) GetAllDiagnostics() []diag.Diagnostic {
	out := append(c.GetParseDiagnostics(), c.GetSemanticDiagnostics()...)
	sortDiagnostics(out)
	return out
}

func sortDiagnostics(items []diag.Diagnostic) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Primary, items[j].Primary
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}

// forceAllRealization walks every scope's symbol and deferred-member lists,
// realizing anything not yet realized, so semantic diagnostics raised only
// on first lookup (e.g. duplicate names discovered while expanding a body)
// are captured even if nothing in the compilation ever looked the name up.
func (c *Compilation) forceAllRealization() {
	n := c.Table.Scopes.Len()
	for i := 1; i <= n; i++ {
		scope := c.Table.Scopes.Get(symbols.ScopeID(i))
		if scope == nil {
			continue
		}
		for _, d := range scope.Deferred {
			if d.Realized {
				continue
			}
			c.Resolver.LookupFrom(symbols.ScopeID(i), d.Name, symbols.KindMaskAny)
		}
	}
}
