package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"surgehdl/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources for one
// compilation. It owns no diagnostics channel itself; callers (the
// compilation manager, the resolver) supply a Reporter where needed.
type Table struct {
	Scopes     *Scopes
	Symbols    *Symbols
	Strings    *source.Interner
	compUnits  map[source.FileID]ScopeID
	importSets [][]SymbolID // index 0 unused, mirrors the arena sentinel convention
	realize    Realizer
}

// SetRealizer installs the callback used to turn a DeferredMember into a
// concrete Symbol on first lookup. The compilation manager calls this once,
// after it has built enough context (its own ast.File table, diagnostics
// reporter) to interpret ast.Member payloads.
func (t *Table) SetRealizer(fn Realizer) { t.realize = fn }

// NewTable builds a fresh table with optional capacity hints. If strings is
// nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:     NewScopes(scopeCap),
		Symbols:    NewSymbols(symCap),
		Strings:    strings,
		compUnits:  make(map[source.FileID]ScopeID),
		importSets: make([][]SymbolID, 1, 8),
	}
}

// CompilationUnitScope returns (and creates if needed) the compilation-unit
// scope for a given source file, parented under root.
func (t *Table) CompilationUnitScope(root ScopeID, file source.FileID, span source.Span) ScopeID {
	if scope, ok := t.compUnits[file]; ok {
		return scope
	}
	scope := t.Scopes.New(ScopeCompilationUnit, root, ScopeOwner{
		Kind:       ScopeOwnerFile,
		SourceFile: file,
	}, span)
	t.compUnits[file] = scope
	return scope
}

// NewImportSet registers a fresh (initially empty) wildcard-import set and
// returns its opaque handle.
func (t *Table) NewImportSet() ImportSetID {
	t.importSets = append(t.importSets, nil)
	return ImportSetID(len(t.importSets) - 1)
}

// AddImport appends a package symbol to an import set.
func (t *Table) AddImport(id ImportSetID, pkg SymbolID) {
	if !id.IsValid() || int(id) >= len(t.importSets) {
		return
	}
	t.importSets[id] = append(t.importSets[id], pkg)
}

// ImportTargets returns the package symbols recorded in an import set.
func (t *Table) ImportTargets(id ImportSetID) []SymbolID {
	if !id.IsValid() || int(id) >= len(t.importSets) {
		return nil
	}
	return t.importSets[id]
}
