package symbols

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/source"
)

// ScopeKind enumerates the lexical scope categories the compilation graph
// recognizes (spec 3: "Scope — an ordered list of members plus a name index").
type ScopeKind uint8

const (
	ScopeInvalid         ScopeKind = iota
	ScopeRoot                      // the compilation's single root scope
	ScopeCompilationUnit           // one per added syntax tree
	ScopeDefinition                // module/interface/program body
	ScopeInstance                  // an instantiation's bound port/parameter scope
	ScopePackage
	ScopeSubroutine  // function/task body
	ScopeStructUnion // an aggregate type's member scope (owned by internal/types)
	ScopeGenerateBlock
	ScopeBlock // any other nested block
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeRoot:
		return "root"
	case ScopeCompilationUnit:
		return "compilation-unit"
	case ScopeDefinition:
		return "definition"
	case ScopeInstance:
		return "instance"
	case ScopePackage:
		return "package"
	case ScopeSubroutine:
		return "subroutine"
	case ScopeStructUnion:
		return "struct-union"
	case ScopeGenerateBlock:
		return "generate-block"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// ScopeOwnerKind distinguishes what AST construct, if any, a scope's
// deferred members are expanded from.
type ScopeOwnerKind uint8

const (
	ScopeOwnerUnknown ScopeOwnerKind = iota
	ScopeOwnerFile
	ScopeOwnerDefinition
	ScopeOwnerSubroutine
	ScopeOwnerNone // synthetic scope with no single AST origin (root, prelude)
)

// ScopeOwner references the AST construct a scope's deferred members are
// expanded from, for diagnostics and for re-entering the syntax on demand.
type ScopeOwner struct {
	Kind       ScopeOwnerKind
	SourceFile source.FileID
	ASTFile    ast.FileID
	// DefinitionIndex indexes into the owning File's top-level Definitions
	// slice (or, for a Nested definition, is resolved by the compilation
	// manager's own bookkeeping); -1 when not applicable.
	DefinitionIndex int
}

// DeferredKind classifies what an unrealized scope member still needs done
// before its Symbol exists (spec 3: "addDeferred(member-syntax) records work
// to do on first lookup").
type DeferredKind uint8

const (
	DeferredInvalid DeferredKind = iota
	DeferredVariable
	DeferredParam
	DeferredInstance
	DeferredSubroutine
	DeferredGenvar
)

// DeferredMember is a not-yet-realized scope entry: the raw syntax plus a
// "not yet evaluated" marker. Lookup triggers realization exactly once.
type DeferredMember struct {
	Kind     DeferredKind
	Name     source.StringID
	Span     source.Span
	File     ast.FileID
	Member   ast.Member // the owning definition's body member, by value
	Realized bool
	Symbol   SymbolID // valid once Realized
}

// Scope models a lexical scope with a parent-child hierarchy, an ordered
// member list, a name index for fast lookup, and a queue of members that
// have not yet been turned into Symbols.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ScopeOwner
	Span      source.Span
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
	Deferred  []*DeferredMember
	// ImportSet is the opaque handle to this scope's wildcard-import targets,
	// or NoImportSetID if none have been recorded.
	ImportSet ImportSetID
}

// AddDeferred queues a not-yet-realized member. It does not allocate a
// Symbol; the resolver's lookup path realizes it on first reference by name.
func (s *Scope) AddDeferred(d *DeferredMember) {
	s.Deferred = append(s.Deferred, d)
}

// FindDeferred returns the queued-but-unrealized entry for name, if any.
func (s *Scope) FindDeferred(name source.StringID) *DeferredMember {
	for _, d := range s.Deferred {
		if !d.Realized && d.Name == name {
			return d
		}
	}
	return nil
}
