package symbols

import (
	"fmt"

	"surgehdl/internal/diag"
	"surgehdl/internal/source"
)

// KindMask restricts lookup to specific symbol kinds.
type KindMask uint32

const (
	// KindMaskNone filters out all kinds.
	KindMaskNone KindMask = 0
	// KindMaskAny allows all kinds.
	KindMaskAny KindMask = ^KindMask(0)
)

// Mask converts a symbol kind into a KindMask bit.
func (k SymbolKind) Mask() KindMask {
	return KindMask(1) << uint(k)
}

func matchKind(mask KindMask, kind SymbolKind) bool {
	return mask == KindMaskAny || mask&kind.Mask() != 0
}

// Resolver drives scope management and declaration/lookup routines over a
// Table. It is a thin, stateful cursor: the compilation manager owns the
// Table itself and may run several Resolvers (or none) over its lifetime.
type Resolver struct {
	table    *Table
	reporter diag.Reporter
	stack    []ScopeID
}

// NewResolver wires a resolver to an existing scope stack. If root is valid
// it becomes the current scope; otherwise scope-sensitive operations are
// no-ops until Enter is called.
func NewResolver(table *Table, root ScopeID, reporter diag.Reporter) *Resolver {
	r := &Resolver{
		table:    table,
		reporter: reporter,
		stack:    make([]ScopeID, 0, 8),
	}
	if root.IsValid() {
		r.stack = append(r.stack, root)
	}
	return r
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (r *Resolver) Enter(kind ScopeKind, owner ScopeOwner, span source.Span) ScopeID {
	parent := r.CurrentScope()
	scope := r.table.Scopes.New(kind, parent, owner, span)
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope. A mismatch against the expected scope is an
// invariant breach (spec 7: "aborts — used only for invariant breaches"),
// not a diagnostic, so it panics rather than reporting.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		panic("symbols: Leave called with an empty scope stack")
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic(fmt.Sprintf("symbols: scope stack mismatch: closing scope #%d while expecting #%d", top, expected))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs a symbol into the current scope. Returns false if there
// is no active scope or the declaration conflicts with an existing entry.
func (r *Resolver) Declare(name source.StringID, span source.Span, kind SymbolKind, flags SymbolFlags, decl SymbolDecl) (SymbolID, bool) {
	scopeID := r.CurrentScope()
	if !scopeID.IsValid() {
		return NoSymbolID, false
	}
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}

	if existing := scope.NameIndex[name]; len(existing) > 0 {
		prev := r.table.Symbols.Get(existing[len(existing)-1])
		if prev != nil {
			r.reportDuplicateDefinition(name, span, prev.Span)
			return NoSymbolID, false
		}
	}

	id := r.declareWithoutChecks(scopeID, name, span, kind, flags, decl)
	return id, id.IsValid()
}

func (r *Resolver) declareWithoutChecks(scopeID ScopeID, name source.StringID, span source.Span, kind SymbolKind, flags SymbolFlags, decl SymbolDecl) SymbolID {
	sym := Symbol{
		Name:   name,
		Kind:   kind,
		Parent: scopeID,
		Span:   span,
		Flags:  flags,
		Decl:   decl,
	}
	id := r.table.Symbols.New(&sym)
	if scope := r.table.Scopes.Get(scopeID); scope != nil {
		scope.Symbols = append(scope.Symbols, id)
		scope.NameIndex[name] = append(scope.NameIndex[name], id)
	}
	return id
}

// DeclareSymbol installs an already-built Symbol value (used by the
// compilation manager when it needs to fill in kind-specific payload before
// the symbol becomes visible, e.g. a definition's Params/Ports).
func (r *Resolver) DeclareSymbol(scopeID ScopeID, sym Symbol) SymbolID {
	if !scopeID.IsValid() {
		return NoSymbolID
	}
	sym.Parent = scopeID
	id := r.table.Symbols.New(&sym)
	if scope := r.table.Scopes.Get(scopeID); scope != nil {
		scope.Symbols = append(scope.Symbols, id)
		scope.NameIndex[sym.Name] = append(scope.NameIndex[sym.Name], id)
	}
	return id
}

// Lookup walks the scope chain starting at the current scope, realizing
// deferred members it encounters along the way, searching for name.
func (r *Resolver) Lookup(name source.StringID) (SymbolID, bool) {
	return r.LookupFrom(r.CurrentScope(), name, KindMaskAny)
}

// LookupFrom is Lookup starting from an explicit scope rather than the
// resolver's current cursor (spec 4.4: "from the context's lookup location").
func (r *Resolver) LookupFrom(scopeID ScopeID, name source.StringID, mask KindMask) (SymbolID, bool) {
	if mask == KindMaskNone {
		return NoSymbolID, false
	}
	for scopeID.IsValid() {
		scope := r.table.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		if id, ok := r.lookupInScopeRealizing(scopeID, name, mask); ok {
			return id, true
		}
		scopeID = scope.Parent
	}
	return NoSymbolID, false
}

// lookupInScopeRealizing checks a single scope's name index, realizing the
// matching deferred member first if lookup has not visited it yet.
func (r *Resolver) lookupInScopeRealizing(scopeID ScopeID, name source.StringID, mask KindMask) (SymbolID, bool) {
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	if ids := scope.NameIndex[name]; len(ids) > 0 {
		for i := len(ids) - 1; i >= 0; i-- {
			if sym := r.table.Symbols.Get(ids[i]); sym != nil && matchKind(mask, sym.Kind) {
				return ids[i], true
			}
		}
	}
	if d := scope.FindDeferred(name); d != nil {
		id := r.realizer(scopeID, d)
		if id.IsValid() {
			if sym := r.table.Symbols.Get(id); sym != nil && matchKind(mask, sym.Kind) {
				return id, true
			}
		}
	}
	if scope.ImportSet.IsValid() {
		for _, pkgID := range r.table.ImportTargets(scope.ImportSet) {
			pkg := r.table.Symbols.Get(pkgID)
			if pkg == nil || !pkg.OwnScope.IsValid() {
				continue
			}
			if id, ok := r.lookupInScopeRealizing(pkg.OwnScope, name, mask); ok {
				return id, true
			}
		}
	}
	return NoSymbolID, false
}

// Realizer turns a queued DeferredMember into a concrete Symbol. The
// compilation manager installs this function once it knows how to interpret
// ast.Member payloads; leaving it nil means deferred members are never
// realized (useful for tests that only exercise eager declarations).
type Realizer func(scope ScopeID, deferred *DeferredMember) SymbolID

func (r *Resolver) realizer(scope ScopeID, d *DeferredMember) SymbolID {
	if r.table.realize == nil || d.Realized {
		if d.Realized {
			return d.Symbol
		}
		return NoSymbolID
	}
	id := r.table.realize(scope, d)
	d.Realized = true
	d.Symbol = id
	return id
}

func (r *Resolver) reportDuplicateDefinition(name source.StringID, span, prevSpan source.Span) {
	if r.reporter == nil {
		return
	}
	nameStr := r.table.Strings.MustLookup(name)
	msg := fmt.Sprintf("duplicate declaration of '%s'", nameStr)
	builder := diag.ReportError(r.reporter, diag.SemaDuplicateDefinition, span, msg)
	if builder == nil {
		return
	}
	if prevSpan != (source.Span{}) {
		builder.WithNote(prevSpan, "previous declaration here")
	}
	builder.Emit()
}
