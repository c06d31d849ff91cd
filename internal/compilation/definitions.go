package compilation

import (
	"sort"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/source"
	"surgehdl/internal/symbols"
)

// AddSyntaxTree registers tree's top-level definitions and scans its bodies
// for instantiations (spec 4.5: "requires not-yet-finalized and same source
// manager across trees"). parseDiags holds the lexer/preprocessor/parser
// diagnostics already collected for this tree, retrievable later via
// GetParseDiagnostics.
func (c *Compilation) AddSyntaxTree(tree *ast.File, parseDiags *diag.Bag) bool {
	if c.finalized {
		diag.ReportError(c.Reporter, diag.SemaCompilationFinalized, source.Span{}, "cannot add a syntax tree after the compilation has been finalized").Emit()
		return false
	}

	unitScope := c.Table.CompilationUnitScope(c.RootScope, tree.SourceFile, source.Span{File: tree.SourceFile})
	c.Resolver.DeclareSymbol(c.RootScope, symbols.Symbol{
		Name:     source.NoStringID,
		Kind:     symbols.SymbolCompilationUnit,
		OwnScope: unitScope,
		Decl:     symbols.SymbolDecl{SourceFile: tree.SourceFile, ASTFile: tree.ID, MemberIndex: -1},
	})

	for i := range tree.Definitions {
		c.AddDefinition(&tree.Definitions[i], i, tree, unitScope)
	}

	var shadow []map[source.StringID]bool
	for i := range tree.Definitions {
		c.scanInstantiations(&tree.Definitions[i], shadow)
	}

	c.trees = append(c.trees, treeEntry{file: tree, parseDiags: parseDiags, sourceFile: tree.SourceFile, unitScope: unitScope})
	return true
}

// AddDefinition records a named module/interface/program in the definition
// map keyed by (name, scope); compilation-unit-scoped definitions are
// re-keyed to root so cross-unit lookup works (spec 4.5).
func (c *Compilation) AddDefinition(def *ast.Definition, index int, file *ast.File, scope symbols.ScopeID) symbols.SymbolID {
	declScope := scope
	if s := c.Table.Scopes.Get(scope); s != nil && s.Kind == symbols.ScopeCompilationUnit {
		declScope = c.RootScope
	}

	if prevID, ok := c.definitions[definitionKey{name: def.Name, scope: declScope}]; ok {
		prevSpan := source.Span{}
		if prev := c.Table.Symbols.Get(prevID); prev != nil {
			prevSpan = prev.Span
		}
		builder := diag.ReportError(c.Reporter, diag.SemaDuplicateDefinition, def.Span, "duplicate definition of '"+c.Strings.MustLookup(def.Name)+"'")
		if prevSpan != (source.Span{}) {
			builder.WithNote(prevSpan, "previous definition here")
		}
		builder.Emit()
	}

	sym := symbols.Symbol{
		Name:    def.Name,
		Kind:    symbols.SymbolDefinition,
		Span:    def.Span,
		DefKind: def.Kind,
		DefFile: file.ID,
		DefSpan: def.Span,
		Params:  mergeParamInheritance(def),
		Ports:   def.Ports,
		Decl:    symbols.SymbolDecl{SourceFile: file.SourceFile, ASTFile: file.ID, MemberIndex: index},
	}

	defScope := c.Table.Scopes.New(symbols.ScopeDefinition, declScope, symbols.ScopeOwner{
		Kind:            symbols.ScopeOwnerDefinition,
		SourceFile:      file.SourceFile,
		ASTFile:         file.ID,
		DefinitionIndex: index,
	}, def.Span)
	sym.OwnScope = defScope

	id := c.Resolver.DeclareSymbol(declScope, sym)
	c.definitions[definitionKey{name: def.Name, scope: declScope}] = id

	queueDeferredMembers(c.Table.Scopes.Get(defScope), file.ID, def.Body)

	for i := range def.Nested {
		c.AddDefinition(&def.Nested[i], i, file, defScope)
	}
	return id
}

// mergeParamInheritance merges a definition's header parameter-port list
// with any parameter/localparam declared directly in its body, producing
// the ordered ParamInfo list a SymbolDefinition carries (spec 4.5: "isPort
// /isLocal flags following standard inheritance rules").
func mergeParamInheritance(def *ast.Definition) []symbols.ParamInfo {
	merged := make([]symbols.ParamInfo, 0, len(def.Params)+len(def.Body))
	for _, p := range def.Params {
		merged = append(merged, symbols.ParamInfo{
			Name: p.Name, Span: p.Span, TypeExpr: p.TypeExpr, Default: p.Default,
			IsPort: true, IsLocal: p.IsLocal,
		})
	}
	for _, m := range def.Body {
		if m.Kind != ast.MemberParam {
			continue
		}
		merged = append(merged, symbols.ParamInfo{
			Name: m.Param.Name, Span: m.Param.Span, TypeExpr: m.Param.TypeExpr, Default: m.Param.Default,
			IsPort: false, IsLocal: m.Param.IsLocal,
		})
	}
	return merged
}

// queueDeferredMembers enqueues every body member as a DeferredMember on
// scope, so it is realized into a Symbol only on first lookup (spec 3:
// "addDeferred ... lookup triggers realization exactly once"). MemberParam
// entries are skipped: mergeParamInheritance already copied them onto the
// definition's own Symbol, and queueing them again here would let a
// parameter realize twice under two different SymbolIDs.
func queueDeferredMembers(scope *symbols.Scope, file ast.FileID, members []ast.Member) {
	if scope == nil {
		return
	}
	for _, m := range members {
		if m.Kind == ast.MemberParam {
			continue
		}
		kind, name := deferredKindFor(m)
		if kind == symbols.DeferredInvalid {
			continue
		}
		scope.AddDeferred(&symbols.DeferredMember{
			Kind: kind, Name: name, Span: m.Span, File: file, Member: m,
		})
	}
}

func deferredKindFor(m ast.Member) (symbols.DeferredKind, source.StringID) {
	switch m.Kind {
	case ast.MemberVariable:
		return symbols.DeferredVariable, m.Variable.Name
	case ast.MemberInstance:
		return symbols.DeferredInstance, m.Instance.InstName
	case ast.MemberSubroutine:
		return symbols.DeferredSubroutine, m.Subroutine.Name
	case ast.MemberGenvar:
		return symbols.DeferredGenvar, m.GenvarName
	default:
		return symbols.DeferredInvalid, source.NoStringID
	}
}

// GetDefinition searches the scope chain upward from scope to root for a
// definition named name (spec 4.5).
func (c *Compilation) GetDefinition(name source.StringID, scope symbols.ScopeID) (symbols.SymbolID, bool) {
	for scope.IsValid() {
		if id, ok := c.definitions[definitionKey{name: name, scope: scope}]; ok {
			return id, true
		}
		s := c.Table.Scopes.Get(scope)
		if s == nil {
			break
		}
		scope = s.Parent
	}
	if id, ok := c.definitions[definitionKey{name: name, scope: c.RootScope}]; ok {
		return id, true
	}
	return symbols.NoSymbolID, false
}

// scanInstantiations walks def's body (and its nested definitions)
// recording which definition names are referenced as instantiation targets,
// so GetRoot can tell which top-level modules were never instantiated.
// shadow is a stack of name sets: nested module declarations shadow outer
// definitions of the same name while this scan is in progress (spec 4.5:
// "handled with a stack of name sets").
func (c *Compilation) scanInstantiations(def *ast.Definition, shadow []map[source.StringID]bool) {
	if len(def.Nested) > 0 {
		names := make(map[source.StringID]bool, len(def.Nested))
		for _, n := range def.Nested {
			names[n.Name] = true
		}
		shadow = append(shadow, names)
	}

	for _, m := range def.Body {
		if m.Kind != ast.MemberInstance {
			continue
		}
		if isShadowed(shadow, m.Instance.DefName) {
			continue
		}
		c.referencedAsInstance[m.Instance.DefName] = true
	}

	for i := range def.Nested {
		c.scanInstantiations(&def.Nested[i], shadow)
	}
}

func isShadowed(shadow []map[source.StringID]bool, name source.StringID) bool {
	for _, set := range shadow {
		if set[name] {
			return true
		}
	}
	return false
}

// GetRoot finalizes the compilation on first call: every module definition
// at root scope whose name was never referenced as an instantiation target
// is instantiated once as a top-level instance, sorted by name for
// determinism (spec 4.5, spec 8: "idempotence of finalization"). Subsequent
// calls return the same root scope and top-level list.
func (c *Compilation) GetRoot() (symbols.ScopeID, []symbols.SymbolID) {
	if c.finalized {
		return c.RootScope, c.topLevel
	}
	c.finalized = true

	type candidate struct {
		name string
		sym  symbols.SymbolID
	}
	var candidates []candidate

	n := c.Table.Symbols.Len()
	for i := 1; i <= n; i++ {
		id := symbols.SymbolID(i)
		sym := c.Table.Symbols.Get(id)
		if sym == nil || sym.Kind != symbols.SymbolDefinition || sym.DefKind != ast.DefinitionModule {
			continue
		}
		if sym.Parent != c.RootScope {
			continue
		}
		if c.referencedAsInstance[sym.Name] {
			continue
		}
		candidates = append(candidates, candidate{name: c.Strings.MustLookup(sym.Name), sym: id})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].name < candidates[j].name })

	c.topLevel = make([]symbols.SymbolID, 0, len(candidates))
	for _, cand := range candidates {
		defSym := c.Table.Symbols.Get(cand.sym)
		instSym := symbols.Symbol{
			Name:       defSym.Name,
			Kind:       symbols.SymbolInstance,
			Span:       defSym.Span,
			Flags:      symbols.FlagTopLevel,
			InstanceOf: cand.sym,
			Decl:       defSym.Decl,
		}
		id := c.Resolver.DeclareSymbol(c.RootScope, instSym)
		c.topLevel = append(c.topLevel, id)
	}

	return c.RootScope, c.topLevel
}
