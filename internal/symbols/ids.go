package symbols

// ScopeID identifies a scope in the table's scope arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID identifies a symbol inside the table's symbol arena.
type SymbolID uint32

const (
	// NoSymbolID marks the absence of a symbol reference.
	NoSymbolID SymbolID = 0
)

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// ImportSetID is an opaque handle to a deduplicated set of wildcard-import
// targets visible from a scope (spec 3: "an opaque 'import set' index").
type ImportSetID uint32

const (
	// NoImportSetID marks the absence of any wildcard import in a scope.
	NoImportSetID ImportSetID = 0
)

// IsValid reports whether the import-set ID refers to a registered set.
func (id ImportSetID) IsValid() bool { return id != NoImportSetID }
