package symbols

import (
	"surgehdl/internal/ast"
	"surgehdl/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol (spec 3: "kinded
// variant"). A Type is never stored directly on a Symbol — symbols is
// beneath internal/types in the dependency order (Type.Scope references
// back into this package), so type resolution is the compilation/binder
// layer's job, keyed by SymbolID.
type SymbolKind uint8

const (
	SymbolInvalid         SymbolKind = iota
	SymbolCompilationUnit            // one per added syntax tree
	SymbolDefinition                 // a module/interface/program definition
	SymbolInstance                   // one instantiation of a definition
	SymbolPackage
	SymbolVariable
	SymbolNet
	SymbolParameter      // parameter or localparam (IsLocal flag distinguishes)
	SymbolSubroutine     // function or task
	SymbolFormalArgument // one ordered formal of a subroutine
	SymbolField          // a struct/union member
	SymbolEnumValue
	SymbolGenvar
	SymbolImported // a name pulled in by an explicit or wildcard import
	SymbolPort
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolCompilationUnit:
		return "compilation-unit"
	case SymbolDefinition:
		return "definition"
	case SymbolInstance:
		return "instance"
	case SymbolPackage:
		return "package"
	case SymbolVariable:
		return "variable"
	case SymbolNet:
		return "net"
	case SymbolParameter:
		return "parameter"
	case SymbolSubroutine:
		return "subroutine"
	case SymbolFormalArgument:
		return "formal-argument"
	case SymbolField:
		return "field"
	case SymbolEnumValue:
		return "enum-value"
	case SymbolGenvar:
		return "genvar"
	case SymbolImported:
		return "imported"
	case SymbolPort:
		return "port"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks without a kind switch.
type SymbolFlags uint16

const (
	FlagPort       SymbolFlags = 1 << iota
	FlagLocalParam             // parameter was declared with 'localparam'
	FlagPortParam              // parameter lives in the definition's #( ... ) header list
	FlagTopLevel               // instance: never referenced by another definition
	FlagBuiltin                // injected by the prelude (system tasks/functions, predefined types)
	FlagWildcard               // import: `import pkg::*;` rather than a single name
	FlagConst                  // variable/net carries 'const'
)

// Strings returns textual flag labels, for debugging and diagnostics.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&FlagPort != 0 {
		labels = append(labels, "port")
	}
	if f&FlagLocalParam != 0 {
		labels = append(labels, "localparam")
	}
	if f&FlagPortParam != 0 {
		labels = append(labels, "port-param")
	}
	if f&FlagTopLevel != 0 {
		labels = append(labels, "top-level")
	}
	if f&FlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&FlagWildcard != 0 {
		labels = append(labels, "wildcard")
	}
	if f&FlagConst != 0 {
		labels = append(labels, "const")
	}
	return labels
}

// SymbolDecl pins a symbol's AST origin for diagnostics and lazy expansion.
type SymbolDecl struct {
	SourceFile source.FileID
	ASTFile    ast.FileID
	// MemberIndex is the index into the owning Definition.Body this symbol
	// was declared from, or -1 when the symbol has no single body member
	// (compilation units, instances synthesized for a top-level module, the
	// prelude).
	MemberIndex int
}

// FormalInfo is one ordered formal argument of a subroutine, recorded on
// the SymbolSubroutine symbol so binder call-checking never has to re-walk
// AST (spec 3: "Subroutines hold ordered formal arguments and a return type").
type FormalInfo struct {
	Name     source.StringID
	Span     source.Span
	TypeExpr ast.ExprID
	Default  ast.ExprID
	Symbol   SymbolID // the SymbolFormalArgument declared in the subroutine's scope
}

// Symbol describes a named entity available in a scope. Only the fields
// relevant to Kind are populated.
type Symbol struct {
	Name   source.StringID
	Kind   SymbolKind
	Parent ScopeID // enclosing scope this symbol is visible from
	Span   source.Span
	Flags  SymbolFlags
	Decl   SymbolDecl

	// OwnScope is the scope this symbol introduces, for kinds that carry
	// one: compilation unit, definition, instance, subroutine. NoScopeID
	// for variables/nets/parameters/fields/genvars/imports.
	OwnScope ScopeID

	// SymbolDefinition
	DefKind ast.DefinitionKind
	DefFile ast.FileID
	DefSpan source.Span
	Params  []ParamInfo // merged header + body parameter list, inheritance applied
	Ports   []ast.PortDecl

	// SymbolInstance
	InstanceOf SymbolID // the SymbolDefinition being instantiated

	// SymbolVariable, SymbolNet, SymbolParameter, SymbolGenvar,
	// SymbolFormalArgument, SymbolPort
	TypeExprFile ast.FileID
	TypeExpr     ast.ExprID
	Initializer  ast.ExprID
	NetKind      source.StringID

	// SymbolSubroutine
	Formals        []FormalInfo
	ReturnTypeExpr ast.ExprID
	IsFunction     bool

	// SymbolImported
	Target      SymbolID
	FromPackage SymbolID
}

// ParamInfo mirrors ast.ParamDecl once copied into a definition's Symbol,
// after the header/body-inheritance rule (spec 4.5) has resolved IsPort and
// IsLocal for every entry, including undecorated parameters that inherit the
// keyword of the preceding one.
type ParamInfo struct {
	Name     source.StringID
	Span     source.Span
	TypeExpr ast.ExprID
	Default  ast.ExprID
	IsPort   bool
	IsLocal  bool
}
