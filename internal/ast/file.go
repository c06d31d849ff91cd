package ast

import (
	"surgehdl/internal/arena"
	"surgehdl/internal/source"
)

// DefinitionKind distinguishes the three definition-bearing constructs a
// compilation tracks in its definitionMap.
type DefinitionKind uint8

const (
	DefinitionInvalid DefinitionKind = iota
	DefinitionModule
	DefinitionInterface
	DefinitionProgram
)

// ParamDecl is a single parameter or localparam declaration, either from a
// definition's header port-parameter list or copied in from an immediate
// body member.
type ParamDecl struct {
	Name     source.StringID
	Span     source.Span
	TypeExpr ExprID // NoExprID if the type is inherited from a preceding port
	Default  ExprID // NoExprID if the header requires one (body params never do)
	IsPort   bool   // declared inside the #( ... ) header port list
	IsLocal  bool   // 'localparam' rather than 'parameter'
}

// PortDecl is a single entry in a definition's port list.
type PortDecl struct {
	Name     source.StringID
	Span     source.Span
	TypeExpr ExprID
}

// MemberKind discriminates a single entry of a definition's body once the
// parser has recognized its shape.
type MemberKind uint8

const (
	MemberInvalid          MemberKind = iota
	MemberContinuousAssign            // assign lhs = rhs;
	MemberVariable                    // a variable or net declaration
	MemberParam                       // a parameter/localparam declared directly in the body
	MemberInstance                    // an instantiation of another definition
	MemberSubroutine                  // a function or task declaration
	MemberGenvar
	MemberProcedural // an initial/final/always[_comb|_ff|_latch] block
)

// VariableDecl is a single variable or net declaration: `<type> name [= init];`
// or `wire/reg/logic ... name [= init];`.
type VariableDecl struct {
	Name        source.StringID
	Span        source.Span
	TypeExpr    ExprID // NoExprID if the declaration supplies no explicit type
	Initializer ExprID // NoExprID if absent
	IsNet       bool
	NetKind     source.StringID // textual net-type spelling (wire, tri, uwire, ...)
}

// EnumeratorDecl is one named constant of an inline enumeration:
// `name [= value]`.
type EnumeratorDecl struct {
	Name  source.StringID
	Span  source.Span
	Value ExprID // NoExprID when the value is implicit (prior + 1, or 0 for the first)
}

// InstanceConnection is one named or positional port/parameter connection
// of an instantiation, e.g. `.clk(sys_clk)` or a positional actual.
type InstanceConnection struct {
	Name ExprID // NoExprID for a positional connection
	Expr ExprID
}

// InstanceDecl names the definition being instantiated, the instance name,
// and its parameter/port connection lists.
type InstanceDecl struct {
	DefName    source.StringID
	InstName   source.StringID
	Span       source.Span
	ParamConns []InstanceConnection
	PortConns  []InstanceConnection
}

// Formal is one formal argument of a subroutine declaration.
type Formal struct {
	Name     source.StringID
	Span     source.Span
	TypeExpr ExprID
	Default  ExprID // NoExprID if the formal is required
}

// StmtKind enumerates the narrow statement shapes a subroutine or
// procedural-block body may contain; this is an ambient convenience for the
// binder to have something to walk, not a contracted part of the
// specification. Case statements, loops, and delay/event controls inside a
// body are not modeled.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtExpr             // an expression evaluated for its assignment/call side effect
	StmtReturn           // return [expr];
	StmtVarDecl          // a local variable declaration
	StmtIf               // if (Expr) Then [else Else]
	StmtBlock            // a begin/end block, its statements kept nested
)

// Stmt is one statement inside a subroutine or procedural-block body.
type Stmt struct {
	Kind        StmtKind
	Span        source.Span
	Expr        ExprID       // StmtExpr, StmtReturn (NoExprID for bare `return;`), StmtIf's condition
	VarDecl     VariableDecl // StmtVarDecl
	Nonblocking bool         // StmtExpr: assignment spelled with '<=' rather than '='
	Body        []Stmt       // StmtBlock
	Then        []Stmt       // StmtIf: taken branch
	Else        []Stmt       // StmtIf: else branch, nil if absent
}

// ProceduralKind distinguishes the procedural-block header keyword.
type ProceduralKind uint8

const (
	ProcInvalid ProceduralKind = iota
	ProcInitial
	ProcFinal
	ProcAlways
	ProcAlwaysComb
	ProcAlwaysFF
	ProcAlwaysLatch
)

// ProceduralDecl is an initial/final/always[_comb|_ff|_latch] block: an
// optional event-control sensitivity list followed by a statement body.
// initial and final never carry a sensitivity list; always_comb and
// always_latch are ordinarily written bare (their sensitivity is implicit
// in the variables their body reads); a plain always or always_ff is
// ordinarily written with an explicit list.
type ProceduralDecl struct {
	Kind                ProceduralKind
	Span                source.Span
	Sensitivity         []ExprID // event expressions named in an explicit @( ... ) list
	ImplicitSensitivity bool     // '@*', '@(*)', or any always_comb/always_latch
	Body                []Stmt
}

// SubroutineDecl is a function or task declaration.
type SubroutineDecl struct {
	Name           source.StringID
	Span           source.Span
	IsFunction     bool // false => task
	Formals        []Formal
	ReturnTypeExpr ExprID // NoExprID for a task or a void function
	Body           []Stmt
}

// Member is one entry of a definition's body; only the fields relevant to
// Kind are populated.
type Member struct {
	Kind       MemberKind
	Span       source.Span
	Assign     ExprID // MemberContinuousAssign
	Variable   VariableDecl
	Param      ParamDecl
	Instance   InstanceDecl
	Subroutine SubroutineDecl
	GenvarName source.StringID
	Procedural ProceduralDecl // MemberProcedural
}

// Definition is the header-level shape of a module/interface/program: the
// parts the compilation manager needs to build a Symbol and a definitionMap
// entry before lazily expanding the body on first lookup.
type Definition struct {
	Kind   DefinitionKind
	Name   source.StringID
	Span   source.Span
	Params []ParamDecl
	Ports  []PortDecl
	Body   []Member

	// Nested holds module/interface/program declarations written directly
	// inside this definition's body. They shadow outer definitions of the
	// same name while the compilation manager scans for instantiations
	// (spec 4.5: "a stack of name sets").
	Nested []Definition
}

// File is one parsed syntax tree: an expression arena plus the top-level
// definitions found in it.
type File struct {
	ID          FileID
	SourceFile  source.FileID
	Exprs       *arena.Arena[Expr]
	Definitions []Definition
}

// NewFile constructs an empty File backed by a fresh expression arena.
func NewFile(id FileID, sourceFile source.FileID) *File {
	return &File{
		ID:         id,
		SourceFile: sourceFile,
		Exprs:      arena.New[Expr](64),
	}
}

// Alloc appends e to the file's expression arena and returns its handle.
func (f *File) Alloc(e Expr) ExprID {
	return ExprID(f.Exprs.Alloc(e))
}

// Get returns the expression at id, or nil for NoExprID.
func (f *File) Get(id ExprID) *Expr {
	return f.Exprs.Get(uint32(id))
}
