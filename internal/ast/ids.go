package ast

// FileID identifies one parsed syntax tree within a compilation.
type FileID uint32

const NoFileID FileID = 0

func (id FileID) IsValid() bool { return id != NoFileID }

// ExprID is a handle into a File's expression arena.
type ExprID uint32

const NoExprID ExprID = 0

func (id ExprID) IsValid() bool { return id != NoExprID }

// DefinitionID identifies a module/interface/program header parsed from a
// File, before the compilation manager re-keys it into its definitionMap.
type DefinitionID uint32

const NoDefinitionID DefinitionID = 0

func (id DefinitionID) IsValid() bool { return id != NoDefinitionID }

// ParamDeclID identifies a parameter or localparam declaration, either from
// a definition's header or from a body member.
type ParamDeclID uint32

const NoParamDeclID ParamDeclID = 0

func (id ParamDeclID) IsValid() bool { return id != NoParamDeclID }

// PortDeclID identifies a single port in a definition's port list.
type PortDeclID uint32

const NoPortDeclID PortDeclID = 0

func (id PortDeclID) IsValid() bool { return id != NoPortDeclID }
