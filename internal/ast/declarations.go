package ast

import (
	"github.com/somlang/somc/internal/lexer"
	"github.com/somlang/somc/internal/types"
)

// VarDefNode binds Name to DeclType, initialized by Init. The declared
// type must outer-match Init's inferred type (spec.md §3 invariant).
type VarDefNode struct {
	Loc      lexer.Position
	Name     string
	DeclType types.Primitive
	Init     Node
}

func (n *VarDefNode) Kind() Kind          { return VARDEF }
func (n *VarDefNode) Pos() lexer.Position { return n.Loc }

// FnParamNode is a single function parameter binding installed in a
// function body's scope.
type FnParamNode struct {
	Loc       lexer.Position
	Name      string
	ParamType types.Primitive
}

func (n *FnParamNode) Kind() Kind          { return FNPARAM }
func (n *FnParamNode) Pos() lexer.Position { return n.Loc }

// FnMakeNode is a function definition: name, declared return type,
// ordered parameters, and body statements.
type FnMakeNode struct {
	Loc        lexer.Position
	Name       string
	ReturnType types.Primitive
	Params     []*FnParamNode
	Body       []Node
}

func (n *FnMakeNode) Kind() Kind          { return FNMAKE }
func (n *FnMakeNode) Pos() lexer.Position { return n.Loc }

// FnCallNode is a function call, either to a built-in (IsStd) or to a
// user FNMAKE binding. ReturnType is copied from the callee once known.
type FnCallNode struct {
	Loc        lexer.Position
	Name       string
	IsStd      bool
	Args       []Node
	ReturnType types.Primitive
	// ParamNames is copied from the callee's FNMAKE params once resolved,
	// so the code generator can assign positional arguments into the
	// callee struct's fields by name without re-resolving scope.
	ParamNames []string
}

func (n *FnCallNode) Kind() Kind          { return FNCALL }
func (n *FnCallNode) Pos() lexer.Position { return n.Loc }

// FnReturnNode is a `ret <expr>;` statement. Its value's type must
// outer-match the enclosing function's declared return type.
type FnReturnNode struct {
	Loc   lexer.Position
	Value Node
}

func (n *FnReturnNode) Kind() Kind          { return FNRETURN }
func (n *FnReturnNode) Pos() lexer.Position { return n.Loc }
