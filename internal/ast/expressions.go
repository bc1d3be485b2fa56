package ast

import (
	"github.com/somlang/somc/internal/lexer"
	"github.com/somlang/somc/internal/types"
)

// OperatorNode represents a single arithmetic operator token inside an
// RPN-form expression, before it is folded into a BinSeg.
type OperatorNode struct {
	Loc lexer.Position
	Op  BinOp
}

func (n *OperatorNode) Kind() Kind          { return OPERATOR }
func (n *OperatorNode) Pos() lexer.Position { return n.Loc }

// NumberNode is a numeric literal, classified INT/SIGINT/FLOAT by the
// presence of a decimal point and a leading '-' (spec.md §4.2).
type NumberNode struct {
	Loc      lexer.Position
	NumType  types.Primitive
	IntVal   int64
	FloatVal float64
	IsFloat  bool
}

func (n *NumberNode) Kind() Kind          { return NUMBER }
func (n *NumberNode) Pos() lexer.Position { return n.Loc }

// StringNode is a string literal with its surrounding quotes already
// stripped.
type StringNode struct {
	Loc     lexer.Position
	Content string
	Length  int
}

func (n *StringNode) Kind() Kind          { return STRING }
func (n *StringNode) Pos() lexer.Position { return n.Loc }

// LabelNode is an identifier reference resolved against the lexical
// scope at the point of reference.
type LabelNode struct {
	Loc     lexer.Position
	Name    string
	VarType types.Primitive
}

func (n *LabelNode) Kind() Kind          { return LABEL }
func (n *LabelNode) Pos() lexer.Position { return n.Loc }

// ExpNode is an arithmetic expression in RPN-expanded form: an ordered
// list of BinSegs plus the fixed outer type of the whole expression
// (spec.md §3).
type ExpNode struct {
	Loc      lexer.Position
	ExpType  types.Primitive
	Segments []BinSeg
}

func (n *ExpNode) Kind() Kind          { return EXP }
func (n *ExpNode) Pos() lexer.Position { return n.Loc }

// RPNExpNode is the intermediate produced directly by the RPN-form
// parser (spec.md §4.2.2), before the shunting-yard caller copies its
// fields into its own ExpNode (spec.md §4.2.1).
type RPNExpNode struct {
	Loc      lexer.Position
	ExpType  types.Primitive
	Segments []BinSeg
}

func (n *RPNExpNode) Kind() Kind          { return RPNEXP }
func (n *RPNExpNode) Pos() lexer.Position { return n.Loc }
