package codegen

import (
	"fmt"
	"strings"

	"github.com/somlang/somc/internal/ast"
	"github.com/somlang/somc/internal/types"
)

// BareScope is the sentinel scope name that selects bare-rvalue
// emission over full assignment-statement emission (spec.md glossary:
// "Sentinel scope `_`").
const BareScope = "_"

// Generator walks parse nodes into C++ source fragments, threading one
// mutable Definitions map across the whole program (spec.md §4.4, §5).
type Generator struct {
	Defs *Definitions
	tmp  tempNames
}

// New returns a Generator with a fresh definitions map.
func New() *Generator {
	return &Generator{Defs: NewDefinitions()}
}

// Gen emits node under scopeName. scopeName == BareScope yields a bare
// rvalue C++ expression (for use inside another expression or an
// argument list); any other value yields a full statement that
// assigns the node's result into that name.
func (g *Generator) Gen(node ast.Node, scopeName string) string {
	switch t := node.(type) {
	case *ast.VarDefNode:
		return g.genVarDef(t)
	case *ast.NumberNode:
		return g.genNumber(t, scopeName)
	case *ast.StringNode:
		return g.genString(t, scopeName)
	case *ast.LabelNode:
		return g.genLabel(t, scopeName)
	case *ast.ExpNode:
		return g.genExp(t, scopeName)
	case *ast.FnMakeNode:
		return g.genFnMake(t)
	case *ast.FnCallNode:
		return g.genFnCall(t, scopeName)
	case *ast.FnReturnNode:
		return g.genReturn(t)
	case *ast.CommaNode:
		return ""
	default:
		return fmt.Sprintf("/* unhandled node %T */", node)
	}
}

// litType registers (if needed) and returns the C++ identifier for a
// primitive's _LIT struct.
func (g *Generator) litType(prim types.Primitive) string {
	if !g.Defs.Has(prim) {
		registerLit(g.Defs, prim)
	}
	return g.Defs.NameOf(prim)
}

// assignStmt renders the assignment form shared by NUMBER/STRING/LABEL
// emission. RETURN and any struct-field target (e.g. "call_t1.x") already
// have a declared field to assign into, so they get a plain assignment;
// every other target is a fresh local and gets an `auto` declaration.
func assignStmt(scopeName, typeName, ctorArgs string) string {
	if scopeName == "RETURN" || strings.Contains(scopeName, ".") {
		return fmt.Sprintf("%s = std::make_unique<%s>(%s);", scopeName, typeName, ctorArgs)
	}
	return fmt.Sprintf("auto %s = std::make_unique<%s>(%s);", scopeName, typeName, ctorArgs)
}

func (g *Generator) genNumber(n *ast.NumberNode, scopeName string) string {
	typeName := g.litType(n.NumType)
	ctorArgs := numberCtorArgs(n)
	if scopeName == BareScope {
		return fmt.Sprintf("%s(%s)", typeName, ctorArgs)
	}
	return assignStmt(scopeName, typeName, ctorArgs)
}

func numberCtorArgs(n *ast.NumberNode) string {
	if n.IsFloat {
		return fmt.Sprintf("%g", n.FloatVal)
	}
	return fmt.Sprintf("%d", n.IntVal)
}

func (g *Generator) genString(n *ast.StringNode, scopeName string) string {
	typeName := g.litType(types.StringType)
	ctorArgs := fmt.Sprintf("%q", n.Content)
	if scopeName == BareScope {
		return fmt.Sprintf("%s(%s)", typeName, ctorArgs)
	}
	return assignStmt(scopeName, typeName, ctorArgs)
}

func (g *Generator) genLabel(n *ast.LabelNode, scopeName string) string {
	if scopeName == BareScope {
		return fmt.Sprintf("(*%s)", n.Name)
	}
	typeName := g.litType(n.VarType)
	return assignStmt(scopeName, typeName, fmt.Sprintf("*%s", n.Name))
}

func (g *Generator) genVarDef(n *ast.VarDefNode) string {
	return g.Gen(n.Init, n.Name)
}

func (g *Generator) genReturn(n *ast.FnReturnNode) string {
	return g.Gen(n.Value, "RETURN")
}
