package codegen

import (
	"fmt"
	"strings"

	"github.com/somlang/somc/internal/ast"
)

func arithOpSymbol(op ast.BinOp) string {
	switch op {
	case ast.PLUS:
		return "PLUS"
	case ast.SUB:
		return "SUB"
	case ast.MUL:
		return "MUL"
	case ast.DIV:
		return "DIV"
	default:
		return "UNKNOWN"
	}
}

// operandPtr renders node as a `const T*` argument to an arithmetic
// helper, materializing literal operands into their own temporary
// first (a LABEL operand already names a live unique_ptr).
func (g *Generator) operandPtr(node ast.Node, stmts *[]string) string {
	switch n := node.(type) {
	case *ast.LabelNode:
		return n.Name + ".get()"
	case *ast.NumberNode:
		t := g.tmp.next("lit")
		*stmts = append(*stmts, g.genNumber(n, t))
		return t + ".get()"
	case *ast.StringNode:
		t := g.tmp.next("lit")
		*stmts = append(*stmts, g.genString(n, t))
		return t + ".get()"
	default:
		return "nullptr /* unsupported operand */"
	}
}

// genExp walks an expression's RPN segments, emitting one statement per
// segment that constructs a fresh unique_ptr<T> via the registered
// arithmetic helper for n.ExpType and Op; a segment with no Right
// operates on its Left and the previous segment's result. The final
// statement moves the last temporary's value into scopeName.
func (g *Generator) genExp(n *ast.ExpNode, scopeName string) string {
	var stmts []string
	prevTemp := ""

	for _, seg := range n.Segments {
		var leftPtr string
		if seg.Left != nil {
			leftPtr = g.operandPtr(seg.Left, &stmts)
		} else {
			leftPtr = prevTemp + ".get()"
		}

		var rightPtr string
		if seg.Right != nil {
			rightPtr = g.operandPtr(seg.Right, &stmts)
		} else {
			rightPtr = prevTemp + ".get()"
		}

		helper := registerArithOp(g.Defs, n.ExpType, arithOpSymbol(seg.Op))
		temp := g.tmp.next("t")
		stmts = append(stmts, fmt.Sprintf("auto %s = %s(%s, %s);", temp, helper, leftPtr, rightPtr))
		prevTemp = temp
	}

	if prevTemp == "" {
		return strings.Join(stmts, "\n")
	}
	if scopeName == BareScope {
		stmts = append(stmts, fmt.Sprintf("(*%s)", prevTemp))
		return strings.Join(stmts, "\n")
	}
	stmts = append(stmts, assignStmt(scopeName, g.litType(n.ExpType), fmt.Sprintf("%s->val", prevTemp)))
	return strings.Join(stmts, "\n")
}
