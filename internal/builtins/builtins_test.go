package builtins

import (
	"testing"

	"github.com/somlang/somc/internal/ast"
	"github.com/somlang/somc/internal/types"
)

func TestIsBuiltin(t *testing.T) {
	if !IsBuiltin("print") {
		t.Error("print should be a builtin")
	}
	if IsBuiltin("notAThing") {
		t.Error("notAThing should not be a builtin")
	}
}

func TestCheckPrintAcceptsAnyArgType(t *testing.T) {
	call := &ast.FnCallNode{
		Name: "print",
		Args: []ast.Node{
			&ast.NumberNode{NumType: types.NewInt(32), IntVal: 42},
			&ast.StringNode{Content: "hi"},
		},
	}
	if err := Check(call); err != nil {
		t.Errorf("print!42, \"hi\" should be well-formed, got %v", err)
	}
}

func TestCheckNonBuiltinIsNoop(t *testing.T) {
	call := &ast.FnCallNode{Name: "userFn"}
	if err := Check(call); err != nil {
		t.Errorf("non-builtin call should not be checked, got %v", err)
	}
}
