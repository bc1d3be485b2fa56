package parser

import (
	"testing"

	"github.com/somlang/somc/internal/ast"
	"github.com/somlang/somc/internal/lexer"
)

func mustLex(t *testing.T, src string) []lexer.Token {
	t.Helper()
	l := lexer.New(src)
	toks, err := l.Lex()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	return toks
}

func parse(t *testing.T, src string) ([]ast.Node, *Parser) {
	t.Helper()
	toks := mustLex(t, src)
	p := New(toks, "test.som", src, NewScope())
	return p.ParseProgram(), p
}

func TestParseVarDefNumber(t *testing.T) {
	nodes, p := parse(t, `a: i32: 5;`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	vd, ok := nodes[0].(*ast.VarDefNode)
	if !ok {
		t.Fatalf("node is %T, want *ast.VarDefNode", nodes[0])
	}
	if vd.Name != "a" {
		t.Errorf("name = %q, want %q", vd.Name, "a")
	}
	num, ok := vd.Init.(*ast.NumberNode)
	if !ok || num.IntVal != 5 {
		t.Errorf("init = %#v, want NumberNode{IntVal: 5}", vd.Init)
	}
}

func TestParseVarDefTypeMismatchHalts(t *testing.T) {
	_, p := parse(t, `a: str: 5;`)
	if !p.Fatal() {
		t.Fatal("expected a halting error for str/int mismatch")
	}
}

func TestParseShuntingYardExpression(t *testing.T) {
	nodes, p := parse(t, `a: i32: (1 + 2 * 3);`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	vd := nodes[0].(*ast.VarDefNode)
	exp, ok := vd.Init.(*ast.ExpNode)
	if !ok {
		t.Fatalf("init = %T, want *ast.ExpNode", vd.Init)
	}
	if len(exp.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(exp.Segments))
	}
	if exp.Segments[0].Op != ast.MUL {
		t.Errorf("first folded segment should be the higher-precedence MUL, got %s", exp.Segments[0].Op)
	}
	if exp.Segments[1].Op != ast.PLUS {
		t.Errorf("second folded segment should be PLUS, got %s", exp.Segments[1].Op)
	}
}

func TestParseMismatchedParensIsContinuable(t *testing.T) {
	_, p := parse(t, `a: i32: (1 + 2));`)
	if p.Fatal() {
		t.Fatal("mismatched parens should be continuable, not halting")
	}
	if len(p.Errors()) == 0 {
		t.Fatal("expected a diagnostic for the mismatched paren")
	}
}

func TestParseFnMakeAndCall(t *testing.T) {
	src := `addOne(x i32): i32
ret x;
end
r: i32: addOne!5;`
	nodes, p := parse(t, src)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	fn, ok := nodes[0].(*ast.FnMakeNode)
	if !ok {
		t.Fatalf("nodes[0] = %T, want *ast.FnMakeNode", nodes[0])
	}
	if fn.Name != "addOne" || len(fn.Params) != 1 {
		t.Errorf("fn = %#v", fn)
	}
	vd := nodes[1].(*ast.VarDefNode)
	call, ok := vd.Init.(*ast.FnCallNode)
	if !ok {
		t.Fatalf("init = %T, want *ast.FnCallNode", vd.Init)
	}
	if call.IsStd {
		t.Error("addOne should not be marked as a builtin")
	}
	if len(call.ParamNames) != 1 || call.ParamNames[0] != "x" {
		t.Errorf("ParamNames = %v, want [x]", call.ParamNames)
	}
}

func TestParseCallArityMismatchIsContinuable(t *testing.T) {
	src := `addOne(x i32): i32
ret x;
end
r: i32: addOne!5, 6;`
	_, p := parse(t, src)
	if p.Fatal() {
		t.Fatal("arity mismatch should be reported but not halt parsing")
	}
	if len(p.Errors()) == 0 {
		t.Fatal("expected an arity diagnostic")
	}
}

func TestParseReturnOutsideFunctionHalts(t *testing.T) {
	_, p := parse(t, `ret 5;`)
	if !p.Fatal() {
		t.Fatal("'ret' outside a function body should halt")
	}
}

func TestParseUndeclaredVariableHalts(t *testing.T) {
	_, p := parse(t, `a: i32: b;`)
	if !p.Fatal() {
		t.Fatal("referencing an undeclared variable should halt")
	}
}

func TestParsePrintCallIsVariadicOverAnyType(t *testing.T) {
	_, p := parse(t, `print!42;`)
	if len(p.Errors()) != 0 {
		t.Fatalf("print!42 should be well-formed, got: %v", p.Errors())
	}
}
