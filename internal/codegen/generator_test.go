package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/somlang/somc/internal/ast"
	"github.com/somlang/somc/internal/types"
)

func TestGenVarDefNumber(t *testing.T) {
	g := New()
	n := &ast.VarDefNode{
		Name:     "a",
		DeclType: types.NewInt(32),
		Init: &ast.NumberNode{
			NumType: types.NewInt(32),
			IntVal:  42,
		},
	}
	snaps.MatchSnapshot(t, g.Gen(n, BareScope))
}

func TestGenExpChainsTemps(t *testing.T) {
	g := New()
	exp := &ast.ExpNode{
		ExpType: types.NewInt(32),
		Segments: []ast.BinSeg{
			{
				Left:  &ast.NumberNode{NumType: types.NewInt(32), IntVal: 1},
				Right: &ast.NumberNode{NumType: types.NewInt(32), IntVal: 2},
				Op:    ast.PLUS,
			},
			{
				Right: &ast.NumberNode{NumType: types.NewInt(32), IntVal: 3},
				Op:    ast.MUL,
			},
		},
	}
	snaps.MatchSnapshot(t, g.Gen(exp, "result"))
}

func TestGenFnMakeRegistersStruct(t *testing.T) {
	g := New()
	fn := &ast.FnMakeNode{
		Name:       "addOne",
		ReturnType: types.NewInt(32),
		Params: []*ast.FnParamNode{
			{Name: "x", ParamType: types.NewInt(32)},
		},
		Body: []ast.Node{
			&ast.FnReturnNode{
				Value: &ast.LabelNode{Name: "x", VarType: types.NewInt(32)},
			},
		},
	}
	out := g.Gen(fn, BareScope)
	if out != "" {
		t.Fatalf("FNMAKE should have no inline form, got %q", out)
	}
	user := g.Defs.User()
	if len(user) != 1 {
		t.Fatalf("expected one user definition, got %d", len(user))
	}
	snaps.MatchSnapshot(t, user[0].Def)
}

func TestGenPrintCallRegistersRuntimeHelper(t *testing.T) {
	g := New()
	call := &ast.FnCallNode{
		Name:  "print",
		IsStd: true,
		Args: []ast.Node{
			&ast.StringNode{Content: "hi"},
			&ast.NumberNode{NumType: types.NewInt(32), IntVal: 7},
		},
	}
	snaps.MatchSnapshot(t, g.Gen(call, BareScope))

	var found bool
	for _, rec := range g.Defs.Runtime() {
		if rec.Name == "print" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected print runtime helper to be registered")
	}
}

func TestGenFnCallAssignsArgsIntoFields(t *testing.T) {
	g := New()
	fn := &ast.FnMakeNode{
		Name:       "add",
		ReturnType: types.NewInt(32),
		Params: []*ast.FnParamNode{
			{Name: "x", ParamType: types.NewInt(32)},
			{Name: "y", ParamType: types.NewInt(32)},
		},
		Body: []ast.Node{
			&ast.FnReturnNode{
				Value: &ast.ExpNode{
					ExpType: types.NewInt(32),
					Segments: []ast.BinSeg{
						{
							Left:  &ast.LabelNode{Name: "x", VarType: types.NewInt(32)},
							Right: &ast.LabelNode{Name: "y", VarType: types.NewInt(32)},
							Op:    ast.PLUS,
						},
					},
				},
			},
		},
	}
	g.Gen(fn, BareScope)

	call := &ast.FnCallNode{
		Name:       "add",
		ReturnType: types.NewInt(32),
		ParamNames: []string{"x", "y"},
		Args: []ast.Node{
			&ast.NumberNode{NumType: types.NewInt(32), IntVal: 3},
			&ast.NumberNode{NumType: types.NewInt(32), IntVal: 4},
		},
	}
	out := g.Gen(call, "result")

	// The FNMAKE body above already took temporary t_t0 from the shared
	// counter, so the call instance is call_t1.
	if strings.Contains(out, "auto call_t1.x") || strings.Contains(out, "auto call_t1.y") {
		t.Fatalf("field assignment must not use auto, got:\n%s", out)
	}
	if !strings.Contains(out, "call_t1.x = std::make_unique<INT32_LIT>(3);") {
		t.Errorf("expected plain assignment into call_t1.x, got:\n%s", out)
	}
	if !strings.Contains(out, "call_t1.y = std::make_unique<INT32_LIT>(4);") {
		t.Errorf("expected plain assignment into call_t1.y, got:\n%s", out)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRegisterArithOpRegistersFullOperatorGroup(t *testing.T) {
	g := New()
	_ = registerArithOp(g.Defs, types.NewInt(32), "MUL")

	for _, op := range []string{"PLUS", "SUB", "MUL", "DIV"} {
		key := arithKey(types.NewInt(32), op)
		if !g.Defs.Has(key) {
			t.Errorf("expected %s helper registered alongside MUL, got none", op)
		}
		want := "INT32_" + op
		if name := arithOpName(types.NewInt(32), op); name != want {
			t.Errorf("arithOpName(%s) = %q, want %q", op, name, want)
		}
	}
}

func TestGenProgramSplitsModuleAndRuntime(t *testing.T) {
	nodes := []ast.Node{
		&ast.VarDefNode{
			Name:     "a",
			DeclType: types.NewInt(32),
			Init:     &ast.NumberNode{NumType: types.NewInt(32), IntVal: 1},
		},
		&ast.FnCallNode{
			Name:  "print",
			IsStd: true,
			Args:  []ast.Node{&ast.LabelNode{Name: "a", VarType: types.NewInt(32)}},
		},
	}
	mod, std := GenProgram(nodes)
	snaps.MatchSnapshot(t, mod)
	snaps.MatchSnapshot(t, std)
}
