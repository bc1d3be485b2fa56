package parser

import (
	"fmt"

	"github.com/somlang/somc/internal/ast"
	"github.com/somlang/somc/internal/builtins"
	"github.com/somlang/somc/internal/types"
)

// resolveCall marks a built-in call, or validates a user call against
// its FNMAKE binding: arity (reported but non-halting, spec.md §9) and
// positional argument/parameter type matching (halting).
func (p *Parser) resolveCall(call *ast.FnCallNode) {
	if builtins.IsBuiltin(call.Name) {
		call.IsStd = true
		if err := builtins.Check(call); err != nil {
			p.addHalt(call.Loc, err.Error())
		}
		return
	}

	bound, ok := p.scope[call.Name]
	if !ok {
		p.addHalt(call.Loc, fmt.Sprintf("undeclared function: cannot find %q", call.Name))
		return
	}
	fn, ok := bound.(*ast.FnMakeNode)
	if !ok {
		p.addHalt(call.Loc, fmt.Sprintf("%q is not a function", call.Name))
		return
	}

	if len(call.Args) != len(fn.Params) {
		p.addContinue(call.Loc, fmt.Sprintf("%q expects %d argument(s), got %d", call.Name, len(fn.Params), len(call.Args)))
	}

	n := len(call.Args)
	if len(fn.Params) < n {
		n = len(fn.Params)
	}
	for i := 0; i < n; i++ {
		argPrim := getPrim(call.Args[i])
		if !types.SameKind(argPrim, fn.Params[i].ParamType) {
			p.addHalt(call.Args[i].Pos(), fmt.Sprintf("argument %d to %q: cannot use type %s as type %s", i+1, call.Name, argPrim, fn.Params[i].ParamType))
		}
	}

	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
	}
	call.ParamNames = names
	call.ReturnType = fn.ReturnType
}
