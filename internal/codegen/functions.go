package codegen

import (
	"fmt"
	"strings"

	"github.com/somlang/somc/internal/ast"
	"github.com/somlang/somc/internal/types"
)

// genFnMake registers n's C++ struct into the user-definitions side of
// Defs and returns "": FNMAKE has no inline statement form, its struct
// is hoisted to module.cc ahead of main() (spec.md §4.4).
func (g *Generator) genFnMake(n *ast.FnMakeNode) string {
	retType := g.litType(n.ReturnType)

	var b strings.Builder
	fmt.Fprintf(&b, "struct %s {\n", n.Name)
	fmt.Fprintf(&b, "\tstd::unique_ptr<%s> RETURN;\n", retType)
	for _, p := range n.Params {
		fmt.Fprintf(&b, "\tstd::unique_ptr<%s> %s;\n", g.litType(p.ParamType), p.Name)
	}

	b.WriteString("\tvoid body() {\n")
	for _, stmt := range n.Body {
		for _, line := range strings.Split(g.Gen(stmt, BareScope), "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(&b, "\t\t%s\n", line)
		}
	}
	b.WriteString("\t}\n")
	b.WriteString("\tint call() {\n\t\tbody();\n\t\treturn 0;\n\t}\n")
	b.WriteString("};")

	g.Defs.register(types.NewInScope(n.Name), Record{Name: n.Name, Def: b.String(), Ext: false})
	return ""
}

// genFnCall dispatches to the builtin print path or to a user
// function's struct-instantiate/assign-fields/call() path (spec.md
// §4.4).
func (g *Generator) genFnCall(n *ast.FnCallNode, scopeName string) string {
	if n.IsStd {
		return g.genPrintCall(n, scopeName)
	}

	instName := g.tmp.next("call")
	var stmts []string
	stmts = append(stmts, fmt.Sprintf("%s %s;", n.Name, instName))

	for i, arg := range n.Args {
		if i >= len(n.ParamNames) {
			break
		}
		field := fmt.Sprintf("%s.%s", instName, n.ParamNames[i])
		stmts = append(stmts, g.Gen(arg, field))
	}

	stmts = append(stmts, fmt.Sprintf("%s.call();", instName))

	if scopeName == BareScope {
		return strings.Join(stmts, "\n")
	}
	stmts = append(stmts, assignStmt(scopeName, g.litType(n.ReturnType), fmt.Sprintf("*%s.RETURN", instName)))
	return strings.Join(stmts, "\n")
}

// genPrintCall renders a print(...) call: every argument is wrapped
// into its _LIT, and their display() strings are passed as one brace
// initializer list to the runtime print helper (registered on demand).
func (g *Generator) genPrintCall(n *ast.FnCallNode, scopeName string) string {
	var stmts []string
	argNames := make([]string, 0, len(n.Args))
	for _, arg := range n.Args {
		t := g.tmp.next("parg")
		stmts = append(stmts, g.Gen(arg, t))
		argNames = append(argNames, t)
	}

	printKey := types.NewInScope("print")
	if !g.Defs.Has(printKey) {
		def := `void print(std::initializer_list<std::string> parts) {
	for (const auto& p : parts) std::cout << p;
	std::cout << std::endl;
}`
		g.Defs.register(printKey, Record{Name: "print", Def: def, Ext: true})
	}

	parts := make([]string, len(argNames))
	for i, a := range argNames {
		parts[i] = fmt.Sprintf("%s->display()", a)
	}
	stmts = append(stmts, fmt.Sprintf("print({%s});", strings.Join(parts, ", ")))

	if scopeName != BareScope {
		stmts = append(stmts, fmt.Sprintf("auto %s = 0;", scopeName))
	}
	return strings.Join(stmts, "\n")
}
