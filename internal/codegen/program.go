package codegen

import (
	"fmt"
	"strings"

	"github.com/somlang/somc/internal/ast"
)

// GenProgram walks every top-level node and assembles the two emitted
// files spec.md §4.4/§6 describe: som_std.cc holds the runtime-support
// definitions (_LIT structs, arithmetic helpers, print), module.cc
// holds the user function structs plus a main() built from the
// top-level statements in order.
func GenProgram(nodes []ast.Node) (moduleCC string, somStdCC string) {
	g := New()

	var mainStmts []string
	for _, n := range nodes {
		stmt := g.Gen(n, BareScope)
		if stmt != "" {
			mainStmts = append(mainStmts, stmt)
		}
	}

	var std strings.Builder
	std.WriteString("#pragma once\n#include <string>\n#include <memory>\n#include <cstdint>\n#include <iostream>\n\n")
	for _, rec := range g.Defs.Runtime() {
		std.WriteString(rec.Def)
		std.WriteString("\n\n")
	}

	var mod strings.Builder
	mod.WriteString("#include \"som_std.cc\"\n#include <vector>\n\n")
	for _, rec := range g.Defs.User() {
		mod.WriteString(rec.Def)
		mod.WriteString("\n\n")
	}
	mod.WriteString("int main() {\n")
	for _, stmt := range mainStmts {
		for _, line := range strings.Split(stmt, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(&mod, "\t%s\n", line)
		}
	}
	mod.WriteString("\treturn 0;\n}\n")

	return mod.String(), std.String()
}
