// Package builtins is the registry of built-in function names the
// parser recognizes while resolving a call (spec.md §4.3). print is
// the only entry: it is fully variadic over any primitive type, each
// argument later rendered through its _LIT's display() method by the
// code generator (spec.md §8 scenario 4; see DESIGN.md for why this is
// more permissive than the original's string-only first-argument
// check).
package builtins

import "github.com/somlang/somc/internal/ast"

// IsBuiltin reports whether name is recognized by the built-in
// registry.
func IsBuiltin(name string) bool {
	_, ok := registry[name]
	return ok
}

// Check performs the built-in's argument-shape check, if it has one.
// A nil return means the call is well-formed.
func Check(call *ast.FnCallNode) error {
	check, ok := registry[call.Name]
	if !ok {
		return nil
	}
	return check(call)
}

var registry = map[string]func(*ast.FnCallNode) error{
	"print": checkPrint,
}

// checkPrint imposes no shape restriction: print accepts any number of
// arguments of any primitive type.
func checkPrint(*ast.FnCallNode) error {
	return nil
}
