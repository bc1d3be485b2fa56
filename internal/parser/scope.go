package parser

import "github.com/somlang/somc/internal/ast"

// SelfReturnKey is the reserved scope binding a function body sees,
// pointing back at its own FNMAKE declaration so `ret` can type-check
// against the declared return type (spec.md §3, §4.2.4).
const SelfReturnKey = "self_ret!"

// Scope binds names to the parse node that introduced them (VARDEF,
// FNMAKE, FNPARAM). It is additive within a parse region and is
// cloned, never shared, when a nested parser enters a function body
// (spec.md §3).
type Scope map[string]ast.Node

// NewScope returns an empty scope.
func NewScope() Scope {
	return make(Scope)
}

// Clone returns a shallow copy so bindings added in a nested scope
// (e.g. a function body's parameters) never leak back into the
// caller's scope.
func (s Scope) Clone() Scope {
	out := make(Scope, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
