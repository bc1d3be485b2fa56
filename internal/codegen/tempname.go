package codegen

import "fmt"

// tempNames generates fresh C++ identifiers for expression
// intermediates. spec.md §9 describes the original as a random
// 15-character suffix (5-letter-start + 10-mixed) but explicitly
// permits substituting a monotonically increasing counter "without
// changing semantics" — we take that option so generated output is
// deterministic under test.
type tempNames struct {
	counter int
}

// next returns a fresh identifier scoped under prefix, e.g.
// "a_t0", "a_t1", ...
func (t *tempNames) next(prefix string) string {
	id := fmt.Sprintf("%s_t%d", prefix, t.counter)
	t.counter++
	return id
}
