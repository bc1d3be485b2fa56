package codegen

import (
	"fmt"

	"github.com/somlang/somc/internal/types"
)

// registerLit installs prim's _LIT struct into defs: a small value
// wrapper carrying the raw C++ type plus a display() method the print
// builtin uses to render any primitive uniformly (spec.md §5, §8
// scenario 4). Idempotent via Definitions.register.
func registerLit(defs *Definitions, prim types.Primitive) {
	name := litName(prim)
	cxxType := cxxRawType(prim)
	def := fmt.Sprintf(`struct %s {
	%s val;
	explicit %s(%s v) : val(v) {}
	std::string display() const { return std::to_string(val); }
};`, name, cxxType, name, cxxType)

	if prim.Kind == types.String {
		def = fmt.Sprintf(`struct %s {
	std::string val;
	explicit %s(std::string v) : val(std::move(v)) {}
	std::string display() const { return val; }
};`, name, name)
	}

	defs.register(prim, Record{Name: name, Def: def, Ext: true})
}

// litName is the C++ identifier for prim's _LIT struct, e.g.
// "INT32_LIT", "SIGINT64_LIT", "FLOAT32_LIT", "STR_LIT".
func litName(prim types.Primitive) string {
	switch prim.Kind {
	case types.Int:
		return fmt.Sprintf("INT%d_LIT", prim.Size)
	case types.SigInt:
		return fmt.Sprintf("SIGINT%d_LIT", prim.Size)
	case types.Float:
		return fmt.Sprintf("FLOAT%d_LIT", prim.Size)
	case types.String:
		return "STR_LIT"
	default:
		return fmt.Sprintf("UNKNOWN_LIT_%s", prim.Kind)
	}
}

// cxxRawType is the underlying C++ scalar type prim's _LIT wraps.
func cxxRawType(prim types.Primitive) string {
	switch prim.Kind {
	case types.Int:
		return fmt.Sprintf("uint%d_t", prim.Size)
	case types.SigInt:
		return fmt.Sprintf("int%d_t", prim.Size)
	case types.Float:
		if prim.Size == 32 {
			return "float"
		}
		return "double"
	case types.String:
		return "std::string"
	default:
		return "void"
	}
}

// arithTypeName is the type/size prefix arithmetic helpers are named
// after, e.g. "INT32", "SIGINT64", "FLOAT32" — distinct from litName,
// which carries the "_LIT" struct suffix.
func arithTypeName(prim types.Primitive) string {
	switch prim.Kind {
	case types.Int:
		return fmt.Sprintf("INT%d", prim.Size)
	case types.SigInt:
		return fmt.Sprintf("SIGINT%d", prim.Size)
	case types.Float:
		return fmt.Sprintf("FLOAT%d", prim.Size)
	case types.String:
		return "STR"
	default:
		return fmt.Sprintf("UNKNOWN_%s", prim.Kind)
	}
}

// arithOpName is the C++ identifier for prim's arithmetic helper for
// op, e.g. "INT32_PLUS" (generation.rs's "INT{size}_{OP}" naming).
func arithOpName(prim types.Primitive, op string) string {
	return fmt.Sprintf("%s_%s", arithTypeName(prim), op)
}

// arithKey distinguishes arithmetic-helper definitions-map entries from
// the _LIT entry for the same primitive: arithmetic helpers are keyed
// under an InScope primitive named after the resulting helper so they
// never collide with the plain _LIT registration for the same type.
func arithKey(prim types.Primitive, op string) types.Primitive {
	return types.NewInScope(arithOpName(prim, op))
}

// arithOps lists the four-operator set init_fn_math registers together
// for a numeric type the first time any one of them is needed.
var arithOps = []struct{ symbol, cxxOp string }{
	{"PLUS", "+"},
	{"SUB", "-"},
	{"MUL", "*"},
	{"DIV", "/"},
}

// registerArithOp installs prim's whole PLUS/SUB/MUL/DIV helper group
// together the first time any of them is needed (matching the Rust
// init_fn_math, which always emits all four for a numeric type at
// once), then returns the C++ identifier for op.
func registerArithOp(defs *Definitions, prim types.Primitive, op string) string {
	litTypeName := litName(prim)
	for _, o := range arithOps {
		key := arithKey(prim, o.symbol)
		if defs.Has(key) {
			continue
		}
		name := arithOpName(prim, o.symbol)
		def := fmt.Sprintf(`std::unique_ptr<%s> %s(const %s* a, const %s* b) {
	return std::make_unique<%s>(a->val %s b->val);
}`, litTypeName, name, litTypeName, litTypeName, litTypeName, o.cxxOp)
		defs.register(key, Record{Name: name, Def: def, Ext: true})
	}
	return arithOpName(prim, op)
}
