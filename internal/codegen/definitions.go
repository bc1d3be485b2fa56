// Package codegen walks a parsed program into a C++ source fragment,
// lazily materializing type/operator definitions into an ordered,
// idempotent definitions map as it goes (spec.md §3, §4.4, §5).
package codegen

import "github.com/somlang/somc/internal/types"

// Record is one entry of the definitions map: a C++ source fragment
// plus the identifier it defines. Ext marks runtime-support records
// (destined for som_std.cc) versus user-function bodies (module.cc).
type Record struct {
	Name string
	Def  string
	Ext  bool
}

// Definitions is the ordered, insertion-keyed memoization table
// spec.md §3 calls the "definitions map". Registration is idempotent
// on Primitive: calling a registration helper twice with the same key
// is a no-op, and iteration order is insertion order.
type Definitions struct {
	order []types.Primitive
	by    map[types.Primitive]Record
}

// NewDefinitions returns an empty definitions map.
func NewDefinitions() *Definitions {
	return &Definitions{by: make(map[types.Primitive]Record)}
}

// Has reports whether key has already been registered.
func (d *Definitions) Has(key types.Primitive) bool {
	_, ok := d.by[key]
	return ok
}

// register inserts rec under key if absent; idempotent.
func (d *Definitions) register(key types.Primitive, rec Record) {
	if d.Has(key) {
		return
	}
	d.by[key] = rec
	d.order = append(d.order, key)
}

// NameOf returns the C++ identifier registered under key, or "" if
// key was never registered.
func (d *Definitions) NameOf(key types.Primitive) string {
	return d.by[key].Name
}

// Ordered returns every record in insertion order.
func (d *Definitions) Ordered() []Record {
	out := make([]Record, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.by[k])
	}
	return out
}

// Runtime returns the ext=true records, in insertion order — these
// belong in som_std.cc.
func (d *Definitions) Runtime() []Record {
	var out []Record
	for _, k := range d.order {
		if rec := d.by[k]; rec.Ext {
			out = append(out, rec)
		}
	}
	return out
}

// User returns the ext=false records, in insertion order — these
// belong in module.cc.
func (d *Definitions) User() []Record {
	var out []Record
	for _, k := range d.order {
		if rec := d.by[k]; !rec.Ext {
			out = append(out, rec)
		}
	}
	return out
}
