package search

import (
	"fmt"
	"math"

	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// BuildSymbolSet assembles the default single-category numeric
// SymbolSet a run uses when no `--symbols` definition file is supplied:
// one variable terminal per dataset feature, an ephemeral numeric
// constant, and the arithmetic/transcendental function set, grounded on
// original_source/kernel/primitive/sr_pri.h's add/sub/mul/div/sin/ln.
//
// spec.md §6 allows an external `--symbols` file to override this; a
// bespoke symbol-definition-file parser is out of scope here (no
// surviving grammar/format was retrieved) so this default set is always
// what a run gets, consistent with dataset/csv.go's already-documented
// thin-adapter stance.
func BuildSymbolSet(features int) *primitive.SymbolSet {
	sset := primitive.NewSymbolSet()

	for i := 0; i < features; i++ {
		idx := i
		v := &primitive.Primitive{
			Name:     fmt.Sprintf("x%d", idx),
			Category: 0,
			Domain:   primitive.DomainDouble,
			Arity:    0,
			Eval: func(a primitive.Args) primitive.Value {
				return a.Input(idx)
			},
		}
		sset.Insert(v, primitive.BaseWeight)
	}

	constant := &primitive.Primitive{
		Name:       "const",
		Category:   0,
		Domain:     primitive.DomainDouble,
		Arity:      0,
		Parametric: true,
		Eval: func(a primitive.Args) primitive.Value {
			return primitive.Value{Domain: primitive.DomainDouble, Double: a.Param()}
		},
	}
	sset.Insert(constant, primitive.BaseWeight)

	binary := func(name string, weight uint, fn func(l, r float64) float64) {
		p := &primitive.Primitive{
			Name: name, Category: 0, Domain: primitive.DomainDouble, Arity: 2,
			ArgCat: []primitive.Category{0, 0},
			Eval: func(a primitive.Args) primitive.Value {
				l, r := a.Fetch(0), a.Fetch(1)
				if l.IsVoid() || r.IsVoid() {
					return primitive.Void
				}
				return primitive.Value{Domain: primitive.DomainDouble, Double: fn(l.Double, r.Double)}
			},
		}
		sset.Insert(p, weight)
	}
	unary := func(name string, weight uint, fn func(x float64) float64) {
		p := &primitive.Primitive{
			Name: name, Category: 0, Domain: primitive.DomainDouble, Arity: 1,
			ArgCat: []primitive.Category{0},
			Eval: func(a primitive.Args) primitive.Value {
				x := a.Fetch(0)
				if x.IsVoid() {
					return primitive.Void
				}
				return primitive.Value{Domain: primitive.DomainDouble, Double: fn(x.Double)}
			},
		}
		sset.Insert(p, weight)
	}

	binary("add", primitive.BaseWeight, func(l, r float64) float64 { return l + r })
	binary("sub", primitive.BaseWeight, func(l, r float64) float64 { return l - r })
	binary("mul", primitive.BaseWeight, func(l, r float64) float64 { return l * r })
	binary("div", primitive.BaseWeight, func(l, r float64) float64 {
		if r == 0 {
			return math.Inf(1) // sanitized to void by the interpreter
		}
		return l / r
	})
	unary("sin", primitive.BaseWeight/2, math.Sin)
	unary("cos", primitive.BaseWeight/2, math.Cos)
	unary("exp", primitive.BaseWeight/4, math.Exp)
	unary("ln", primitive.BaseWeight/4, func(x float64) float64 {
		if x <= 0 {
			return math.NaN() // sanitized to void by the interpreter
		}
		return math.Log(x)
	})

	return sset
}

// RandomizedSeed returns a seeded *rng.Source, the per-run engine
// instance spec.md §5 describes as explicitly (re)seeded rather than
// shared process-wide state.
func RandomizedSeed(seed int64) *rng.Source {
	if seed == 0 {
		r := rng.New()
		r.Randomize()
		return r
	}
	return rng.NewSeeded(seed)
}
