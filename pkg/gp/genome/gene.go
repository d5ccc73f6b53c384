// Package genome implements the i_mep individual: a linear, strongly-typed,
// index-addressed program encoding.
//
// Grounded on original_source/src/kernel/gp/mep/i_mep.cc/.h: a genome is a
// matrix of genes indexed by (index, category), with a distinguished
// "best" locus as entry point, a body section where any primitive may
// appear and a trailing patch section restricted to terminals. The
// mutual-reference-via-shared-pointers pattern the original C++ uses
// between genome and interpreter is replaced here (per spec.md §9) with an
// arena: genes live in a contiguous matrix owned by the Genome, and
// argument references are plain slot indices.
package genome

import "github.com/klauern/vita-go/pkg/gp/primitive"

// Locus identifies a single gene slot by (index, category).
type Locus struct {
	Index    int
	Category primitive.Category
}

// Gene is one slot of a genome: a non-owning reference to a primitive, a
// scalar parameter (meaningful only for parametric terminals), and an
// argument list of later-slot indices (length == primitive arity).
type Gene struct {
	Sym  *primitive.Primitive
	Par  float64
	Args []int // genome indices; Args[i] > the gene's own index
}

// ArgLocus returns the locus of the i-th argument of g, given the genome's
// overall category count is implied by the argument's own category
// (resolved by the primitive's ArgCategory).
func (g Gene) ArgLocus(i int) Locus {
	return Locus{Index: g.Args[i], Category: g.Sym.ArgCategory(i)}
}

// Equal reports whether two genes are structurally identical: same
// primitive, same parameter (if parametric terminal), same arguments.
// Used by mutation to tell whether a replacement gene differs from the
// original.
func (g Gene) Equal(o Gene) bool {
	if g.Sym != o.Sym {
		return false
	}
	if g.Sym.IsTerminal() {
		if g.Sym.Parametric {
			return g.Par == o.Par
		}
		return true
	}
	if len(g.Args) != len(o.Args) {
		return false
	}
	for i := range g.Args {
		if g.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}
