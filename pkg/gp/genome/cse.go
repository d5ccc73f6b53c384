package genome

import "strconv"

// CSE performs common-subexpression elimination: scanning indices from the
// last down to the first, duplicate gene structures (same primitive, same
// parameter if a parametric terminal, same arguments) are coalesced by
// redirecting later references to the earliest (highest-index, since we
// scan downward) occurrence seen so far. The result has the same
// signature as the original and the same interpreter output on any input,
// but typically fewer active symbols (spec.md §4.5, §8).
//
// Grounded on i_mep::cse in
// original_source/src/kernel/gp/mep/i_mep.cc: a map from gene structure to
// the locus that first exhibited it, populated scanning index from
// size()-1 down to 0, with argument indices of already-visited genes
// rewritten to point at the canonical locus before the gene itself is
// recorded.
func (g *Genome) CSE() *Genome {
	out := g.Clone()

	// One canonical map per category, since a structural match only makes
	// sense within the same category (a gene's args reference same-category
	// slots, but two genes in different categories are never
	// interchangeable).
	canonicalByCat := make(map[int]map[geneKey]int)

	for i := g.codeLength - 1; i >= 0; i-- {
		for c := 0; c < g.categories; c++ {
			gene := out.code[i][c]

			newArgs := make([]int, len(gene.Args))
			for ai, argIdx := range gene.Args {
				newArgs[ai] = argIdx
				argCat := int(gene.Sym.ArgCategory(ai))
				if m, ok := canonicalByCat[argCat]; ok {
					argGene := out.code[argIdx][argCat]
					if canon, ok := m[keyOf(argGene)]; ok {
						newArgs[ai] = canon
					}
				}
			}
			gene.Args = newArgs
			out.code[i][c] = gene

			m, ok := canonicalByCat[c]
			if !ok {
				m = make(map[geneKey]int)
				canonicalByCat[c] = m
			}
			if _, exists := m[keyOf(gene)]; !exists {
				m[keyOf(gene)] = i
			}
		}
	}

	out.sigValid = false
	return out
}

type geneKey struct {
	opcode int
	par    float64
	isTerm bool
	argsKy string
}

func keyOf(gene Gene) geneKey {
	k := geneKey{opcode: gene.Sym.Opcode, isTerm: gene.Sym.IsTerminal()}
	if gene.Sym.Parametric {
		k.par = gene.Par
	}
	for _, a := range gene.Args {
		k.argsKy += strconv.Itoa(a) + ","
	}
	return k
}
