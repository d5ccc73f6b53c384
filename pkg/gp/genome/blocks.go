package genome

import (
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// Blocks returns the set of loci of active function genes: a subset of
// the active code composed of at least one function, usable with
// GetBlock and DestroyBlock. Grounded on i_mep::blocks in
// original_source/src/kernel/gp/mep/i_mep.cc.
func (g *Genome) Blocks() []Locus {
	var out []Locus
	for _, l := range g.ActiveLoci() {
		if !g.At(l).Sym.IsTerminal() {
			out = append(out, l)
		}
	}
	return out
}

// GetBlock returns a clone of g with Best reset to l, i.e. the
// sub-program rooted at l in isolation. Used by ARL to evaluate a
// candidate block's standalone fitness.
func (g *Genome) GetBlock(l Locus) *Genome {
	clone := g.Clone()
	clone.SetBest(l)
	return clone
}

// DestroyBlock returns a clone of g in which the gene at index (for every
// category) has been replaced by a random terminal of the matching
// category, used by ARL to measure a block's marginal fitness
// contribution by removing it.
func (g *Genome) DestroyBlock(r *rng.Source, index int, sset *primitive.SymbolSet) *Genome {
	clone := g.Clone()
	for c := 0; c < clone.categories; c++ {
		sym := sset.RouletteTerminal(r, primitive.Category(c))
		clone.code[index][c] = newRandomGene(r, sym, index, clone.codeLength)
	}
	clone.sigValid = false
	return clone
}

// Replace returns a clone of g with the gene at locus l replaced by gene.
func (g *Genome) Replace(l Locus, gene Gene) *Genome {
	clone := g.Clone()
	clone.Set(l, gene)
	return clone
}

// ReplaceBest returns a clone of g with the gene at Best replaced.
func (g *Genome) ReplaceBest(gene Gene) *Genome {
	return g.Replace(g.best, gene)
}
