package genome

import (
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// Mutate applies per-gene mutation to the active subtree only (spec.md
// §4.5: "mutation affects only exons"): for each active locus, with
// independent probability pMutation the gene is replaced by a fresh one
// chosen by the same rule as RandomInit (the body-section roulette rule if
// the locus is in the body, else the patch terminal rule). Returns the
// number of genes actually changed; if non-zero, the cached signature is
// cleared.
func (g *Genome) Mutate(r *rng.Source, sset *primitive.SymbolSet, pMutation float64) int {
	patch := g.PatchStart()
	changed := 0

	for _, l := range g.ActiveLoci() {
		if !r.Chance(pMutation) {
			continue
		}

		var candidate Gene
		if l.Index < patch {
			sym := sset.RouletteFree(r, l.Category)
			candidate = newRandomGene(r, sym, l.Index, g.codeLength)
		} else {
			sym := sset.RouletteTerminal(r, l.Category)
			candidate = newRandomGene(r, sym, l.Index, g.codeLength)
		}

		old := g.At(l)
		if !old.Equal(candidate) {
			g.code[l.Index][l.Category] = candidate
			changed++
		}
	}

	if changed > 0 {
		g.sigValid = false
	}
	return changed
}
