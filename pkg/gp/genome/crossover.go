package genome

import "github.com/klauern/vita-go/pkg/gp/rng"

// Crossover produces one offspring from parents a and b. Both must share
// the same dimensions. A parent is chosen at random as the variation
// donor ("from"); the offspring starts as a copy of the other parent
// ("to") and the donor's inherited CrossoverStrategy tag selects which of
// the four elementary operators (spec.md §4.5) is applied:
//
//   - one-point: copy all genes at index >= a random cut from the donor;
//   - two-point: copy genes in [cut1, cut2) from the donor;
//   - uniform: independently take each gene from the donor with p=0.5;
//   - tree: copy the donor's entire subtree rooted at a random active
//     locus (and everything it references).
//
// The offspring's age is set to max(a.age, b.age) and its crossover
// strategy tag is inherited from the donor, enabling the self-adaptation
// spec.md §4.7 describes: tags that produce fitter offspring propagate.
func Crossover(r *rng.Source, a, b *Genome) *Genome {
	donorIsB := r.Bool()
	from, to := a, b
	if donorIsB {
		from, to = b, a
	}

	offspring := to.Clone()

	switch from.crossover {
	case CrossoverOnePoint:
		onePointCrossover(r, from, offspring)
	case CrossoverTwoPoint:
		twoPointCrossover(r, from, offspring)
	case CrossoverUniform:
		uniformCrossover(r, from, offspring)
	default:
		treeCrossover(r, from, offspring)
	}

	offspring.crossover = from.crossover
	offspring.age = maxInt(a.age, b.age)
	offspring.sigValid = false

	return offspring
}

func onePointCrossover(r *rng.Source, from, to *Genome) {
	iSup := from.codeLength
	cut := 1 + r.IntN(iSup-1) // in [1, iSup-1]
	for i := cut; i < iSup; i++ {
		for c := 0; c < from.categories; c++ {
			to.code[i][c] = from.code[i][c]
		}
	}
}

func twoPointCrossover(r *rng.Source, from, to *Genome) {
	iSup := from.codeLength
	cut1 := r.IntN(iSup - 1)
	cut2 := cut1 + 1 + r.IntN(iSup-cut1-1)
	for i := cut1; i < cut2; i++ {
		for c := 0; c < from.categories; c++ {
			to.code[i][c] = from.code[i][c]
		}
	}
}

func uniformCrossover(r *rng.Source, from, to *Genome) {
	for i := 0; i < from.codeLength; i++ {
		for c := 0; c < from.categories; c++ {
			if r.Bool() {
				to.code[i][c] = from.code[i][c]
			}
		}
	}
}

// treeCrossover copies the donor's entire subtree rooted at a randomly
// chosen active locus, including every locus it transitively references,
// mirroring random_locus + the recursive copy in original_source's
// crossover() free function.
func treeCrossover(r *rng.Source, from, to *Genome) {
	active := from.ActiveLoci()
	root := active[r.IntN(len(active))]

	var copySubtree func(l Locus)
	copySubtree = func(l Locus) {
		gene := from.At(l)
		to.code[l.Index][l.Category] = gene
		for i := range gene.Args {
			copySubtree(gene.ArgLocus(i))
		}
	}
	copySubtree(root)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
