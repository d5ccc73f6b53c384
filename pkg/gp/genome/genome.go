package genome

import (
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// NumCrossoverStrategies is the number of distinct crossover-strategy tags
// a genome can carry (spec.md §3: one-point, two-point, uniform, tree).
const NumCrossoverStrategies = 4

// Crossover strategy tags, inherited by offspring from the donor parent to
// enable self-adaptation (spec.md §4.5).
const (
	CrossoverOnePoint CrossoverStrategy = iota
	CrossoverTwoPoint
	CrossoverUniform
	CrossoverTree
)

// CrossoverStrategy is the tag a genome carries recording which crossover
// operator created it.
type CrossoverStrategy int

// Genome is a code_length x categories matrix of genes, with a
// distinguished best locus, an age counter, a crossover-strategy tag and a
// lazily computed, memoized signature.
type Genome struct {
	code        [][]Gene // code[index][category]
	codeLength  int
	categories  int
	patchLength int
	best        Locus
	age         int
	crossover   CrossoverStrategy
	signature   fingerprint.Signature
	sigValid    bool
}

// New allocates an empty genome matrix of the given dimensions. Callers
// populate it via RandomInit or by direct assignment (tests).
func New(codeLength, categories, patchLength int) *Genome {
	code := make([][]Gene, codeLength)
	for i := range code {
		code[i] = make([]Gene, categories)
	}
	return &Genome{
		code:        code,
		codeLength:  codeLength,
		categories:  categories,
		patchLength: patchLength,
	}
}

// CodeLength returns the number of index slots (size()).
func (g *Genome) CodeLength() int { return g.codeLength }

// Categories returns the number of categories (columns).
func (g *Genome) Categories() int { return g.categories }

// PatchLength returns the size of the trailing terminal-only section.
func (g *Genome) PatchLength() int { return g.patchLength }

// PatchStart returns the first index of the patch section.
func (g *Genome) PatchStart() int { return g.codeLength - g.patchLength }

// Best returns the genome's entry-point locus.
func (g *Genome) Best() Locus { return g.best }

// SetBest sets the entry-point locus and invalidates the cached signature.
func (g *Genome) SetBest(l Locus) {
	if l != g.best {
		g.best = l
		g.sigValid = false
	}
}

// Category returns the category of the individual, i.e. the category of
// the gene at its best locus.
func (g *Genome) Category() primitive.Category {
	return g.best.Category
}

// Age returns the number of generations this genome has survived.
func (g *Genome) Age() int { return g.age }

// SetAge sets the age counter (used by the evolution loop and by
// crossover, which sets offspring age to max(parent ages)).
func (g *Genome) SetAge(a int) { g.age = a }

// IncAge increments the age counter by one generation.
func (g *Genome) IncAge() { g.age++ }

// CrossoverStrategy returns the inherited crossover-strategy tag.
func (g *Genome) CrossoverStrategy() CrossoverStrategy { return g.crossover }

// SetCrossoverStrategy sets the crossover-strategy tag.
func (g *Genome) SetCrossoverStrategy(c CrossoverStrategy) { g.crossover = c }

// At returns the gene at locus l.
func (g *Genome) At(l Locus) Gene {
	return g.code[l.Index][l.Category]
}

// Set assigns the gene at locus l and invalidates the cached signature.
func (g *Genome) Set(l Locus, gene Gene) {
	g.code[l.Index][l.Category] = gene
	g.sigValid = false
}

// Clone returns a deep copy of g, safe to mutate independently.
func (g *Genome) Clone() *Genome {
	out := New(g.codeLength, g.categories, g.patchLength)
	for i := range g.code {
		for c := range g.code[i] {
			gene := g.code[i][c]
			args := make([]int, len(gene.Args))
			copy(args, gene.Args)
			out.code[i][c] = Gene{Sym: gene.Sym, Par: gene.Par, Args: args}
		}
	}
	out.best = g.best
	out.age = g.age
	out.crossover = g.crossover
	out.signature = g.signature
	out.sigValid = g.sigValid
	return out
}

// RandomInit fills every slot per spec.md §4.5: in the body section each
// gene is drawn via SymbolSet.RouletteFree with arguments pointing to a
// uniformly random later index; in the patch section each gene is drawn
// via SymbolSet.RouletteTerminal. The crossover strategy is seeded
// uniformly at random; best defaults to (0, 0).
func (g *Genome) RandomInit(r *rng.Source, sset *primitive.SymbolSet) {
	patch := g.PatchStart()

	for i := 0; i < patch; i++ {
		for c := 0; c < g.categories; c++ {
			sym := sset.RouletteFree(r, primitive.Category(c))
			g.code[i][c] = newRandomGene(r, sym, i, g.codeLength)
		}
	}

	for i := patch; i < g.codeLength; i++ {
		for c := 0; c < g.categories; c++ {
			sym := sset.RouletteTerminal(r, primitive.Category(c))
			g.code[i][c] = newRandomGene(r, sym, i, g.codeLength)
		}
	}

	g.crossover = CrossoverStrategy(r.IntN(NumCrossoverStrategies))
	g.best = Locus{Index: 0, Category: 0}
	g.sigValid = false
}

// newRandomGene builds a gene around sym, drawing a scalar parameter if
// sym is a parametric terminal and, for a function, uniformly random
// argument indices strictly greater than index (and below codeLength).
func newRandomGene(r *rng.Source, sym *primitive.Primitive, index, codeLength int) Gene {
	g := Gene{Sym: sym}
	if sym.IsTerminal() {
		if sym.Parametric {
			g.Par = r.Float64()*20 - 10 // ephemeral constant in [-10, 10)
		}
		return g
	}
	g.Args = make([]int, sym.Arity)
	for i := range g.Args {
		g.Args[i] = index + 1 + r.IntN(codeLength-index-1)
	}
	return g
}

// ActiveLoci returns, in deterministic pack order, the distinct loci
// reachable from Best (the active subtree / "exons"). Unlike pack (which
// mirrors i_mep::pack's unmemoized recursion), this deduplicates loci
// reached through more than one path, matching the iterator
// (begin()/end()) the original uses for mutation and block extraction.
func (g *Genome) ActiveLoci() []Locus {
	visited := make(map[Locus]bool)
	var order []Locus

	var visit func(l Locus)
	visit = func(l Locus) {
		if visited[l] {
			return
		}
		visited[l] = true
		order = append(order, l)
		gene := g.At(l)
		for i := range gene.Args {
			visit(gene.ArgLocus(i))
		}
	}
	visit(g.best)

	return order
}

// ActiveSymbols returns the number of distinct active loci.
func (g *Genome) ActiveSymbols() int {
	return len(g.ActiveLoci())
}

// pack appends the packed byte representation of the subtree rooted at l
// to p, mirroring i_mep::pack: the recursion is unmemoized (a locus
// reachable via two distinct paths is packed twice), since genome
// references are always acyclic and strictly forward.
func (g *Genome) pack(l Locus, p *fingerprint.Packer) {
	gene := g.At(l)
	p.Opcode(gene.Sym.Opcode)

	if gene.Sym.IsTerminal() {
		if gene.Sym.Parametric {
			p.Param(gene.Par)
		}
		return
	}
	for i := range gene.Args {
		g.pack(gene.ArgLocus(i), p)
	}
}

// Signature computes (and memoizes) the 128-bit structural hash of the
// active subtree. Any call to Set/SetBest/mutation clears the memoized
// value, so a subsequent call here recomputes it.
func (g *Genome) Signature() fingerprint.Signature {
	if g.sigValid {
		return g.signature
	}
	p := fingerprint.NewPacker()
	g.pack(g.best, p)
	g.signature = p.Signature()
	g.sigValid = true
	return g.signature
}

// ClearSignature forces the next Signature call to recompute.
func (g *Genome) ClearSignature() { g.sigValid = false }

// IsValid checks the structural invariants spec.md §3 requires: every
// function gene's arguments reference strictly greater indices and match
// the primitive's declared argument category, every patch-section gene is
// a terminal, and best resolves to a real slot.
func (g *Genome) IsValid() bool {
	if g.best.Index < 0 || g.best.Index >= g.codeLength {
		return false
	}
	if g.best.Category < 0 || int(g.best.Category) >= g.categories {
		return false
	}

	patch := g.PatchStart()
	for i := 0; i < g.codeLength; i++ {
		for c := 0; c < g.categories; c++ {
			gene := g.code[i][c]
			if gene.Sym == nil {
				return false
			}
			if i >= patch && !gene.Sym.IsTerminal() {
				return false
			}
			for argIdx, argSlot := range gene.Args {
				if argSlot <= i || argSlot >= g.codeLength {
					return false
				}
				wantCat := gene.Sym.ArgCategory(argIdx)
				if g.code[argSlot][wantCat].Sym == nil {
					return false
				}
			}
		}
	}
	return true
}
