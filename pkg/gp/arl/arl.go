// Package arl implements Adaptive Representation through Learning:
// identifying sub-programs ("blocks") inside a fit individual whose
// removal costs more than 10% fitness, and promoting them to new
// terminals (ADTs) inserted into the SymbolSet for subsequent runs
// (spec.md §4.5's "block extraction" paragraph).
//
// Grounded on original_source/src/kernel/team.h's allusions to ADF/ADT
// symbols and spec.md §4.5 directly — no bespoke arl.h/.cc survived
// retrieval, so the candidate-scoring and promotion mechanics below are
// built from the spec's description rather than ported code.
package arl

import (
	"math"
	"sort"

	"github.com/klauern/vita-go/pkg/gp/evaluator"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// PromotionThreshold is the minimum relative fitness loss a block must
// cost, once destroyed, to be considered for promotion (spec.md §4.5:
// "removal causes > 10% fitness loss").
const PromotionThreshold = 0.10

// Candidate is one block worth promoting: its locus in the individual it
// was found in, and how much fitness its removal cost.
type Candidate struct {
	Locus        genome.Locus
	RelativeLoss float64
}

// FindCandidates walks every block of g, destroys it in a clone, and
// re-scores that clone with eval.FastEvaluate — spec.md names no
// specific evaluation pass for this, and a full Evaluate per block
// would multiply the cost of an already-expensive generation, so the
// same fast/subsampled pass the evolution driver's brood selection uses
// is reused here. Candidates are returned sorted by relative loss,
// highest first.
func FindCandidates(g *genome.Genome, eval evaluator.Evaluator, sset *primitive.SymbolSet, r *rng.Source, baseline evaluator.Fitness) []Candidate {
	blocks := g.Blocks()
	candidates := make([]Candidate, 0, len(blocks))

	for _, locus := range blocks {
		destroyed := g.DestroyBlock(r, locus.Index, sset)
		destroyedFit := eval.FastEvaluate(destroyed)

		loss := relativeLoss(baseline.Value, destroyedFit.Value)
		if loss > PromotionThreshold {
			candidates = append(candidates, Candidate{Locus: locus, RelativeLoss: loss})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].RelativeLoss > candidates[j].RelativeLoss
	})
	return candidates
}

// relativeLoss compares a baseline fitness against the fitness measured
// after destroying a block. Fitness values in this module are <= 0
// (larger, i.e. closer to zero, is better); the loss is the drop from
// baseline to destroyed as a fraction of baseline's magnitude, and is
// negative when destroying the block improves fitness.
func relativeLoss(baseline, destroyed float64) float64 {
	if baseline == 0 {
		if destroyed == 0 {
			return 0
		}
		return 1
	}
	return (baseline - destroyed) / math.Abs(baseline)
}

// Promote turns the block at locus into a zero-arity terminal (an ADT,
// per spec.md's glossary: "Automatically Defined Function/Terminal").
// The new primitive re-runs the captured sub-program against the full
// input vector of whatever call site invokes it — primitive.Args.Input
// exposes the entire input vector by index regardless of the calling
// gene's own arity (interpreter.go's argsView), which is what makes a
// zero-arity wrapper sufficient without any argument-remapping.
//
// Arity-bearing ADFs (sub-programs parameterized by the caller's own
// arguments rather than the dataset's input vector) would need
// free-variable analysis of the block that spec.md does not describe
// and no retrieved source implements; only the ADT case is built here.
func Promote(g *genome.Genome, locus genome.Locus, interp *interpreter.Interpreter, featureCount int, name string) *primitive.Primitive {
	block := g.GetBlock(locus)
	gene := g.At(locus)

	return &primitive.Primitive{
		Name:     name,
		Category: gene.Sym.Category,
		Domain:   gene.Sym.Domain,
		Arity:    0,
		Eval: func(a primitive.Args) primitive.Value {
			input := make([]primitive.Value, featureCount)
			for i := range input {
				input[i] = a.Input(i)
			}
			return interp.Run(block, input)
		},
	}
}

// PromoteCandidates promotes every candidate above the threshold into
// sset, naming each "adt_a", "adt_b", ... by its insertion order within
// this call (see adtName), and returns the inserted primitives.
func PromoteCandidates(g *genome.Genome, candidates []Candidate, sset *primitive.SymbolSet, interp *interpreter.Interpreter, featureCount int) []*primitive.Primitive {
	promoted := make([]*primitive.Primitive, 0, len(candidates))
	for i, c := range candidates {
		name := adtName(i)
		p := Promote(g, c.Locus, interp, featureCount, name)
		sset.Insert(p, primitive.BaseWeight)
		promoted = append(promoted, p)
	}
	return promoted
}

func adtName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return "adt_" + string(letters[i])
	}
	return "adt_" + string(letters[i%len(letters)]) + string(rune('0'+i/len(letters)))
}
