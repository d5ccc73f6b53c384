// Package evaluator assigns a fitness vector to a genome against a
// dataset, memoizing results behind the genome's structural signature.
//
// Grounded on original_source/kernel/src_evaluator.h/.cc: the
// sum-of-errors family (MAE/MSE/RMAE/Count) shares a single scan over
// the dataset differing only in the per-example error function, while
// the dyn-slot and Gaussian classification variants build a lambda
// engine from the training examples and score against it, and the binary
// variant scores the sign of the raw program output (spec.md §4.4, §4.8).
package evaluator

import (
	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/lambda"
)

// Fitness pairs the scalar the evolution driver optimizes (greater is
// better, 0 is the maximum) with the classification/regression accuracy
// on the same pass (spec.md §4.4).
type Fitness struct {
	Value    float64
	Accuracy float64
}

// Better reports whether f should be preferred over o in selection.
func (f Fitness) Better(o Fitness) bool {
	return f.Value > o.Value
}

// Evaluator assigns fitness to genomes and can turn one into an
// executable lambda.Model.
type Evaluator interface {
	Evaluate(g *genome.Genome) Fitness
	FastEvaluate(g *genome.Genome) Fitness
	Accuracy(g *genome.Genome) float64
	Lambdify(g *genome.Genome) lambda.Model
}

// fastEvaluateThreshold/Stride implement spec.md §4.4's fast_evaluate
// subsampling: below the threshold every example is scanned; above it,
// only every Stride-th example is (spec.md §9 flags the stride as an
// unscaled magic number, carried here unchanged).
const (
	fastEvaluateThreshold = 20
	fastEvaluateStride    = 5
)

// illegalPenalty is the fitness cost of a void prediction: 100^k where k
// is the running count of illegals seen so far in the current pass
// (spec.md §4.4).
func illegalPenalty(illegals int) float64 {
	p := 1.0
	for i := 0; i < illegals; i++ {
		p *= 100.0
	}
	return p
}

// cacheLookup/cacheStore centralize the fingerprint.Cache wiring shared
// by every evaluator variant: full Evaluate passes are memoized by
// signature (spec.md §4.3's "at-most-one-evaluation per signature");
// FastEvaluate deliberately bypasses the cache since it samples a
// different subset of the dataset and would corrupt entries meant for
// the full pass.
func cacheLookup(cache *fingerprint.Cache, g *genome.Genome) (Fitness, bool) {
	if cache == nil {
		return Fitness{}, false
	}
	stored, ok := cache.Get(g.Signature())
	if !ok || len(stored) != 2 {
		return Fitness{}, false
	}
	return Fitness{Value: stored[0], Accuracy: stored[1]}, true
}

func cacheStore(cache *fingerprint.Cache, g *genome.Genome, f Fitness) {
	if cache == nil {
		return
	}
	cache.Insert(g.Signature(), []float64{f.Value, f.Accuracy})
}

// trainingInput is a tiny convenience used by every variant to reach an
// interpreter/dataset pairing without repeating the same two fields.
type trainingInput struct {
	dataset dataset.Dataset
	interp  *interpreter.Interpreter
	cache   *fingerprint.Cache
}
