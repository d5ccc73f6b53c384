package evaluator

import (
	"math"

	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/lambda"
)

// epsilonMin is the small-number guard used by the relative-error
// variant (spec.md §4.4): differences at or below 10*epsilonMin are
// treated as a perfect match rather than risking a division blowup.
const epsilonMin = 2.220446049250313e-16

// errorFunc scores one example's prediction against its target,
// returning the per-example error contribution and whether it counts as
// a correct answer (spec.md §4.4's accuracy numerator).
type errorFunc func(predicted, target float64, void bool, illegals *int) (err float64, correct bool)

// sumOfErrors is the shared regression evaluator shape: a single
// dataset scan whose error function is supplied by the concrete variant
// (mirrors sum_of_errors_evaluator in src_evaluator.h, whose subclasses
// differ only in their error() method).
type sumOfErrors struct {
	trainingInput
	errFn errorFunc
}

func newSumOfErrors(d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache, errFn errorFunc) *sumOfErrors {
	return &sumOfErrors{trainingInput: trainingInput{dataset: d, interp: interp, cache: cache}, errFn: errFn}
}

func (e *sumOfErrors) scan(g *genome.Genome, fast bool) Fitness {
	n := e.dataset.Len()
	illegals := 0
	var errSum float64
	var ok, total uint
	counter := 0

	for i := 0; i < n; i++ {
		if fast && n > fastEvaluateThreshold && counter%fastEvaluateStride != 0 {
			counter++
			continue
		}
		counter++

		ex := e.dataset.Example(i)
		out := e.interp.Run(g, ex.Input)

		var predicted float64
		if !out.IsVoid() {
			predicted = out.Double
		}

		errv, correct := e.errFn(predicted, ex.Output.Double, out.IsVoid(), &illegals)
		errSum += errv
		total++

		if correct {
			ok++
		} else {
			e.dataset.SetDifficulty(i, e.dataset.Difficulty(i)+1)
		}
	}

	if total == 0 {
		return Fitness{}
	}

	// Average error so fast() and the full pass are comparable (matches
	// sum_of_errors_evaluator's rationale in src_evaluator.cc).
	return Fitness{Value: -errSum / float64(total), Accuracy: float64(ok) / float64(total)}
}

func (e *sumOfErrors) Evaluate(g *genome.Genome) Fitness {
	if f, ok := cacheLookup(e.cache, g); ok {
		return f
	}
	f := e.scan(g, false)
	cacheStore(e.cache, g, f)
	return f
}

func (e *sumOfErrors) FastEvaluate(g *genome.Genome) Fitness {
	return e.scan(g, true)
}

func (e *sumOfErrors) Accuracy(g *genome.Genome) float64 {
	return e.Evaluate(g).Accuracy
}

func (e *sumOfErrors) Lambdify(g *genome.Genome) lambda.Model {
	return lambda.NewRegression(e.interp, g)
}

// MAE is the mean-absolute-error evaluator.
type MAE struct{ *sumOfErrors }

func NewMAE(d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache) *MAE {
	errFn := func(predicted, target float64, void bool, illegals *int) (float64, bool) {
		if void {
			*illegals++
			return illegalPenalty(*illegals), false
		}
		err := math.Abs(predicted - target)
		return err, err <= epsilonMin
	}
	return &MAE{newSumOfErrors(d, interp, cache, errFn)}
}

// MSE is the mean-squared-error evaluator.
type MSE struct{ *sumOfErrors }

func NewMSE(d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache) *MSE {
	errFn := func(predicted, target float64, void bool, illegals *int) (float64, bool) {
		if void {
			*illegals++
			return illegalPenalty(*illegals), false
		}
		diff := predicted - target
		err := diff * diff
		return err, err <= epsilonMin
	}
	return &MSE{newSumOfErrors(d, interp, cache, errFn)}
}

// RMAE is the relative-mean-absolute-error evaluator:
// -mean(200*|p-y|/(|p|+|y|)), with a small-number guard.
type RMAE struct{ *sumOfErrors }

func NewRMAE(d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache) *RMAE {
	errFn := func(predicted, target float64, void bool, illegals *int) (float64, bool) {
		if void {
			*illegals++
			return illegalPenalty(*illegals), false
		}
		diff := math.Abs(predicted - target)
		if diff <= 10*epsilonMin {
			return 0, true
		}
		denom := math.Abs(predicted) + math.Abs(target)
		if denom == 0 {
			return 0, true
		}
		return 200 * diff / denom, false
	}
	return &RMAE{newSumOfErrors(d, interp, cache, errFn)}
}

// Count is the count/match evaluator: every incorrect answer is penalized
// identically, and fitness is the negated fraction of mismatched examples
// (mismatches divided by examples scanned, via the shared scan). The raw
// mismatch count is not returned.
type Count struct{ *sumOfErrors }

func NewCount(d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache) *Count {
	errFn := func(predicted, target float64, void bool, illegals *int) (float64, bool) {
		mismatch := void || math.Abs(predicted-target) >= epsilonMin
		if mismatch {
			return 1.0, false
		}
		return 0.0, true
	}
	return &Count{newSumOfErrors(d, interp, cache, errFn)}
}
