package evaluator

import (
	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/lambda"
)

// Binary scores a single-class (2-class) classifier by the absolute
// magnitude of its mistakes, commented out as `problem::binary_fitness`
// in original_source/kernel/src_evaluator.cc but named explicitly in
// spec.md §4.4 as a first-class evaluator variant.
type Binary struct {
	trainingInput
	label int // the class whose examples should score output >= 0
}

func NewBinary(d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache, label int) *Binary {
	return &Binary{trainingInput: trainingInput{dataset: d, interp: interp, cache: cache}, label: label}
}

func (e *Binary) evaluate(g *genome.Genome) Fitness {
	var errSum float64
	illegals := 0
	var ok, total uint

	for i := 0; i < e.dataset.Len(); i++ {
		ex := e.dataset.Example(i)
		out := e.interp.Run(g, ex.Input)
		total++

		if out.IsVoid() {
			illegals++
			errSum += illegalPenalty(illegals)
			e.dataset.SetDifficulty(i, e.dataset.Difficulty(i)+1)
			continue
		}

		val := out.Double
		isLabel := int(ex.Output.Int) == e.label
		mispredicted := (isLabel && val < 0.0) || (!isLabel && val >= 0.0)

		if mispredicted {
			errSum += absFloat(val)
			e.dataset.SetDifficulty(i, e.dataset.Difficulty(i)+1)
		} else {
			ok++
		}
	}

	if total == 0 {
		return Fitness{}
	}

	return Fitness{Value: -errSum, Accuracy: float64(ok) / float64(total)}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (e *Binary) Evaluate(g *genome.Genome) Fitness {
	if f, ok := cacheLookup(e.cache, g); ok {
		return f
	}
	f := e.evaluate(g)
	cacheStore(e.cache, g, f)
	return f
}

func (e *Binary) FastEvaluate(g *genome.Genome) Fitness {
	return e.evaluate(g)
}

func (e *Binary) Accuracy(g *genome.Genome) float64 {
	return e.Evaluate(g).Accuracy
}

func (e *Binary) Lambdify(g *genome.Genome) lambda.Model {
	return lambda.NewBinary(e.interp, g, e.dataset)
}
