package evaluator

import (
	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/lambda"
)

// confidenceScale discounts fitness by the classifier's residual
// uncertainty, matching src_evaluator.cc's "0.001 * (1.0 - confidence)"
// scaling factor for the Gaussian evaluator.
const confidenceScale = 0.001

// Gaussian drives evolution using the Gaussian-distribution fitness
// described in Zhang & Smart (2005), grounded on
// original_source/kernel/src_evaluator.cc's gaussian_evaluator.
type Gaussian struct {
	trainingInput
}

func NewGaussian(d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache) *Gaussian {
	return &Gaussian{trainingInput{dataset: d, interp: interp, cache: cache}}
}

func (e *Gaussian) evaluate(g *genome.Genome) Fitness {
	engine := lambda.NewGaussianEngine(e.interp, g, e.dataset)

	classes := e.dataset.Classes()
	var d float64
	var ok, count uint

	for i := 0; i < e.dataset.Len(); i++ {
		ex := e.dataset.Example(i)
		probable, confidence, sum := engine.ClassLabel(e.interp, g, ex.Input)

		if probable == int(ex.Output.Int) {
			ok++
			d += (confidence-sum)/float64(classes-1) - confidenceScale*(1.0-confidence)
		} else {
			d -= 1.0
			e.dataset.SetDifficulty(i, e.dataset.Difficulty(i)+1)
		}
		count++
	}

	if count == 0 {
		return Fitness{}
	}

	return Fitness{Value: d, Accuracy: float64(ok) / float64(count)}
}

func (e *Gaussian) Evaluate(g *genome.Genome) Fitness {
	if f, ok := cacheLookup(e.cache, g); ok {
		return f
	}
	f := e.evaluate(g)
	cacheStore(e.cache, g, f)
	return f
}

func (e *Gaussian) FastEvaluate(g *genome.Genome) Fitness {
	return e.evaluate(g)
}

func (e *Gaussian) Accuracy(g *genome.Genome) float64 {
	return e.Evaluate(g).Accuracy
}

func (e *Gaussian) Lambdify(g *genome.Genome) lambda.Model {
	return lambda.NewGaussian(e.interp, g, e.dataset)
}
