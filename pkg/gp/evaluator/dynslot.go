package evaluator

import (
	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/lambda"
)

// DynSlot drives evolution towards a well-separated dynamic-slot
// classifier (spec.md §4.4/§4.8), grounded on
// original_source/kernel/src_evaluator.cc's dyn_slot_evaluator.
type DynSlot struct {
	trainingInput
	xSlot int
}

func NewDynSlot(d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache, xSlot int) *DynSlot {
	if xSlot <= 0 {
		xSlot = 10
	}
	return &DynSlot{trainingInput: trainingInput{dataset: d, interp: interp, cache: cache}, xSlot: xSlot}
}

func (e *DynSlot) evaluate(g *genome.Genome) Fitness {
	engine := lambda.NewDynSlotEngine(e.interp, g, e.dataset, e.xSlot)

	matrix := engine.SlotMatrix()
	var errSum float64
	for slot, row := range matrix {
		cls := engine.ClassOf(slot)
		for class, count := range row {
			if class != cls {
				errSum += float64(count)
			}
		}
	}

	size := engine.DatasetSize()
	if size == 0 {
		return Fitness{}
	}

	return Fitness{Value: -errSum, Accuracy: (float64(size) - errSum) / float64(size)}
}

func (e *DynSlot) Evaluate(g *genome.Genome) Fitness {
	if f, ok := cacheLookup(e.cache, g); ok {
		return f
	}
	f := e.evaluate(g)
	cacheStore(e.cache, g, f)
	return f
}

// FastEvaluate has no cheaper approximation for the dyn-slot algorithm
// (the slot table must be built from a full pass to be meaningful), so
// it simply delegates to the full evaluation.
func (e *DynSlot) FastEvaluate(g *genome.Genome) Fitness {
	return e.evaluate(g)
}

func (e *DynSlot) Accuracy(g *genome.Genome) float64 {
	return e.Evaluate(g).Accuracy
}

func (e *DynSlot) Lambdify(g *genome.Genome) lambda.Model {
	return lambda.NewDynSlot(e.interp, g, e.dataset, e.xSlot)
}
