package evaluator

import (
	"testing"

	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// identityGenome returns a genome computing x0 unchanged.
func identityGenome() *genome.Genome {
	sset := primitive.NewSymbolSet()
	x0 := &primitive.Primitive{
		Name: "x0", Category: 0, Domain: primitive.DomainDouble, Arity: 0,
		Eval: func(a primitive.Args) primitive.Value { return a.Input(0) },
	}
	sset.Insert(x0, primitive.BaseWeight)

	g := genome.New(1, 1, 1)
	g.Set(genome.Locus{Index: 0, Category: 0}, genome.Gene{Sym: x0})
	g.SetBest(genome.Locus{Index: 0, Category: 0})
	return g
}

func regressionSet() *dataset.InMemory {
	examples := []dataset.Example{
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 1}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 1}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 2}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 2}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 3}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 5}},
	}
	return dataset.NewInMemory(examples, 1, nil, nil)
}

func TestMAEPerfectPredictionsYieldZeroFitnessAndFullAccuracy(t *testing.T) {
	d := dataset.NewInMemory([]dataset.Example{
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 1}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 1}},
	}, 1, nil, nil)

	e := NewMAE(d, interpreter.New(), nil)
	g := identityGenome()

	f := e.Evaluate(g)
	if f.Value != 0 {
		t.Fatalf("Value = %v, want 0", f.Value)
	}
	if f.Accuracy != 1 {
		t.Fatalf("Accuracy = %v, want 1", f.Accuracy)
	}
}

func TestMAEPenalizesErrors(t *testing.T) {
	d := regressionSet()
	e := NewMAE(d, interpreter.New(), nil)
	g := identityGenome()

	f := e.Evaluate(g)
	// errors: 0, 0, 2 -> mean 2/3; fitness = -2/3
	want := -2.0 / 3.0
	if diff := f.Value - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Value = %v, want %v", f.Value, want)
	}
}

func TestEvaluateIsMemoizedBySignature(t *testing.T) {
	d := regressionSet()
	cache := fingerprint.NewCache(4)
	e := NewMAE(d, interpreter.New(), cache)
	g := identityGenome()

	first := e.Evaluate(g)
	if cache.Occupied() != 1 {
		t.Fatalf("expected one cache entry after first evaluation, got %d", cache.Occupied())
	}

	second := e.Evaluate(g)
	if first != second {
		t.Fatalf("cached fitness %v differs from recomputed %v", first, second)
	}
	if cache.Occupied() != 1 {
		t.Fatalf("expected cache to stay at one entry on repeat evaluation, got %d", cache.Occupied())
	}
}

func TestFastEvaluateSubsamplesLargeDatasets(t *testing.T) {
	examples := make([]dataset.Example, 100)
	for i := range examples {
		v := float64(i)
		examples[i] = dataset.Example{
			Input:  []primitive.Value{{Domain: primitive.DomainDouble, Double: v}},
			Output: primitive.Value{Domain: primitive.DomainDouble, Double: v},
		}
	}
	d := dataset.NewInMemory(examples, 1, nil, nil)
	e := NewMAE(d, interpreter.New(), nil)
	g := identityGenome()

	// Identity genome is perfect regardless of subsample, so fast and
	// full evaluation should agree on fitness even though fast() only
	// scans every 5th example.
	full := e.Evaluate(g)
	fast := e.FastEvaluate(g)
	if full.Value != fast.Value {
		t.Fatalf("full=%v fast=%v, want equal for a perfect predictor", full.Value, fast.Value)
	}
}

func TestMAEVoidPredictionIncursIllegalPenalty(t *testing.T) {
	sset := primitive.NewSymbolSet()
	bad := &primitive.Primitive{
		Name: "bad", Category: 0, Domain: primitive.DomainDouble, Arity: 0,
		Eval: func(a primitive.Args) primitive.Value { return primitive.Void },
	}
	sset.Insert(bad, primitive.BaseWeight)

	g := genome.New(1, 1, 1)
	g.Set(genome.Locus{Index: 0, Category: 0}, genome.Gene{Sym: bad})
	g.SetBest(genome.Locus{Index: 0, Category: 0})

	d := dataset.NewInMemory([]dataset.Example{
		{Input: nil, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 1}},
	}, 0, nil, nil)

	e := NewMAE(d, interpreter.New(), nil)
	f := e.Evaluate(g)

	if f.Value != -100.0 {
		t.Fatalf("Value = %v, want -100 (100^1 penalty)", f.Value)
	}
	if f.Accuracy != 0 {
		t.Fatalf("Accuracy = %v, want 0", f.Accuracy)
	}
}

func classificationSet() *dataset.InMemory {
	examples := []dataset.Example{
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: -5}}, Output: primitive.Value{Domain: primitive.DomainInt, Int: 0}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: -4}}, Output: primitive.Value{Domain: primitive.DomainInt, Int: 0}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 5}}, Output: primitive.Value{Domain: primitive.DomainInt, Int: 1}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 6}}, Output: primitive.Value{Domain: primitive.DomainInt, Int: 1}},
	}
	return dataset.NewInMemory(examples, 1, nil, []string{"low", "high"})
}

func TestBinaryEvaluatorRewardsSeparatingSign(t *testing.T) {
	d := classificationSet()
	e := NewBinary(d, interpreter.New(), nil, 1)
	g := identityGenome()

	f := e.Evaluate(g)
	if f.Accuracy != 1 {
		t.Fatalf("Accuracy = %v, want 1 (identity genome separates by sign)", f.Accuracy)
	}
}

func TestDynSlotEvaluatorHighAccuracyOnSeparableData(t *testing.T) {
	d := classificationSet()
	e := NewDynSlot(d, interpreter.New(), nil, 4)
	g := identityGenome()

	f := e.Evaluate(g)
	if f.Accuracy != 1 {
		t.Fatalf("Accuracy = %v, want 1", f.Accuracy)
	}
}

func TestGaussianEvaluatorHighAccuracyOnSeparableData(t *testing.T) {
	d := classificationSet()
	e := NewGaussian(d, interpreter.New(), nil)
	g := identityGenome()

	f := e.Evaluate(g)
	if f.Accuracy != 1 {
		t.Fatalf("Accuracy = %v, want 1", f.Accuracy)
	}
}

func TestFactoryRejectsUnknownEvaluator(t *testing.T) {
	d := regressionSet()
	if _, err := New("bogus", d, interpreter.New(), nil); err == nil {
		t.Fatalf("expected error for unknown evaluator name")
	}
}

func TestFactoryParsesDynSlotArgument(t *testing.T) {
	d := classificationSet()
	e, err := New("dynslot:5", d, interpreter.New(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := e.(*DynSlot); !ok {
		t.Fatalf("expected *DynSlot, got %T", e)
	}
}
