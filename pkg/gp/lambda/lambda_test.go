package lambda

import (
	"testing"

	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// identityGenome returns its single input variable unchanged, used as a
// simple probe for the model wrappers below.
func identityGenome() (*genome.Genome, *interpreter.Interpreter) {
	sset := primitive.NewSymbolSet()
	x0 := &primitive.Primitive{
		Name: "x0", Category: 0, Domain: primitive.DomainDouble, Arity: 0,
		Eval: func(a primitive.Args) primitive.Value { return a.Input(0) },
	}
	sset.Insert(x0, primitive.BaseWeight)

	g := genome.New(1, 1, 1)
	g.Set(genome.Locus{Index: 0, Category: 0}, genome.Gene{Sym: x0})
	g.SetBest(genome.Locus{Index: 0, Category: 0})

	return g, interpreter.New()
}

func TestRegressionPredictReturnsInterpreterOutput(t *testing.T) {
	g, interp := identityGenome()
	m := NewRegression(interp, g)

	out := m.Predict([]primitive.Value{{Domain: primitive.DomainDouble, Double: 4.5}})
	if out.Value != 4.5 {
		t.Fatalf("Predict().Value = %v, want 4.5", out.Value)
	}
}

func TestRegressionTeamAveragesNonVoidMembers(t *testing.T) {
	g1, interp := identityGenome()
	g2, _ := identityGenome()
	team := NewRegressionTeam(interp, []*genome.Genome{g1, g2})

	out := team.Predict([]primitive.Value{{Domain: primitive.DomainDouble, Double: 2}})
	if out.Value != 2 {
		t.Fatalf("team Predict().Value = %v, want 2", out.Value)
	}
}

func buildClassificationSet() *dataset.InMemory {
	examples := []dataset.Example{
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: -5}}, Output: primitive.Value{Domain: primitive.DomainInt, Int: 0}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: -4}}, Output: primitive.Value{Domain: primitive.DomainInt, Int: 0}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 5}}, Output: primitive.Value{Domain: primitive.DomainInt, Int: 1}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 6}}, Output: primitive.Value{Domain: primitive.DomainInt, Int: 1}},
	}
	return dataset.NewInMemory(examples, 1, nil, []string{"low", "high"})
}

func TestDynSlotAssignsMajorityClassPerSlot(t *testing.T) {
	g, interp := identityGenome()
	d := buildClassificationSet()

	model := NewDynSlot(interp, g, d, 4)

	lowPred := model.Predict([]primitive.Value{{Domain: primitive.DomainDouble, Double: -5}})
	highPred := model.Predict([]primitive.Value{{Domain: primitive.DomainDouble, Double: 6}})

	if lowPred.Class == highPred.Class {
		t.Fatalf("expected distinguishable slots for well-separated inputs, got %d and %d", lowPred.Class, highPred.Class)
	}
}

func TestGaussianSeparatesDistinctClassMeans(t *testing.T) {
	g, interp := identityGenome()
	d := buildClassificationSet()

	model := NewGaussian(interp, g, d)

	low := model.Predict([]primitive.Value{{Domain: primitive.DomainDouble, Double: -4.5}})
	high := model.Predict([]primitive.Value{{Domain: primitive.DomainDouble, Double: 5.5}})

	if low.Class == high.Class {
		t.Fatalf("expected different classes for well-separated inputs, got %d and %d", low.Class, high.Class)
	}
}

func TestBinaryClassifiesBySign(t *testing.T) {
	g, interp := identityGenome()
	d := buildClassificationSet()

	model := NewBinary(interp, g, d)

	neg := model.Predict([]primitive.Value{{Domain: primitive.DomainDouble, Double: -3}})
	pos := model.Predict([]primitive.Value{{Domain: primitive.DomainDouble, Double: 3}})

	if neg.Class != 0 || pos.Class != 1 {
		t.Fatalf("got classes %d/%d, want 0/1", neg.Class, pos.Class)
	}
}

type stubModel struct {
	pred Prediction
}

func (s stubModel) Predict(_ []primitive.Value) Prediction { return s.pred }

func TestTeamMajorityVoting(t *testing.T) {
	members := []Model{
		stubModel{Prediction{Class: 1, Confidence: 0.9}},
		stubModel{Prediction{Class: 1, Confidence: 0.4}},
		stubModel{Prediction{Class: 0, Confidence: 0.99}},
	}
	team := NewTeam(members, MajorityVoting)

	out := team.Predict(nil)
	if out.Class != 1 {
		t.Fatalf("majority voting Class = %d, want 1", out.Class)
	}
}

func TestTeamWinnerTakesAll(t *testing.T) {
	members := []Model{
		stubModel{Prediction{Class: 1, Confidence: 0.4}},
		stubModel{Prediction{Class: 0, Confidence: 0.99}},
	}
	team := NewTeam(members, WinnerTakesAll)

	out := team.Predict(nil)
	if out.Class != 0 {
		t.Fatalf("WTA Class = %d, want 0 (highest confidence)", out.Class)
	}
}
