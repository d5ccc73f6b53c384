package evolution

import (
	"context"
	"testing"

	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/evaluator"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/population"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

func buildRegressionSet() (*primitive.SymbolSet, *dataset.InMemory) {
	sset := primitive.NewSymbolSet()
	x0 := &primitive.Primitive{
		Name: "x0", Category: 0, Domain: primitive.DomainDouble, Arity: 0,
		Eval: func(a primitive.Args) primitive.Value { return a.Input(0) },
	}
	one := &primitive.Primitive{
		Name: "1", Category: 0, Domain: primitive.DomainDouble, Arity: 0,
		Eval: func(a primitive.Args) primitive.Value { return primitive.Value{Domain: primitive.DomainDouble, Double: 1} },
	}
	add := &primitive.Primitive{
		Name: "add", Category: 0, Domain: primitive.DomainDouble, Arity: 2,
		ArgCat: []primitive.Category{0, 0},
		Eval: func(a primitive.Args) primitive.Value {
			l, r := a.Fetch(0), a.Fetch(1)
			return primitive.Value{Domain: primitive.DomainDouble, Double: l.Double + r.Double}
		},
	}
	sset.Insert(x0, primitive.BaseWeight)
	sset.Insert(one, primitive.BaseWeight)
	sset.Insert(add, primitive.BaseWeight)

	examples := []dataset.Example{
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 1}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 1}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 2}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 2}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 3}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 3}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 4}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 4}},
	}
	return sset, dataset.NewInMemory(examples, 1, nil, nil)
}

func TestALPSRunReturnsSummaryWithinGenerationBudget(t *testing.T) {
	sset, d := buildRegressionSet()
	eval := evaluator.NewMAE(d, interpreter.New(), nil)

	cfg := ALPSConfig{
		SymbolSet:           sset,
		Evaluator:           eval,
		RNG:                 rng.NewSeeded(42),
		CodeLength:          8,
		Categories:          1,
		PatchLength:         2,
		Layers:              2,
		IndividualsPerLayer: 10,
		AgeGap:              5,
		TournamentSize:      3,
		MateZone:            -1,
		PSameLayer:          0.75,
		PCrossover:          0.7,
		PMutation:           0.2,
		BroodSize:           1,
		Generations:         10,
		ThresholdFitness:    0,
		ThresholdAccuracy:   1,
		MaxStuckTime:        0,
	}

	alps := NewALPS(cfg)
	summary, err := alps.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Generations == 0 || summary.Generations > cfg.Generations {
		t.Fatalf("Generations = %d, want in (0, %d]", summary.Generations, cfg.Generations)
	}
	if summary.Best == nil {
		t.Fatalf("expected a best individual to be tracked")
	}
}

func TestALPSRunRespectsContextCancellation(t *testing.T) {
	sset, d := buildRegressionSet()
	eval := evaluator.NewMAE(d, interpreter.New(), nil)

	cfg := ALPSConfig{
		SymbolSet:           sset,
		Evaluator:           eval,
		RNG:                 rng.NewSeeded(7),
		CodeLength:          8,
		Categories:          1,
		PatchLength:         2,
		Layers:              1,
		IndividualsPerLayer: 6,
		AgeGap:              20,
		TournamentSize:      2,
		MateZone:            -1,
		PSameLayer:          0.75,
		PCrossover:          0.7,
		PMutation:           0.2,
		BroodSize:           1,
		Generations:         1000,
	}

	alps := NewALPS(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := alps.Run(ctx)
	if err == nil {
		t.Fatalf("expected context.Canceled error")
	}
	if summary.Generations != 0 {
		t.Fatalf("Generations = %d, want 0 for an immediately canceled run", summary.Generations)
	}
}

func TestALPSBroodSelectKeepsBestFastEvaluate(t *testing.T) {
	sset, d := buildRegressionSet()
	eval := evaluator.NewMAE(d, interpreter.New(), nil)

	cfg := ALPSConfig{
		SymbolSet:           sset,
		Evaluator:           eval,
		RNG:                 rng.NewSeeded(3),
		CodeLength:          8,
		Categories:          1,
		PatchLength:         2,
		Layers:              1,
		IndividualsPerLayer: 8,
		AgeGap:              20,
		TournamentSize:      3,
		MateZone:            -1,
		PSameLayer:          0.75,
		PCrossover:          0.7,
		PMutation:           0.3,
		BroodSize:           4,
		Generations:         3,
	}

	alps := NewALPS(cfg)
	if _, err := alps.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestALPSAgeBoundIsLinearInLayerIndex(t *testing.T) {
	sset, d := buildRegressionSet()
	eval := evaluator.NewMAE(d, interpreter.New(), nil)

	cfg := ALPSConfig{
		SymbolSet:           sset,
		Evaluator:           eval,
		RNG:                 rng.NewSeeded(1),
		CodeLength:          4,
		Categories:          1,
		PatchLength:         1,
		Layers:              3,
		IndividualsPerLayer: 4,
		AgeGap:              10,
	}
	alps := NewALPS(cfg)

	for k := 0; k < 3; k++ {
		want := (k + 1) * 10
		if got := alps.ageBound(k); got != want {
			t.Fatalf("ageBound(%d) = %d, want %d", k, got, want)
		}
	}
}

// TestALPSLayerZeroResetLandsAtAgeOne covers spec.md §8 scenario 4: with
// age_gap=5, the generation-5 layer-0 reset must hand its fresh
// individuals age 1, not age 0 — ResetLayer has to run before IncAge
// within the same generation, not after.
func TestALPSLayerZeroResetLandsAtAgeOne(t *testing.T) {
	sset, d := buildRegressionSet()
	eval := evaluator.NewMAE(d, interpreter.New(), nil)

	cfg := ALPSConfig{
		SymbolSet:           sset,
		Evaluator:           eval,
		RNG:                 rng.NewSeeded(5),
		CodeLength:          8,
		Categories:          1,
		PatchLength:         2,
		Layers:              2,
		IndividualsPerLayer: 6,
		AgeGap:              5,
		TournamentSize:      2,
		MateZone:            -1,
		PSameLayer:          0.75,
		PCrossover:          0.7,
		PMutation:           0.2,
		BroodSize:           1,
		Generations:         6,
		ThresholdFitness:    0,
		ThresholdAccuracy:   1,
	}

	alps := NewALPS(cfg)
	if _, err := alps.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	pop := alps.Population()
	for i := 0; i < pop.Individuals(0); i++ {
		ind, ok := pop.At(population.Coord{Layer: 0, Offset: i})
		if !ok {
			t.Fatalf("layer 0 individual %d missing", i)
		}
		if age := ind.Genome.Age(); age != 1 {
			t.Fatalf("layer 0 individual %d age = %d, want 1 immediately after the age_gap reset", i, age)
		}
	}
}

func TestStdRunReturnsBestIndividual(t *testing.T) {
	sset, d := buildRegressionSet()
	eval := evaluator.NewMAE(d, interpreter.New(), nil)

	cfg := StdConfig{
		SymbolSet:      sset,
		Evaluator:      eval,
		CodeLength:     8,
		Categories:     1,
		PatchLength:    2,
		PopulationSize: 12,
		Generations:    5,
		TournamentSize: 3,
		EliteCount:     2,
		PMutation:      0.2,
		PCrossover:     0.7,

		ThresholdFitness: 1, // unreachable (fitness is <= 0), forces full run
		Seed:             11,
	}

	std := NewStd(cfg)
	summary, err := std.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Best == nil {
		t.Fatalf("expected a best individual in the hall of fame")
	}
	if summary.Generations == 0 {
		t.Fatalf("expected at least one generation to have run")
	}
}
