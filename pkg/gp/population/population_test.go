package population

import (
	"testing"

	"github.com/klauern/vita-go/pkg/gp/evaluator"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

func buildSet() *primitive.SymbolSet {
	sset := primitive.NewSymbolSet()
	x := &primitive.Primitive{
		Name: "x", Category: 0, Domain: primitive.DomainDouble, Arity: 0,
		Eval: func(a primitive.Args) primitive.Value { return a.Input(0) },
	}
	sset.Insert(x, primitive.BaseWeight)
	return sset
}

func newIndividual(r *rng.Source, sset *primitive.SymbolSet, fitness float64) Individual {
	g := genome.New(3, 1, 1)
	g.RandomInit(r, sset)
	return Individual{Genome: g, Fitness: evaluator.Fitness{Value: fitness}}
}

func TestInitLayerFillsToAllowance(t *testing.T) {
	r := rng.NewSeeded(1)
	sset := buildSet()
	p := New(r)
	p.AddLayer()
	p.SetAllowed(0, 5)

	p.InitLayer(0, sset, 3, 1, 1)

	if p.Individuals(0) != 5 {
		t.Fatalf("Individuals(0) = %d, want 5", p.Individuals(0))
	}
}

func TestAddToLayerEvictsWorstFitnessOnOverflow(t *testing.T) {
	r := rng.NewSeeded(2)
	sset := buildSet()
	p := New(r)
	p.AddLayer()
	p.SetAllowed(0, 2)

	p.AddToLayer(0, newIndividual(r, sset, -5))
	p.AddToLayer(0, newIndividual(r, sset, -1))
	p.AddToLayer(0, newIndividual(r, sset, -10)) // should evict the -10, not overflow size

	if p.Individuals(0) != 2 {
		t.Fatalf("Individuals(0) = %d, want 2", p.Individuals(0))
	}
	for i := 0; i < p.Individuals(0); i++ {
		ind, _ := p.At(Coord{Layer: 0, Offset: i})
		if ind.Fitness.Value == -10 {
			t.Fatalf("worst-fitness individual (-10) should have been evicted")
		}
	}
}

func TestEvictionTiesBrokenByGreatestAge(t *testing.T) {
	r := rng.NewSeeded(3)
	sset := buildSet()
	p := New(r)
	p.AddLayer()
	p.SetAllowed(0, 2)

	young := newIndividual(r, sset, -5)
	young.Genome.SetAge(1)
	old := newIndividual(r, sset, -5)
	old.Genome.SetAge(10)
	newcomer := newIndividual(r, sset, -5)

	p.AddToLayer(0, young)
	p.AddToLayer(0, old)
	p.AddToLayer(0, newcomer)

	for i := 0; i < p.Individuals(0); i++ {
		ind, _ := p.At(Coord{Layer: 0, Offset: i})
		if ind.Genome.Age() == 10 {
			t.Fatalf("oldest tied-fitness individual should have been evicted")
		}
	}
}

func TestIncAgeAffectsAllLayers(t *testing.T) {
	r := rng.NewSeeded(4)
	sset := buildSet()
	p := New(r)
	p.AddLayer()
	p.SetAllowed(0, 3)
	p.InitLayer(0, sset, 3, 1, 1)

	p.IncAge()

	for i := 0; i < p.Individuals(0); i++ {
		ind, _ := p.At(Coord{Layer: 0, Offset: i})
		if ind.Genome.Age() != 1 {
			t.Fatalf("individual %d age = %d, want 1", i, ind.Genome.Age())
		}
	}
}

func TestPickupLayerZeroAlwaysStaysOnLayerZero(t *testing.T) {
	r := rng.NewSeeded(5)
	sset := buildSet()
	p := New(r)
	p.AddLayer()
	p.SetAllowed(0, 4)
	p.InitLayer(0, sset, 3, 1, 1)

	for i := 0; i < 20; i++ {
		c := p.Pickup(Coord{Layer: 0, Offset: 0}, 0.0, -1)
		if c.Layer != 0 {
			t.Fatalf("Pickup from layer 0 returned layer %d, want 0", c.Layer)
		}
	}
}

func TestPickupRandomReturnsBoundedCoord(t *testing.T) {
	r := rng.NewSeeded(6)
	sset := buildSet()
	p := New(r)
	p.AddLayer()
	p.SetAllowed(0, 3)
	p.InitLayer(0, sset, 3, 1, 1)

	for i := 0; i < 20; i++ {
		c := p.PickupRandom()
		if _, ok := p.At(c); !ok {
			t.Fatalf("PickupRandom returned out-of-bounds coord %+v", c)
		}
	}
}

func TestPopFromLayerShrinksLayer(t *testing.T) {
	r := rng.NewSeeded(7)
	sset := buildSet()
	p := New(r)
	p.AddLayer()
	p.SetAllowed(0, 3)
	p.InitLayer(0, sset, 3, 1, 1)

	p.PopFromLayer(0)

	if p.Individuals(0) != 2 {
		t.Fatalf("Individuals(0) = %d, want 2", p.Individuals(0))
	}
}
