package evolution

import (
	"context"
	"sort"

	"github.com/klauern/vita-go/pkg/gp/evaluator"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/population"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// ALPSConfig collects every tunable the per-generation algorithm in
// spec.md §4.7 needs.
type ALPSConfig struct {
	SymbolSet *primitive.SymbolSet
	Evaluator evaluator.Evaluator
	RNG       *rng.Source

	CodeLength  int
	Categories  int
	PatchLength int

	Layers              int
	IndividualsPerLayer int
	AgeGap              int // default 20, spec.md §4.7 / environment.h's alps_parameters

	TournamentSize int
	MateZone       int     // negative models "infinite" (panmictic)
	PSameLayer     float64 // default 0.75

	PCrossover float64
	PMutation  float64
	BroodSize  int // <=1 disables brood recombination

	Generations       int
	ThresholdFitness  float64
	ThresholdAccuracy float64
	MaxStuckTime      int
	StuckTolerance    float64 // fitness-variance tolerance

	// PreGeneration, when set, runs at the start of every generation
	// before selection — the hook pkg/gp/search uses to re-select a DSS
	// subset and swap in a freshly scoped Evaluator via SetEvaluator
	// (spec.md §4.9's "at generation g, re-weight ... and make the
	// evaluator see only this slice").
	PreGeneration func(gen int, a *ALPS)
}

// ALPS runs the Age-Layered Population Structure evolution strategy
// (spec.md §4.7), grounded on original_source/src/kernel/environment.h's
// alps_parameters for the age_gap/p_same_layer defaults; the
// per-generation algorithm and termination conditions are implemented
// directly from spec.md §4.7 since no bespoke ALPS driver (.tcc/.cc)
// survived retrieval.
type ALPS struct {
	cfg ALPSConfig
	pop *population.Population

	hasBest bool
	best    *population.Individual
	bestFit evaluator.Fitness
}

// NewALPS builds an ALPS strategy with layer 0..Layers-1 filled with
// fresh random individuals.
func NewALPS(cfg ALPSConfig) *ALPS {
	if cfg.AgeGap <= 0 {
		cfg.AgeGap = 20
	}
	if cfg.PSameLayer <= 0 {
		cfg.PSameLayer = 0.75
	}
	if cfg.Layers <= 0 {
		cfg.Layers = 1
	}

	pop := population.New(cfg.RNG)
	for k := 0; k < cfg.Layers; k++ {
		pop.AddLayer()
		pop.SetAllowed(k, cfg.IndividualsPerLayer)
		pop.InitLayer(k, cfg.SymbolSet, cfg.CodeLength, cfg.Categories, cfg.PatchLength)
	}

	return &ALPS{cfg: cfg, pop: pop}
}

// Population exposes the underlying population (read-mostly access for
// stat reporting / persistence).
func (a *ALPS) Population() *population.Population { return a.pop }

// SetEvaluator swaps the Evaluator the driver scores offspring with,
// used by DSS to hand ALPS a freshly re-selected subset's Evaluator each
// generation without rebuilding the whole strategy.
func (a *ALPS) SetEvaluator(e evaluator.Evaluator) { a.cfg.Evaluator = e }

// CurrentBest reports the best individual found up to (but not
// including) the generation about to run — stat reporting's
// PreGeneration hook is the only caller, since it runs before that
// generation's offspring are scored.
func (a *ALPS) CurrentBest() (*population.Individual, evaluator.Fitness, bool) {
	return a.best, a.bestFit, a.hasBest
}

// ageBound returns layer k's maximum age M_k = (k+1)*age_gap (the
// linear aging scheme named as the default in spec.md §4.7).
func (a *ALPS) ageBound(k int) int {
	return (k + 1) * a.cfg.AgeGap
}

// naturalLayer finds the lowest layer whose age bound accommodates age.
func (a *ALPS) naturalLayer(age int) int {
	for k := 0; k < a.cfg.Layers-1; k++ {
		if age <= a.ageBound(k) {
			return k
		}
	}
	return a.cfg.Layers - 1
}

func (a *ALPS) Run(ctx context.Context) (*Summary, error) {
	stuck := 0

	for gen := 0; gen < a.cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			return a.summary(a.best, a.bestFit, gen), ctx.Err()
		default:
		}

		if a.cfg.PreGeneration != nil {
			a.cfg.PreGeneration(gen, a)
		}

		improvedThisGen := false

		for k := a.cfg.Layers - 1; k >= 0; k-- {
			if a.pop.Individuals(k) < 2 {
				continue
			}

			p1c, p2c := a.tournament(k)
			p1, _ := a.pop.At(p1c)
			p2, _ := a.pop.At(p2c)

			offspringGenome := a.reproduce(p1, p2)
			offspringGenome.Mutate(a.cfg.RNG, a.cfg.SymbolSet, a.cfg.PMutation)

			if a.cfg.BroodSize > 1 {
				offspringGenome = a.broodSelect(offspringGenome, p1.Genome, p2.Genome)
			}

			fit := a.cfg.Evaluator.Evaluate(offspringGenome)
			offspring := population.Individual{Genome: offspringGenome, Fitness: fit}

			natural := a.naturalLayer(offspringGenome.Age())
			a.pop.AddToLayer(natural, offspring)

			if !a.hasBest || fit.Better(a.bestFit) {
				a.hasBest = true
				improvedThisGen = true
				a.bestFit = fit
				ind := offspring
				a.best = &ind
			}
		}

		if gen > 0 && gen%a.cfg.AgeGap == 0 {
			a.pop.ResetLayer(0, a.cfg.SymbolSet, a.cfg.CodeLength, a.cfg.Categories, a.cfg.PatchLength)
		}

		a.pop.IncAge()
		a.migrateAged()

		if improvedThisGen {
			stuck = 0
		} else {
			stuck++
		}

		if a.terminated(a.hasBest, a.bestFit, stuck) {
			return a.summary(a.best, a.bestFit, gen+1), nil
		}
	}

	return a.summary(a.best, a.bestFit, a.cfg.Generations), nil
}

// reproduce applies step 2 of spec.md §4.7's per-generation algorithm:
// crossover with probability p_cross, else clone the fitter parent.
func (a *ALPS) reproduce(p1, p2 population.Individual) *genome.Genome {
	if a.cfg.RNG.Chance(a.cfg.PCrossover) {
		return genome.Crossover(a.cfg.RNG, p1.Genome, p2.Genome)
	}
	if p2.Fitness.Better(p1.Fitness) {
		return p2.Genome.Clone()
	}
	return p1.Genome.Clone()
}

// tournament samples cfg.TournamentSize coordinates via Pickup around a
// random anchor in layer, returning the two best-fitness coordinates as
// parents (spec.md §4.7 step 1).
func (a *ALPS) tournament(layer int) (population.Coord, population.Coord) {
	anchor := population.Coord{Layer: layer, Offset: a.cfg.RNG.IntN(a.pop.Individuals(layer))}

	type scored struct {
		coord population.Coord
		fit   evaluator.Fitness
	}

	candidates := make([]scored, 0, a.cfg.TournamentSize)
	for i := 0; i < a.cfg.TournamentSize; i++ {
		c := a.pop.Pickup(anchor, a.cfg.PSameLayer, a.cfg.MateZone)
		ind, ok := a.pop.At(c)
		if !ok {
			continue
		}
		candidates = append(candidates, scored{c, ind.Fitness})
	}
	if len(candidates) == 0 {
		return anchor, anchor
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].fit.Value > candidates[j].fit.Value
	})

	best := candidates[0].coord
	second := best
	if len(candidates) > 1 {
		second = candidates[1].coord
	}
	return best, second
}

// broodSelect implements spec.md §4.7 step 4: produce BroodSize
// offspring from the same parent pair, keep the one scoring best on
// fast_evaluate.
func (a *ALPS) broodSelect(first *genome.Genome, p1, p2 *genome.Genome) *genome.Genome {
	best := first
	bestFit := a.cfg.Evaluator.FastEvaluate(first)

	for i := 1; i < a.cfg.BroodSize; i++ {
		child := genome.Crossover(a.cfg.RNG, p1, p2)
		child.Mutate(a.cfg.RNG, a.cfg.SymbolSet, a.cfg.PMutation)

		fit := a.cfg.Evaluator.FastEvaluate(child)
		if fit.Better(bestFit) {
			best, bestFit = child, fit
		}
	}
	return best
}

// migrateAged moves any individual older than its layer's age bound up
// to the next layer (spec.md §4.7's "ALPS layer promotion").
func (a *ALPS) migrateAged() {
	for k := 0; k < a.cfg.Layers-1; k++ {
		bound := a.ageBound(k)
		i := 0
		for i < a.pop.Individuals(k) {
			ind, _ := a.pop.At(population.Coord{Layer: k, Offset: i})
			if ind.Genome.Age() > bound {
				a.pop.RemoveAt(k, i)
				a.pop.AddToLayer(k+1, ind)
				continue
			}
			i++
		}
	}
}

// terminated checks spec.md §4.7's three termination conditions.
func (a *ALPS) terminated(hasBest bool, bestFit evaluator.Fitness, stuck int) bool {
	if !hasBest {
		return false
	}
	if bestFit.Value >= a.cfg.ThresholdFitness && bestFit.Accuracy >= a.cfg.ThresholdAccuracy {
		return true
	}
	if a.cfg.MaxStuckTime > 0 && stuck >= a.cfg.MaxStuckTime && a.fitnessVariance() < a.cfg.StuckTolerance {
		return true
	}
	return false
}

func (a *ALPS) fitnessVariance() float64 {
	var values []float64
	for k := 0; k < a.pop.Layers(); k++ {
		for i := 0; i < a.pop.Individuals(k); i++ {
			ind, _ := a.pop.At(population.Coord{Layer: k, Offset: i})
			values = append(values, ind.Fitness.Value)
		}
	}
	if len(values) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(values))
}

func (a *ALPS) summary(best *population.Individual, bestFit evaluator.Fitness, generations int) *Summary {
	return &Summary{Best: best, BestFitness: bestFit, Generations: generations}
}
