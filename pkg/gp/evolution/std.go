package evolution

import (
	"context"
	"fmt"
	mathrand "math/rand"

	"github.com/MaxHalford/eaopt"

	"github.com/klauern/vita-go/pkg/gp/evaluator"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/population"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// StdConfig is the classic-GA counterpart to ALPSConfig: a single flat
// population, tournament selection and elitism, no age layers.
type StdConfig struct {
	SymbolSet *primitive.SymbolSet
	Evaluator evaluator.Evaluator

	CodeLength  int
	Categories  int
	PatchLength int

	PopulationSize int
	Generations    int
	TournamentSize int
	EliteCount     int
	PMutation      float64
	PCrossover     float64

	ThresholdFitness  float64
	ThresholdAccuracy float64

	Seed int64
}

// Std is a tournament+elitism evolution strategy built directly on
// github.com/MaxHalford/eaopt, grounded on the teacher's
// pkg/deck/genetic/optimizer.go (elitismModel shape, GAConfig wiring,
// hall-of-fame extraction).
type Std struct {
	cfg StdConfig
}

func NewStd(cfg StdConfig) *Std {
	return &Std{cfg: cfg}
}

func (s *Std) Run(ctx context.Context) (*Summary, error) {
	model := elitismModel{
		cfg:      s.cfg,
		Selector: eaopt.SelTournament{NContestants: uint(s.cfg.TournamentSize)},
		Elite:    uint(s.cfg.EliteCount),
	}

	var (
		canceled bool
		lastGen  uint
	)

	gaConfig := eaopt.GAConfig{
		NPops:        1,
		PopSize:      uint(s.cfg.PopulationSize),
		NGenerations: uint(s.cfg.Generations),
		HofSize:      1,
		Model:        model,
		RNG:          mathrand.New(mathrand.NewSource(s.cfg.Seed)),
		EarlyStop: func(ga *eaopt.GA) bool {
			lastGen = ga.Generations
			select {
			case <-ctx.Done():
				canceled = true
				return true
			default:
			}
			if len(ga.HallOfFame) == 0 {
				return false
			}
			fitness := -ga.HallOfFame[0].Fitness
			return fitness >= s.cfg.ThresholdFitness
		},
	}

	ga, err := gaConfig.NewGA()
	if err != nil {
		return nil, fmt.Errorf("failed to build GA: %w", err)
	}

	if err := ga.Minimize(s.newGenomeFactory()); err != nil {
		return nil, fmt.Errorf("GA run failed: %w", err)
	}

	var best *population.Individual
	var bestFit evaluator.Fitness
	if len(ga.HallOfFame) > 0 {
		if wrapped, ok := ga.HallOfFame[0].Genome.(*eaoptGenome); ok {
			bestFit = s.cfg.Evaluator.Evaluate(wrapped.genome)
			best = &population.Individual{Genome: wrapped.genome, Fitness: bestFit}
		}
	}

	var runErr error
	if canceled {
		runErr = ctx.Err()
	}
	return &Summary{Best: best, BestFitness: bestFit, Generations: int(lastGen)}, runErr
}

func (s *Std) newGenomeFactory() func(r *mathrand.Rand) eaopt.Genome {
	return func(r *mathrand.Rand) eaopt.Genome {
		g := genome.New(s.cfg.CodeLength, s.cfg.Categories, s.cfg.PatchLength)
		g.RandomInit(seedFromClassic(r), s.cfg.SymbolSet)
		return &eaoptGenome{genome: g, cfg: s.cfg}
	}
}

// seedFromClassic bridges eaopt's classic math/rand.Rand parameter into
// a throwaway rng.Source for the single call at hand — spec.md §5 calls
// for isolated, reseedable generator instances rather than sharing one
// across calls, so each Mutate/Crossover/RandomInit gets its own.
func seedFromClassic(r *mathrand.Rand) *rng.Source {
	return rng.NewSeeded(r.Int63())
}

// eaoptGenome adapts genome.Genome to eaopt.Genome, mirroring the
// teacher's eaoptDeckGenome wrapper in optimizer.go.
type eaoptGenome struct {
	genome *genome.Genome
	cfg    StdConfig
}

func (g *eaoptGenome) Evaluate() (float64, error) {
	fit := g.cfg.Evaluator.Evaluate(g.genome)
	return -fit.Value, nil // eaopt minimizes; our fitness is "greater is better"
}

func (g *eaoptGenome) Mutate(r *mathrand.Rand) {
	g.genome.Mutate(seedFromClassic(r), g.cfg.SymbolSet, g.cfg.PMutation)
}

func (g *eaoptGenome) Crossover(other eaopt.Genome, r *mathrand.Rand) {
	o, ok := other.(*eaoptGenome)
	if !ok {
		return
	}
	g.genome = genome.Crossover(seedFromClassic(r), g.genome, o.genome)
}

func (g *eaoptGenome) Clone() eaopt.Genome {
	return &eaoptGenome{genome: g.genome.Clone(), cfg: g.cfg}
}

// elitismModel keeps the Elite best individuals and fills the rest of
// the population via tournament selection + crossover + mutation,
// identical in shape to optimizer.go's elitismModel.
type elitismModel struct {
	cfg      StdConfig
	Selector eaopt.Selector
	Elite    uint
}

func (m elitismModel) Apply(pop *eaopt.Population) error {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}

	elite := m.Elite
	if elite > uint(len(pop.Individuals)) {
		elite = uint(len(pop.Individuals))
	}

	pop.Individuals.SortByFitness()

	var elites eaopt.Individuals
	if elite > 0 {
		elites = pop.Individuals[:elite].Clone(pop.RNG)
	}

	offspringCount := uint(len(pop.Individuals)) - elite
	if offspringCount == 0 {
		copy(pop.Individuals, elites)
		return nil
	}

	offsprings := make(eaopt.Individuals, offspringCount)
	i := uint(0)
	for i < offspringCount {
		selected, _, err := m.Selector.Apply(2, pop.Individuals, pop.RNG)
		if err != nil {
			return err
		}
		if pop.RNG.Float64() < m.cfg.PCrossover {
			selected[0].Crossover(selected[1], pop.RNG)
		}
		if i < offspringCount {
			offsprings[i] = selected[0]
			i++
		}
		if i < offspringCount {
			offsprings[i] = selected[1]
			i++
		}
	}
	if m.cfg.PMutation > 0 {
		offsprings.Mutate(m.cfg.PMutation, pop.RNG)
	}

	copy(pop.Individuals, elites)
	copy(pop.Individuals[elite:], offsprings)
	return nil
}

func (m elitismModel) Validate() error {
	if m.Selector == nil {
		return fmt.Errorf("selector cannot be nil")
	}
	return m.Selector.Validate()
}
