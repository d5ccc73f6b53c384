// Package search is the orchestrator tying every other pkg/gp package
// together into a runnable search, grounded on
// original_source/kernel/src/search_inl.h's basic_search: load the
// dataset, tune unset parameters, build the SymbolSet/cache/evaluator,
// run the evolution strategy (optionally under DSS), and produce an
// executable lambda.Model from the best individual found — optionally
// feeding that individual's blocks through ARL before a subsequent run.
package search

import (
	"context"
	"fmt"

	vitaerrors "github.com/klauern/vita-go/internal/errors"
	"github.com/klauern/vita-go/pkg/gp/arl"
	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/dss"
	"github.com/klauern/vita-go/pkg/gp/evaluator"
	"github.com/klauern/vita-go/pkg/gp/evolution"
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/lambda"
	"github.com/klauern/vita-go/pkg/gp/population"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
	"github.com/klauern/vita-go/pkg/gp/tuning"
)

// Problem bundles everything one run needs: a loaded dataset, the
// SymbolSet built from it, a shared cache, and the RunConfig tuning
// filled any unset fields of.
type Problem struct {
	Config    RunConfig
	Dataset   dataset.Dataset
	SymbolSet *primitive.SymbolSet
	Cache     *fingerprint.Cache
	Interp    *interpreter.Interpreter
	Eval      evaluator.Evaluator
	RNG       *rng.Source

	// OnGeneration, when set, is invoked at the start of every
	// generation — cmd/vita-evolve uses this to drive a progress bar in
	// --verbose mode.
	OnGeneration func(gen, total int)

	// Trace accumulates one GenerationPoint per generation when
	// Config.StatDynamic is set; valid only after Run returns.
	Trace []GenerationPoint
}

// NewProblem loads cfg.DatasetPath, auto-tunes any unset parameter
// against the dataset's shape, and builds the SymbolSet/cache/evaluator
// a Run needs.
func NewProblem(cfg RunConfig) (*Problem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, err := dataset.LoadCSV(cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	tuned := tuning.Tune(tuning.Params{
		CodeLength:          cfg.CodeLength,
		Layers:               cfg.Layers,
		IndividualsPerLayer: cfg.PopulationSize,
		PMutation:           cfg.MutationRate,
		PCrossover:          cfg.CrossoverRate,
		TournamentSize:      cfg.TournamentSize,
		MateZone:            cfg.MateZone,
		Generations:         cfg.Generations,
		DSS:                 cfg.DSS,
	}, d.Len(), d.IsClassification())

	cfg.CodeLength = tuned.CodeLength
	cfg.Layers = tuned.Layers
	cfg.PopulationSize = tuned.IndividualsPerLayer
	cfg.MutationRate = tuned.PMutation
	cfg.CrossoverRate = tuned.PCrossover
	cfg.TournamentSize = tuned.TournamentSize
	cfg.MateZone = tuned.MateZone
	cfg.Generations = tuned.Generations
	cfg.DSS = tuned.DSS

	sset := BuildSymbolSet(d.Features())
	if !sset.IsValid() {
		return nil, vitaerrors.New(vitaerrors.CodeNoTerminal, "symbol set has no terminal for a reachable category")
	}
	cache := fingerprint.NewCache(cfg.CacheBits)
	interp := interpreter.New()

	eval, err := evaluator.New(cfg.EvaluatorSpec, d, interp, cache)
	if err != nil {
		return nil, err
	}

	r := RandomizedSeed(cfg.RandomSeed)

	return &Problem{
		Config:    cfg,
		Dataset:   d,
		SymbolSet: sset,
		Cache:     cache,
		Interp:    interp,
		Eval:      eval,
		RNG:       r,
	}, nil
}

// Result is the outcome of one Run: the evolution summary plus an
// executable model built from its best individual, and the candidate
// ARL promotions found in that individual (only populated when
// Config.ARL is set).
type Result struct {
	Summary     *evolution.Summary
	Model       lambda.Model
	ARLFindings []arl.Candidate

	// Population is the final layer state the strategy finished with —
	// stat-layers/stat-population reporting reads this.
	Population *population.Population
}

// Run executes one complete evolutionary search: builds an ALPS
// strategy from p's tuned config, wires a DSS PreGeneration hook when
// Config.DSS is set, runs to termination, and wraps the best individual
// as a lambda.Model. When Config.ARL is set, the best individual's
// blocks are also scored for promotion (spec.md §4.5) but are not
// inserted into p.SymbolSet automatically — the caller decides whether
// to promote and re-run, matching search_inl.h's "arl operates between
// runs, not within one" structure.
func (p *Problem) Run(ctx context.Context) (*Result, error) {
	alpsCfg := evolution.ALPSConfig{
		SymbolSet:           p.SymbolSet,
		Evaluator:           p.Eval,
		RNG:                 p.RNG,
		CodeLength:          p.Config.CodeLength,
		Categories:          p.SymbolSet.Categories(),
		PatchLength:         1 + p.Config.CodeLength/3,
		Layers:              p.Config.Layers,
		IndividualsPerLayer: p.Config.PopulationSize,
		TournamentSize:      p.Config.TournamentSize,
		MateZone:            p.Config.MateZone,
		PCrossover:          p.Config.CrossoverRate,
		PMutation:           p.Config.MutationRate,
		BroodSize:           p.Config.Brood,
		Generations:         p.Config.Generations,
		ThresholdFitness:    p.Config.Threshold,
		ThresholdAccuracy:   tuning.ClassificationAccuracyThresh,
		MaxStuckTime:        p.Config.GenerationsWithoutImprovement,
	}

	alpsCfg.PreGeneration = p.preGenerationHook()

	strategy := evolution.NewALPS(alpsCfg)
	summary, err := strategy.Run(ctx)
	if err != nil && summary == nil {
		return nil, err
	}

	result := &Result{Summary: summary, Population: strategy.Population()}
	if summary.Best != nil {
		result.Model = p.Eval.Lambdify(summary.Best.Genome)

		if p.Config.ARL {
			result.ARLFindings = arl.FindCandidates(summary.Best.Genome, p.Eval, p.SymbolSet, p.RNG, summary.BestFitness)
		}
	}
	return result, err
}

// preGenerationHook combines the DSS re-selection hook (when Config.DSS
// is set) with p.OnGeneration progress reporting into the single
// ALPSConfig.PreGeneration closure ALPS invokes each generation.
func (p *Problem) preGenerationHook() func(gen int, a *evolution.ALPS) {
	traceHook := DynamicTraceHook(&p.Trace)
	return func(gen int, a *evolution.ALPS) {
		if p.Config.DSS {
			subset := dss.Select(p.Dataset, p.RNG)
			if scoped, err := evaluator.New(p.Config.EvaluatorSpec, subset, p.Interp, p.Cache); err == nil {
				a.SetEvaluator(scoped)
			} // else: keep the previous generation's evaluator rather than fail the run
		}
		if p.Config.StatDynamic {
			traceHook(gen, a)
		}
		if p.OnGeneration != nil {
			p.OnGeneration(gen, p.Config.Generations)
		}
	}
}

// PromoteARL inserts findings into p.SymbolSet as new ADT primitives, a
// thin wrapper letting a caller apply one Run's ARL recommendations
// before building a second Problem/Run that reuses this SymbolSet.
func (p *Problem) PromoteARL(g *genome.Genome, findings []arl.Candidate) []*primitive.Primitive {
	return arl.PromoteCandidates(g, findings, p.SymbolSet, p.Interp, p.Dataset.Features())
}
