package search

import (
	"fmt"
	"os"
	"strconv"

	vitaerrors "github.com/klauern/vita-go/internal/errors"
)

// RunConfig collects every `vita-evolve` CLI flag of spec.md §6,
// grounded on pkg/deck/genetic/config.go's GeneticConfig/envParser
// shape: a plain struct, a Default constructor, a LoadFromEnv overlay,
// and a Validate pass.
type RunConfig struct {
	DatasetPath string
	TestsetPath string

	ValidationPercent float64
	EvaluatorSpec     string

	RandomSeed int64
	CacheBits  uint

	PopulationSize int
	Layers         int
	CodeLength     int
	Elitism        bool

	MutationRate  float64
	CrossoverRate float64

	TournamentSize int
	Brood          int
	MateZone       int

	DSS bool
	ARL bool

	Generations                   int
	GenerationsWithoutImprovement int
	Runs                          int

	StatDir        string
	StatSummary    bool
	StatLayers     bool
	StatPopulation bool
	StatDynamic    bool
	StatARL        bool

	Threshold float64

	Verbose bool
	Quiet   bool
}

// DefaultRunConfig returns the configuration a bare `vita-evolve
// --dataset <file>` invocation runs with before dataset-shape tuning fills in
// whatever is left at zero (pkg/gp/tuning).
func DefaultRunConfig() RunConfig {
	return RunConfig{
		EvaluatorSpec:  "mae",
		RandomSeed:     0, // 0 means "randomize" (search.RandomizedSeed)
		CacheBits:      16,
		Elitism:        true,
		CrossoverRate:  -1, // negative: let tuning derive it
		MutationRate:   -1,
		Runs:           1,
		Threshold:      0,
		GenerationsWithoutImprovement: 0,
	}
}

const (
	envTrue        = "1"
	envTrueLiteral = "true"
)

// envParser mirrors config.go's helper: read one environment variable,
// parse it, and apply it only if both present and well-formed.
type envParser struct{}

func (envParser) str(key string, setter func(string)) {
	if v := os.Getenv(key); v != "" {
		setter(v)
	}
}

func (envParser) positiveInt(key string, setter func(int)) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			setter(i)
		}
	}
}

func (envParser) nonNegativeInt(key string, setter func(int)) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			setter(i)
		}
	}
}

func (envParser) float01(key string, setter func(float64)) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			setter(f)
		}
	}
}

func (envParser) boolean(key string, setter func(bool)) {
	if v := os.Getenv(key); v != "" {
		setter(v == envTrue || v == envTrueLiteral)
	}
}

func (envParser) int64Val(key string, setter func(int64)) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			setter(i)
		}
	}
}

// LoadFromEnv overlays VITA_*-prefixed environment variables onto
// DefaultRunConfig, the same opt-in pattern config.go's LoadFromEnv
// uses for GA_*-prefixed variables.
//
// Recognized variables: VITA_DATASET, VITA_TESTSET, VITA_VALIDATION,
// VITA_EVALUATOR, VITA_RANDOM_SEED, VITA_CACHE_BITS,
// VITA_POPULATION_SIZE, VITA_LAYERS, VITA_CODE_LENGTH, VITA_ELITISM,
// VITA_MUTATION_RATE, VITA_CROSSOVER_RATE, VITA_TOURNAMENT_SIZE,
// VITA_BROOD, VITA_MATE_ZONE, VITA_DSS, VITA_ARL, VITA_GENERATIONS,
// VITA_GWI, VITA_RUNS, VITA_STAT_DIR, VITA_STAT_SUMMARY, VITA_STAT_LAYERS,
// VITA_STAT_POPULATION, VITA_STAT_DYNAMIC, VITA_STAT_ARL, VITA_THRESHOLD,
// VITA_VERBOSE, VITA_QUIET.
func LoadFromEnv() RunConfig {
	cfg := DefaultRunConfig()
	p := envParser{}

	p.str("VITA_DATASET", func(v string) { cfg.DatasetPath = v })
	p.str("VITA_TESTSET", func(v string) { cfg.TestsetPath = v })
	p.float01("VITA_VALIDATION", func(v float64) { cfg.ValidationPercent = v })
	p.str("VITA_EVALUATOR", func(v string) { cfg.EvaluatorSpec = v })
	p.int64Val("VITA_RANDOM_SEED", func(v int64) { cfg.RandomSeed = v })
	p.positiveInt("VITA_CACHE_BITS", func(v int) { cfg.CacheBits = uint(v) })
	p.positiveInt("VITA_POPULATION_SIZE", func(v int) { cfg.PopulationSize = v })
	p.positiveInt("VITA_LAYERS", func(v int) { cfg.Layers = v })
	p.positiveInt("VITA_CODE_LENGTH", func(v int) { cfg.CodeLength = v })
	p.boolean("VITA_ELITISM", func(v bool) { cfg.Elitism = v })
	p.float01("VITA_MUTATION_RATE", func(v float64) { cfg.MutationRate = v })
	p.float01("VITA_CROSSOVER_RATE", func(v float64) { cfg.CrossoverRate = v })
	p.positiveInt("VITA_TOURNAMENT_SIZE", func(v int) { cfg.TournamentSize = v })
	p.nonNegativeInt("VITA_BROOD", func(v int) { cfg.Brood = v })
	p.nonNegativeInt("VITA_MATE_ZONE", func(v int) { cfg.MateZone = v })
	p.boolean("VITA_DSS", func(v bool) { cfg.DSS = v })
	p.boolean("VITA_ARL", func(v bool) { cfg.ARL = v })
	p.positiveInt("VITA_GENERATIONS", func(v int) { cfg.Generations = v })
	p.nonNegativeInt("VITA_GWI", func(v int) { cfg.GenerationsWithoutImprovement = v })
	p.positiveInt("VITA_RUNS", func(v int) { cfg.Runs = v })
	p.str("VITA_STAT_DIR", func(v string) { cfg.StatDir = v })
	p.boolean("VITA_STAT_SUMMARY", func(v bool) { cfg.StatSummary = v })
	p.boolean("VITA_STAT_LAYERS", func(v bool) { cfg.StatLayers = v })
	p.boolean("VITA_STAT_POPULATION", func(v bool) { cfg.StatPopulation = v })
	p.boolean("VITA_STAT_DYNAMIC", func(v bool) { cfg.StatDynamic = v })
	p.boolean("VITA_STAT_ARL", func(v bool) { cfg.StatARL = v })
	p.str("VITA_THRESHOLD", func(v string) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Threshold = f
		}
	})
	p.boolean("VITA_VERBOSE", func(v bool) { cfg.Verbose = v })
	p.boolean("VITA_QUIET", func(v bool) { cfg.Quiet = v })

	return cfg
}

// Validate checks the configuration is internally consistent before a
// Problem is built from it (spec.md §7's "configuration errors ...
// reported to the user, program exits").
func (c *RunConfig) Validate() error {
	if c.DatasetPath == "" {
		return vitaerrors.New(vitaerrors.CodeInvalidFlag, "dataset path is required")
	}
	if c.ValidationPercent < 0 || c.ValidationPercent > 1 {
		return vitaerrors.New(vitaerrors.CodeInvalidFlag, fmt.Sprintf("validation percent must be in [0, 1], got %f", c.ValidationPercent))
	}
	if c.MutationRate > 1 {
		return vitaerrors.New(vitaerrors.CodeInvalidFlag, fmt.Sprintf("mutation rate must be <= 1, got %f", c.MutationRate))
	}
	if c.CrossoverRate > 1 {
		return vitaerrors.New(vitaerrors.CodeInvalidFlag, fmt.Sprintf("crossover rate must be <= 1, got %f", c.CrossoverRate))
	}
	if c.Runs <= 0 {
		return vitaerrors.New(vitaerrors.CodeInvalidFlag, fmt.Sprintf("runs must be positive, got %d", c.Runs))
	}
	if c.PopulationSize < 0 {
		return vitaerrors.New(vitaerrors.CodeInvalidFlag, fmt.Sprintf("population size must be non-negative, got %d", c.PopulationSize))
	}
	if c.Layers < 0 {
		return vitaerrors.New(vitaerrors.CodeInvalidFlag, fmt.Sprintf("layers must be non-negative, got %d", c.Layers))
	}
	return nil
}
