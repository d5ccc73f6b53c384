package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauern/vita-go/internal/storage"
	"github.com/klauern/vita-go/pkg/gp/search"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:    "vita-evolve",
		Usage:   "Symbolic regression/classification by genetic programming",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dataset", Aliases: []string{"d"}, Usage: "training dataset path (CSV, output column first)", Required: true},
			&cli.StringFlag{Name: "symbols", Usage: "symbol-set definition file (unsupported: the built-in arithmetic/transcendental set is always used)"},
			&cli.StringFlag{Name: "testset", Usage: "held-out dataset to score the winning individual against"},
			&cli.Float64Flag{Name: "validation", Usage: "fraction of the training set held out for validation (0-1)"},
			&cli.StringFlag{Name: "evaluator", Value: "mae", Usage: "fitness evaluator: count|mae|rmae|mse|binary[:label]|dynslot[:slots]|gaussian"},
			&cli.IntFlag{Name: "random-seed", Usage: "RNG seed (0 = randomize)"},
			&cli.IntFlag{Name: "cache", Value: 16, Usage: "fingerprint cache size, in address bits"},
			&cli.IntFlag{Name: "population-size", Usage: "individuals per layer (0 = auto-tuned)"},
			&cli.IntFlag{Name: "layers", Usage: "number of ALPS age layers (0 = auto-tuned)"},
			&cli.IntFlag{Name: "code-length", Usage: "genome length in genes (0 = auto-tuned)"},
			&cli.BoolFlag{Name: "elitism", Value: true, Usage: "preserve the best individual across generations"},
			&cli.Float64Flag{Name: "mutation-rate", Usage: "per-gene mutation probability (0 = auto-tuned)"},
			&cli.Float64Flag{Name: "crossover-rate", Usage: "crossover probability (0 = auto-tuned)"},
			&cli.IntFlag{Name: "tournament-size", Usage: "tournament selection size (0 = auto-tuned)"},
			&cli.IntFlag{Name: "brood", Value: 1, Usage: "brood recombination size (1 disables it)"},
			&cli.BoolFlag{Name: "dss", Usage: "enable dynamic subset selection"},
			&cli.IntFlag{Name: "generations", Usage: "maximum generations per run (0 = auto-tuned)"},
			&cli.IntFlag{Name: "gwi", Usage: "generations without improvement before stopping early (0 disables)"},
			&cli.IntFlag{Name: "runs", Value: 1, Usage: "number of independent runs"},
			&cli.IntFlag{Name: "mate-zone", Usage: "neighbourhood radius for mate selection (0 = auto-tuned)"},
			&cli.BoolFlag{Name: "arl", Usage: "score the winning individual's blocks for ADT promotion"},
			&cli.StringFlag{Name: "stat-dir", Value: "stat", Usage: "directory run artifacts are written under"},
			&cli.BoolFlag{Name: "stat-summary", Usage: "write <stat-dir>/summary.xml"},
			&cli.BoolFlag{Name: "stat-layers", Usage: "write <stat-dir>/layers.json"},
			&cli.BoolFlag{Name: "stat-population", Usage: "write <stat-dir>/population.json"},
			&cli.BoolFlag{Name: "stat-dynamic", Usage: "write <stat-dir>/dynamic.csv"},
			&cli.BoolFlag{Name: "stat-arl", Usage: "write <stat-dir>/arl.json"},
			&cli.StringFlag{Name: "threshold", Value: "0", Usage: "target fitness to stop at; a trailing %% treats it as a classification accuracy threshold"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "show a per-generation progress bar"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress the run summary banner"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := search.DefaultRunConfig()
	cfg.DatasetPath = cmd.String("dataset")
	cfg.TestsetPath = cmd.String("testset")
	cfg.ValidationPercent = cmd.Float64("validation")
	cfg.EvaluatorSpec = cmd.String("evaluator")
	cfg.RandomSeed = int64(cmd.Int("random-seed"))
	cfg.CacheBits = uint(cmd.Int("cache"))
	cfg.PopulationSize = int(cmd.Int("population-size"))
	cfg.Layers = int(cmd.Int("layers"))
	cfg.CodeLength = int(cmd.Int("code-length"))
	cfg.Elitism = cmd.Bool("elitism")
	cfg.MutationRate = mutationOrCrossoverRate(cmd.Float64("mutation-rate"))
	cfg.CrossoverRate = mutationOrCrossoverRate(cmd.Float64("crossover-rate"))
	cfg.TournamentSize = int(cmd.Int("tournament-size"))
	cfg.Brood = int(cmd.Int("brood"))
	cfg.DSS = cmd.Bool("dss")
	cfg.Generations = int(cmd.Int("generations"))
	cfg.GenerationsWithoutImprovement = int(cmd.Int("gwi"))
	cfg.Runs = int(cmd.Int("runs"))
	cfg.MateZone = int(cmd.Int("mate-zone"))
	cfg.ARL = cmd.Bool("arl")
	cfg.StatDir = cmd.String("stat-dir")
	cfg.StatSummary = cmd.Bool("stat-summary")
	cfg.StatLayers = cmd.Bool("stat-layers")
	cfg.StatPopulation = cmd.Bool("stat-population")
	cfg.StatDynamic = cmd.Bool("stat-dynamic")
	cfg.StatARL = cmd.Bool("stat-arl")
	cfg.Verbose = cmd.Bool("verbose")
	cfg.Quiet = cmd.Bool("quiet")

	threshold, isAccuracy, err := parseThreshold(cmd.String("threshold"))
	if err != nil {
		return err
	}
	cfg.Threshold = threshold

	for run := 1; run <= cfg.Runs; run++ {
		if err := evolveOnce(ctx, cfg, run, isAccuracy); err != nil {
			return fmt.Errorf("run %d failed: %w", run, err)
		}
	}
	return nil
}

// mutationOrCrossoverRate maps the CLI's unset sentinel (0) onto the
// negative sentinel search.RunConfig/tuning.Tune use to mean "auto-tune
// this"; any explicit non-zero value passes through unchanged.
func mutationOrCrossoverRate(flagValue float64) float64 {
	if flagValue == 0 {
		return -1
	}
	return flagValue
}

// parseThreshold accepts either a bare fitness value or a trailing "%"
// classification-accuracy value (spec.md §6).
func parseThreshold(raw string) (value float64, isAccuracy bool, err error) {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return 0, false, fmt.Errorf("invalid --threshold %q: %w", raw, err)
		}
		return pct / 100, true, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid --threshold %q: %w", raw, err)
	}
	return v, false, nil
}

func evolveOnce(ctx context.Context, cfg search.RunConfig, run int, isAccuracy bool) error {
	problem, err := search.NewProblem(cfg)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if cfg.Verbose {
		bar = progressbar.NewOptions(problem.Config.Generations,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("gens"),
			progressbar.OptionOnCompletion(func() { fprintln(os.Stderr) }),
		)
		problem.OnGeneration = func(gen, total int) {
			if err := bar.Add(1); err != nil {
				fprintf(os.Stderr, "progress bar update failed: %v\n", err)
			}
		}
	}

	start := time.Now()
	result, err := problem.Run(ctx)
	elapsed := time.Since(start)
	if err != nil && result == nil {
		return err
	}

	if !cfg.Quiet {
		printSummary(run, result, elapsed, isAccuracy)
	}

	if cfg.StatDir != "" {
		if err := writeStats(cfg, run, problem, result); err != nil {
			return fmt.Errorf("failed to write stats for run %d: %w", run, err)
		}
	}

	return err
}

// writeStats writes whichever of the --stat-* artifacts cfg requests to
// cfg.StatDir, naming each file via storage.PathBuilder.
func writeStats(cfg search.RunConfig, run int, problem *search.Problem, result *search.Result) error {
	pb := storage.NewPathBuilder(cfg.StatDir)

	if cfg.StatSummary && result.Summary != nil && result.Summary.Best != nil {
		if err := search.SaveGenome(pb.SummaryPath(), result.Summary.Best.Genome); err != nil {
			return err
		}
	}
	if cfg.StatLayers && result.Population != nil {
		if err := search.WriteLayerStats(pb.LayersPath(), result.Population); err != nil {
			return err
		}
	}
	if cfg.StatPopulation && result.Population != nil {
		if err := search.WritePopulationStats(pb.PopulationPath(), result.Population); err != nil {
			return err
		}
	}
	if cfg.StatDynamic {
		if err := search.WriteDynamicTrace(pb.DynamicPath(), problem.Trace); err != nil {
			return err
		}
	}
	if cfg.StatARL {
		if err := search.WriteARLStats(pb.ARLPath(), result.ARLFindings); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(run int, result *search.Result, elapsed time.Duration, isAccuracy bool) {
	printf("\nRun %d finished in %s\n", run, elapsed.Round(time.Millisecond))
	if result == nil || result.Summary == nil || result.Summary.Best == nil {
		printf("no individual found within the generation budget\n")
		return
	}

	printf("Generations: %d\n", result.Summary.Generations)
	if isAccuracy {
		printf("Best accuracy: %.4f\n", result.Summary.BestFitness.Accuracy)
	} else {
		printf("Best fitness: %.6f\n", result.Summary.BestFitness.Value)
	}

	if len(result.ARLFindings) > 0 {
		printf("ARL candidates found: %d\n", len(result.ARLFindings))
		for _, c := range result.ARLFindings {
			printf("  locus %d: relative fitness loss %.3f\n", c.Locus.Index, c.RelativeLoss)
		}
	}
}
