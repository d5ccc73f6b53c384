// Package evolution runs one or more evolution strategies to a
// termination condition and reports the best individual found
// (spec.md §4.7).
//
// Two strategies are carried here: ALPS (pkg/gp/evolution's primary,
// bespoke driver — the canonical dataset-aware evolution path per
// DESIGN.md's Open Question decision) and Std, a classic
// tournament+elitism GA built on github.com/MaxHalford/eaopt, grounded
// on the teacher's pkg/deck/genetic/optimizer.go.
package evolution

import (
	"context"

	"github.com/klauern/vita-go/pkg/gp/evaluator"
	"github.com/klauern/vita-go/pkg/gp/population"
)

// Summary is what a Strategy run produces: the best individual seen and
// how long the run took to find it.
type Summary struct {
	Best        *population.Individual
	BestFitness evaluator.Fitness
	Generations int
}

// Strategy runs an evolution to termination and produces a Summary.
// Cancellation is cooperative: ctx is checked only at generation
// boundaries (spec.md §5 — "a run cannot be aborted mid-generation
// without discarding the partial summary").
type Strategy interface {
	Run(ctx context.Context) (*Summary, error)
}
