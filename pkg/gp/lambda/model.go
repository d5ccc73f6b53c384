// Package lambda turns a trained genome (or team of genomes) into an
// executable predictor with a stable interface, independent of the
// evolution machinery that produced it.
//
// Grounded on original_source/kernel/lambda_f.h, lambda_f.cc and
// lambda_f_inl.h: the engines here (dynamic-slot, Gaussian) mirror the
// construction/prediction split of dyn_slot_engine and gaussian_engine,
// shared between the evaluator (which only needs fitness + accuracy) and
// the lambda models (which need a per-example Predict).
package lambda

import (
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// Prediction is the outcome of running a Model against one example. Value
// holds the raw numeric output (regression); Class/Label/Confidence are
// populated for classifiers.
type Prediction struct {
	Class      int
	Label      string
	Confidence float64
	Value      float64
}

// Model predicts an output for a given input vector.
type Model interface {
	Predict(input []primitive.Value) Prediction
}

// run evaluates g against input through a shared interpreter, returning
// Void-safe output (callers treat a void result as the domain's zero
// value rather than propagating it).
func run(interp *interpreter.Interpreter, g *genome.Genome, input []primitive.Value) primitive.Value {
	return interp.Run(g, input)
}
