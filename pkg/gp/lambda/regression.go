package lambda

import (
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// Regression wraps a single genome as a numeric predictor.
type Regression struct {
	genome *genome.Genome
	interp *interpreter.Interpreter
}

// NewRegression builds a regression Model from g.
func NewRegression(interp *interpreter.Interpreter, g *genome.Genome) *Regression {
	return &Regression{genome: g, interp: interp}
}

func (m *Regression) Predict(input []primitive.Value) Prediction {
	out := run(m.interp, m.genome, input)
	v := 0.0
	if !out.IsVoid() {
		v = out.Double
	}
	return Prediction{Value: v}
}

// RegressionTeam aggregates several genomes by averaging the non-void
// members' outputs (spec.md §4.8's "running mean over members whose
// outputs are not void").
type RegressionTeam struct {
	members []*genome.Genome
	interp  *interpreter.Interpreter
}

func NewRegressionTeam(interp *interpreter.Interpreter, members []*genome.Genome) *RegressionTeam {
	return &RegressionTeam{members: members, interp: interp}
}

func (m *RegressionTeam) Predict(input []primitive.Value) Prediction {
	sum := 0.0
	n := 0
	for _, g := range m.members {
		out := run(m.interp, g, input)
		if !out.IsVoid() {
			sum += out.Double
			n++
		}
	}
	if n == 0 {
		return Prediction{Value: 0}
	}
	return Prediction{Value: sum / float64(n)}
}
