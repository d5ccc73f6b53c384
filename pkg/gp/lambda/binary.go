package lambda

import (
	"math"

	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// Binary classifies exactly two classes from a single program's sign:
// output > 0 selects class 1, else class 0 (spec.md §4.8).
type Binary struct {
	genome *genome.Genome
	interp *interpreter.Interpreter
	labels []string
}

func NewBinary(interp *interpreter.Interpreter, g *genome.Genome, d dataset.Dataset) *Binary {
	labels := make([]string, d.Classes())
	for i := range labels {
		labels[i] = d.ClassLabel(i)
	}
	return &Binary{genome: g, interp: interp, labels: labels}
}

func (m *Binary) Predict(input []primitive.Value) Prediction {
	out := run(m.interp, m.genome, input)
	v := 0.0
	if !out.IsVoid() {
		v = out.Double
	}

	class := 0
	if v > 0 {
		class = 1
	}

	label := ""
	if class < len(m.labels) {
		label = m.labels[class]
	}

	return Prediction{Class: class, Label: label, Confidence: math.Abs(v), Value: v}
}
