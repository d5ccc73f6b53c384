package lambda

import (
	"math"

	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// outputClamp bounds a program's numeric output before it feeds a
// Gaussian distribution, per spec.md §4.8 ("clamped to ±10^7") — guards
// against a pathological individual skewing a class's mean/variance.
const outputClamp = 1e7

// gaussStat is Welford's online mean/variance accumulator.
type gaussStat struct {
	n    int
	mean float64
	m2   float64
}

func (s *gaussStat) add(x float64) {
	s.n++
	d := x - s.mean
	s.mean += d / float64(s.n)
	d2 := x - s.mean
	s.m2 += d * d2
}

func (s *gaussStat) variance() float64 {
	if s.n < 2 {
		return 0
	}
	return s.m2 / float64(s.n)
}

// GaussianEngine models each class's program output as a Gaussian
// distribution, grounded on original_source/kernel/lambda_f.cc's
// gaussian_engine.
type GaussianEngine struct {
	dist []gaussStat
}

func NewGaussianEngine(interp *interpreter.Interpreter, g *genome.Genome, d dataset.Dataset) *GaussianEngine {
	e := &GaussianEngine{dist: make([]gaussStat, d.Classes())}

	for i := 0; i < d.Len(); i++ {
		ex := d.Example(i)
		out := run(interp, g, ex.Input)

		val := 0.0
		if !out.IsVoid() {
			val = out.Double
		}
		if val > outputClamp {
			val = outputClamp
		} else if val < -outputClamp {
			val = -outputClamp
		}

		label := int(ex.Output.Int)
		e.dist[label].add(val)
	}

	return e
}

// ClassLabel returns the most probable class for an interpreter output,
// plus that class's confidence and the sum of all classes' confidences
// (needed by the Gaussian evaluator's fitness formula).
func (e *GaussianEngine) ClassLabel(interp *interpreter.Interpreter, g *genome.Genome, input []primitive.Value) (class int, confidence, sum float64) {
	out := run(interp, g, input)
	x := 0.0
	if !out.IsVoid() {
		x = out.Double
	}

	var best, total float64
	bestClass := 0

	for i := range e.dist {
		distance := math.Abs(x - e.dist[i].mean)
		variance := e.dist[i].variance()

		var p float64
		switch {
		case variance == 0 && distance == 0:
			p = 1.0
		case variance == 0:
			p = 0.0
		default:
			p = math.Exp(-0.5 * distance * distance / variance)
		}

		if p > best {
			best = p
			bestClass = i
		}
		total += p
	}

	return bestClass, best, total
}

// Gaussian is the executable Gaussian-distribution classifier.
type Gaussian struct {
	engine *GaussianEngine
	genome *genome.Genome
	interp *interpreter.Interpreter
	labels []string
}

func NewGaussian(interp *interpreter.Interpreter, g *genome.Genome, d dataset.Dataset) *Gaussian {
	labels := make([]string, d.Classes())
	for i := range labels {
		labels[i] = d.ClassLabel(i)
	}
	return &Gaussian{engine: NewGaussianEngine(interp, g, d), genome: g, interp: interp, labels: labels}
}

func (m *Gaussian) Predict(input []primitive.Value) Prediction {
	class, confidence, sum := m.engine.ClassLabel(m.interp, m.genome, input)

	c := confidence
	if sum > 0 {
		c = confidence / sum
	}

	label := ""
	if class >= 0 && class < len(m.labels) {
		label = m.labels[class]
	}

	return Prediction{Class: class, Label: label, Confidence: c}
}
