package lambda

import (
	"math"

	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// DynSlotEngine implements the Slotted Dynamic Class Boundary
// Determination algorithm (spec.md §4.8), grounded on
// original_source/kernel/lambda_f.cc's dyn_slot_engine.
//
// On construction it runs the genome over every training example,
// buckets each program output into one of classes*xSlot slots via an
// arctangent squash, and assigns each slot the majority class observed
// there. Slots with no observations inherit a neighbour's class.
type DynSlotEngine struct {
	slotMatrix [][]int // slotMatrix[slot][class] = count
	slotClass  []int
	datasetSize int
	classes    int
	xSlot      int
}

// NewDynSlotEngine builds the slot table from d using interp to evaluate g.
func NewDynSlotEngine(interp *interpreter.Interpreter, g *genome.Genome, d dataset.Dataset, xSlot int) *DynSlotEngine {
	classes := d.Classes()
	nSlots := classes * xSlot

	matrix := make([][]int, nSlots)
	for i := range matrix {
		matrix[i] = make([]int, classes)
	}

	e := &DynSlotEngine{slotMatrix: matrix, slotClass: make([]int, nSlots), classes: classes, xSlot: xSlot}

	for i := 0; i < d.Len(); i++ {
		ex := d.Example(i)
		where := e.slot(interp, g, ex.Input)
		label := int(ex.Output.Int)
		matrix[where][label]++
		e.datasetSize++
	}

	const unknown = -1
	for i := 0; i < nSlots; i++ {
		best := 0
		for j := 1; j < classes; j++ {
			if matrix[i][j] >= matrix[i][best] {
				best = j
			}
		}
		if matrix[i][best] > 0 {
			e.slotClass[i] = best
		} else {
			e.slotClass[i] = unknown
		}
	}

	for i := 0; i < nSlots; i++ {
		if e.slotClass[i] == unknown {
			switch {
			case i > 0 && e.slotClass[i-1] != unknown:
				e.slotClass[i] = e.slotClass[i-1]
			case i+1 < nSlots && e.slotClass[i+1] != unknown:
				e.slotClass[i] = e.slotClass[i+1]
			default:
				e.slotClass[i] = 0
			}
		}
	}

	return e
}

func (e *DynSlotEngine) slot(interp *interpreter.Interpreter, g *genome.Genome, input []primitive.Value) int {
	out := run(interp, g, input)

	ns := len(e.slotMatrix)
	lastSlot := ns - 1

	if out.IsVoid() {
		return lastSlot
	}

	where := int(normalize01(out.Double) * float64(ns))
	if where >= ns {
		return lastSlot
	}
	return where
}

// normalize01 squashes a real number onto [0,1] with an arctangent
// sigmoid, matching dyn_slot_engine::normalize_01.
func normalize01(x float64) float64 {
	return 0.5 + math.Atan(x)/math.Pi
}

// Purity returns slot s's dominant-class fraction: its confidence.
func (e *DynSlotEngine) Purity(s int) float64 {
	total := 0
	for _, c := range e.slotMatrix[s] {
		total += c
	}
	if total == 0 {
		return 0
	}
	return float64(e.slotMatrix[s][e.slotClass[s]]) / float64(total)
}

// Accuracy is the fraction of training examples whose slot's assigned
// class matches the class that populated it.
func (e *DynSlotEngine) Accuracy() float64 {
	if e.datasetSize == 0 {
		return 0
	}
	ok := 0
	for i, row := range e.slotMatrix {
		ok += row[e.slotClass[i]]
	}
	return float64(ok) / float64(e.datasetSize)
}

// SlotMatrix exposes the raw (slot, class) histogram, consumed by the
// dyn-slot evaluator's fitness formula (§4.4).
func (e *DynSlotEngine) SlotMatrix() [][]int { return e.slotMatrix }
func (e *DynSlotEngine) DatasetSize() int    { return e.datasetSize }
func (e *DynSlotEngine) ClassOf(slot int) int { return e.slotClass[slot] }

// DynSlot is the executable dynamic-slot classifier.
type DynSlot struct {
	engine *DynSlotEngine
	genome *genome.Genome
	interp *interpreter.Interpreter
	labels []string
}

func NewDynSlot(interp *interpreter.Interpreter, g *genome.Genome, d dataset.Dataset, xSlot int) *DynSlot {
	labels := make([]string, d.Classes())
	for i := range labels {
		labels[i] = d.ClassLabel(i)
	}
	return &DynSlot{
		engine: NewDynSlotEngine(interp, g, d, xSlot),
		genome: g,
		interp: interp,
		labels: labels,
	}
}

func (m *DynSlot) Predict(input []primitive.Value) Prediction {
	where := m.engine.slot(m.interp, m.genome, input)
	cls := m.engine.ClassOf(where)

	label := ""
	if cls >= 0 && cls < len(m.labels) {
		label = m.labels[cls]
	}

	return Prediction{Class: cls, Label: label, Confidence: m.engine.Purity(where)}
}
