// Package dataset defines the external-collaborator contract spec.md §3
// assigns to training/test data: an ordered sequence of examples, each
// carrying a domain-tagged input vector and an output value (numeric for
// regression, an encoded class tag for classification).
//
// spec.md treats the dataset itself, and CSV/XRFF parsing in particular,
// as out of scope beyond this interface; LoadCSV here is a minimal,
// deliberately thin adapter (see DESIGN.md) so the CLI has something
// concrete to run against.
package dataset

import "github.com/klauern/vita-go/pkg/gp/primitive"

// Example is one training/test row: a feature vector and its target.
type Example struct {
	Input  []primitive.Value
	Output primitive.Value
}

// Dataset is the contract the evolution engine's evaluator and SymbolSet
// construction consume. DSS (§4.9) mutates per-example Difficulty/Age
// through the same interface; spec.md §5 confines that mutation to the
// single-threaded evolution driver.
type Dataset interface {
	Len() int
	Example(i int) Example
	Features() int
	FeatureCategory(feature int) primitive.Category
	Classes() int // 0 for a regression dataset
	ClassLabel(class int) string
	IsClassification() bool

	Difficulty(i int) float64
	SetDifficulty(i int, d float64)
	Age(i int) int
	SetAge(i int, a int)
}

// InMemory is a directly constructible Dataset, the common path for a Go
// caller that already has parsed examples (and what the engine's own
// tests build against).
type InMemory struct {
	examples   []Example
	features   int
	featureCat []primitive.Category
	classes    int
	labels     []string

	difficulty []float64
	age        []int
}

// NewInMemory builds an InMemory dataset. featureCat may be nil, in which
// case every feature is assigned category 0. classLabels is nil/empty for
// a regression dataset.
func NewInMemory(examples []Example, features int, featureCat []primitive.Category, classLabels []string) *InMemory {
	if featureCat == nil {
		featureCat = make([]primitive.Category, features)
	}
	d := &InMemory{
		examples:   examples,
		features:   features,
		featureCat: featureCat,
		classes:    len(classLabels),
		labels:     classLabels,
		difficulty: make([]float64, len(examples)),
		age:        make([]int, len(examples)),
	}
	return d
}

func (d *InMemory) Len() int                 { return len(d.examples) }
func (d *InMemory) Example(i int) Example    { return d.examples[i] }
func (d *InMemory) Features() int            { return d.features }
func (d *InMemory) Classes() int             { return d.classes }
func (d *InMemory) IsClassification() bool   { return d.classes > 0 }

func (d *InMemory) FeatureCategory(feature int) primitive.Category {
	return d.featureCat[feature]
}

func (d *InMemory) ClassLabel(class int) string {
	if class < 0 || class >= len(d.labels) {
		return ""
	}
	return d.labels[class]
}

func (d *InMemory) Difficulty(i int) float64     { return d.difficulty[i] }
func (d *InMemory) SetDifficulty(i int, v float64) { d.difficulty[i] = v }
func (d *InMemory) Age(i int) int                { return d.age[i] }
func (d *InMemory) SetAge(i int, a int)          { d.age[i] = a }
