// Package dss implements Dynamic Subset Selection: per-generation
// re-weighted sub-sampling of the training set so the evaluator sees a
// smaller, harder-and-staler slice instead of every example every
// generation (spec.md §4.9).
//
// No bespoke dss.h/.cc survived retrieval — environment.h only names
// the `dss` generation-interval parameter — so the selection formula
// here is built directly from spec.md §4.9's prose, following the
// dataset package's Difficulty/Age hooks it was written to feed.
package dss

import (
	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// floorSize is the minimum number of examples DSS will ever select,
// regardless of dataset size (spec.md's "10-example dataset selects at
// least 10 examples" floor clause).
const floorSize = 10

// Subset is a view over a handful of a Dataset's examples, itself a
// dataset.Dataset so the evaluator needs no special casing. SetDifficulty
// and SetAge write through to the underlying dataset.
type Subset struct {
	full    dataset.Dataset
	indices []int
}

func (s *Subset) Len() int { return len(s.indices) }

func (s *Subset) Example(i int) dataset.Example { return s.full.Example(s.indices[i]) }

func (s *Subset) Features() int { return s.full.Features() }

func (s *Subset) FeatureCategory(feature int) primitive.Category { return s.full.FeatureCategory(feature) }

func (s *Subset) Classes() int { return s.full.Classes() }

func (s *Subset) ClassLabel(class int) string { return s.full.ClassLabel(class) }

func (s *Subset) IsClassification() bool { return s.full.IsClassification() }

func (s *Subset) Difficulty(i int) float64 { return s.full.Difficulty(s.indices[i]) }

func (s *Subset) SetDifficulty(i int, d float64) { s.full.SetDifficulty(s.indices[i], d) }

func (s *Subset) Age(i int) int { return s.full.Age(s.indices[i]) }

func (s *Subset) SetAge(i int, a int) { s.full.SetAge(s.indices[i], a) }

// Size returns the subset size spec.md §4.9 picks for a dataset of n
// examples: min(0.6, 0.2+100/(n+100))·n, floored at floorSize (and
// never larger than n itself).
func Size(n int) int {
	if n <= floorSize {
		return n
	}
	fraction := 0.2 + 100.0/float64(n+100)
	if fraction > 0.6 {
		fraction = 0.6
	}
	size := int(fraction * float64(n))
	if size < floorSize {
		size = floorSize
	}
	if size > n {
		size = n
	}
	return size
}

// Select re-weights every example by difficulty+age³, draws Size(n) of
// them without replacement (roulette-wheel, heavier weight more likely),
// resets the chosen examples' difficulty and bumps every unselected
// example's age, and returns the resulting Subset.
func Select(full dataset.Dataset, r *rng.Source) *Subset {
	n := full.Len()
	size := Size(n)

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		age := float64(full.Age(i))
		weights[i] = full.Difficulty(i) + age*age*age
		if weights[i] <= 0 {
			weights[i] = 1e-9 // every example keeps a non-zero chance of being drawn
		}
	}

	chosen := make(map[int]bool, size)
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	for len(chosen) < size && len(remaining) > 0 {
		total := 0.0
		for _, idx := range remaining {
			total += weights[idx]
		}
		target := r.Float64() * total
		pick := len(remaining) - 1
		running := 0.0
		for j, idx := range remaining {
			running += weights[idx]
			if target <= running {
				pick = j
				break
			}
		}
		chosenIdx := remaining[pick]
		chosen[chosenIdx] = true
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}

	indices := make([]int, 0, len(chosen))
	for i := 0; i < n; i++ {
		if chosen[i] {
			full.SetDifficulty(i, 0)
			full.SetAge(i, 0)
			indices = append(indices, i)
		} else {
			full.SetAge(i, full.Age(i)+1)
		}
	}

	return &Subset{full: full, indices: indices}
}
