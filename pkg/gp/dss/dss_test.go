package dss

import (
	"testing"

	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

func buildDataset(n int) *dataset.InMemory {
	examples := make([]dataset.Example, n)
	for i := range examples {
		v := primitive.Value{Domain: primitive.DomainDouble, Double: float64(i)}
		examples[i] = dataset.Example{Input: []primitive.Value{v}, Output: v}
	}
	return dataset.NewInMemory(examples, 1, nil, nil)
}

func TestSizeAppliesFloorClauseOnSmallDataset(t *testing.T) {
	if got := Size(10); got != 10 {
		t.Fatalf("Size(10) = %d, want 10 (floor clause)", got)
	}
	if got := Size(5); got != 5 {
		t.Fatalf("Size(5) = %d, want 5 (dataset smaller than floor)", got)
	}
}

func TestSizeCapsFractionAt60Percent(t *testing.T) {
	n := 100000
	got := Size(n)
	max := int(0.6 * float64(n))
	if got > max {
		t.Fatalf("Size(%d) = %d, want <= %d (0.6 fraction cap)", n, got, max)
	}
}

func TestSelectNeverExceedsDatasetSize(t *testing.T) {
	d := buildDataset(20)
	r := rng.NewSeeded(1)

	sub := Select(d, r)
	if sub.Len() > d.Len() {
		t.Fatalf("Len() = %d, want <= %d", sub.Len(), d.Len())
	}
	if sub.Len() < floorSize {
		t.Fatalf("Len() = %d, want >= %d (floor clause)", sub.Len(), floorSize)
	}
}

func TestSelectResetsDifficultyOnChosenExamples(t *testing.T) {
	d := buildDataset(10)
	for i := 0; i < d.Len(); i++ {
		d.SetDifficulty(i, 5)
	}
	r := rng.NewSeeded(2)

	sub := Select(d, r)
	for i := 0; i < sub.Len(); i++ {
		// sub indexes into the same underlying dataset, so Difficulty
		// must read back 0 for every selected example.
		if sub.Difficulty(i) != 0 {
			t.Fatalf("selected example %d has non-zero difficulty after Select", i)
		}
	}
}

func TestSelectIncrementsAgeOfUnselectedExamples(t *testing.T) {
	d := buildDataset(500)
	r := rng.NewSeeded(3)

	Select(d, r)

	anyIncremented := false
	for i := 0; i < d.Len(); i++ {
		if d.Age(i) > 0 {
			anyIncremented = true
			break
		}
	}
	if !anyIncremented {
		t.Fatalf("expected at least one unselected example to have its age incremented")
	}
}
