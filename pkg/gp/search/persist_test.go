package search

import (
	"path/filepath"
	"testing"

	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

func buildAddXGenome(sset *primitive.SymbolSet) *genome.Genome {
	add := sset.DecodeName("add")
	x0 := sset.DecodeName("x0")
	g := genome.New(3, 1, 1)
	g.Set(genome.Locus{Index: 0, Category: 0}, genome.Gene{Sym: add, Args: []int{1, 2}})
	g.Set(genome.Locus{Index: 1, Category: 0}, genome.Gene{Sym: x0})
	g.Set(genome.Locus{Index: 2, Category: 0}, genome.Gene{Sym: x0})
	g.SetBest(genome.Locus{Index: 0, Category: 0})
	return g
}

func TestSaveAndLoadGenomeRoundTrips(t *testing.T) {
	sset := BuildSymbolSet(1)
	g := buildAddXGenome(sset)

	path := filepath.Join(t.TempDir(), "genome.xml")
	if err := SaveGenome(path, g); err != nil {
		t.Fatalf("SaveGenome returned error: %v", err)
	}

	loaded, err := LoadGenome(path, sset)
	if err != nil {
		t.Fatalf("LoadGenome returned error: %v", err)
	}

	if loaded.CodeLength() != g.CodeLength() || loaded.Categories() != g.Categories() || loaded.PatchLength() != g.PatchLength() {
		t.Fatalf("loaded genome dimensions = (%d,%d,%d), want (%d,%d,%d)",
			loaded.CodeLength(), loaded.Categories(), loaded.PatchLength(),
			g.CodeLength(), g.Categories(), g.PatchLength())
	}
	if loaded.Best() != g.Best() {
		t.Fatalf("loaded best locus = %+v, want %+v", loaded.Best(), g.Best())
	}

	for i := 0; i < g.CodeLength(); i++ {
		locus := genome.Locus{Index: i, Category: 0}
		want := g.At(locus)
		got := loaded.At(locus)
		if got.Sym != want.Sym {
			t.Fatalf("gene %d symbol = %v, want %v", i, got.Sym, want.Sym)
		}
	}
}

func TestLoadGenomeRejectsUnknownOpcode(t *testing.T) {
	sset := BuildSymbolSet(1)
	g := buildAddXGenome(sset)

	path := filepath.Join(t.TempDir(), "genome.xml")
	if err := SaveGenome(path, g); err != nil {
		t.Fatalf("SaveGenome returned error: %v", err)
	}

	emptySet := primitive.NewSymbolSet()
	if _, err := LoadGenome(path, emptySet); err == nil {
		t.Fatalf("expected LoadGenome to fail against a SymbolSet missing every opcode")
	}
}
