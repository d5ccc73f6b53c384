package search

import (
	"fmt"

	vitaerrors "github.com/klauern/vita-go/internal/errors"
	"github.com/klauern/vita-go/internal/storage"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// GeneRow is one serialized genome slot: an opcode resolved against the
// run's SymbolSet, an optional parameter (meaningful only for parametric
// terminals), and the argument slot indices (empty for terminals).
type GeneRow struct {
	Index    int    `xml:"index,attr"`
	Category int    `xml:"category,attr"`
	Opcode   int    `xml:"opcode,attr"`
	Param    float64 `xml:"param,attr,omitempty"`
	Args     []int  `xml:"arg"`
}

// SavedGenome is the XML document spec.md §6's Persistence section
// describes: genome dimensions, the best-locus coordinates, and a row
// per gene.
type SavedGenome struct {
	XMLName     struct{}  `xml:"genome"`
	CodeLength  int       `xml:"codeLength,attr"`
	Categories  int       `xml:"categories,attr"`
	PatchLength int       `xml:"patchLength,attr"`
	BestIndex   int       `xml:"bestIndex,attr"`
	BestCat     int       `xml:"bestCategory,attr"`
	Genes       []GeneRow `xml:"gene"`
}

// SaveGenome serializes g to path as XML, one row per (index, category)
// slot across every category the genome carries.
func SaveGenome(path string, g *genome.Genome) error {
	best := g.Best()
	saved := SavedGenome{
		CodeLength:  g.CodeLength(),
		Categories:  g.Categories(),
		PatchLength: g.PatchLength(),
		BestIndex:   best.Index,
		BestCat:     int(best.Category),
	}

	for cat := 0; cat < g.Categories(); cat++ {
		for i := 0; i < g.CodeLength(); i++ {
			locus := genome.Locus{Index: i, Category: primitive.Category(cat)}
			gene := g.At(locus)
			if gene.Sym == nil {
				continue
			}
			row := GeneRow{
				Index:    i,
				Category: cat,
				Opcode:   gene.Sym.Opcode,
				Args:     gene.Args,
			}
			if gene.Sym.Parametric {
				row.Param = gene.Par
			}
			saved.Genes = append(saved.Genes, row)
		}
	}

	return storage.WriteXML(path, saved)
}

// LoadGenome reads path and resolves every row's opcode against sset,
// rebuilding the original Genome. Returns an error naming the first
// unresolvable opcode, since a genome saved against a different
// SymbolSet cannot be reconstructed.
func LoadGenome(path string, sset *primitive.SymbolSet) (*genome.Genome, error) {
	var saved SavedGenome
	if err := storage.ReadXML(path, &saved); err != nil {
		return nil, err
	}

	g := genome.New(saved.CodeLength, saved.Categories, saved.PatchLength)
	for _, row := range saved.Genes {
		sym := sset.Decode(row.Opcode)
		if sym == nil {
			return nil, vitaerrors.New(vitaerrors.CodeOpcodeNotFound, fmt.Sprintf("opcode %d not found in symbol set", row.Opcode))
		}
		g.Set(genome.Locus{Index: row.Index, Category: primitive.Category(row.Category)}, genome.Gene{
			Sym:  sym,
			Par:  row.Param,
			Args: row.Args,
		})
	}
	g.SetBest(genome.Locus{Index: saved.BestIndex, Category: primitive.Category(saved.BestCat)})

	return g, nil
}
