package primitive

import (
	"fmt"
	"sort"

	"github.com/klauern/vita-go/pkg/gp/rng"
)

// BaseWeight is the default selection weight assigned when a caller
// inserts a primitive without specifying one.
const BaseWeight uint = 100

// wSymbol pairs a primitive with its selection weight, mirroring
// symbol_set::w_symbol in original_source/src/kernel/symbol_set.h.
type wSymbol struct {
	sym    *Primitive
	weight uint
}

// sumContainer is a weight-sorted (descending) list of wSymbol with a
// cached running weight sum, the Go analog of symbol_set::collection::
// sum_container.
type sumContainer struct {
	elems []wSymbol
	sum   uint
}

func (c *sumContainer) insert(ws wSymbol) {
	c.elems = append(c.elems, ws)
	c.sum += ws.weight
	sort.SliceStable(c.elems, func(i, j int) bool {
		return c.elems[i].weight > c.elems[j].weight
	})
}

func (c *sumContainer) size() int { return len(c.elems) }

// roulette draws a uniform integer in [0, sum) and walks the
// descending-weight list accumulating weights until the cumulative value
// exceeds the draw, per spec.md §4.1's sampling algorithm. Ties in weight
// break by insertion order, preserved by the stable sort in insert.
func (c *sumContainer) roulette(r *rng.Source) *Primitive {
	if len(c.elems) == 0 || c.sum == 0 {
		return nil
	}
	draw := uint(r.IntN(int(c.sum)))
	var cum uint
	for _, ws := range c.elems {
		cum += ws.weight
		if draw < cum {
			return ws.sym
		}
	}
	return c.elems[len(c.elems)-1].sym
}

// collection is the per-category structured view over a subset of the
// symbol set's owned primitives.
type collection struct {
	all       sumContainer
	functions sumContainer
	terminals sumContainer
}

func (c *collection) insert(ws wSymbol) {
	c.all.insert(ws)
	if ws.sym.IsTerminal() {
		c.terminals.insert(ws)
	} else {
		c.functions.insert(ws)
	}
}

// SymbolSet owns the primitives used by a run and provides categorized,
// weighted sampling plus lookup by opcode and by name.
//
// Grounded on original_source/src/kernel/symbol_set.h: symbols_ is the
// owning repository, views_ holds one collection per category plus (at
// index len(views)) a category-agnostic view over everything.
type SymbolSet struct {
	symbols    []*Primitive
	byOpcode   map[int]*Primitive
	byName     map[string]*Primitive
	views      map[Category]*collection
	everything collection
	nextOpcode int
	nextCat    Category
}

// NewSymbolSet returns an empty SymbolSet ready for Insert calls.
func NewSymbolSet() *SymbolSet {
	return &SymbolSet{
		byOpcode: make(map[int]*Primitive),
		byName:   make(map[string]*Primitive),
		views:    make(map[Category]*collection),
	}
}

// Insert adds a primitive to the set with the given weight and returns it.
// If p.Category is unset (the caller passes CategoryAuto), the next free
// category is assigned. Insert does not normalize weights across the set.
func (s *SymbolSet) Insert(p *Primitive, weight uint) *Primitive {
	if p.Opcode == 0 {
		s.nextOpcode++
		p.Opcode = s.nextOpcode
	}
	if weight == 0 {
		weight = BaseWeight
	}
	if p.Category == CategoryAuto {
		p.Category = s.nextCat
		s.nextCat++
	} else if p.Category >= s.nextCat {
		s.nextCat = p.Category + 1
	}

	s.symbols = append(s.symbols, p)
	s.byOpcode[p.Opcode] = p
	s.byName[p.Name] = p

	ws := wSymbol{sym: p, weight: weight}
	view, ok := s.views[p.Category]
	if !ok {
		view = &collection{}
		s.views[p.Category] = view
	}
	view.insert(ws)
	s.everything.insert(ws)

	return p
}

// CategoryAuto, passed as a Primitive's Category at Insert time, requests
// automatic assignment of the next free category.
const CategoryAuto Category = -1

// Roulette returns a random primitive of the given category with equal
// prior for function-vs-terminal: flip a fair coin, then sample within the
// chosen subset proportionally to weight. This prevents terminal flooding
// when terminals vastly outnumber functions (spec.md §4.1).
func (s *SymbolSet) Roulette(r *rng.Source, cat Category) *Primitive {
	view := s.views[cat]
	if view == nil {
		return nil
	}
	if view.functions.size() == 0 {
		return view.terminals.roulette(r)
	}
	if view.terminals.size() == 0 {
		return view.functions.roulette(r)
	}
	if r.Bool() {
		return view.functions.roulette(r)
	}
	return view.terminals.roulette(r)
}

// RouletteFree returns a random primitive sampled proportionally to
// weight across all primitives of the category, without the
// function/terminal bias Roulette applies.
func (s *SymbolSet) RouletteFree(r *rng.Source, cat Category) *Primitive {
	view := s.views[cat]
	if view == nil {
		return nil
	}
	return view.all.roulette(r)
}

// RouletteFunction samples only among functions of the category.
func (s *SymbolSet) RouletteFunction(r *rng.Source, cat Category) *Primitive {
	view := s.views[cat]
	if view == nil {
		return nil
	}
	return view.functions.roulette(r)
}

// RouletteTerminal samples only among terminals of the category.
func (s *SymbolSet) RouletteTerminal(r *rng.Source, cat Category) *Primitive {
	view := s.views[cat]
	if view == nil {
		return nil
	}
	return view.terminals.roulette(r)
}

// Decode looks up a primitive by opcode. Cardinality is small, so a map
// lookup (rather than the linear scan original_source uses) is used here.
func (s *SymbolSet) Decode(opcode int) *Primitive {
	return s.byOpcode[opcode]
}

// DecodeName looks up a primitive by name.
func (s *SymbolSet) DecodeName(name string) *Primitive {
	return s.byName[name]
}

// Categories returns the number of distinct categories registered.
func (s *SymbolSet) Categories() int {
	return int(s.nextCat)
}

// Terminals returns the number of terminals registered for cat.
func (s *SymbolSet) Terminals(cat Category) int {
	view := s.views[cat]
	if view == nil {
		return 0
	}
	return view.terminals.size()
}

// Weight returns the configured selection weight of p, or 0 if p is not a
// member of this set.
func (s *SymbolSet) Weight(p *Primitive) uint {
	view := s.views[p.Category]
	if view == nil {
		return 0
	}
	for _, ws := range view.all.elems {
		if ws.sym == p {
			return ws.weight
		}
	}
	return 0
}

// EnoughTerminals verifies that every category reachable as a
// function-argument category has at least one terminal, i.e. that a
// random individual of that category can always be generated.
func (s *SymbolSet) EnoughTerminals() bool {
	reachable := make(map[Category]bool)
	for _, p := range s.symbols {
		for _, c := range p.ArgCat {
			reachable[c] = true
		}
	}
	for cat := range reachable {
		if s.Terminals(cat) == 0 {
			return false
		}
	}
	return true
}

// IsValid reports whether every category has at least one symbol and the
// set as a whole has enough terminals to generate a random individual.
func (s *SymbolSet) IsValid() bool {
	if !s.EnoughTerminals() {
		return false
	}
	for _, view := range s.views {
		if view.all.size() == 0 {
			return false
		}
	}
	return true
}

func (s *SymbolSet) String() string {
	return fmt.Sprintf("SymbolSet{symbols=%d, categories=%d}", len(s.symbols), s.Categories())
}
