// Package population holds individuals grouped by age-layer and
// provides the layer-local random sampling ALPS needs for mating and
// replacement (spec.md §4.6).
//
// Grounded on original_source/src/kernel/population.h: the same
// coord-addressed, vector-of-layers shape (`pop_`/`allowed_`), the same
// two-overload `pickup` free functions (one fully random, one mate-zone
// restricted around an anchor), and init_layer/add_layer/add_to_layer/
// pop_from_layer/inc_age verbatim by name. population.tcc itself (the
// template bodies) was not retrieved, so the eviction and pickup bodies
// below are written directly from spec.md §4.6's prose.
package population

import (
	"github.com/klauern/vita-go/pkg/gp/evaluator"
	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/primitive"
	"github.com/klauern/vita-go/pkg/gp/rng"
)

// Coord addresses one individual as (layer, offset within layer).
type Coord struct {
	Layer  int
	Offset int
}

// Individual couples a genome with its last computed fitness.
type Individual struct {
	Genome  *genome.Genome
	Fitness evaluator.Fitness
}

// Population is a stack of age layers, layer 0 being the youngest.
type Population struct {
	layers  [][]Individual
	allowed []int
	rng     *rng.Source
}

// New returns an empty Population (no layers yet — call AddLayer).
func New(r *rng.Source) *Population {
	return &Population{rng: r}
}

func (p *Population) Layers() int { return len(p.layers) }

func (p *Population) Individuals(k int) int { return len(p.layers[k]) }

func (p *Population) Allowed(k int) int { return p.allowed[k] }

func (p *Population) SetAllowed(k, n int) { p.allowed[k] = n }

// AddLayer appends a new, empty top layer.
func (p *Population) AddLayer() {
	p.layers = append(p.layers, nil)
	p.allowed = append(p.allowed, 0)
}

// RemoveLayer deletes layer k and its allowance.
func (p *Population) RemoveLayer(k int) {
	p.layers = append(p.layers[:k], p.layers[k+1:]...)
	p.allowed = append(p.allowed[:k], p.allowed[k+1:]...)
}

// InitLayer fills layer k with fresh random individuals up to its
// allowed capacity.
func (p *Population) InitLayer(k int, sset *primitive.SymbolSet, codeLength, categories, patchLength int) {
	for len(p.layers[k]) < p.allowed[k] {
		g := genome.New(codeLength, categories, patchLength)
		g.RandomInit(p.rng, sset)
		p.layers[k] = append(p.layers[k], Individual{Genome: g})
	}
}

// AddToLayer pushes ind onto layer k, evicting the worst individual if
// this overflows the layer's allowance.
func (p *Population) AddToLayer(k int, ind Individual) {
	p.layers[k] = append(p.layers[k], ind)
	if len(p.layers[k]) > p.allowed[k] {
		p.evictWorst(k)
	}
}

// evictWorst removes the individual with the lowest fitness in layer k;
// ties are broken by evicting the older individual (spec.md §4.6).
func (p *Population) evictWorst(k int) {
	layer := p.layers[k]
	if len(layer) == 0 {
		return
	}
	worst := 0
	for i := 1; i < len(layer); i++ {
		if shouldEvictInFavorOf(layer[i], layer[worst]) {
			worst = i
		}
	}
	p.layers[k] = append(layer[:worst], layer[worst+1:]...)
}

func shouldEvictInFavorOf(candidate, current Individual) bool {
	if candidate.Fitness.Value != current.Fitness.Value {
		return candidate.Fitness.Value < current.Fitness.Value
	}
	return candidate.Genome.Age() > current.Genome.Age()
}

// RemoveAt deletes and returns the individual at (k, offset), used by
// the ALPS driver to migrate an aged-out individual to the next layer.
func (p *Population) RemoveAt(k, offset int) Individual {
	ind := p.layers[k][offset]
	p.layers[k] = append(p.layers[k][:offset], p.layers[k][offset+1:]...)
	return ind
}

// ResetLayer discards layer k's individuals and refills it with fresh
// random ones, the periodic layer-0 reset ALPS uses against premature
// convergence (spec.md §4.7).
func (p *Population) ResetLayer(k int, sset *primitive.SymbolSet, codeLength, categories, patchLength int) {
	p.layers[k] = nil
	p.InitLayer(k, sset, codeLength, categories, patchLength)
}

// PopFromLayer removes a uniformly random individual from layer k.
func (p *Population) PopFromLayer(k int) {
	layer := p.layers[k]
	if len(layer) == 0 {
		return
	}
	i := p.rng.IntN(len(layer))
	p.layers[k] = append(layer[:i], layer[i+1:]...)
}

// IncAge increments the age of every individual in every layer.
func (p *Population) IncAge() {
	for _, layer := range p.layers {
		for _, ind := range layer {
			ind.Genome.IncAge()
		}
	}
}

// At returns the individual at c, or ok=false if out of bounds.
func (p *Population) At(c Coord) (Individual, bool) {
	if c.Layer < 0 || c.Layer >= len(p.layers) {
		return Individual{}, false
	}
	if c.Offset < 0 || c.Offset >= len(p.layers[c.Layer]) {
		return Individual{}, false
	}
	return p.layers[c.Layer][c.Offset], true
}

// Set overwrites the individual at c; returns ok=false if out of bounds.
func (p *Population) Set(c Coord, ind Individual) bool {
	if c.Layer < 0 || c.Layer >= len(p.layers) {
		return false
	}
	if c.Offset < 0 || c.Offset >= len(p.layers[c.Layer]) {
		return false
	}
	p.layers[c.Layer][c.Offset] = ind
	return true
}

// PickupRandom returns a uniformly random coordinate anywhere in the
// population (population.h's single-argument `pickup` overload).
func (p *Population) PickupRandom() Coord {
	nonEmpty := make([]int, 0, len(p.layers))
	for k, layer := range p.layers {
		if len(layer) > 0 {
			nonEmpty = append(nonEmpty, k)
		}
	}
	if len(nonEmpty) == 0 {
		return Coord{}
	}
	layer := nonEmpty[p.rng.IntN(len(nonEmpty))]
	return Coord{Layer: layer, Offset: p.rng.IntN(len(p.layers[layer]))}
}

// Pickup samples a coordinate within the mate zone of anchor
// (population.h's two-argument `pickup` overload): with probability
// pSameLayer stay on anchor's layer, else drop to the previous layer
// (layer 0 always stays on layer 0); within the chosen layer, take a
// uniform random offset within mateZone of anchor.Offset (panmictic —
// any offset in the layer — when mateZone is negative, modeling
// "infinite").
func (p *Population) Pickup(anchor Coord, pSameLayer float64, mateZone int) Coord {
	layer := anchor.Layer
	if anchor.Layer > 0 && !p.rng.Chance(pSameLayer) {
		layer = anchor.Layer - 1
	}

	n := len(p.layers[layer])
	if n == 0 {
		return Coord{Layer: layer, Offset: 0}
	}
	if mateZone < 0 || mateZone >= n {
		return Coord{Layer: layer, Offset: p.rng.IntN(n)}
	}

	span := 2*mateZone + 1
	base := ((anchor.Offset-mateZone)%n + n) % n
	offset := (base + p.rng.IntN(span)) % n
	return Coord{Layer: layer, Offset: offset}
}
