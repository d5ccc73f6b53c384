// Package interpreter evaluates a genome against an input vector.
//
// Grounded on original_source/src/kernel/src/interpreter_inl.h and
// core_interpreter.h: a context-propagating, re-entrant evaluator that
// recurses from the genome's best locus, fetching a function's arguments
// lazily through a SymbolParams-like interface so a conditional primitive
// can short-circuit a branch without evaluating it (spec.md §4.2, §9).
package interpreter

import (
	"math"

	"github.com/klauern/vita-go/pkg/gp/genome"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// Interpreter evaluates genomes against a caller-supplied input vector. It
// borrows the genome immutably for the duration of a Run call and is
// re-entrant across disjoint genomes (spec.md §4.2's "context").
type Interpreter struct{}

// New returns a ready-to-use Interpreter.
func New() *Interpreter {
	return &Interpreter{}
}

// Run computes the output of g against input, starting at g's best locus.
func (in *Interpreter) Run(g *genome.Genome, input []primitive.Value) primitive.Value {
	ctx := &runContext{genome: g, input: input}
	return ctx.eval(g.Best())
}

// runContext is a single Run call's evaluation state: the genome being
// interpreted and the input vector, plus the args adapter passed into
// primitive Eval functions.
type runContext struct {
	genome *genome.Genome
	input  []primitive.Value
}

func (c *runContext) eval(l genome.Locus) primitive.Value {
	gene := c.genome.At(l)
	sym := gene.Sym

	return sanitize(sym.Eval(&argsView{ctx: c, gene: gene}))
}

// sanitize converts non-finite numeric results to void, per spec.md §4.2
// ("numeric overflow / non-finite results return void").
func sanitize(v primitive.Value) primitive.Value {
	if v.Domain == primitive.DomainDouble && !math.IsInf(v.Double, 0) && !math.IsNaN(v.Double) {
		return v
	}
	if v.Domain == primitive.DomainDouble {
		return primitive.Void
	}
	return v
}

// argsView is the lazy-argument adapter handed to a primitive's Eval. Its
// Fetch method recursively evaluates the genome at the requested argument
// locus only when called, implementing spec.md §9's "fetch_arg(i) that
// triggers recursive evaluation only when called".
type argsView struct {
	ctx  *runContext
	gene genome.Gene
}

func (a *argsView) Fetch(i int) primitive.Value {
	return a.ctx.eval(a.gene.ArgLocus(i))
}

func (a *argsView) Param() float64 {
	return a.gene.Par
}

func (a *argsView) Input(i int) primitive.Value {
	if i < 0 || i >= len(a.ctx.input) {
		return primitive.Void
	}
	return a.ctx.input[i]
}
