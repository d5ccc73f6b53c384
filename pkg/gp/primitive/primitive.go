// Package primitive defines the typed operators and terminals a genome is
// built from, and the SymbolSet that stores and weighted-samples them.
//
// The design mirrors original_source/src/kernel/symbol_set.h: a flat,
// owning registry plus non-owning "views" (all/functions/terminals) kept
// per category, each sorted by descending weight with a cached weight sum
// for roulette selection. Rather than a class hierarchy of polymorphic
// symbol subclasses, primitives here are a tagged-variant descriptor
// (opcode-indexed, carrying an Eval closure) — the re-architecture spec.md
// §9 calls for in place of virtual dispatch.
package primitive

import "fmt"

// Category is an integer tag restricting which primitives may consume or
// produce a value at a given genome position.
type Category int

// Domain is the coarse value type underlying one or more categories.
type Domain int

// The four domains every category maps to exactly one of.
const (
	DomainVoid Domain = iota
	DomainInt
	DomainDouble
	DomainString
)

func (d Domain) String() string {
	switch d {
	case DomainVoid:
		return "void"
	case DomainInt:
		return "int"
	case DomainDouble:
		return "double"
	case DomainString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a domain-tagged runtime value produced by evaluating a gene.
// A zero Value with Domain == DomainVoid represents "no value" (void).
type Value struct {
	Domain Domain
	Int    int64
	Double float64
	Str    string
}

// Void is the canonical void value.
var Void = Value{Domain: DomainVoid}

// IsVoid reports whether v carries no value.
func (v Value) IsVoid() bool { return v.Domain == DomainVoid }

// Args is the interface a function Primitive's Eval receives in place of
// pre-evaluated arguments. Arguments are fetched lazily: calling Fetch(i)
// triggers recursive evaluation of the i-th argument only at that point,
// so a conditional primitive can short-circuit sub-expressions it never
// needs (spec.md §4.2, §9 "lazy argument evaluation").
type Args interface {
	Fetch(i int) Value
	Param() float64
	Input(i int) Value
}

// EvalFunc computes a primitive's output given lazy access to its
// arguments (ignored for terminals, which read only Param() or Input()).
type EvalFunc func(args Args) Value

// Primitive is the tagged-variant descriptor for a single operator or
// terminal, identified by Opcode.
type Primitive struct {
	Opcode     int
	Name       string
	Category   Category
	Domain     Domain
	Arity      int
	ArgCat     []Category // length == Arity; argument category per position
	Parametric bool       // terminal only: true -> carries a scalar param drawn at creation
	Weight     uint       // non-negative selection weight
	Eval       EvalFunc
}

// IsTerminal reports whether the primitive has arity zero.
func (p *Primitive) IsTerminal() bool { return p.Arity == 0 }

// ArgCategory returns the required category of the i-th argument of a
// function primitive.
func (p *Primitive) ArgCategory(i int) Category {
	return p.ArgCat[i]
}

func (p *Primitive) String() string {
	return fmt.Sprintf("%s(#%d, cat=%d, arity=%d)", p.Name, p.Opcode, p.Category, p.Arity)
}
