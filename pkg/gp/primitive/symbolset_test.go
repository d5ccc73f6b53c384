package primitive

import "testing"

func TestSymbolSetIsValidRejectsCategoryWithNoTerminal(t *testing.T) {
	sset := NewSymbolSet()
	sset.Insert(&Primitive{
		Name:   "x0",
		Domain: DomainDouble,
		Arity:  0,
	}, BaseWeight)

	// A function whose argument category (cat 1) is never given a
	// terminal: no random individual rooted in cat 1 could ever be
	// generated.
	sset.Insert(&Primitive{
		Name:     "wrap",
		Category: 1,
		Domain:   DomainDouble,
		Arity:    1,
		ArgCat:   []Category{1},
	}, BaseWeight)

	if sset.EnoughTerminals() {
		t.Fatalf("expected EnoughTerminals to report false for a category with no terminal")
	}
	if sset.IsValid() {
		t.Fatalf("expected IsValid to report false for a category with no terminal")
	}
}

func TestSymbolSetIsValidAcceptsFullyCoveredSet(t *testing.T) {
	sset := NewSymbolSet()
	sset.Insert(&Primitive{Name: "x0", Domain: DomainDouble, Arity: 0}, BaseWeight)
	sset.Insert(&Primitive{
		Name:   "add",
		Domain: DomainDouble,
		Arity:  2,
		ArgCat: []Category{0, 0},
	}, BaseWeight)

	if !sset.EnoughTerminals() {
		t.Fatalf("expected EnoughTerminals to report true when every reachable category has a terminal")
	}
	if !sset.IsValid() {
		t.Fatalf("expected IsValid to report true for a fully covered set")
	}
}
