package contact

import (
	"fmt"
	"sort"
)

// Distances holds the minimum distances observed for one shared contact in
// each of the two structures. Equality of shared contacts is on the residue
// pair only; the two distances are kept for reporting.
type Distances struct {
	A, B float64
}

// DiffSet is the three-way partition of two contact Sets. Shared holds the
// pairs present in both inputs with both observed distances; OnlyInA and
// OnlyInB hold the pairs unique to each input. The three parts are pairwise
// disjoint, Shared+OnlyInA reconstructs the pairs of A, and Shared+OnlyInB
// reconstructs the pairs of B.
type DiffSet struct {
	Shared  map[Pair]Distances
	OnlyInA Set
	OnlyInB Set

	// Labels merges the residue labels of both inputs.
	Labels map[ResID]string
}

// Diff partitions two contact Sets into shared and unique contacts. It is a
// pure set operation on pair keys: no cross-structure validation happens
// here, residue identifiers are compared as given. Callers that want to
// screen the inputs first can use CheckCompatible.
func Diff(a, b Set) DiffSet {
	d := DiffSet{
		Shared:  make(map[Pair]Distances),
		OnlyInA: NewSet(),
		OnlyInB: NewSet(),
		Labels:  make(map[ResID]string, len(a.Labels)+len(b.Labels)),
	}
	mergeLabels(d.Labels, a.Labels, b.Labels)
	mergeLabels(d.OnlyInA.Labels, a.Labels)
	mergeLabels(d.OnlyInB.Labels, b.Labels)

	for pair, distA := range a.Contacts {
		if distB, ok := b.Contacts[pair]; ok {
			d.Shared[pair] = Distances{A: distA, B: distB}
		} else {
			d.OnlyInA.Contacts[pair] = distA
		}
	}
	for pair, distB := range b.Contacts {
		if _, ok := a.Contacts[pair]; !ok {
			d.OnlyInB.Contacts[pair] = distB
		}
	}
	return d
}

// SharedSet returns the shared partition as a plain Set carrying the
// distances observed in structure A.
func (d DiffSet) SharedSet() Set {
	s := NewSet()
	mergeLabels(s.Labels, d.Labels)
	for pair, dists := range d.Shared {
		s.Contacts[pair] = dists.A
	}
	return s
}

// SharedSorted returns the shared contacts ordered by residue pair, with
// both distances attached.
func (d DiffSet) SharedSorted() []SharedContact {
	contacts := make([]SharedContact, 0, len(d.Shared))
	for pair, dists := range d.Shared {
		contacts = append(contacts, SharedContact{pair, dists})
	}
	sort.Slice(contacts, func(i, j int) bool {
		pi, pj := contacts[i].Pair, contacts[j].Pair
		if pi.A != pj.A {
			return pi.A.less(pj.A)
		}
		return pi.B.less(pj.B)
	})
	return contacts
}

// Label returns the display label for a residue appearing in either input.
func (d DiffSet) Label(id ResID) string {
	if lbl, ok := d.Labels[id]; ok {
		return lbl
	}
	return id.String()
}

// SharedContact is one shared contact with the distances observed in both
// structures.
type SharedContact struct {
	Pair  Pair
	Dists Distances
}

// CheckCompatible screens two structures before diffing: it fails with
// ErrIncompatibleStructures when they share no residue identifiers, which
// means their contact maps can only ever be fully disjoint. It does not
// compare residue types; identifiers are opaque and both inputs are assumed
// to use one numbering scheme.
func CheckCompatible(a, b *Structure) error {
	if a == nil || b == nil || len(a.Residues) == 0 || len(b.Residues) == 0 {
		return fmt.Errorf("%w: empty structure", ErrInvalidInput)
	}
	ids := make(map[ResID]bool, len(a.Residues))
	for _, res := range a.Residues {
		ids[res.ID] = true
	}
	for _, res := range b.Residues {
		if ids[res.ID] {
			return nil
		}
	}
	return fmt.Errorf(
		"%w: %s and %s share no residue identifiers",
		ErrIncompatibleStructures, a.Name, b.Name)
}
