// Package contact computes residue-residue contact maps from atomic
// coordinates and compares the contact maps of two conformations.
//
// A contact is an unordered pair of residues whose closest atoms lie within
// a distance threshold. Detect derives the contact Set of one structure,
// Diff partitions two Sets into shared and per-structure unique contacts,
// and Filter restricts a Set to residues of interest. All distances are in
// nanometers.
package contact

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidInput is returned when an operation is given a non-positive
// threshold, an empty structure or a malformed residue filter.
var ErrInvalidInput = errors.New("invalid input")

// ErrIncompatibleStructures is returned by CheckCompatible when two
// structures share no residue identifiers at all, which makes a diff of
// their contact maps meaningless.
var ErrIncompatibleStructures = errors.New("incompatible structures")

// ResID identifies a residue within a structure: chain identifier, sequence
// number and optional insertion code. Identifiers are opaque keys for
// diffing purposes; two structures being compared are assumed to share one
// numbering scheme.
type ResID struct {
	Chain  byte
	SeqNum int
	ICode  byte
}

// String renders the identifier as 'A:171' (with the insertion code
// appended when present).
func (id ResID) String() string {
	if id.ICode != 0 {
		return fmt.Sprintf("%c:%d%c", id.Chain, id.SeqNum, id.ICode)
	}
	return fmt.Sprintf("%c:%d", id.Chain, id.SeqNum)
}

// less orders identifiers by chain, then sequence number, then insertion
// code. Used to canonicalize pairs and to sort output.
func (id ResID) less(other ResID) bool {
	if id.Chain != other.Chain {
		return id.Chain < other.Chain
	}
	if id.SeqNum != other.SeqNum {
		return id.SeqNum < other.SeqNum
	}
	return id.ICode < other.ICode
}

// Pair is a canonicalized unordered pair of residue identifiers: A is
// always ordered before B, so a Pair built from (x, y) equals one built
// from (y, x). Construct pairs with NewPair.
type Pair struct {
	A, B ResID
}

// NewPair canonicalizes the two identifiers into a Pair.
func NewPair(x, y ResID) Pair {
	if y.less(x) {
		x, y = y, x
	}
	return Pair{x, y}
}

// Has reports whether id is one of the pair's endpoints.
func (p Pair) Has(id ResID) bool {
	return p.A == id || p.B == id
}

// Other returns the endpoint opposite to id. It returns the zero ResID when
// id is not an endpoint.
func (p Pair) Other(id ResID) ResID {
	switch id {
	case p.A:
		return p.B
	case p.B:
		return p.A
	}
	return ResID{}
}

func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.A, p.B)
}

// Contact is one entry of a contact map: a residue pair and the minimum
// inter-atomic distance observed between the two residues.
type Contact struct {
	Pair Pair
	Dist float64
}

// Set is the contact map of one structure at a given threshold: at most one
// Contact per unordered residue pair. Labels carries a display label
// ('LYS171') for every residue of the originating structure, so that
// downstream projections can name nodes without holding the structure.
//
// Sets are derived values and treated as immutable once built.
type Set struct {
	Contacts map[Pair]float64
	Labels   map[ResID]string
}

// NewSet returns an empty Set.
func NewSet() Set {
	return Set{
		Contacts: make(map[Pair]float64),
		Labels:   make(map[ResID]string),
	}
}

// Len returns the number of contacts in the set.
func (s Set) Len() int {
	return len(s.Contacts)
}

// Has reports whether the pair is a contact in this set.
func (s Set) Has(p Pair) bool {
	_, ok := s.Contacts[p]
	return ok
}

// Label returns the display label for a residue, falling back to the bare
// identifier for residues the set has no label for.
func (s Set) Label(id ResID) string {
	if lbl, ok := s.Labels[id]; ok {
		return lbl
	}
	return id.String()
}

// Sorted returns the contacts ordered by residue pair, so that output never
// depends on map iteration order.
func (s Set) Sorted() []Contact {
	contacts := make([]Contact, 0, len(s.Contacts))
	for pair, dist := range s.Contacts {
		contacts = append(contacts, Contact{pair, dist})
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

// Closest returns up to n contacts ordered by ascending distance, the
// analogue of a contact map's "most common" listing for a single frame.
func (s Set) Closest(n int) []Contact {
	contacts := s.Sorted()
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Dist < contacts[j].Dist
	})
	if n >= 0 && n < len(contacts) {
		contacts = contacts[:n]
	}
	return contacts
}

// Residues returns the sorted identifiers of all residues that participate
// in at least one contact.
func (s Set) Residues() []ResID {
	seen := make(map[ResID]bool, len(s.Contacts))
	for pair := range s.Contacts {
		seen[pair.A] = true
		seen[pair.B] = true
	}
	ids := make([]ResID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].less(ids[j]) })
	return ids
}

func mergeLabels(dst map[ResID]string, srcs ...map[ResID]string) {
	for _, src := range srcs {
		for id, lbl := range src {
			dst[id] = lbl
		}
	}
}
