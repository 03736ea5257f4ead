package contact

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Mode selects how a residue filter treats a contact's two endpoints.
type Mode int

const (
	// ModeAny keeps a contact when at least one endpoint is a residue of
	// interest. This is the default and matches highlighting a residue
	// together with its contact neighborhood.
	ModeAny Mode = iota

	// ModeBoth keeps a contact only when both endpoints are residues of
	// interest.
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeAny:
		return "any"
	case ModeBoth:
		return "both"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses 'any' or 'both' (case-insensitive). It fails with
// ErrInvalidInput on anything else.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return ModeAny, nil
	case "both":
		return ModeBoth, nil
	}
	return ModeAny, fmt.Errorf("%w: unknown filter mode %q", ErrInvalidInput, s)
}

// Filter restricts the set to contacts touching the residues of interest.
// An empty residue list passes the set through unchanged. Identifiers that
// do not occur in the set's residue universe are silently ignored: when
// filtering the parts of a diff, a residue may exist in only one of the two
// structures.
func (s Set) Filter(residues []ResID, mode Mode) Set {
	if len(residues) == 0 {
		return s
	}
	of := make(map[ResID]bool, len(residues))
	for _, id := range residues {
		of[id] = true
	}

	out := NewSet()
	mergeLabels(out.Labels, s.Labels)
	for pair, dist := range s.Contacts {
		if keep(pair, of, mode) {
			out.Contacts[pair] = dist
		}
	}
	return out
}

// Filter applies the same residue filter to all three partitions of the
// diff.
func (d DiffSet) Filter(residues []ResID, mode Mode) DiffSet {
	if len(residues) == 0 {
		return d
	}
	of := make(map[ResID]bool, len(residues))
	for _, id := range residues {
		of[id] = true
	}

	out := DiffSet{
		Shared:  make(map[Pair]Distances),
		OnlyInA: d.OnlyInA.Filter(residues, mode),
		OnlyInB: d.OnlyInB.Filter(residues, mode),
		Labels:  d.Labels,
	}
	for pair, dists := range d.Shared {
		if keep(pair, of, mode) {
			out.Shared[pair] = dists
		}
	}
	return out
}

func keep(p Pair, of map[ResID]bool, mode Mode) bool {
	if mode == ModeBoth {
		return of[p.A] && of[p.B]
	}
	return of[p.A] || of[p.B]
}

// residueSpec matches the three accepted residue spellings: 'LYS171',
// a bare sequence number '171', or a chain-qualified 'A:171'. An optional
// trailing insertion code letter is allowed after the number.
var residueSpec = regexp.MustCompile(
	`^(?:([A-Za-z0-9]):)?([A-Za-z]{1,3})?(-?\d+)([A-Za-z])?$`)

// ResolveSpec expands one residue spelling into the matching identifiers of
// the given structures. A chain qualifier pins the chain; a residue-type
// prefix ('LYS') requires the residue's type to match; a bare number
// matches that sequence number on any chain. The result is empty, not an
// error, when nothing matches.
func ResolveSpec(spec string, structures ...*Structure) ([]ResID, error) {
	m := residueSpec.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return nil, fmt.Errorf("%w: malformed residue %q", ErrInvalidInput, spec)
	}
	chain, name, numStr, icode := m[1], strings.ToUpper(m[2]), m[3], strings.ToUpper(m[4])
	// 'A:171' parses with the chain in m[1]; 'LYS171' puts the type in m[2].
	seqNum, err := strconv.Atoi(numStr)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed residue %q", ErrInvalidInput, spec)
	}

	seen := make(map[ResID]bool)
	var ids []ResID
	for _, s := range structures {
		for _, res := range s.Residues {
			if res.ID.SeqNum != seqNum {
				continue
			}
			if chain != "" && res.ID.Chain != chain[0] {
				continue
			}
			if name != "" && !strings.EqualFold(res.Name, name) {
				continue
			}
			if icode != "" && res.ID.ICode != icode[0] {
				continue
			}
			if !seen[res.ID] {
				seen[res.ID] = true
				ids = append(ids, res.ID)
			}
		}
	}
	return ids, nil
}

// ResolveSpecs resolves a list of residue spellings against the given
// structures, dropping duplicates. Spellings that match nothing are
// ignored; spellings that cannot be parsed at all fail with ErrInvalidInput.
func ResolveSpecs(specs []string, structures ...*Structure) ([]ResID, error) {
	seen := make(map[ResID]bool)
	var ids []ResID
	for _, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		resolved, err := ResolveSpec(spec, structures...)
		if err != nil {
			return nil, err
		}
		for _, id := range resolved {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
