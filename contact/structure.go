package contact

import (
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SanjiKun-Santhosh/PCMN/pdb"
)

// Residue is the detector's view of one residue: its identifier, a display
// label and the positions of the atoms it owns.
type Residue struct {
	ID    ResID
	Name  string
	Atoms []r3.Vec
}

// Label returns the residue in the 'LYS171' form.
func (r Residue) Label() string {
	lbl := r.Name
	if lbl == "" {
		return r.ID.String()
	}
	if r.ID.ICode != 0 {
		return lbl + strconv.Itoa(r.ID.SeqNum) + string(r.ID.ICode)
	}
	return lbl + strconv.Itoa(r.ID.SeqNum)
}

// Structure is an ordered sequence of residues with their atoms, immutable
// for the duration of one comparison. Name is used only for reporting.
type Structure struct {
	Name     string
	Residues []Residue
}

// NumAtoms returns the total atom count across all residues.
func (s *Structure) NumAtoms() int {
	n := 0
	for _, res := range s.Residues {
		n += len(res.Atoms)
	}
	return n
}

// labels returns the display label of every residue in the structure.
func (s *Structure) labels() map[ResID]string {
	labels := make(map[ResID]string, len(s.Residues))
	for _, res := range s.Residues {
		labels[res.ID] = res.Label()
	}
	return labels
}

// FromPDB flattens a parsed PDB entry into a Structure, traversing chains
// in sorted order so residue order is stable for any one input file.
func FromPDB(entry *pdb.Entry) *Structure {
	s := &Structure{Name: entry.Name()}
	for _, ident := range entry.ChainIdents() {
		for _, res := range entry.Chains[ident].Residues {
			atoms := make([]r3.Vec, len(res.Atoms))
			for i, atom := range res.Atoms {
				atoms[i] = atom.Pos
			}
			s.Residues = append(s.Residues, Residue{
				ID:    ResID{Chain: res.Chain, SeqNum: res.SeqNum, ICode: res.ICode},
				Name:  res.Name,
				Atoms: atoms,
			})
		}
	}
	return s
}
