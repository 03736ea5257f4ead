// Package pdb reads protein structures from PDB files.
//
// Only the records needed for contact analysis are parsed: ATOM and HETATM
// coordinate records are organized into chains of residues, and SEQRES
// records are kept as a per-chain amino acid sequence. Coordinates are
// converted from the PDB's angstroms to nanometers.
package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// AminoThreeToOne is a map from three letter amino acids to their
// corresponding single letter representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// AminoOneToThree is the reverse of AminoThreeToOne. It is created in
// this package's 'init' function.
var AminoOneToThree = map[byte]string{}

func init() {
	for k, v := range AminoThreeToOne {
		AminoOneToThree[v] = k
	}
}

// angstromsPerNm converts PDB coordinate units to the nanometers used
// throughout the contact engine.
const angstromsPerNm = 10.0

// Entry represents all information read from a particular PDB file (that
// has been implemented in this package): a file path and a map of chains.
type Entry struct {
	Path   string
	Chains map[byte]*Chain
}

// ReadFile creates a new PDB Entry from a file. If the file cannot be read,
// or there is an error parsing the PDB file, an error is returned.
//
// If the file name ends with ".gz", gzip decompression will be used.
func ReadFile(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	entry, err := Read(reader)
	if err != nil {
		return nil, err
	}
	entry.Path = fileName
	return entry, nil
}

// Read parses a PDB Entry from the reader provided.
func Read(r io.Reader) (*Entry, error) {
	entry := &Entry{
		Chains: make(map[byte]*Chain),
	}

	// Traverse each line and process it according to the record name,
	// which is always in the first six columns.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024), 1024*64)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) < 6 {
			continue
		}
		switch strings.TrimSpace(line[0:6]) {
		case "SEQRES":
			entry.parseSeqres(line)
		case "ATOM", "HETATM":
			if err := entry.parseAtom(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		case "ENDMDL":
			// Multi-model files (NMR ensembles): only the first model is a
			// single conformation, so stop here.
			return entry, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entry, nil
}

// String returns a sorted list of all chains, their residue counts, and the
// amino acid sequence.
func (e *Entry) String() string {
	lines := make([]string, 0)
	for _, chain := range e.Chains {
		lines = append(lines, chain.String())
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// Name returns the base name of the entry's path with its extensions
// stripped, mirroring how output files are named after their inputs.
func (e *Entry) Name() string {
	name := path.Base(e.Path)
	for {
		ext := path.Ext(name)
		if ext == "" {
			return name
		}
		name = name[:len(name)-len(ext)]
	}
}

// ChainIdents returns the chain identifiers in sorted order.
func (e *Entry) ChainIdents() []byte {
	idents := make([]byte, 0, len(e.Chains))
	for ident := range e.Chains {
		idents = append(idents, ident)
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i] < idents[j] })
	return idents
}

// NumAtoms returns the total number of atoms parsed across all chains.
func (e *Entry) NumAtoms() int {
	n := 0
	for _, chain := range e.Chains {
		for _, res := range chain.Residues {
			n += len(res.Atoms)
		}
	}
	return n
}

// getOrMakeChain looks for a chain in the 'Chains' map corresponding to the
// chain identifier. If one exists, it is returned, otherwise it is created.
func (e *Entry) getOrMakeChain(ident byte) *Chain {
	if ident == ' ' {
		ident = '_'
	}
	if chain, ok := e.Chains[ident]; ok {
		return chain
	}
	chain := &Chain{
		Ident:    ident,
		Sequence: make([]byte, 0, 10),
		Residues: make([]*Residue, 0, 50),
		resIndex: make(map[residueKey]*Residue, 50),
	}
	e.Chains[ident] = chain
	return chain
}

// parseSeqres loads all pertinent information from SEQRES records. Amino
// acid residues are read and appended to the chain's Sequence field;
// non-amino-acid residues are ignored.
//
// N.B. This assumes that the SEQRES records are in order in the PDB file.
func (e *Entry) parseSeqres(line string) {
	if len(line) < 12 {
		return
	}
	chain := e.getOrMakeChain(line[11])

	// Residues are in columns 19-21, 23-25, 27-29, ..., 67-69.
	for i := 19; i <= 67; i += 4 {
		end := i + 3
		if end > len(line) {
			break
		}
		residue := strings.TrimSpace(line[i:end])
		if single, ok := AminoThreeToOne[residue]; ok {
			chain.Sequence = append(chain.Sequence, single)
		}
	}
}

// parseAtom loads one ATOM or HETATM coordinate record: serial number, atom
// name, residue name/number/insertion code, chain and x/y/z position. The
// atom is appended to its residue, creating the residue on first sight.
//
// Waters and alternate locations other than the primary one are skipped.
func (e *Entry) parseAtom(line string) error {
	if len(line) < 54 {
		return fmt.Errorf("coordinate record too short (%d columns)", len(line))
	}

	resName := strings.TrimSpace(line[17:20])
	if resName == "HOH" || resName == "WAT" {
		return nil
	}
	if altLoc := line[16]; altLoc != ' ' && altLoc != 'A' {
		return nil
	}

	serial, err := strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return fmt.Errorf("bad atom serial %q: %w", line[6:11], err)
	}
	seqNum, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return fmt.Errorf("bad residue number %q: %w", line[22:26], err)
	}

	var pos [3]float64
	for i, col := range [3]string{line[30:38], line[38:46], line[46:54]} {
		pos[i], err = strconv.ParseFloat(strings.TrimSpace(col), 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q: %w", col, err)
		}
	}

	chain := e.getOrMakeChain(line[21])
	res := chain.getOrMakeResidue(resName, seqNum, line[26])
	res.Atoms = append(res.Atoms, Atom{
		Serial: serial,
		Name:   strings.TrimSpace(line[12:16]),
		Pos: r3.Vec{
			X: pos[0] / angstromsPerNm,
			Y: pos[1] / angstromsPerNm,
			Z: pos[2] / angstromsPerNm,
		},
	})
	return nil
}

// Chain represents a protein chain or subunit in a PDB file. Each chain has
// its own identifier, amino acid sequence (from SEQRES records, if present),
// and the ordered residues carrying atom coordinates.
type Chain struct {
	Ident    byte
	Sequence []byte
	Residues []*Residue

	resIndex map[residueKey]*Residue
}

type residueKey struct {
	seqNum int
	iCode  byte
}

// String returns a FASTA-like formatted string of this chain and all of its
// related information.
func (c *Chain) String() string {
	return fmt.Sprintf("> Chain %c :: %d residues, length %d\n%s",
		c.Ident, len(c.Residues), len(c.Sequence), string(c.Sequence))
}

func (c *Chain) getOrMakeResidue(name string, seqNum int, iCode byte) *Residue {
	if iCode == ' ' {
		iCode = 0
	}
	key := residueKey{seqNum, iCode}
	if res, ok := c.resIndex[key]; ok {
		return res
	}
	res := &Residue{
		Chain:  c.Ident,
		Name:   name,
		SeqNum: seqNum,
		ICode:  iCode,
		Atoms:  make([]Atom, 0, 8),
	}
	c.Residues = append(c.Residues, res)
	c.resIndex[key] = res
	return res
}

// Residue is a single residue of a chain: its three letter name, sequence
// number (with an optional insertion code) and the atoms it owns, in file
// order.
type Residue struct {
	Chain  byte
	Name   string
	SeqNum int
	ICode  byte
	Atoms  []Atom
}

// Label returns the residue in the 'LYS171' form used to address residues
// on the command line, with the insertion code appended when present.
func (r *Residue) Label() string {
	if r.ICode != 0 {
		return fmt.Sprintf("%s%d%c", r.Name, r.SeqNum, r.ICode)
	}
	return fmt.Sprintf("%s%d", r.Name, r.SeqNum)
}

// Atom is a single atom with its serial number, name ('CA', 'NZ', ...) and
// position in nanometers.
type Atom struct {
	Serial int
	Name   string
	Pos    r3.Vec
}
