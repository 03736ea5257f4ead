package contact

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportEntry is one contact in the JSON report. Shared contacts carry both
// observed distances; unique contacts carry only the one from their
// structure.
type ReportEntry struct {
	ResidueA string   `json:"residue_a"`
	ResidueB string   `json:"residue_b"`
	DistA    *float64 `json:"dist_a,omitempty"`
	DistB    *float64 `json:"dist_b,omitempty"`
}

// ReportParams records the run configuration that produced a report.
type ReportParams struct {
	Threshold       float64  `json:"threshold"`
	ExclusionWindow int      `json:"exclusion_window"`
	FilterMode      string   `json:"filter_mode"`
	Residues        []string `json:"residues,omitempty"`
}

// Report is the tabular result of one comparison run, serialized to JSON
// for consumers that want numbers instead of a picture.
type Report struct {
	ID         string       `json:"id"`
	Generated  time.Time    `json:"generated"`
	StructureA string       `json:"structure_a"`
	StructureB string       `json:"structure_b"`
	Params     ReportParams `json:"params"`

	NumShared  int `json:"num_shared"`
	NumOnlyInA int `json:"num_only_in_a"`
	NumOnlyInB int `json:"num_only_in_b"`

	Shared  []ReportEntry `json:"shared"`
	OnlyInA []ReportEntry `json:"only_in_a"`
	OnlyInB []ReportEntry `json:"only_in_b"`
}

// NewReport flattens a diff into a Report, with entries sorted by residue
// pair. nameA and nameB identify the two input structures.
func NewReport(d DiffSet, nameA, nameB string, params ReportParams) *Report {
	rep := &Report{
		ID:         uuid.NewString(),
		Generated:  time.Now().UTC(),
		StructureA: nameA,
		StructureB: nameB,
		Params:     params,
		NumShared:  len(d.Shared),
		NumOnlyInA: d.OnlyInA.Len(),
		NumOnlyInB: d.OnlyInB.Len(),
		Shared:     make([]ReportEntry, 0, len(d.Shared)),
		OnlyInA:    make([]ReportEntry, 0, d.OnlyInA.Len()),
		OnlyInB:    make([]ReportEntry, 0, d.OnlyInB.Len()),
	}
	for _, sc := range d.SharedSorted() {
		a, b := sc.Dists.A, sc.Dists.B
		rep.Shared = append(rep.Shared, ReportEntry{
			ResidueA: d.Label(sc.Pair.A),
			ResidueB: d.Label(sc.Pair.B),
			DistA:    &a,
			DistB:    &b,
		})
	}
	for _, c := range d.OnlyInA.Sorted() {
		dist := c.Dist
		rep.OnlyInA = append(rep.OnlyInA, ReportEntry{
			ResidueA: d.Label(c.Pair.A),
			ResidueB: d.Label(c.Pair.B),
			DistA:    &dist,
		})
	}
	for _, c := range d.OnlyInB.Sorted() {
		dist := c.Dist
		rep.OnlyInB = append(rep.OnlyInB, ReportEntry{
			ResidueA: d.Label(c.Pair.A),
			ResidueB: d.Label(c.Pair.B),
			DistB:    &dist,
		})
	}
	return rep
}

// JSON marshals the report with indentation for human inspection.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
