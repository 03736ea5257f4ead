// contact-diff compares the residue contact maps of two conformations.
//
// Both PDB files are reduced to a contact set under the distance cutoff,
// the two sets are partitioned into shared and per-structure unique
// contacts, and the result is written as a JSON report plus a Graphviz DOT
// network for rendering. A summary of contact counts goes to stdout.
package main

import (
	"fmt"

	"github.com/SanjiKun-Santhosh/PCMN/cmd/util"
	"github.com/SanjiKun-Santhosh/PCMN/contact"
	"github.com/SanjiKun-Santhosh/PCMN/network"
)

func init() {
	util.FlagUse("cpu", "config", "threshold", "window", "mode", "residues")
	util.FlagParse("pdb-file-A pdb-file-B",
		"Compare the residue contact maps of two conformations and report\n"+
			"shared and unique contacts.")
	util.AssertNArg(2)
}

func main() {
	pathA, pathB := util.Arg(0), util.Arg(1)
	cfg := util.RunConfig()
	mode, err := cfg.Mode()
	util.Assert(err)

	structA := util.StructureRead(pathA)
	structB := util.StructureRead(pathB)
	util.Warning(contact.CheckCompatible(structA, structB))

	opts := cfg.DetectOptions()
	setA, err := contact.Detect(structA, opts)
	util.Assert(err, "Could not compute contacts for '%s'", pathA)
	setB, err := contact.Detect(structB, opts)
	util.Assert(err, "Could not compute contacts for '%s'", pathB)

	diff := contact.Diff(setA, setB)
	residues, err := contact.ResolveSpecs(cfg.Residues, structA, structB)
	util.Assert(err)
	diff = diff.Filter(residues, mode)

	fmt.Printf("%s: %d contacts, %s: %d contacts\n",
		structA.Name, setA.Len(), structB.Name, setB.Len())
	fmt.Printf("shared: %d\n", len(diff.Shared))
	fmt.Printf("only in %s: %d\n", structA.Name, diff.OnlyInA.Len())
	fmt.Printf("only in %s: %d\n", structB.Name, diff.OnlyInB.Len())
	printClosest(diff)

	rep := contact.NewReport(diff, structA.Name, structB.Name,
		contact.ReportParams{
			Threshold:       cfg.Threshold,
			ExclusionWindow: cfg.ExclusionWindow,
			FilterMode:      mode.String(),
			Residues:        cfg.Residues,
		})
	jsonBytes, err := rep.JSON()
	util.Assert(err, "Could not serialize report")

	base := fmt.Sprintf("diff_contacts_%s_%s", structA.Name, structB.Name)
	util.WriteFile(base+".json", jsonBytes)

	net := network.Project(base, diff)
	dotBytes, err := net.DOT()
	util.Assert(err, "Could not encode network")
	util.WriteFile(base+".dot", dotBytes)

	fmt.Printf("wrote %s.json and %s.dot\n", base, base)
}

// printClosest lists the tightest contacts unique to each structure, the
// pairs most likely to explain a conformational change.
func printClosest(diff contact.DiffSet) {
	const n = 10
	for _, part := range []struct {
		name string
		set  contact.Set
	}{
		{"A", diff.OnlyInA},
		{"B", diff.OnlyInB},
	} {
		set := part.set
		closest := set.Closest(n)
		if len(closest) == 0 {
			continue
		}
		fmt.Printf("closest contacts only in %s:\n", part.name)
		for _, c := range closest {
			fmt.Printf("  %s -- %s  %.4f nm\n",
				set.Label(c.Pair.A), set.Label(c.Pair.B), c.Dist)
		}
	}
}
