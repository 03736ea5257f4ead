// contact-map lists the residue contacts of a single structure under a
// distance cutoff, one pair per line with the minimum inter-atomic
// distance. With -dot, the contact network is also written for rendering.
package main

import (
	"flag"
	"fmt"

	"github.com/SanjiKun-Santhosh/PCMN/cmd/util"
	"github.com/SanjiKun-Santhosh/PCMN/contact"
	"github.com/SanjiKun-Santhosh/PCMN/network"
)

var flagDot = false

func init() {
	flag.BoolVar(&flagDot, "dot", flagDot,
		"When set, also write the contact network as '<name>_contacts.dot'.")

	util.FlagUse("cpu", "config", "threshold", "window", "mode", "residues")
	util.FlagParse("pdb-file",
		"List the residue contacts of one structure.")
	util.AssertNArg(1)
}

func main() {
	cfg := util.RunConfig()
	mode, err := cfg.Mode()
	util.Assert(err)

	s := util.StructureRead(util.Arg(0))
	set, err := contact.Detect(s, cfg.DetectOptions())
	util.Assert(err, "Could not compute contacts for '%s'", util.Arg(0))

	residues, err := contact.ResolveSpecs(cfg.Residues, s)
	util.Assert(err)
	set = set.Filter(residues, mode)

	for _, c := range set.Sorted() {
		fmt.Printf("%s\t%s\t%.4f\n",
			set.Label(c.Pair.A), set.Label(c.Pair.B), c.Dist)
	}

	if flagDot {
		net := network.ProjectSet(s.Name, set)
		dotBytes, err := net.DOT()
		util.Assert(err, "Could not encode network")
		util.WriteFile(fmt.Sprintf("%s_contacts.dot", s.Name), dotBytes)
	}
}
