// contact-net renders the contact neighborhoods of residues of interest.
//
// The contact maps of two conformations are diffed and projected onto a
// network; for every requested residue, the star of that residue and its
// direct contact partners is written as a Graphviz DOT file, mirroring the
// per-residue subgraph plots of the reference analysis. With -neo4j, the
// full network is also pushed to a Neo4j/Memgraph instance whose
// credentials come from the environment (NEO4J_URI, NEO4J_USER,
// NEO4J_PASSWORD, optionally from a .env file) or the config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/SanjiKun-Santhosh/PCMN/cmd/util"
	"github.com/SanjiKun-Santhosh/PCMN/config"
	"github.com/SanjiKun-Santhosh/PCMN/contact"
	"github.com/SanjiKun-Santhosh/PCMN/network"
)

var flagNeo4j = false

func init() {
	flag.BoolVar(&flagNeo4j, "neo4j", flagNeo4j,
		"When set, export the full contact network to Neo4j.")

	util.FlagUse("cpu", "config", "threshold", "window", "mode", "residues")
	util.FlagParse("pdb-file-A pdb-file-B",
		"Extract per-residue contact subgraphs from the diff of two\n"+
			"conformations.")
	util.AssertNArg(2)
}

func main() {
	cfg := util.RunConfig()
	mode, err := cfg.Mode()
	util.Assert(err)
	if len(cfg.Residues) == 0 {
		util.Fatalf("No residues of interest given. " +
			"Use -residues or the 'residues' key of the config file.")
	}

	structA := util.StructureRead(util.Arg(0))
	structB := util.StructureRead(util.Arg(1))

	opts := cfg.DetectOptions()
	setA, err := contact.Detect(structA, opts)
	util.Assert(err, "Could not compute contacts for '%s'", util.Arg(0))
	setB, err := contact.Detect(structB, opts)
	util.Assert(err, "Could not compute contacts for '%s'", util.Arg(1))

	diff := contact.Diff(setA, setB)
	residues, err := contact.ResolveSpecs(cfg.Residues, structA, structB)
	util.Assert(err)
	if len(residues) == 0 {
		util.Fatalf("None of the requested residues exist in either structure.")
	}

	name := fmt.Sprintf("%s_%s", structA.Name, structB.Name)
	net := network.Project(name, diff.Filter(residues, mode))

	for _, id := range residues {
		sub := net.Subgraph(id)
		if sub == nil {
			util.Warnf("WARNING: residue %s has no retained contacts.", id)
			continue
		}
		dotBytes, err := sub.DOT()
		util.Assert(err, "Could not encode subgraph for %s", id)
		fname := fmt.Sprintf("subgraph_%s_%s.dot", name, diff.Label(id))
		util.WriteFile(fname, dotBytes)
		fmt.Printf("wrote %s (%d residues, %d contacts)\n",
			fname, sub.Order(), sub.Size())
	}

	if flagNeo4j {
		exportNeo4j(cfg, net)
	}
}

// exportNeo4j pushes the network using credentials from the environment,
// falling back to the config file's [neo4j] section.
func exportNeo4j(cfg config.Config, net *network.Network) {
	// A missing .env is fine; explicit environment variables still apply.
	_ = godotenv.Load()

	uri := envOr("NEO4J_URI", cfg.Neo4j.URI)
	user := envOr("NEO4J_USER", cfg.Neo4j.User)
	pass := envOr("NEO4J_PASSWORD", cfg.Neo4j.Password)
	if uri == "" {
		util.Fatalf("Neo4j export requested but no URI configured. " +
			"Set NEO4J_URI or the [neo4j] section of the config file.")
	}

	ctx := context.Background()
	exporter, err := network.NewNeo4jExporter(ctx, uri, user, pass)
	util.Assert(err, "Could not connect to Neo4j at '%s'", uri)
	defer exporter.Close(ctx)

	util.Assert(exporter.Export(ctx, net), "Could not export network")
	fmt.Printf("exported %d residues and %d contacts to %s\n",
		net.Order(), net.Size(), uri)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
