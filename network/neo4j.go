package network

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jExporter pushes projected contact networks into a Neo4j (or
// Memgraph) instance, so contact neighborhoods can be explored with Cypher
// instead of static plots.
type Neo4jExporter struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jExporter connects to the given bolt URI with basic auth and
// verifies connectivity before returning.
func NewNeo4jExporter(ctx context.Context, uri, user, password string) (*Neo4jExporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", uri, err)
	}
	return &Neo4jExporter{driver: driver}, nil
}

// Close releases the underlying driver.
func (x *Neo4jExporter) Close(ctx context.Context) error {
	return x.driver.Close(ctx)
}

const (
	mergeResidueQuery = `
MERGE (r:Residue {map: $map, label: $label})
SET r.chain = $chain, r.seq = $seq`

	mergeContactQuery = `
MATCH (a:Residue {map: $map, label: $a})
MATCH (b:Residue {map: $map, label: $b})
MERGE (a)-[c:CONTACT]-(b)
SET c.provenance = $provenance, c.dist_a = $dist_a, c.dist_b = $dist_b`
)

// Export writes every node and edge of the network, namespaced under the
// network's name so repeated runs against the same instance stay separate.
// Nodes and relationships are MERGEd, so re-exporting a network is
// idempotent.
func (x *Neo4jExporter) Export(ctx context.Context, net *Network) error {
	for _, n := range net.Nodes() {
		params := map[string]any{
			"map":   net.Name,
			"label": n.Label,
			"chain": string(n.Res.Chain),
			"seq":   n.Res.SeqNum,
		}
		if _, err := neo4j.ExecuteQuery(ctx, x.driver,
			mergeResidueQuery, params, neo4j.EagerResultTransformer); err != nil {
			return fmt.Errorf("failed to export residue %s: %w", n.Label, err)
		}
	}
	for _, e := range net.Edges() {
		params := map[string]any{
			"map":        net.Name,
			"a":          e.F.Label,
			"b":          e.T.Label,
			"provenance": string(e.Prov),
			"dist_a":     nullable(e.DistA, e.HasA),
			"dist_b":     nullable(e.DistB, e.HasB),
		}
		if _, err := neo4j.ExecuteQuery(ctx, x.driver,
			mergeContactQuery, params, neo4j.EagerResultTransformer); err != nil {
			return fmt.Errorf("failed to export contact %s-%s: %w",
				e.F.Label, e.T.Label, err)
		}
	}
	return nil
}

func nullable(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}
