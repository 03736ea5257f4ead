package network

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SanjiKun-Santhosh/PCMN/contact"
)

func rid(seq int) contact.ResID {
	return contact.ResID{Chain: 'A', SeqNum: seq}
}

func testStructure(name string, pos map[int]r3.Vec) *contact.Structure {
	names := map[int]string{1: "LYS", 2: "HIS", 3: "GLY"}
	s := &contact.Structure{Name: name}
	for seq := 1; seq <= 3; seq++ {
		s.Residues = append(s.Residues, contact.Residue{
			ID:    rid(seq),
			Name:  names[seq],
			Atoms: []r3.Vec{pos[seq]},
		})
	}
	return s
}

// testDiff reproduces the two-conformer scenario: (1,2) shared, (1,3) only
// in the second structure.
func testDiff(t *testing.T) contact.DiffSet {
	t.Helper()
	opts := contact.Options{Threshold: 0.35}

	sa := testStructure("confA", map[int]r3.Vec{
		1: {}, 2: {X: 0.30}, 3: {X: 0.80},
	})
	sb := testStructure("confB", map[int]r3.Vec{
		1: {}, 2: {X: 0.30}, 3: {Y: 0.20},
	})

	setA, err := contact.Detect(sa, opts)
	require.NoError(t, err)
	setB, err := contact.Detect(sb, opts)
	require.NoError(t, err)
	return contact.Diff(setA, setB)
}

func TestProjectDiff(t *testing.T) {
	net := Project("test", testDiff(t))

	assert.Equal(t, 3, net.Order())
	assert.Equal(t, 2, net.Size())

	edges := net.Edges()
	require.Len(t, edges, 2)

	byPair := make(map[contact.Pair]*Edge)
	for _, e := range edges {
		byPair[contact.NewPair(e.F.Res, e.T.Res)] = e
	}

	shared, ok := byPair[contact.NewPair(rid(1), rid(2))]
	require.True(t, ok)
	assert.Equal(t, ProvBoth, shared.Prov)
	assert.True(t, shared.HasA)
	assert.True(t, shared.HasB)
	assert.InDelta(t, 0.30, shared.DistA, 1e-12)
	assert.InDelta(t, 0.30, shared.DistB, 1e-12)

	onlyB, ok := byPair[contact.NewPair(rid(1), rid(3))]
	require.True(t, ok)
	assert.Equal(t, ProvB, onlyB.Prov)
	assert.False(t, onlyB.HasA)
	assert.True(t, onlyB.HasB)
	assert.InDelta(t, 0.20, onlyB.DistB, 1e-12)

	// Node labels come from the residue universe.
	require.NotNil(t, net.NodeFor(rid(1)))
	assert.Equal(t, "LYS1", net.NodeFor(rid(1)).Label)
	assert.Nil(t, net.NodeFor(rid(99)))
}

func TestProjectSet(t *testing.T) {
	d := testDiff(t)
	net := ProjectSet("single", d.SharedSet())

	assert.Equal(t, 2, net.Order())
	edges := net.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, ProvSingle, edges[0].Prov)
	assert.True(t, edges[0].HasA)
	assert.False(t, edges[0].HasB)
}

func TestSubgraphStar(t *testing.T) {
	net := Project("test", testDiff(t))

	sub := net.Subgraph(rid(1))
	require.NotNil(t, sub)
	assert.Equal(t, 3, sub.Order())
	assert.Equal(t, 2, sub.Size())

	// Residue 3 touches only the contact (1,3).
	sub = net.Subgraph(rid(3))
	require.NotNil(t, sub)
	assert.Equal(t, 2, sub.Order())
	require.Len(t, sub.Edges(), 1)
	assert.Equal(t, ProvB, sub.Edges()[0].Prov)

	assert.Nil(t, net.Subgraph(rid(99)))
}

func TestDOT(t *testing.T) {
	net := Project("test", testDiff(t))
	out, err := net.DOT()
	require.NoError(t, err)

	dot := string(out)
	assert.True(t, strings.HasPrefix(dot, "graph"), "undirected graphs use 'graph': %s", dot)
	assert.Contains(t, dot, "LYS1")
	assert.Contains(t, dot, "provenance=both")
	assert.Contains(t, dot, "dist_a")
}
