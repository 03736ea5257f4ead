// Package network projects contact sets and contact diffs onto an
// undirected graph for visualization. Nodes are residues that appear in at
// least one retained contact, edges are the contacts themselves, tagged
// with the structure(s) the contact was observed in. The graph is a pure
// data structure: layout and drawing belong to the consumer, typically via
// the DOT encoding.
package network

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/SanjiKun-Santhosh/PCMN/contact"
)

// Provenance tags which structure an edge's contact was observed in.
type Provenance string

const (
	// ProvA marks contacts unique to the first structure.
	ProvA Provenance = "A"
	// ProvB marks contacts unique to the second structure.
	ProvB Provenance = "B"
	// ProvBoth marks contacts shared by both structures.
	ProvBoth Provenance = "both"
	// ProvSingle marks edges projected from a plain contact set rather
	// than a diff.
	ProvSingle Provenance = "single"
)

// Node is a residue node. It implements gonum's graph.Node and carries the
// residue identifier plus its display label, which becomes the DOT node ID.
type Node struct {
	id    int64
	Res   contact.ResID
	Label string
}

// ID implements graph.Node.
func (n *Node) ID() int64 { return n.id }

// DOTID implements dot encoding's Node, naming graph nodes by residue
// label ('LYS171') instead of an arbitrary integer.
func (n *Node) DOTID() string { return strconv.Quote(n.Label) }

// Edge is a contact edge between two residue nodes. DistA and DistB are
// the minimum inter-atomic distances observed in each structure; a NaN-free
// scheme is kept simple by HasA/HasB flags.
type Edge struct {
	F, T *Node
	Prov Provenance

	DistA, DistB float64
	HasA, HasB   bool
}

// From implements graph.Edge.
func (e *Edge) From() graph.Node { return e.F }

// To implements graph.Edge.
func (e *Edge) To() graph.Node { return e.T }

// ReversedEdge implements graph.Edge.
func (e *Edge) ReversedEdge() graph.Edge {
	rev := *e
	rev.F, rev.T = e.T, e.F
	return &rev
}

// Attributes implements encoding.Attributer, emitting the provenance and
// distance(s) as DOT edge attributes for differential styling downstream.
func (e *Edge) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{
		{Key: "provenance", Value: string(e.Prov)},
	}
	if e.HasA {
		attrs = append(attrs, encoding.Attribute{
			Key: "dist_a", Value: fmt.Sprintf("%.4f", e.DistA)})
	}
	if e.HasB {
		attrs = append(attrs, encoding.Attribute{
			Key: "dist_b", Value: fmt.Sprintf("%.4f", e.DistB)})
	}
	return attrs
}

// Network is the projected contact graph. It wraps a simple undirected
// graph and keeps a residue-identifier index over its nodes. Networks are
// built fresh per projection and never mutated afterwards.
type Network struct {
	Name string

	g    *simple.UndirectedGraph
	byID map[contact.ResID]*Node
}

func newNetwork(name string) *Network {
	return &Network{
		Name: name,
		g:    simple.NewUndirectedGraph(),
		byID: make(map[contact.ResID]*Node),
	}
}

// Project builds the network of a contact diff: one node per residue on a
// retained edge, one edge per contact, tagged A, B or both.
func Project(name string, d contact.DiffSet) *Network {
	net := newNetwork(name)
	for pair, dists := range d.Shared {
		net.addEdge(pair, d.Label(pair.A), d.Label(pair.B), &Edge{
			Prov:  ProvBoth,
			DistA: dists.A, HasA: true,
			DistB: dists.B, HasB: true,
		})
	}
	for pair, dist := range d.OnlyInA.Contacts {
		net.addEdge(pair, d.Label(pair.A), d.Label(pair.B), &Edge{
			Prov:  ProvA,
			DistA: dist, HasA: true,
		})
	}
	for pair, dist := range d.OnlyInB.Contacts {
		net.addEdge(pair, d.Label(pair.A), d.Label(pair.B), &Edge{
			Prov:  ProvB,
			DistB: dist, HasB: true,
		})
	}
	return net
}

// ProjectSet builds the network of a single structure's contact set, with
// every edge tagged 'single'.
func ProjectSet(name string, s contact.Set) *Network {
	net := newNetwork(name)
	for pair, dist := range s.Contacts {
		net.addEdge(pair, s.Label(pair.A), s.Label(pair.B), &Edge{
			Prov:  ProvSingle,
			DistA: dist, HasA: true,
		})
	}
	return net
}

func (net *Network) addEdge(pair contact.Pair, labelA, labelB string, e *Edge) {
	e.F = net.node(pair.A, labelA)
	e.T = net.node(pair.B, labelB)
	net.g.SetEdge(e)
}

func (net *Network) node(id contact.ResID, label string) *Node {
	if n, ok := net.byID[id]; ok {
		return n
	}
	n := &Node{id: int64(len(net.byID)), Res: id, Label: label}
	net.byID[id] = n
	net.g.AddNode(n)
	return n
}

// Order returns the number of residue nodes.
func (net *Network) Order() int { return len(net.byID) }

// Size returns the number of contact edges.
func (net *Network) Size() int {
	edges := net.g.Edges()
	n := 0
	for edges.Next() {
		n++
	}
	return n
}

// NodeFor returns the node of a residue, or nil when the residue is not on
// any retained contact.
func (net *Network) NodeFor(id contact.ResID) *Node {
	return net.byID[id]
}

// Nodes returns all residue nodes sorted by residue identifier.
func (net *Network) Nodes() []*Node {
	nodes := make([]*Node, 0, len(net.byID))
	for _, n := range net.byID {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Label < nodes[j].Label
	})
	return nodes
}

// Edges returns all contact edges, sorted by node labels so listings are
// stable.
func (net *Network) Edges() []*Edge {
	var edges []*Edge
	it := net.g.Edges()
	for it.Next() {
		edges = append(edges, it.Edge().(*Edge))
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].F.Label != edges[j].F.Label {
			return edges[i].F.Label < edges[j].F.Label
		}
		return edges[i].T.Label < edges[j].T.Label
	})
	return edges
}

// Subgraph returns the star of one residue: the residue itself, its direct
// contact partners and the edges between them. It returns nil when the
// residue is not in the network.
func (net *Network) Subgraph(id contact.ResID) *Network {
	center, ok := net.byID[id]
	if !ok {
		return nil
	}
	sub := newNetwork(net.Name + "_" + center.Label)
	// The center is kept even when isolated, so a requested residue with no
	// retained contacts still renders as a lone node.
	sub.node(center.Res, center.Label)
	neighbors := net.g.From(center.ID())
	for neighbors.Next() {
		other := neighbors.Node().(*Node)
		e := net.g.EdgeBetween(center.ID(), other.ID()).(*Edge)
		clone := *e
		clone.F, clone.T = nil, nil
		pair := contact.NewPair(center.Res, other.Res)
		labelA, labelB := center.Label, other.Label
		if pair.A != center.Res {
			labelA, labelB = labelB, labelA
		}
		sub.addEdge(pair, labelA, labelB, &clone)
	}
	return sub
}

// DOT encodes the network in Graphviz DOT form for the external renderer.
func (net *Network) DOT() ([]byte, error) {
	return dot.Marshal(net.g, net.Name, "", "  ")
}
