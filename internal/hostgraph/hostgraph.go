// Package hostgraph defines the string-keyed node/edge graph that callers of
// the layout pipeline build and read. It is the external-interface data
// model referenced throughout the layout design: nodes and edges carry a
// stable string ID and a small set of attributes, and the indexed graph
// (internal/layout) is built from, and written back into, this type.
//
// The shape mirrors the teacher's call graph model (a slice of node
// pointers plus id-keyed maps for O(1) lookup), extended with a
// parent/children index so compound (nested) subgraphs can be represented.
package hostgraph

import "fmt"

// DummyKind classifies a synthetic node inserted by a layout collaborator.
type DummyKind int8

const (
	DummyNone DummyKind = iota
	DummyEdge
	DummyEdgeLabel
	DummyBorder
	DummySelfEdge
)

// LabelPos is the position of an edge label relative to its edge.
type LabelPos int8

const (
	LabelPosNone LabelPos = iota
	LabelPosLeft
	LabelPosRight
	LabelPosCenter
)

// BorderKind classifies a border dummy node generated for a compound node.
type BorderKind int8

const (
	BorderNone BorderKind = iota
	BorderLeft
	BorderRight
	BorderTop
	BorderBottom
)

// Point is a single control point on a rendered edge.
type Point struct {
	X, Y float64
}

// EdgeLabelBox is the placed bounding box of an edge label.
type EdgeLabelBox struct {
	X, Y, Width, Height float64
}

// Node is one vertex of a host graph.
type Node struct {
	ID     string
	Width  float64
	Height float64

	// Layout outputs, filled in by the pipeline.
	Rank  int
	Order int
	X, Y  float64

	// Layout inputs understood by collaborators and the core.
	Dummy      DummyKind
	LabelPos   LabelPos
	BorderType BorderKind

	// Parent is the compound-graph parent's ID, or "" at the top level.
	Parent   string
	Children []string

	// Back-references used by dummy nodes; -1 when unset. These are
	// opaque handles into tables owned by the normalize collaborator,
	// never interpreted by the core.
	EdgeLabelRef int
	OrigEdgeRef  int

	Attrs map[string]interface{}
}

// Edge is one directed connection of a host graph.
type Edge struct {
	ID   string
	From string
	To   string

	Weight int
	MinLen int

	LabelPos            LabelPos
	LabelWidth          float64
	LabelHeight         float64
	Points              []Point
	Label               *EdgeLabelBox

	Attrs map[string]interface{}
}

// Config holds the layout-wide options read once per run (spec.md §6).
type Config struct {
	NodeSep int
	EdgeSep int
	RankSep int
	RankDir string // "tb", "bt", "lr", "rl"
}

// DefaultConfig returns the configuration dagre itself defaults to.
func DefaultConfig() Config {
	return Config{NodeSep: 50, EdgeSep: 10, RankSep: 50, RankDir: "tb"}
}

// Graph is the host graph: string-keyed nodes and edges plus a compound
// parent/children index.
type Graph struct {
	Config Config

	nodes     map[string]*Node
	nodeOrder []string

	edges     map[string]*Edge
	edgeOrder []string

	children map[string][]string
}

// New creates an empty host graph with the given configuration.
func New(cfg Config) *Graph {
	return &Graph{
		Config:   cfg,
		nodes:    make(map[string]*Node),
		edges:    make(map[string]*Edge),
		children: make(map[string][]string),
	}
}

// AddNode inserts a node, or returns an error if its ID is already present
// or the supplied dimensions are non-positive.
func (g *Graph) AddNode(n *Node) error {
	if n == nil || n.ID == "" {
		return fmt.Errorf("hostgraph: node must have a non-empty ID")
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("hostgraph: duplicate node ID %q", n.ID)
	}
	if n.Width < 0 || n.Height < 0 {
		return fmt.Errorf("hostgraph: node %q has negative dimensions", n.ID)
	}
	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
	if n.Parent != "" {
		g.children[n.Parent] = append(g.children[n.Parent], n.ID)
	}
	return nil
}

// AddEdge inserts an edge, defaulting Weight and MinLen per spec.md §6.
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("hostgraph: edge must have a non-empty ID")
	}
	if _, exists := g.edges[e.ID]; exists {
		return fmt.Errorf("hostgraph: duplicate edge ID %q", e.ID)
	}
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("hostgraph: edge %q references missing source %q", e.ID, e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("hostgraph: edge %q references missing target %q", e.ID, e.To)
	}
	if e.Weight == 0 {
		e.Weight = 1
	}
	if e.MinLen == 0 {
		e.MinLen = 1
	}
	if e.MinLen < 1 {
		return fmt.Errorf("hostgraph: edge %q has non-positive minlen %d", e.ID, e.MinLen)
	}
	if e.Weight < 0 {
		return fmt.Errorf("hostgraph: edge %q has negative weight %d", e.ID, e.Weight)
	}
	g.edges[e.ID] = e
	g.edgeOrder = append(g.edgeOrder, e.ID)
	return nil
}

// RemoveEdge deletes an edge by ID.
func (g *Graph) RemoveEdge(id string) {
	if _, ok := g.edges[id]; !ok {
		return
	}
	delete(g.edges, id)
	for i, eid := range g.edgeOrder {
		if eid == id {
			g.edgeOrder = append(g.edgeOrder[:i], g.edgeOrder[i+1:]...)
			break
		}
	}
}

// RemoveNode deletes a node by ID, detaching it from its parent's child
// list. It does not touch any edge still referencing the node; callers
// must remove incident edges first.
func (g *Graph) RemoveNode(id string) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	if n.Parent != "" {
		kids := g.children[n.Parent]
		for i, kid := range kids {
			if kid == id {
				g.children[n.Parent] = append(kids[:i], kids[i+1:]...)
				break
			}
		}
	}
	delete(g.children, id)
	delete(g.nodes, id)
	for i, nid := range g.nodeOrder {
		if nid == id {
			g.nodeOrder = append(g.nodeOrder[:i], g.nodeOrder[i+1:]...)
			break
		}
	}
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node { return g.nodes[id] }

// Edge returns the edge with the given ID, or nil.
func (g *Graph) Edge(id string) *Edge { return g.edges[id] }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		if n, ok := g.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		if e, ok := g.edges[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Children returns the direct children of a node, in insertion order.
func (g *Graph) Children(id string) []string { return g.children[id] }

// HasCompound reports whether any node in the graph has children. Per
// spec.md §4.5, this switches the adapter from the Network-Simplex/BK core
// to the generic fallback path.
func (g *Graph) HasCompound() bool {
	for _, kids := range g.children {
		if len(kids) > 0 {
			return true
		}
	}
	return false
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }
