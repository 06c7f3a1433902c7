// Package nesting inserts the nesting-graph border nodes that keep a
// compound node's descendants within a contiguous rank range, one of the
// out-of-core collaborators spec.md §4.5 names but leaves unspecified in
// detail. A compound node gets a top and a bottom border node; every child
// is wired top -> child -> bottom with a high-weight edge so Rank is
// strongly pulled toward keeping the whole subtree between them, and the
// border nodes of a nested parent are chained into its own parent's
// borders so the containment is transitive.
package nesting

import "github.com/graphlayout/dagre/internal/hostgraph"

// nestWeight is the edge weight used for containment edges: large enough
// that Network Simplex will not trade off subtree containment against
// ordinary edges unless the graph gives it no other choice.
const nestWeight = 1000

// Added records the border nodes and containment edges inserted, so Undo
// can remove them once ranking is done; the nesting graph has no role past
// the Rank phase.
type Added struct {
	nodeIDs []string
	edgeIDs []string
}

// Run inserts a top/bottom border node for every node with children, and
// containment edges wiring each child between its parent's borders. It is
// a no-op (returns a zero-value Added) when h has no compound nodes.
func Run(h *hostgraph.Graph) Added {
	var added Added
	if !h.HasCompound() {
		return added
	}

	topOf := make(map[string]string)
	bottomOf := make(map[string]string)

	var parents []*hostgraph.Node
	for _, n := range h.Nodes() {
		if len(h.Children(n.ID)) > 0 {
			parents = append(parents, n)
		}
	}

	for _, p := range parents {
		top := p.ID + "__nest_top"
		bottom := p.ID + "__nest_bottom"
		h.AddNode(&hostgraph.Node{ID: top, Width: 1, Height: 1, Dummy: hostgraph.DummyBorder, BorderType: hostgraph.BorderTop, Parent: p.Parent})
		h.AddNode(&hostgraph.Node{ID: bottom, Width: 1, Height: 1, Dummy: hostgraph.DummyBorder, BorderType: hostgraph.BorderBottom, Parent: p.Parent})
		topOf[p.ID] = top
		bottomOf[p.ID] = bottom
		added.nodeIDs = append(added.nodeIDs, top, bottom)
	}

	for _, p := range parents {
		top, bottom := topOf[p.ID], bottomOf[p.ID]
		for _, childID := range h.Children(p.ID) {
			childTop, childBottom := childID, childID
			if t, ok := topOf[childID]; ok {
				childTop = t
			}
			if b, ok := bottomOf[childID]; ok {
				childBottom = b
			}
			eTop := p.ID + "__nest_in_" + childID
			eBottom := p.ID + "__nest_out_" + childID
			h.AddEdge(&hostgraph.Edge{ID: eTop, From: top, To: childTop, Weight: nestWeight, MinLen: 1})
			h.AddEdge(&hostgraph.Edge{ID: eBottom, From: childBottom, To: bottom, Weight: nestWeight, MinLen: 1})
			added.edgeIDs = append(added.edgeIDs, eTop, eBottom)
		}
	}

	return added
}

// Undo removes every node and edge Run inserted.
func Undo(h *hostgraph.Graph, added Added) {
	for _, id := range added.edgeIDs {
		h.RemoveEdge(id)
	}
	for _, id := range added.nodeIDs {
		h.RemoveNode(id)
	}
}
