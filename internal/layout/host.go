package layout

import "github.com/graphlayout/dagre/internal/hostgraph"

// Build copies a host graph into a fresh indexed graph. When
// excludeCompoundParents is true, nodes with children (and any edge
// touching them) are left out — the adapter uses this to project a
// compound host graph down to the non-compound core the IG understands.
// Dense indices are assigned in the host's iteration order; Build also
// rebuilds adjacency before returning, since it always performs a full
// batch of AddNode/AddEdge calls.
func Build(h *hostgraph.Graph, excludeCompoundParents bool) (*Graph, error) {
	nodes := h.Nodes()
	g := NewGraph(len(nodes))

	excluded := make(map[string]bool)
	for _, n := range nodes {
		if excludeCompoundParents && len(h.Children(n.ID)) > 0 {
			excluded[n.ID] = true
			continue
		}
		if n.Width < 0 || n.Height < 0 {
			return nil, ErrNegativeDimension
		}
		idx := g.AddNode(n.Width, n.Height, n.Rank, n.Dummy, n.ID)
		g.SetLabelPos(idx, n.LabelPos)
		g.SetBorderType(idx, n.BorderType)
		g.SetEdgeLabelRef(idx, int32(n.EdgeLabelRef))
		g.SetOrigEdgeRef(idx, int32(n.OrigEdgeRef))
	}

	for _, e := range h.Edges() {
		if excluded[e.From] || excluded[e.To] {
			continue
		}
		src := g.IndexOf(e.From)
		tgt := g.IndexOf(e.To)
		if src < 0 || tgt < 0 {
			return nil, ErrMissingReference
		}
		if e.MinLen < 1 {
			return nil, ErrNonPositiveMinlen
		}
		if e.Weight < 0 {
			return nil, ErrNegativeWeight
		}
		idx := g.AddEdge(src, tgt, e.Weight)
		g.SetMinlen(idx, int32(e.MinLen))
	}

	g.RebuildAdjacency(true)
	return g, nil
}

// WriteBack copies rank/order/x/y from the indexed graph back into the
// host graph's matching nodes (matched by HostID).
func WriteBack(g *Graph, h *hostgraph.Graph) {
	for i := 0; i < g.NumNodes(); i++ {
		id := g.HostID(int32(i))
		if id == "" {
			continue
		}
		n := h.Node(id)
		if n == nil {
			continue
		}
		n.Rank = g.Rank(int32(i))
		n.Order = g.Order(int32(i))
		n.X = g.X(int32(i))
		n.Y = g.Y(int32(i))
	}
}
