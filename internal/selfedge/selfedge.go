// Package selfedge extracts self-loop edges from a host graph before
// layout (Network Simplex and the ordering sweeps have no notion of an
// edge whose source and target are the same node) and reinserts them as
// short routed loops once node coordinates are known. It is an out-of-core
// collaborator per spec.md §4.5.
package selfedge

import "github.com/graphlayout/dagre/internal/hostgraph"

// Removed records one self-edge pulled out of the host graph, along with
// enough of its original shape to restore a label box on reinsertion.
type Removed struct {
	ID          string
	NodeID      string
	LabelWidth  float64
	LabelHeight float64
}

// Run removes every edge with From==To from h and returns a record of each
// one removed, in encounter order.
func Run(h *hostgraph.Graph) []Removed {
	var out []Removed
	for _, e := range h.Edges() {
		if e.From != e.To {
			continue
		}
		out = append(out, Removed{
			ID:          e.ID,
			NodeID:      e.From,
			LabelWidth:  e.LabelWidth,
			LabelHeight: e.LabelHeight,
		})
	}
	for _, r := range out {
		h.RemoveEdge(r.ID)
	}
	return out
}

// Undo reinserts every removed self-edge, routing a small loop around the
// right side of its node using the node's final position and size. The
// loop is expressed as four control points clearing the node's right edge,
// matching the shape the reference algorithm routes self-edges in.
func Undo(h *hostgraph.Graph, removed []Removed) {
	for _, r := range removed {
		n := h.Node(r.NodeID)
		if n == nil {
			continue
		}
		dx := r.LabelWidth
		if dx <= 0 {
			dx = n.Width / 2
		}
		right := n.X + n.Width/2
		top := n.Y - n.Height/4
		bottom := n.Y + n.Height/4

		e := &hostgraph.Edge{
			ID:     r.ID,
			From:   r.NodeID,
			To:     r.NodeID,
			Weight: 1,
			MinLen: 1,
			Points: []hostgraph.Point{
				{X: right, Y: top},
				{X: right + dx, Y: top},
				{X: right + dx, Y: bottom},
				{X: right, Y: bottom},
			},
		}
		if r.LabelWidth > 0 || r.LabelHeight > 0 {
			e.Label = &hostgraph.EdgeLabelBox{
				X:      right + dx,
				Y:      n.Y,
				Width:  r.LabelWidth,
				Height: r.LabelHeight,
			}
		}
		h.AddEdge(e)
	}
}
