// Package normalize splits edges that span more than one rank into a chain
// of unit-length dummy-node segments before ordering, and collapses that
// chain back into the original edge's control-point list after position
// assignment. This is the "Normalize.run" / "Normalize.undo" collaborator
// named in spec.md's progress caption sequence (§6): Rank and the core
// only ever see edges between adjacent ranks, never edges spanning several.
//
// Run must be called after Rank has written rank[·] back onto the host
// graph (so every node's Rank field reflects its final layer) and before a
// fresh indexed graph is built for Order.
package normalize

import (
	"fmt"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

// Chain records one long edge's replacement so Undo can reassemble it.
type Chain struct {
	orig       hostgraph.Edge
	dummyIDs   []string
	segmentIDs []string
	labelDummy int // index into dummyIDs carrying the edge's label box, or -1
}

// Run replaces every edge whose endpoints are more than one rank apart with
// a chain of dummy nodes, one per intermediate rank, connected by unit
// edges that inherit the original edge's weight. It returns the chains
// removed, in edge-encounter order, so Undo can restore them.
func Run(h *hostgraph.Graph) ([]Chain, error) {
	var chains []Chain
	for _, e := range h.Edges() {
		from := h.Node(e.From)
		to := h.Node(e.To)
		if from == nil || to == nil {
			return nil, fmt.Errorf("normalize: edge %q references missing node", e.ID)
		}
		span := to.Rank - from.Rank
		if span < 0 {
			span = -span
		}
		if span <= 1 {
			continue
		}

		orig := *e
		c := Chain{orig: orig, labelDummy: -1}

		dir := 1
		if to.Rank < from.Rank {
			dir = -1
		}
		prevID := e.From
		for r := from.Rank + dir; r != to.Rank; r += dir {
			dummyID := fmt.Sprintf("__normalize_%s_r%d", e.ID, r)
			dn := &hostgraph.Node{
				ID: dummyID, Width: 1, Height: 1, Rank: r, Dummy: hostgraph.DummyEdge,
			}
			if err := h.AddNode(dn); err != nil {
				return nil, err
			}
			segID := fmt.Sprintf("%s__seg%d", e.ID, len(c.dummyIDs))
			if err := h.AddEdge(&hostgraph.Edge{ID: segID, From: prevID, To: dummyID, Weight: e.Weight, MinLen: 1}); err != nil {
				return nil, err
			}
			c.dummyIDs = append(c.dummyIDs, dummyID)
			c.segmentIDs = append(c.segmentIDs, segID)
			prevID = dummyID
		}
		finalSeg := fmt.Sprintf("%s__segend", e.ID)
		if err := h.AddEdge(&hostgraph.Edge{ID: finalSeg, From: prevID, To: e.To, Weight: e.Weight, MinLen: 1}); err != nil {
			return nil, err
		}
		c.segmentIDs = append(c.segmentIDs, finalSeg)

		if (orig.LabelWidth > 0 || orig.LabelHeight > 0) && len(c.dummyIDs) > 0 {
			mid := len(c.dummyIDs) / 2
			ln := h.Node(c.dummyIDs[mid])
			ln.Width = orig.LabelWidth
			ln.Height = orig.LabelHeight
			ln.Dummy = hostgraph.DummyEdgeLabel
			ln.LabelPos = orig.LabelPos
			c.labelDummy = mid
		}

		h.RemoveEdge(e.ID)
		chains = append(chains, c)
	}
	return chains, nil
}

// Undo walks each chain's dummy nodes in rank order, gathers their final
// (X,Y) as the edge's control points, removes the segment edges and dummy
// nodes, and re-adds the original edge carrying those points.
func Undo(h *hostgraph.Graph, chains []Chain) error {
	for _, c := range chains {
		pts := make([]hostgraph.Point, 0, len(c.dummyIDs))
		var label *hostgraph.EdgeLabelBox
		for i, id := range c.dummyIDs {
			n := h.Node(id)
			if n == nil {
				continue
			}
			pts = append(pts, hostgraph.Point{X: n.X, Y: n.Y})
			if i == c.labelDummy {
				label = &hostgraph.EdgeLabelBox{
					X: n.X, Y: n.Y, Width: n.Width, Height: n.Height,
				}
			}
		}
		for _, id := range c.segmentIDs {
			h.RemoveEdge(id)
		}
		for _, id := range c.dummyIDs {
			h.RemoveNode(id)
		}

		e := c.orig
		e.Points = pts
		e.Label = label
		if err := h.AddEdge(&e); err != nil {
			return err
		}
	}
	return nil
}
