// Package border generates the left/right border segment nodes that
// reserve horizontal space for a compound node at every rank its subtree
// occupies, the other out-of-core collaborator spec.md §4.5 names for
// compound graphs. One border-left/border-right dummy pair is created per
// rank a compound node's descendants span, chained top-to-bottom by unit
// edges so Order keeps the whole column aligned, and Position's ordinary
// separation logic reserves width between them exactly as it would for any
// other node pair.
package border

import (
	"strconv"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

// Added records the nodes and edges Run inserted.
type Added struct {
	nodeIDs []string
	edgeIDs []string
}

// Run inserts a left and a right border-segment node at every rank spanned
// by each compound node's subtree, using the Rank field already written
// back onto host nodes. Descendant rank range is taken from the min/max
// Rank over all transitive children; nodes with no children are skipped.
func Run(h *hostgraph.Graph) Added {
	var added Added
	for _, p := range h.Nodes() {
		kids := h.Children(p.ID)
		if len(kids) == 0 {
			continue
		}
		lo, hi, ok := subtreeRankRange(h, p.ID)
		if !ok {
			continue
		}

		var prevLeft, prevRight string
		for r := lo; r <= hi; r++ {
			left := p.ID + "__border_l_" + strconv.Itoa(r)
			right := p.ID + "__border_r_" + strconv.Itoa(r)
			h.AddNode(&hostgraph.Node{ID: left, Width: 1, Height: 1, Rank: r, Dummy: hostgraph.DummyBorder, BorderType: hostgraph.BorderLeft, Parent: p.ID})
			h.AddNode(&hostgraph.Node{ID: right, Width: 1, Height: 1, Rank: r, Dummy: hostgraph.DummyBorder, BorderType: hostgraph.BorderRight, Parent: p.ID})
			added.nodeIDs = append(added.nodeIDs, left, right)

			if prevLeft != "" {
				eL := left + "__chain"
				eR := right + "__chain"
				h.AddEdge(&hostgraph.Edge{ID: eL, From: prevLeft, To: left, Weight: 1, MinLen: 1})
				h.AddEdge(&hostgraph.Edge{ID: eR, From: prevRight, To: right, Weight: 1, MinLen: 1})
				added.edgeIDs = append(added.edgeIDs, eL, eR)
			}
			prevLeft, prevRight = left, right
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

// subtreeRankRange returns the min/max Rank over every transitive
// descendant of id, walked iteratively (an explicit stack) rather than
// recursively per spec.md §9.
func subtreeRankRange(h *hostgraph.Graph, id string) (lo, hi int, ok bool) {
	stack := append([]string(nil), h.Children(id)...)
	first := true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n := h.Node(cur); n != nil {
			if first || n.Rank < lo {
				lo = n.Rank
			}
			if first || n.Rank > hi {
				hi = n.Rank
			}
			first = false
		}
		stack = append(stack, h.Children(cur)...)
	}
	return lo, hi, !first
}
