// Package acyclic makes a host graph acyclic before it is handed to the
// ranking phase (Network Simplex assumes a DAG) and reverses the repair
// afterward. It is a collaborator per spec.md §4.5: it mutates
// hostgraph.Graph directly and never touches the indexed graph.
package acyclic

import "github.com/graphlayout/dagre/internal/hostgraph"

const (
	white = 0
	gray  = 1
	black = 2
)

// Run finds a set of edges whose reversal makes h acyclic (a greedy DFS
// back-edge set, not necessarily minimum) and reverses them in place,
// swapping From/To. It returns the reversed edge IDs so Undo can restore
// them once ranking, ordering, and positioning are done.
//
// Traversal is iterative (an explicit stack of frames), following the
// colour-array idiom the teacher's own DFS cycle detector uses, because a
// recursive walk would bound the graphs this can run on to the host's
// stack depth (spec.md §9).
func Run(h *hostgraph.Graph) []string {
	color := make(map[string]int, h.NodeCount())
	for _, n := range h.Nodes() {
		color[n.ID] = white
	}

	adj := make(map[string][]*hostgraph.Edge)
	for _, e := range h.Edges() {
		if e.From == e.To {
			continue
		}
		adj[e.From] = append(adj[e.From], e)
	}

	var reversed []string

	type frame struct {
		node string
		next int
	}

	for _, n := range h.Nodes() {
		if color[n.ID] != white {
			continue
		}
		stack := []frame{{n.ID, 0}}
		color[n.ID] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			edges := adj[top.node]
			if top.next >= len(edges) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			e := edges[top.next]
			top.next++

			switch color[e.To] {
			case white:
				color[e.To] = gray
				stack = append(stack, frame{e.To, 0})
			case gray:
				e.From, e.To = e.To, e.From
				reversed = append(reversed, e.ID)
			case black:
				// Forward/cross edge, not part of any back-edge cycle.
			}
		}
	}

	return reversed
}

// Undo reverses every edge ID in reversed back to its original direction.
// Called after Position, once the acyclic orientation has served its
// purpose (spec.md §4.5's "collaborator denormalises" step).
func Undo(h *hostgraph.Graph, reversed []string) {
	for _, id := range reversed {
		if e := h.Edge(id); e != nil {
			e.From, e.To = e.To, e.From
		}
	}
}
