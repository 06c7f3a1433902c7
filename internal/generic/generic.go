// Package generic provides the compound-graph fallback position assignment
// spec.md §4.5 allows the adapter to use instead of Brandes-Köpf: BK's
// conflict/alignment machinery assumes a flat layer structure, and extending
// it to respect a compound node's border columns correctly is out of scope
// here (spec.md §1's OUT OF SCOPE collaborator list). Ordering still runs
// the core's barycenter sweep unchanged — nothing about crossing
// minimization depends on the graph being flat — so this package only
// covers Position: Y is assigned exactly as the core does, and X is a
// single greedy left-to-right pack per layer in order[·] sequence.
package generic

import "github.com/graphlayout/dagre/internal/layout"

// Position assigns y by rank (tallest node per rank drives the row height,
// rows separated by rankSep) and x by a single greedy left-to-right pass
// per layer: each node sits immediately to the right of its predecessor in
// order[·], separated by half of each node's width plus nodeSep (or
// edgeSep, for a dummy/dummy pair).
func Position(g *layout.Graph, nodeSep, edgeSep, rankSep int) {
	layers := g.BuildLayerMatrix()

	y := 0.0
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		maxHeight := 0.0
		for _, v := range layer {
			if h := g.Height(v); h > maxHeight {
				maxHeight = h
			}
		}
		rowY := y + maxHeight/2
		for _, v := range layer {
			g.SetY(v, rowY)
		}
		y = rowY + maxHeight/2 + float64(rankSep)
	}

	for _, layer := range layers {
		prevX, prevHalfW := 0.0, 0.0
		for i, v := range layer {
			halfW := g.Width(v) / 2
			if i == 0 {
				g.SetX(v, halfW)
				prevX, prevHalfW = halfW, halfW
				continue
			}
			sep := float64(nodeSep)
			if g.IsDummy(layer[i-1]) || g.IsDummy(v) {
				sep = float64(edgeSep)
			}
			x := prevX + prevHalfW + sep + halfW
			g.SetX(v, x)
			prevX, prevHalfW = x, halfW
		}
	}
}
