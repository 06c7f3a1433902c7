package layout

import (
	"sort"

	"github.com/graphlayout/dagre/pkg/collections"
)

// Order assigns order[·] within each rank to minimise edge crossings
// between adjacent layers (spec.md §4.3): seed with a DFS-based initial
// order, then alternate top-down and bottom-up barycentre sweeps,
// retaining the best (lowest weighted-crossing) arrangement seen and
// stopping after four consecutive sweeps that fail to improve on it.
func Order(g *Graph) {
	maxRank := g.MaxRank()
	if maxRank < 0 {
		return
	}

	initialOrder(g)
	layers := g.BuildLayerMatrix()
	best := cloneLayers(layers)
	bestCC := weightedCrossings(g, best)

	noImprove := 0
	down := true
	for iter := 0; noImprove < 4; iter++ {
		biasRight := (iter/2)%2 == 1
		sweepOnce(g, layers, down, biasRight)
		cc := weightedCrossings(g, layers)
		if cc < bestCC {
			bestCC = cc
			best = cloneLayers(layers)
			noImprove = 0
		} else {
			noImprove++
		}
		down = !down
	}

	for _, layer := range best {
		for i, node := range layer {
			g.order[node] = i
		}
	}
}

// initialOrder seeds order[·] by a DFS that groups nodes by rank in
// visitation order: sources (no in-edges) are visited first, each DFS
// pushing out-targets in reverse so the natural out-edge order survives
// the stack's LIFO traversal. Any node left unvisited (inside a cycle
// the acyclic collaborator missed) seeds one more DFS so every node ends
// up placed.
func initialOrder(g *Graph) {
	n := g.NumNodes()
	maxRank := g.MaxRank()
	if maxRank < 0 {
		return
	}
	layers := make([][]int32, maxRank+1)
	visited := make([]bool, n)
	nextEdge := make([]int, n)
	var stack []int32

	visit := func(start int32) {
		if visited[start] {
			return
		}
		visited[start] = true
		layers[g.rank[start]] = append(layers[g.rank[start]], start)
		stack = append(stack, start)
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			edges := g.OutEdges(node)
			descended := false
			for nextEdge[node] < len(edges) {
				idx := len(edges) - 1 - nextEdge[node]
				e := edges[idx]
				nextEdge[node]++
				if g.dead[e] {
					continue
				}
				w := g.target[e]
				if !visited[w] {
					visited[w] = true
					layers[g.rank[w]] = append(layers[g.rank[w]], w)
					stack = append(stack, w)
					descended = true
					break
				}
			}
			if descended {
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}

	for i := 0; i < n; i++ {
		if g.inCount[i] == 0 {
			visit(int32(i))
		}
	}
	for i := 0; i < n; i++ {
		if !visited[i] {
			visit(int32(i))
		}
	}

	for _, layer := range layers {
		for i, node := range layer {
			g.order[node] = i
		}
	}
}

func cloneLayers(layers [][]int32) [][]int32 {
	out := make([][]int32, len(layers))
	for i, l := range layers {
		out[i] = append([]int32(nil), l...)
	}
	return out
}

// sweepOnce reorders every layer once, in the given direction, by
// barycentre against the adjacent layer last processed (spec.md §4.3
// step 2).
func sweepOnce(g *Graph, layers [][]int32, down bool, biasRight bool) {
	if down {
		for r := 1; r < len(layers); r++ {
			reorderLayer(g, layers, r, true, biasRight)
		}
	} else {
		for r := len(layers) - 2; r >= 0; r-- {
			reorderLayer(g, layers, r, false, biasRight)
		}
	}
}

// reorderLayer sorts layers[r] by barycentre against the fixed reference
// layer (r-1 when useIn, r+1 otherwise). A node with no edge into the
// reference layer uses its own current position as its barycentre, which
// leaves it exactly where it was relative to neighbours once sorted — the
// "nodes with no such edges keep their current order" rule of spec.md
// §4.3. A rank with zero or one node is left untouched.
func reorderLayer(g *Graph, layers [][]int32, r int, useIn bool, biasRight bool) {
	layer := layers[r]
	if len(layer) <= 1 {
		return
	}
	var refLayer []int32
	if useIn {
		if r == 0 {
			return
		}
		refLayer = layers[r-1]
	} else {
		if r == len(layers)-1 {
			return
		}
		refLayer = layers[r+1]
	}

	refPos := make(map[int32]int, len(refLayer))
	for i, node := range refLayer {
		refPos[node] = i
	}

	type entry struct {
		node  int32
		bary  float64
		order int
	}
	entries := make([]entry, len(layer))
	for i, node := range layer {
		var edges []int32
		if useIn {
			edges = g.InEdges(node)
		} else {
			edges = g.OutEdges(node)
		}
		var sum, wsum float64
		for _, e := range edges {
			if g.dead[e] {
				continue
			}
			var other int32
			if useIn {
				other = g.source[e]
			} else {
				other = g.target[e]
			}
			pos, ok := refPos[other]
			if !ok {
				continue
			}
			w := float64(g.weight[e])
			sum += w * float64(pos)
			wsum += w
		}
		bary := float64(i)
		if wsum > 0 {
			bary = sum / wsum
		}
		entries[i] = entry{node: node, bary: bary, order: i}
	}

	sort.Slice(entries, func(a, b int) bool {
		if entries[a].bary != entries[b].bary {
			return entries[a].bary < entries[b].bary
		}
		if biasRight {
			return entries[a].order > entries[b].order
		}
		return entries[a].order < entries[b].order
	})

	// reorderLayer runs once per rank per sweep, so the replacement slice
	// comes from the shared Int32SlicePool rather than a fresh make() —
	// Order's sweeps otherwise reallocate every layer on every iteration.
	newLayerPtr := collections.GetInt32Slice()
	newLayer := (*newLayerPtr)[:0]
	for _, e := range entries {
		newLayer = append(newLayer, e.node)
	}
	*newLayerPtr = newLayer
	layers[r] = newLayer

	old := layer
	collections.PutInt32Slice(&old)
}

// weightedCrossings sums crossing counts over every adjacent layer pair.
func weightedCrossings(g *Graph, layers [][]int32) int64 {
	var total int64
	for r := 0; r+1 < len(layers); r++ {
		total += crossingsBetween(g, layers[r], layers[r+1])
	}
	return total
}

// crossingsBetween counts weighted crossings between one north/south
// layer pair with a Fenwick tree (spec.md §4.3 step 3): concatenate, in
// north order, each north node's out-edges to the south layer sorted by
// south position, then sweep the concatenation inserting each entry into
// a BIT keyed by south position and accumulating weight times the
// already-inserted weight strictly to its right.
func crossingsBetween(g *Graph, north, south []int32) int64 {
	if len(north) == 0 || len(south) == 0 {
		return 0
	}
	southPos := make(map[int32]int, len(south))
	for i, node := range south {
		southPos[node] = i
	}

	type item struct {
		pos    int
		weight int64
	}
	var items []item
	for _, n := range north {
		start := len(items)
		for _, e := range g.OutEdges(n) {
			if g.dead[e] {
				continue
			}
			pos, ok := southPos[g.target[e]]
			if !ok {
				continue
			}
			items = append(items, item{pos: pos, weight: int64(g.weight[e])})
		}
		local := items[start:]
		sort.Slice(local, func(a, b int) bool { return local[a].pos < local[b].pos })
	}

	bit := newFenwick(len(south))
	var total, running int64
	for _, it := range items {
		greater := running - bit.prefixSum(it.pos+1)
		total += it.weight * greater
		bit.add(it.pos+1, it.weight)
		running += it.weight
	}
	return total
}

// fenwick is a 1-indexed Binary Indexed Tree over int64 weights, used to
// accumulate crossing counts in O(log n) per insertion.
type fenwick struct {
	tree []int64
	n    int
}

func newFenwick(n int) *fenwick {
	return &fenwick{tree: make([]int64, n+1), n: n}
}

func (f *fenwick) add(i int, delta int64) {
	for ; i <= f.n; i += i & (-i) {
		f.tree[i] += delta
	}
}

func (f *fenwick) prefixSum(i int) int64 {
	var s int64
	for ; i > 0; i -= i & (-i) {
		s += f.tree[i]
	}
	return s
}
