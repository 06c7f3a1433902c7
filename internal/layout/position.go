package layout

import (
	"sort"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

// Position assigns x[·]/y[·] to every node via Brandes–Köpf (spec.md
// §4.4): y comes from a single top-to-bottom layer walk; x comes from
// four independent median-aligned horizontal passes (predecessor- or
// successor-based neighbours, crossed with a left/right bias), reconciled
// by picking the narrowest of the four spans and shifting the rest to
// match it, then taking the median of the two middle values per node.
func Position(g *Graph, nodeSep, edgeSep, rankSep int) {
	layers := g.BuildLayerMatrix()
	assignY(g, layers, rankSep)
	if g.NumNodes() == 0 {
		return
	}

	conflicts := detectConflicts(g, layers)

	var xs [4][]float64
	var biasFlags [4]bool
	combo := 0
	for _, usePred := range [2]bool{true, false} {
		for _, biasRight := range [2]bool{false, true} {
			xs[combo] = alignOnce(g, layers, usePred, biasRight, conflicts, nodeSep, edgeSep)
			biasFlags[combo] = biasRight
			combo++
		}
	}

	balanceToMinWidth(g, xs, biasFlags)

	for i := 0; i < g.NumNodes(); i++ {
		v := [4]float64{xs[0][i], xs[1][i], xs[2][i], xs[3][i]}
		sort.Float64s(v[:])
		g.x[i] = (v[1] + v[2]) / 2
	}

	// The four alignments float in whatever coordinate space horizontal
	// compaction happened to settle on; translate so the leftmost edge
	// sits at 0, matching the reference algorithm's final output space.
	minLeft := g.x[0] - g.width[0]/2
	for i := 1; i < g.NumNodes(); i++ {
		if left := g.x[i] - g.width[i]/2; left < minLeft {
			minLeft = left
		}
	}
	if minLeft != 0 {
		for i := 0; i < g.NumNodes(); i++ {
			g.x[i] -= minLeft
		}
	}
}

// assignY walks layers in ascending rank order; every node in a layer
// gets the same y, offset by half that layer's tallest node, and the next
// layer starts rankSep below the bottom of this one.
func assignY(g *Graph, layers [][]int32, rankSep int) {
	prevY := 0.0
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		maxH := 0.0
		for _, n := range layer {
			if g.height[n] > maxH {
				maxH = g.height[n]
			}
		}
		y := prevY + maxH/2
		for _, n := range layer {
			g.y[n] = y
		}
		prevY += maxH + float64(rankSep)
	}
}

// conflictSet holds canonicalised (min,max) node-index pairs.
type conflictSet map[uint64]bool

func (c conflictSet) add(a, b int32) { c[conflictKey(a, b)] = true }
func (c conflictSet) has(a, b int32) bool { return c[conflictKey(a, b)] }

func conflictKey(a, b int32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

func detectConflicts(g *Graph, layers [][]int32) conflictSet {
	c := make(conflictSet)
	findType1Conflicts(g, layers, c)
	findType2Conflicts(g, layers, c)
	return c
}

// findOtherInnerSegmentNode returns v's dummy predecessor, if v itself is
// dummy and has one — the other endpoint of the "inner segment" that v
// sits on.
func findOtherInnerSegmentNode(g *Graph, v int32) (int32, bool) {
	if !g.IsDummy(v) {
		return -1, false
	}
	for _, e := range g.InEdges(v) {
		if g.dead[e] {
			continue
		}
		u := g.source[e]
		if g.IsDummy(u) {
			return u, true
		}
	}
	return -1, false
}

// findType1Conflicts marks predecessor/south pairs that an inner segment
// (an edge between two dummies on consecutive layers) crosses (spec.md
// §4.4, type-1).
func findType1Conflicts(g *Graph, layers [][]int32, conflicts conflictSet) {
	for r := 1; r < len(layers); r++ {
		layer := layers[r]
		if len(layer) == 0 {
			continue
		}
		prevLen := len(layers[r-1])
		k0 := 0
		scanPos := 0
		lastIdx := len(layer) - 1

		for i, v := range layer {
			w, hasW := findOtherInnerSegmentNode(g, v)
			k1 := prevLen
			if hasW {
				k1 = g.Order(w)
			}
			if hasW || i == lastIdx {
				for _, scanNode := range layer[scanPos : i+1] {
					for _, e := range g.InEdges(scanNode) {
						if g.dead[e] {
							continue
						}
						u := g.source[e]
						uPos := g.Order(u)
						if (uPos < k0 || uPos > k1) && !(g.IsDummy(u) && g.IsDummy(scanNode)) {
							conflicts.add(u, scanNode)
						}
					}
				}
				scanPos = i + 1
				k0 = k1
			}
		}
	}
}

// findType2Conflicts marks pairs where two inner segments cross each
// other (spec.md §4.4, type-2). The trailing, unconditional scan call on
// every south-layer iteration (not just when a border dummy is seen) is
// kept deliberately: it is how the reference algorithm behaves, per
// spec.md §4.4.
func findType2Conflicts(g *Graph, layers [][]int32, conflicts conflictSet) {
	for r := 1; r < len(layers); r++ {
		north := layers[r-1]
		south := layers[r]
		if len(south) == 0 {
			continue
		}
		prevNorthPos := -1
		nextNorthPos := -1
		southPos := 0

		scan := func(start, end, prevNP, nextNP int) {
			for i := start; i < end; i++ {
				v := south[i]
				if !g.IsDummy(v) {
					continue
				}
				for _, e := range g.InEdges(v) {
					if g.dead[e] {
						continue
					}
					u := g.source[e]
					if g.IsDummy(u) {
						uPos := g.Order(u)
						if uPos < prevNP || uPos > nextNP {
							conflicts.add(u, v)
						}
					}
				}
			}
		}

		for southLookahead, v := range south {
			if g.Dummy(v) == hostgraph.DummyBorder {
				firstPred := int32(-1)
				for _, e := range g.InEdges(v) {
					if g.dead[e] {
						continue
					}
					firstPred = g.source[e]
					break
				}
				if firstPred >= 0 {
					nextNorthPos = g.Order(firstPred)
					scan(southPos, southLookahead, prevNorthPos, nextNorthPos)
					southPos = southLookahead
					prevNorthPos = nextNorthPos
				}
			}
			scan(southPos, len(south), prevNorthPos, len(north))
		}
	}
}

// verticalAlign runs one median-alignment pass over every layer in
// top-down order (spec.md §4.4, "Four vertical alignments"): each
// not-yet-aligned node takes its median previous-layer neighbour as an
// anchor, unless that pairing is a recorded conflict or would align out
// of increasing position order.
func verticalAlign(g *Graph, orderedLayers [][]int32, pos []int, usePred bool, conflicts conflictSet) (root, align []int32) {
	n := g.NumNodes()
	root = make([]int32, n)
	align = make([]int32, n)
	aligned := make([]bool, n)
	for i := range root {
		root[i] = int32(i)
		align[i] = int32(i)
	}

	for li, layer := range orderedLayers {
		hasRef := li > 0
		if !usePred {
			hasRef = li < len(orderedLayers)-1
		}
		if !hasRef {
			continue
		}

		r := -1
		for _, v := range layer {
			var edges []int32
			if usePred {
				edges = g.InEdges(v)
			} else {
				edges = g.OutEdges(v)
			}
			var neighbors []int32
			for _, e := range edges {
				if g.dead[e] {
					continue
				}
				var other int32
				if usePred {
					other = g.source[e]
				} else {
					other = g.target[e]
				}
				neighbors = append(neighbors, other)
			}
			if len(neighbors) == 0 {
				continue
			}
			sort.Slice(neighbors, func(a, b int) bool { return pos[neighbors[a]] < pos[neighbors[b]] })

			lo := (len(neighbors) - 1) / 2
			hi := len(neighbors) / 2
			candidates := []int{lo}
			if hi != lo {
				candidates = append(candidates, hi)
			}

			for _, ci := range candidates {
				if aligned[v] {
					break
				}
				w := neighbors[ci]
				if pos[w] <= r {
					continue
				}
				if conflicts.has(v, w) {
					continue
				}
				align[w] = v
				align[v] = root[w]
				root[v] = root[w]
				aligned[v] = true
				r = pos[w]
			}
		}
	}
	return root, align
}

type blockEdge struct {
	to  int32
	sep float64
}

// sep computes the minimum horizontal gap between horizontally adjacent
// nodes u,v (spec.md §4.4, "Separation sep(u,v)").
func sep(g *Graph, u, v int32, nodeSep, edgeSep int, reverseSep bool) float64 {
	sum := g.width[u] / 2
	sum += labelDeltaU(g, u, reverseSep)

	if g.IsDummy(u) {
		sum += float64(edgeSep) / 2
	} else {
		sum += float64(nodeSep) / 2
	}
	if g.IsDummy(v) {
		sum += float64(edgeSep) / 2
	} else {
		sum += float64(nodeSep) / 2
	}

	sum += g.width[v] / 2
	sum += labelDeltaV(g, v, reverseSep)
	return sum
}

func labelDeltaU(g *Graph, u int32, reverseSep bool) float64 {
	var delta float64
	switch g.LabelPos(u) {
	case hostgraph.LabelPosLeft:
		delta = -g.width[u] / 2
	case hostgraph.LabelPosRight:
		delta = g.width[u] / 2
	default:
		return 0
	}
	if reverseSep {
		return delta
	}
	return -delta
}

func labelDeltaV(g *Graph, v int32, reverseSep bool) float64 {
	var delta float64
	switch g.LabelPos(v) {
	case hostgraph.LabelPosLeft:
		delta = g.width[v] / 2
	case hostgraph.LabelPosRight:
		delta = -g.width[v] / 2
	default:
		return 0
	}
	if reverseSep {
		return delta
	}
	return -delta
}

// buildBlockGraph connects roots of horizontally adjacent nodes within
// any layer, keeping the widest separation when more than one layer would
// otherwise produce the same (root,root) edge (spec.md §4.4, "Horizontal
// compaction").
func buildBlockGraph(g *Graph, orderedLayers [][]int32, root []int32, nodeSep, edgeSep int, reverseSep bool) (preds, succs map[int32][]blockEdge) {
	type key struct{ a, b int32 }
	widest := make(map[key]float64)
	for _, layer := range orderedLayers {
		for i := 1; i < len(layer); i++ {
			u, v := layer[i-1], layer[i]
			ru, rv := root[u], root[v]
			if ru == rv {
				continue
			}
			s := sep(g, u, v, nodeSep, edgeSep, reverseSep)
			k := key{ru, rv}
			if cur, ok := widest[k]; !ok || s > cur {
				widest[k] = s
			}
		}
	}

	preds = make(map[int32][]blockEdge)
	succs = make(map[int32][]blockEdge)
	for k, s := range widest {
		succs[k.a] = append(succs[k.a], blockEdge{to: k.b, sep: s})
		preds[k.b] = append(preds[k.b], blockEdge{to: k.a, sep: s})
	}
	return preds, succs
}

// computeBlockXMin runs pass 1: every block's x is the tightest position
// that keeps it at least sep away from every predecessor block, computed
// by an iterative post-order walk so predecessors are always resolved
// before the blocks that depend on them.
func computeBlockXMin(roots []int32, preds map[int32][]blockEdge, xss map[int32]float64) {
	visited := make(map[int32]bool, len(roots))
	childIdx := make(map[int32]int, len(roots))
	for _, root := range roots {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack := []int32{root}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			nbrs := preds[v]
			idx := childIdx[v]
			if idx < len(nbrs) {
				childIdx[v]++
				nb := nbrs[idx].to
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
				continue
			}
			x := 0.0
			for _, e := range nbrs {
				if cand := xss[e.to] + e.sep; cand > x {
					x = cand
				}
			}
			xss[v] = x
			stack = stack[:len(stack)-1]
		}
	}
}

// computeBlockXMax runs pass 2: pull every block as far right as its
// successors allow, unless it is the border dummy that should stay put
// for the current bias direction.
func computeBlockXMax(g *Graph, roots []int32, succs map[int32][]blockEdge, xss map[int32]float64, skipBorder hostgraph.BorderKind) {
	visited := make(map[int32]bool, len(roots))
	childIdx := make(map[int32]int, len(roots))
	for _, root := range roots {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack := []int32{root}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			nbrs := succs[v]
			idx := childIdx[v]
			if idx < len(nbrs) {
				childIdx[v]++
				nb := nbrs[idx].to
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
				continue
			}
			if len(nbrs) > 0 && g.BorderType(v) != skipBorder {
				min := xss[nbrs[0].to] - nbrs[0].sep
				for _, e := range nbrs[1:] {
					if cand := xss[e.to] - e.sep; cand < min {
						min = cand
					}
				}
				if min > xss[v] {
					xss[v] = min
				}
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func reversedCopy(layer []int32) []int32 {
	out := make([]int32, len(layer))
	for i, v := range layer {
		out[len(layer)-1-i] = v
	}
	return out
}

// alignOnce runs one of the four (usePredecessors, biasRight) passes end
// to end: align, compact, propagate root x to every member, negating for
// the right-biased passes so all four live in the same oriented space.
func alignOnce(g *Graph, layers [][]int32, usePred, biasRight bool, conflicts conflictSet, nodeSep, edgeSep int) []float64 {
	n := g.NumNodes()
	pos := make([]int, n)
	orderedLayers := make([][]int32, len(layers))
	for li, layer := range layers {
		ordered := layer
		if biasRight {
			ordered = reversedCopy(layer)
		}
		orderedLayers[li] = ordered
		for i, node := range ordered {
			pos[node] = i
		}
	}

	root, _ := verticalAlign(g, orderedLayers, pos, usePred, conflicts)
	preds, succs := buildBlockGraph(g, orderedLayers, root, nodeSep, edgeSep, biasRight)

	seen := make(map[int32]bool, n)
	var roots []int32
	for i := 0; i < n; i++ {
		if r := root[i]; !seen[r] {
			seen[r] = true
			roots = append(roots, r)
		}
	}

	xss := make(map[int32]float64, len(roots))
	computeBlockXMin(roots, preds, xss)
	targetBorder := hostgraph.BorderRight
	if biasRight {
		targetBorder = hostgraph.BorderLeft
	}
	computeBlockXMax(g, roots, succs, xss, targetBorder)

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = xss[root[i]]
	}
	if biasRight {
		for i := range x {
			x[i] = -x[i]
		}
	}
	return x
}

// balanceToMinWidth picks the alignment whose (x-width/2, x+width/2) span
// is narrowest and shifts the other three to match its extreme (min for
// left-biased alignments, max for right-biased) in place, ahead of the
// final median step (spec.md §4.4, "Alignment to minimum width").
func balanceToMinWidth(g *Graph, xs [4][]float64, biasFlags [4]bool) {
	n := g.NumNodes()
	if n == 0 {
		return
	}
	type span struct{ min, max, width float64 }
	var spans [4]span
	for k := 0; k < 4; k++ {
		min := xs[k][0] - g.width[0]/2
		max := xs[k][0] + g.width[0]/2
		for i := 1; i < n; i++ {
			if lo := xs[k][i] - g.width[i]/2; lo < min {
				min = lo
			}
			if hi := xs[k][i] + g.width[i]/2; hi > max {
				max = hi
			}
		}
		spans[k] = span{min, max, max - min}
	}

	best := 0
	for k := 1; k < 4; k++ {
		if spans[k].width < spans[best].width {
			best = k
		}
	}
	for k := 0; k < 4; k++ {
		if k == best {
			continue
		}
		var delta float64
		if biasFlags[k] {
			delta = spans[best].max - spans[k].max
		} else {
			delta = spans[best].min - spans[k].min
		}
		for i := range xs[k] {
			xs[k][i] += delta
		}
	}
}
