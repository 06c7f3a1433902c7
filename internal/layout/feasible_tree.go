package layout

import "github.com/graphlayout/dagre/pkg/collections"

// feasibleTree is the spanning tree Network Simplex pivots against: a
// forest over every node (spec.md §4.2 steps 3-4), recording which edges
// are tree members and each node's parent edge so low/lim and cut values
// can be computed by a single post-order walk. inTree membership is kept
// in a Bitset rather than a []bool: the set is tested in every inner loop
// of feasible-tree growth, and a Bitset halves the cache footprint a bool
// slice would need.
type feasibleTree struct {
	inTree     *collections.Bitset
	treeEdge   []bool
	parent     []int32
	parentEdge []int32
}

func newFeasibleTree(n, e int) *feasibleTree {
	t := &feasibleTree{
		inTree:     collections.NewBitset(n),
		treeEdge:   make([]bool, e),
		parent:     make([]int32, n),
		parentEdge: make([]int32, n),
	}
	for i := range t.parent {
		t.parent[i] = -1
		t.parentEdge[i] = -1
	}
	return t
}

func (t *feasibleTree) addTreeEdge(edge, s, tg int32, sIn bool) {
	t.treeEdge[edge] = true
	if sIn {
		t.inTree.Set(int(tg))
		t.parent[tg] = s
		t.parentEdge[tg] = edge
	} else {
		t.inTree.Set(int(s))
		t.parent[s] = tg
		t.parentEdge[s] = edge
	}
}

// buildFeasibleTree grows a tight spanning tree over g's nodes starting
// from the ranking longestPath produced (spec.md §4.2 step 3): repeatedly
// add every tight edge crossing the tree/non-tree cut; when none remain
// and the tree is incomplete, shift every in-tree rank by the minimum
// |slack| of a crossing edge to make it tight, then resume growing. A
// disconnected host graph has no crossing edge at all for some cut; such
// a component is seeded as a fresh root with no parent edge.
func buildFeasibleTree(g *Graph) *feasibleTree {
	n := g.NumNodes()
	e := g.NumEdges()
	t := newFeasibleTree(n, e)
	if n == 0 {
		return t
	}

	t.inTree.Set(0)
	size := 1
	for size < n {
		for {
			grew := false
			for ei := 0; ei < e; ei++ {
				edge := int32(ei)
				if g.dead[edge] || t.treeEdge[edge] {
					continue
				}
				s, tg := g.source[edge], g.target[edge]
				sIn, tIn := t.inTree.Test(int(s)), t.inTree.Test(int(tg))
				if sIn == tIn {
					continue
				}
				slack := int(g.rank[tg]) - int(g.rank[s]) - int(g.minlen[edge])
				if slack == 0 {
					t.addTreeEdge(edge, s, tg, sIn)
					size++
					grew = true
				}
			}
			if !grew {
				break
			}
		}
		if size >= n {
			break
		}

		best := int32(-1)
		bestSlack := 0
		bestSIn := false
		for ei := 0; ei < e; ei++ {
			edge := int32(ei)
			if g.dead[edge] {
				continue
			}
			s, tg := g.source[edge], g.target[edge]
			sIn, tIn := t.inTree.Test(int(s)), t.inTree.Test(int(tg))
			if sIn == tIn {
				continue
			}
			slack := int(g.rank[tg]) - int(g.rank[s]) - int(g.minlen[edge])
			if best < 0 || slack < bestSlack {
				best = edge
				bestSlack = slack
				bestSIn = sIn
			}
		}
		if best < 0 {
			for i := 0; i < n; i++ {
				if !t.inTree.Test(i) {
					t.inTree.Set(i)
					size++
					break
				}
			}
			continue
		}

		delta := bestSlack
		if !bestSIn {
			delta = -bestSlack
		}
		for i := 0; i < n; i++ {
			if t.inTree.Test(i) {
				g.rank[i] += delta
			}
		}
	}
	return t
}

// computeLowLim assigns every node a post-order number (lim) and the
// minimum lim in its subtree (low), by walking the tree forest rooted at
// the nodes with no parent (spec.md §4.2 step 4). Traversal is iterative
// to avoid recursion-depth limits on deep trees (spec.md §9).
func computeLowLim(g *Graph, t *feasibleTree) {
	n := g.NumNodes()
	children := make([][]int32, n)
	var roots []int32
	for v := 0; v < n; v++ {
		p := t.parent[v]
		if p >= 0 {
			children[p] = append(children[p], int32(v))
		} else {
			roots = append(roots, int32(v))
		}
	}

	nextChild := make([]int, n)
	counter := int32(1)
	for _, root := range roots {
		stack := []int32{root}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			kids := children[v]
			if nextChild[v] < len(kids) {
				c := kids[nextChild[v]]
				nextChild[v]++
				stack = append(stack, c)
				continue
			}

			low := counter
			for _, c := range kids {
				if g.low[c] < low {
					low = g.low[c]
				}
			}
			g.low[v] = low
			g.lim[v] = counter
			counter++
			stack = stack[:len(stack)-1]
		}
	}
}

// computeCutValues assigns every tree edge its cut value: the signed sum
// of weight over every live edge crossing the bipartition that removing
// the tree edge induces, with the tree edge's own direction defining
// positive. This computes the same quantity the incremental child-to-
// parent recurrence in the classic presentation does, directly from the
// definition — simpler to get right, at the cost of an O(N·E) scan
// instead of O(E) (spec.md §4.2 step 5).
func computeCutValues(g *Graph, t *feasibleTree) {
	n := g.NumNodes()
	e := g.NumEdges()
	for v := 0; v < n; v++ {
		pe := t.parentEdge[v]
		if pe < 0 {
			continue
		}
		child := int32(v)
		tailIsChildSubtree := g.source[pe] == child
		lowc, limc := g.low[child], g.lim[child]

		var cv int32
		for ei := 0; ei < e; ei++ {
			edge := int32(ei)
			if g.dead[edge] {
				continue
			}
			s, tg := g.source[edge], g.target[edge]
			sInChild := lowc <= g.lim[s] && g.lim[s] <= limc
			tInChild := lowc <= g.lim[tg] && g.lim[tg] <= limc
			sTail := sInChild == tailIsChildSubtree
			tTail := tInChild == tailIsChildSubtree
			if sTail && !tTail {
				cv += g.weight[edge]
			} else if !sTail && tTail {
				cv -= g.weight[edge]
			}
		}
		g.cutvalue[pe] = cv
	}
}

// leaveEdge returns the first tree edge (by ascending index) with a
// negative cut value, or -1 if the tree is already optimal.
func leaveEdge(g *Graph, t *feasibleTree) int32 {
	for ei := 0; ei < g.NumEdges(); ei++ {
		edge := int32(ei)
		if t.treeEdge[edge] && !g.dead[edge] && g.cutvalue[edge] < 0 {
			return edge
		}
	}
	return -1
}

// enterEdge finds the minimum-slack non-tree edge crossing the same cut
// as leave but in the opposite direction, to replace it (spec.md §4.2
// step 6). The tail side is the component containing leave's smaller-lim
// endpoint, oriented by which endpoint of leave is its source.
func enterEdge(g *Graph, t *feasibleTree, leave int32) int32 {
	s, tg := g.source[leave], g.target[leave]
	var child int32
	if g.lim[s] < g.lim[tg] {
		child = s
	} else {
		child = tg
	}
	tailIsChildSubtree := g.source[leave] == child
	lowc, limc := g.low[child], g.lim[child]
	tailSide := func(x int32) bool {
		inChild := lowc <= g.lim[x] && g.lim[x] <= limc
		return inChild == tailIsChildSubtree
	}

	best := int32(-1)
	bestSlack := 0
	for ei := 0; ei < g.NumEdges(); ei++ {
		edge := int32(ei)
		if g.dead[edge] || t.treeEdge[edge] {
			continue
		}
		s2, t2 := g.source[edge], g.target[edge]
		if !tailSide(s2) && tailSide(t2) {
			slack := int(g.rank[t2]) - int(g.rank[s2]) - int(g.minlen[edge])
			if best < 0 || slack < bestSlack {
				best = edge
				bestSlack = slack
			}
		}
	}
	return best
}

// exchange swaps leave out of the tree and enter in, shifts ranks so
// enter becomes tight, and rebuilds the parent/child structure from the
// new tree-edge set.
func (t *feasibleTree) exchange(g *Graph, leave, enter int32) {
	s, tg := g.source[leave], g.target[leave]
	var child int32
	if g.lim[s] < g.lim[tg] {
		child = s
	} else {
		child = tg
	}
	tailIsChildSubtree := g.source[leave] == child
	lowc, limc := g.low[child], g.lim[child]
	tailSide := func(x int32) bool {
		inChild := lowc <= g.lim[x] && g.lim[x] <= limc
		return inChild == tailIsChildSubtree
	}

	s2, t2 := g.source[enter], g.target[enter]
	slack := int(g.rank[t2]) - int(g.rank[s2]) - int(g.minlen[enter])
	delta := -slack

	n := g.NumNodes()
	for i := 0; i < n; i++ {
		if tailSide(int32(i)) {
			g.rank[i] += delta
		}
	}

	t.treeEdge[leave] = false
	t.treeEdge[enter] = true
	t.rebuildParents(g)
}

// rebuildParents recomputes parent/parentEdge from the current treeEdge
// set by BFS from node 0 (and any other component root), since exchange
// can relocate which node is whose parent throughout the affected side.
func (t *feasibleTree) rebuildParents(g *Graph) {
	n := g.NumNodes()
	type neighbor struct{ node, edge int32 }
	adj := make([][]neighbor, n)
	for ei := 0; ei < g.NumEdges(); ei++ {
		edge := int32(ei)
		if !t.treeEdge[edge] {
			continue
		}
		s, tg := g.source[edge], g.target[edge]
		adj[s] = append(adj[s], neighbor{tg, edge})
		adj[tg] = append(adj[tg], neighbor{s, edge})
	}

	for i := range t.parent {
		t.parent[i] = -1
		t.parentEdge[i] = -1
	}
	visited := make([]bool, n)
	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		queue := []int32{int32(root)}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, nb := range adj[v] {
				if !visited[nb.node] {
					visited[nb.node] = true
					t.parent[nb.node] = v
					t.parentEdge[nb.node] = nb.edge
					queue = append(queue, nb.node)
				}
			}
		}
	}
}
