package layout

import (
	"github.com/graphlayout/dagre/internal/hostgraph"
)

// Graph is the indexed graph (IG): a structure-of-arrays representation of
// a directed graph keyed by dense node/edge indices in [0,N) and [0,E).
// See spec.md §3 for the full field-by-field contract.
type Graph struct {
	n int // number of live-allocated nodes
	e int // number of live-allocated edges

	// Geometry.
	width, height []float64
	x, y          []float64

	// Layering.
	rank, order       []int
	low, lim          []int32
	minRank, maxRank  []int32

	// Classification.
	dummy      []hostgraph.DummyKind
	labelPos   []hostgraph.LabelPos
	borderType []hostgraph.BorderKind

	// Back-references, valid only for dummy nodes; -1 when unset.
	edgeLabelRef []int32
	origEdgeRef  []int32

	// Edge endpoints and ranking inputs.
	source, target []int32
	weight, minlen []int32

	// Edge scratch.
	cutvalue []int32
	dead     []bool

	// Adjacency (CSR), valid only when adjacencyValid is true.
	outList, outStart, outCount []int32
	inList, inStart, inCount    []int32
	adjacencyValid              bool

	// Boundary bookkeeping: dense index <-> host string ID.
	hostID  []string
	idIndex map[string]int32
}

// NewGraph returns an empty indexed graph with room for sizeHint nodes and
// edges, growing geometrically beyond that as needed.
func NewGraph(sizeHint int) *Graph {
	if sizeHint < 8 {
		sizeHint = 8
	}
	return &Graph{
		width:  make([]float64, 0, sizeHint),
		height: make([]float64, 0, sizeHint),
		x:      make([]float64, 0, sizeHint),
		y:      make([]float64, 0, sizeHint),

		rank:    make([]int, 0, sizeHint),
		order:   make([]int, 0, sizeHint),
		low:     make([]int32, 0, sizeHint),
		lim:     make([]int32, 0, sizeHint),
		minRank: make([]int32, 0, sizeHint),
		maxRank: make([]int32, 0, sizeHint),

		dummy:      make([]hostgraph.DummyKind, 0, sizeHint),
		labelPos:   make([]hostgraph.LabelPos, 0, sizeHint),
		borderType: make([]hostgraph.BorderKind, 0, sizeHint),

		edgeLabelRef: make([]int32, 0, sizeHint),
		origEdgeRef:  make([]int32, 0, sizeHint),

		source: make([]int32, 0, sizeHint),
		target: make([]int32, 0, sizeHint),
		weight: make([]int32, 0, sizeHint),
		minlen: make([]int32, 0, sizeHint),

		cutvalue: make([]int32, 0, sizeHint),
		dead:     make([]bool, 0, sizeHint),

		hostID:  make([]string, 0, sizeHint),
		idIndex: make(map[string]int32, sizeHint),
	}
}

// NumNodes returns the number of nodes currently allocated.
func (g *Graph) NumNodes() int { return g.n }

// NumEdges returns the number of edges currently allocated.
func (g *Graph) NumEdges() int { return g.e }

// AddNode appends a node and returns its dense index. Adjacency is not
// updated; callers must call RebuildAdjacency once after a batch of
// mutations. id may be "" for nodes with no host counterpart.
func (g *Graph) AddNode(width, height float64, rank int, dummy hostgraph.DummyKind, id string) int32 {
	idx := int32(g.n)
	g.width = append(g.width, width)
	g.height = append(g.height, height)
	g.x = append(g.x, 0)
	g.y = append(g.y, 0)
	g.rank = append(g.rank, rank)
	g.order = append(g.order, 0)
	g.low = append(g.low, 0)
	g.lim = append(g.lim, 0)
	g.minRank = append(g.minRank, 0)
	g.maxRank = append(g.maxRank, 0)
	g.dummy = append(g.dummy, dummy)
	g.labelPos = append(g.labelPos, hostgraph.LabelPosNone)
	g.borderType = append(g.borderType, hostgraph.BorderNone)
	g.edgeLabelRef = append(g.edgeLabelRef, -1)
	g.origEdgeRef = append(g.origEdgeRef, -1)
	g.hostID = append(g.hostID, id)
	if id != "" {
		g.idIndex[id] = idx
	}
	g.n++
	g.adjacencyValid = false
	return idx
}

// AddEdge appends an edge (source -> target) with the given weight and
// minlen 1, and returns its dense index. Adjacency is not updated.
func (g *Graph) AddEdge(src, tgt int32, weight int) int32 {
	idx := int32(g.e)
	g.source = append(g.source, src)
	g.target = append(g.target, tgt)
	g.weight = append(g.weight, int32(weight))
	g.minlen = append(g.minlen, 1)
	g.cutvalue = append(g.cutvalue, 0)
	g.dead = append(g.dead, false)
	g.e++
	g.adjacencyValid = false
	return idx
}

// SetMinlen sets the minlen of edge e. Must be called before rank depends
// on it; does not invalidate adjacency.
func (g *Graph) SetMinlen(e int32, minlen int32) { g.minlen[e] = minlen }

// HostID returns the host graph ID for node n, or "" if it has none.
func (g *Graph) HostID(n int32) string { return g.hostID[n] }

// IndexOf returns the dense index for a host ID, or -1 if not present.
func (g *Graph) IndexOf(id string) int32 {
	if idx, ok := g.idIndex[id]; ok {
		return idx
	}
	return -1
}

// Accessors below are small and self-explanatory; see spec.md §3 for the
// field semantics they expose.

func (g *Graph) Width(n int32) float64    { return g.width[n] }
func (g *Graph) Height(n int32) float64   { return g.height[n] }
func (g *Graph) X(n int32) float64        { return g.x[n] }
func (g *Graph) Y(n int32) float64        { return g.y[n] }
func (g *Graph) SetX(n int32, v float64)  { g.x[n] = v }
func (g *Graph) SetY(n int32, v float64)  { g.y[n] = v }
func (g *Graph) Rank(n int32) int         { return g.rank[n] }
func (g *Graph) SetRank(n int32, r int)   { g.rank[n] = r }
func (g *Graph) Order(n int32) int        { return g.order[n] }
func (g *Graph) SetOrder(n int32, o int)  { g.order[n] = o }
func (g *Graph) Dummy(n int32) hostgraph.DummyKind          { return g.dummy[n] }
func (g *Graph) LabelPos(n int32) hostgraph.LabelPos        { return g.labelPos[n] }
func (g *Graph) SetLabelPos(n int32, p hostgraph.LabelPos)  { g.labelPos[n] = p }
func (g *Graph) BorderType(n int32) hostgraph.BorderKind       { return g.borderType[n] }
func (g *Graph) SetBorderType(n int32, b hostgraph.BorderKind) { g.borderType[n] = b }
func (g *Graph) EdgeLabelRef(n int32) int32         { return g.edgeLabelRef[n] }
func (g *Graph) SetEdgeLabelRef(n int32, ref int32) { g.edgeLabelRef[n] = ref }
func (g *Graph) OrigEdgeRef(n int32) int32          { return g.origEdgeRef[n] }
func (g *Graph) SetOrigEdgeRef(n int32, ref int32)  { g.origEdgeRef[n] = ref }
func (g *Graph) IsDummy(n int32) bool { return g.dummy[n] != hostgraph.DummyNone }

func (g *Graph) Source(e int32) int32    { return g.source[e] }
func (g *Graph) Target(e int32) int32    { return g.target[e] }
func (g *Graph) Weight(e int32) int32    { return g.weight[e] }
func (g *Graph) Minlen(e int32) int32    { return g.minlen[e] }
func (g *Graph) Dead(e int32) bool       { return g.dead[e] }
func (g *Graph) SetDead(e int32, d bool) { g.dead[e] = d }
func (g *Graph) Cutvalue(e int32) int32         { return g.cutvalue[e] }
func (g *Graph) SetCutvalue(e int32, v int32)   { g.cutvalue[e] = v }

// Low returns node n's low/lim post-order interval bound (spec.md §4.2
// step 4, GLOSSARY "low / lim").
func (g *Graph) Low(n int32) int32 { return g.low[n] }
func (g *Graph) Lim(n int32) int32 { return g.lim[n] }

// RebuildAdjacency rebuilds outList/inList (and the associated CSR start
// and count arrays) from source/target, in O(N+E): one counting pass per
// direction producing prefix-sum starts, then a scatter pass. When
// skipDead is true, edges with Dead()==true are left out of both lists.
func (g *Graph) RebuildAdjacency(skipDead bool) {
	n, e := g.n, g.e
	outStart := make([]int32, n+1)
	inStart := make([]int32, n+1)

	for i := 0; i < e; i++ {
		if skipDead && g.dead[i] {
			continue
		}
		outStart[g.source[i]+1]++
		inStart[g.target[i]+1]++
	}
	for i := 1; i <= n; i++ {
		outStart[i] += outStart[i-1]
		inStart[i] += inStart[i-1]
	}

	outList := make([]int32, outStart[n])
	inList := make([]int32, inStart[n])
	outCursor := append([]int32(nil), outStart[:n]...)
	inCursor := append([]int32(nil), inStart[:n]...)

	for i := 0; i < e; i++ {
		if skipDead && g.dead[i] {
			continue
		}
		s, t := g.source[i], g.target[i]
		outList[outCursor[s]] = int32(i)
		outCursor[s]++
		inList[inCursor[t]] = int32(i)
		inCursor[t]++
	}

	outCount := make([]int32, n)
	inCount := make([]int32, n)
	for i := 0; i < n; i++ {
		outCount[i] = outStart[i+1] - outStart[i]
		inCount[i] = inStart[i+1] - inStart[i]
	}

	g.outList, g.outStart, g.outCount = outList, outStart, outCount
	g.inList, g.inStart, g.inCount = inList, inStart, inCount
	g.adjacencyValid = true
}

// OutEdges returns the zero-copy span of edge indices leaving n.
func (g *Graph) OutEdges(n int32) []int32 {
	return g.outList[g.outStart[n] : g.outStart[n]+g.outCount[n]]
}

// InEdges returns the zero-copy span of edge indices entering n.
func (g *Graph) InEdges(n int32) []int32 {
	return g.inList[g.inStart[n] : g.inStart[n]+g.inCount[n]]
}

// NodeEdges returns every edge (in or out) incident on n.
func (g *Graph) NodeEdges(n int32) []int32 {
	out := g.OutEdges(n)
	in := g.InEdges(n)
	all := make([]int32, 0, len(out)+len(in))
	all = append(all, out...)
	all = append(all, in...)
	return all
}

// FirstSuccessor returns the first non-dead out-target of n, or (-1,
// false) if none exists.
func (g *Graph) FirstSuccessor(n int32) (int32, bool) {
	for _, e := range g.OutEdges(n) {
		if !g.dead[e] {
			return g.target[e], true
		}
	}
	return -1, false
}

// SwapWidthHeight transposes node and edge dimension arrays, used when the
// externally requested rank direction is horizontal (spec.md §4.1).
func (g *Graph) SwapWidthHeight() {
	for i := range g.width {
		g.width[i], g.height[i] = g.height[i], g.width[i]
	}
}

// MaxRank returns the maximum value over rank[·], or -1 for an empty graph.
func (g *Graph) MaxRank() int {
	max := -1
	for i := 0; i < g.n; i++ {
		if g.rank[i] > max {
			max = g.rank[i]
		}
	}
	return max
}

// BuildLayerMatrix returns layers[r], the node indices with rank==r sorted
// ascending by order[·].
func (g *Graph) BuildLayerMatrix() [][]int32 {
	maxRank := g.MaxRank()
	if maxRank < 0 {
		return nil
	}
	counts := make([]int32, maxRank+1)
	for i := 0; i < g.n; i++ {
		counts[g.rank[i]]++
	}
	layers := make([][]int32, maxRank+1)
	for r, c := range counts {
		layers[r] = make([]int32, 0, c)
	}
	for i := 0; i < g.n; i++ {
		r := g.rank[i]
		layers[r] = append(layers[r], int32(i))
	}
	for _, layer := range layers {
		sortByOrder(layer, g.order)
	}
	return layers
}

// sortByOrder is an insertion sort for small layers and a stable sort
// otherwise; layers in a layered layout are rarely large enough to need
// anything fancier, but we fall back to a stable generic sort to keep
// behaviour correct regardless of size.
func sortByOrder(layer []int32, order []int) {
	for i := 1; i < len(layer); i++ {
		v := layer[i]
		vo := order[v]
		j := i - 1
		for j >= 0 && order[layer[j]] > vo {
			layer[j+1] = layer[j]
			j--
		}
		layer[j+1] = v
	}
}
