package layout

import (
	"testing"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

func buildIG(t *testing.T, h *hostgraph.Graph) *Graph {
	t.Helper()
	g, err := Build(h, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func addNode(t *testing.T, h *hostgraph.Graph, id string) {
	t.Helper()
	if err := h.AddNode(&hostgraph.Node{ID: id, Width: 10, Height: 10}); err != nil {
		t.Fatalf("AddNode(%s): %v", id, err)
	}
}

func addEdge(t *testing.T, h *hostgraph.Graph, id, from, to string) {
	t.Helper()
	if err := h.AddEdge(&hostgraph.Edge{ID: id, From: from, To: to, Weight: 1, MinLen: 1}); err != nil {
		t.Fatalf("AddEdge(%s): %v", id, err)
	}
}

// S1: a single edge a->b must rank a=0, b=1.
func TestRankSingleEdge(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	addNode(t, h, "a")
	addNode(t, h, "b")
	addEdge(t, h, "e1", "a", "b")

	g := buildIG(t, h)
	Rank(g)

	a, b := g.IndexOf("a"), g.IndexOf("b")
	if g.Rank(a) != 0 {
		t.Errorf("rank(a) = %d, want 0", g.Rank(a))
	}
	if g.Rank(b) != 1 {
		t.Errorf("rank(b) = %d, want 1", g.Rank(b))
	}
}

// S2: a diamond a->b, a->c, b->d, c->d must keep b and c on the same rank,
// strictly between a and d.
func TestRankDiamond(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b", "c", "d"} {
		addNode(t, h, id)
	}
	addEdge(t, h, "ab", "a", "b")
	addEdge(t, h, "ac", "a", "c")
	addEdge(t, h, "bd", "b", "d")
	addEdge(t, h, "cd", "c", "d")

	g := buildIG(t, h)
	Rank(g)

	a, b, c, d := g.IndexOf("a"), g.IndexOf("b"), g.IndexOf("c"), g.IndexOf("d")
	if g.Rank(a) != 0 {
		t.Errorf("rank(a) = %d, want 0", g.Rank(a))
	}
	if g.Rank(b) != g.Rank(c) {
		t.Errorf("rank(b)=%d != rank(c)=%d, want equal", g.Rank(b), g.Rank(c))
	}
	if g.Rank(b) <= g.Rank(a) || g.Rank(b) >= g.Rank(d) {
		t.Errorf("rank(b)=%d must be strictly between rank(a)=%d and rank(d)=%d", g.Rank(b), g.Rank(a), g.Rank(d))
	}
}

// S3: two parallel edges a->b must merge in simplify without affecting the
// final ranking (both still respect minlen).
func TestRankParallelEdges(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	addNode(t, h, "a")
	addNode(t, h, "b")
	addEdge(t, h, "e1", "a", "b")
	addEdge(t, h, "e2", "a", "b")

	g := buildIG(t, h)
	Rank(g)

	a, b := g.IndexOf("a"), g.IndexOf("b")
	if g.Rank(b)-g.Rank(a) < 1 {
		t.Errorf("rank(b)-rank(a) = %d, want >= 1", g.Rank(b)-g.Rank(a))
	}
}

// S4: a long edge a->c with minlen 3 forces rank(c)-rank(a) >= 3 even when a
// shorter path a->b->c also exists.
func TestRankLongEdgeMinlen(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b", "c"} {
		addNode(t, h, id)
	}
	addEdge(t, h, "ab", "a", "b")
	addEdge(t, h, "bc", "b", "c")
	if err := h.AddEdge(&hostgraph.Edge{ID: "ac", From: "a", To: "c", Weight: 1, MinLen: 3}); err != nil {
		t.Fatalf("AddEdge(ac): %v", err)
	}

	g := buildIG(t, h)
	Rank(g)

	a, c := g.IndexOf("a"), g.IndexOf("c")
	if g.Rank(c)-g.Rank(a) < 3 {
		t.Errorf("rank(c)-rank(a) = %d, want >= 3", g.Rank(c)-g.Rank(a))
	}
}

// every live edge must satisfy rank[target]-rank[source] >= minlen after
// Rank runs, across a graph with multiple components and a back-reference
// that would be cyclic if acyclic preprocessing hadn't already removed it.
func TestRankFeasibilityInvariant(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b", "c", "d", "x", "y"} {
		addNode(t, h, id)
	}
	addEdge(t, h, "ab", "a", "b")
	addEdge(t, h, "bc", "b", "c")
	addEdge(t, h, "ac", "a", "c")
	addEdge(t, h, "cd", "c", "d")
	addEdge(t, h, "xy", "x", "y") // disconnected component

	g := buildIG(t, h)
	Rank(g)

	for i := 0; i < g.NumEdges(); i++ {
		e := int32(i)
		if g.Dead(e) {
			continue
		}
		got := g.Rank(g.Target(e)) - g.Rank(g.Source(e))
		if got < int(g.Minlen(e)) {
			t.Errorf("edge %d: rank delta %d < minlen %d", i, got, g.Minlen(e))
		}
	}

	min := g.Rank(int32(0))
	for i := 1; i < g.NumNodes(); i++ {
		if g.Rank(int32(i)) < min {
			min = g.Rank(int32(i))
		}
	}
	if min != 0 {
		t.Errorf("normalized minimum rank = %d, want 0", min)
	}
}
