package layout

import (
	"math"
	"testing"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// S1: single edge A->B, 40x20 nodes, nodeSep=50 edgeSep=10 rankSep=50.
func TestPositionSingleEdge(t *testing.T) {
	cfg := hostgraph.Config{NodeSep: 50, EdgeSep: 10, RankSep: 50, RankDir: "tb"}
	h := hostgraph.New(cfg)
	if err := h.AddNode(&hostgraph.Node{ID: "a", Width: 40, Height: 20}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddNode(&hostgraph.Node{ID: "b", Width: 40, Height: 20}); err != nil {
		t.Fatal(err)
	}
	addEdge(t, h, "ab", "a", "b")

	g := buildIG(t, h)
	Rank(g)
	Order(g)
	Position(g, cfg.NodeSep, cfg.EdgeSep, cfg.RankSep)

	a, b := g.IndexOf("a"), g.IndexOf("b")
	if !almostEqual(g.X(a), 20) {
		t.Errorf("x[a] = %v, want 20", g.X(a))
	}
	if !almostEqual(g.X(b), 20) {
		t.Errorf("x[b] = %v, want 20", g.X(b))
	}
	if !almostEqual(g.Y(a), 10) {
		t.Errorf("y[a] = %v, want 10", g.Y(a))
	}
	if !almostEqual(g.Y(b), 80) {
		t.Errorf("y[b] = %v, want 80", g.Y(b))
	}
}

// S2: diamond A,B,C,D all 40x20; x[A]=x[D], x[C]-x[B]=90.
func TestPositionDiamond(t *testing.T) {
	cfg := hostgraph.Config{NodeSep: 50, EdgeSep: 10, RankSep: 50, RankDir: "tb"}
	h := hostgraph.New(cfg)
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := h.AddNode(&hostgraph.Node{ID: id, Width: 40, Height: 20}); err != nil {
			t.Fatal(err)
		}
	}
	addEdge(t, h, "ab", "a", "b")
	addEdge(t, h, "ac", "a", "c")
	addEdge(t, h, "bd", "b", "d")
	addEdge(t, h, "cd", "c", "d")

	g := buildIG(t, h)
	Rank(g)
	Order(g)
	Position(g, cfg.NodeSep, cfg.EdgeSep, cfg.RankSep)

	a, b, c, d := g.IndexOf("a"), g.IndexOf("b"), g.IndexOf("c"), g.IndexOf("d")
	if !almostEqual(g.X(a), g.X(d)) {
		t.Errorf("x[a]=%v != x[d]=%v", g.X(a), g.X(d))
	}
	diff := math.Abs(g.X(c) - g.X(b))
	if !almostEqual(diff, 90) {
		t.Errorf("|x[c]-x[b]| = %v, want 90", diff)
	}
}

// Invariant 3: within a rank, increasing order implies increasing x with
// at least the required separation; y is constant within a rank and
// strictly increasing between non-empty ranks.
func TestPositionSeparationInvariant(t *testing.T) {
	cfg := hostgraph.DefaultConfig()
	h := hostgraph.New(cfg)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		if err := h.AddNode(&hostgraph.Node{ID: id, Width: 30, Height: 15}); err != nil {
			t.Fatal(err)
		}
	}
	addEdge(t, h, "ab", "a", "b")
	addEdge(t, h, "ac", "a", "c")
	addEdge(t, h, "ad", "a", "d")
	addEdge(t, h, "be", "b", "e")
	addEdge(t, h, "ce", "c", "e")
	addEdge(t, h, "df", "d", "f")

	g := buildIG(t, h)
	Rank(g)
	Order(g)
	Position(g, cfg.NodeSep, cfg.EdgeSep, cfg.RankSep)

	layers := g.BuildLayerMatrix()
	for _, layer := range layers {
		for i := 1; i < len(layer); i++ {
			u, v := layer[i-1], layer[i]
			if g.Order(u) >= g.Order(v) {
				t.Fatalf("layer not sorted by order: %v", layer)
			}
			got := g.X(v) - g.X(u)
			want := sep(g, u, v, cfg.NodeSep, cfg.EdgeSep, false)
			if got < want-1e-9 {
				t.Errorf("x[%d]-x[%d] = %v, want >= %v", v, u, got, want)
			}
		}
		if len(layer) == 0 {
			continue
		}
		y0 := g.Y(layer[0])
		for _, n := range layer {
			if !almostEqual(g.Y(n), y0) {
				t.Errorf("y not constant within rank: node %d has y=%v, want %v", n, g.Y(n), y0)
			}
		}
	}

	var prevY float64
	first := true
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		y := g.Y(layer[0])
		if !first && y <= prevY {
			t.Errorf("y not strictly increasing between ranks: got %v after %v", y, prevY)
		}
		prevY = y
		first = false
	}
}
