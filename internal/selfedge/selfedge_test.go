package selfedge

import (
	"testing"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

func TestRunExtractsSelfLoopsOnly(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b"} {
		if err := h.AddNode(&hostgraph.Node{ID: id, Width: 10, Height: 10}); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.AddEdge(&hostgraph.Edge{ID: "aa", From: "a", To: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddEdge(&hostgraph.Edge{ID: "ab", From: "a", To: "b"}); err != nil {
		t.Fatal(err)
	}

	removed := Run(h)
	if len(removed) != 1 || removed[0].ID != "aa" {
		t.Fatalf("expected exactly the self-edge 'aa' removed, got %+v", removed)
	}
	if h.Edge("aa") != nil {
		t.Fatal("self-edge still present in host graph after Run")
	}
	if h.Edge("ab") == nil {
		t.Fatal("non-self-edge was unexpectedly removed")
	}
}

func TestUndoReinsertsWithRoutedLoop(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	if err := h.AddNode(&hostgraph.Node{ID: "a", Width: 40, Height: 20}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddEdge(&hostgraph.Edge{ID: "aa", From: "a", To: "a"}); err != nil {
		t.Fatal(err)
	}

	removed := Run(h)

	// Position "a" as the layout pipeline would.
	n := h.Node("a")
	n.X, n.Y = 100, 50

	Undo(h, removed)

	e := h.Edge("aa")
	if e == nil {
		t.Fatal("self-edge was not reinserted")
	}
	if e.From != "a" || e.To != "a" {
		t.Errorf("reinserted edge endpoints = %s->%s, want a->a", e.From, e.To)
	}
	if len(e.Points) != 4 {
		t.Fatalf("expected 4 control points for the routed loop, got %d", len(e.Points))
	}
	for _, p := range e.Points {
		if p.X <= n.X {
			t.Errorf("loop control point x=%v should clear the node's right edge (x=%v)", p.X, n.X)
		}
	}
}
