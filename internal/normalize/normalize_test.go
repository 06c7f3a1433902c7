package normalize

import (
	"testing"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

func buildChain(t *testing.T, ranks ...int) *hostgraph.Graph {
	t.Helper()
	h := hostgraph.New(hostgraph.DefaultConfig())
	ids := []string{"a", "b"}
	for i, id := range ids {
		if err := h.AddNode(&hostgraph.Node{ID: id, Width: 10, Height: 10, Rank: ranks[i]}); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.AddEdge(&hostgraph.Edge{ID: "ab", From: "a", To: "b", Weight: 1, MinLen: 1}); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestRunSplitsLongEdgeIntoDummyChain(t *testing.T) {
	h := buildChain(t, 0, 3)

	chains, err := Run(h)
	if err != nil {
		t.Fatal(err)
	}
	if len(chains) != 1 {
		t.Fatalf("expected one chain, got %d", len(chains))
	}
	c := chains[0]
	if len(c.dummyIDs) != 2 {
		t.Fatalf("expected 2 intermediate dummy nodes for a span of 3, got %d", len(c.dummyIDs))
	}
	if h.Edge("ab") != nil {
		t.Fatal("original long edge should have been removed")
	}
	for i, id := range c.dummyIDs {
		n := h.Node(id)
		if n == nil {
			t.Fatalf("dummy node %s missing", id)
		}
		if n.Rank != 1+i {
			t.Errorf("dummy %d has rank %d, want %d", i, n.Rank, 1+i)
		}
	}
}

func TestRunLeavesShortEdgeAlone(t *testing.T) {
	h := buildChain(t, 0, 1)

	chains, err := Run(h)
	if err != nil {
		t.Fatal(err)
	}
	if len(chains) != 0 {
		t.Fatalf("expected no chains for a span-1 edge, got %d", len(chains))
	}
	if h.Edge("ab") == nil {
		t.Fatal("short edge should not have been removed")
	}
}

func TestRunUndoReassemblesEdge(t *testing.T) {
	h := buildChain(t, 0, 3)
	chains, err := Run(h)
	if err != nil {
		t.Fatal(err)
	}

	// Simulate Position having assigned coordinates to the dummy chain.
	for i, id := range chains[0].dummyIDs {
		n := h.Node(id)
		n.X = float64(10 * (i + 1))
		n.Y = float64(10 * (i + 1))
	}

	if err := Undo(h, chains); err != nil {
		t.Fatal(err)
	}

	e := h.Edge("ab")
	if e == nil {
		t.Fatal("original edge was not restored")
	}
	if e.From != "a" || e.To != "b" {
		t.Errorf("restored edge endpoints = %s->%s, want a->b", e.From, e.To)
	}
	if len(e.Points) != 2 {
		t.Fatalf("expected 2 control points, got %d", len(e.Points))
	}
	for _, id := range chains[0].dummyIDs {
		if h.Node(id) != nil {
			t.Errorf("dummy node %s should have been removed by Undo", id)
		}
	}
}
