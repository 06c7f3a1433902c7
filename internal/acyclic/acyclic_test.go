package acyclic

import (
	"testing"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

func newNode(t *testing.T, h *hostgraph.Graph, id string) {
	t.Helper()
	if err := h.AddNode(&hostgraph.Node{ID: id, Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
}

func newEdge(t *testing.T, h *hostgraph.Graph, id, from, to string) {
	t.Helper()
	if err := h.AddEdge(&hostgraph.Edge{ID: id, From: from, To: to}); err != nil {
		t.Fatal(err)
	}
}

func TestRunBreaksCycle(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b", "c"} {
		newNode(t, h, id)
	}
	newEdge(t, h, "ab", "a", "b")
	newEdge(t, h, "bc", "b", "c")
	newEdge(t, h, "ca", "c", "a")

	reversed := Run(h)
	if len(reversed) != 1 {
		t.Fatalf("expected exactly one reversed edge, got %d", len(reversed))
	}

	// No node should have a path back to itself in one hop per remaining
	// forward edge; simplest check is that the cycle is broken: not all
	// three original edges still point the way they started.
	seenForward := 0
	for _, id := range []string{"ab", "bc", "ca"} {
		e := h.Edge(id)
		if e.From < e.To {
			seenForward++
		}
	}
	if seenForward == 3 {
		t.Fatal("cycle was not broken")
	}
}

func TestRunUndoRestoresOriginalDirection(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b", "c"} {
		newNode(t, h, id)
	}
	newEdge(t, h, "ab", "a", "b")
	newEdge(t, h, "bc", "b", "c")
	newEdge(t, h, "ca", "c", "a")

	before := map[string][2]string{
		"ab": {"a", "b"},
		"bc": {"b", "c"},
		"ca": {"c", "a"},
	}

	reversed := Run(h)
	Undo(h, reversed)

	for id, want := range before {
		e := h.Edge(id)
		if e.From != want[0] || e.To != want[1] {
			t.Errorf("edge %s: got %s->%s, want %s->%s", id, e.From, e.To, want[0], want[1])
		}
	}
}

func TestRunNoCycleLeavesGraphAlone(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b", "c"} {
		newNode(t, h, id)
	}
	newEdge(t, h, "ab", "a", "b")
	newEdge(t, h, "bc", "b", "c")

	reversed := Run(h)
	if len(reversed) != 0 {
		t.Fatalf("expected no reversed edges on an already-acyclic graph, got %d", len(reversed))
	}
}
