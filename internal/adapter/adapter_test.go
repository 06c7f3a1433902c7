package adapter

import (
	"context"
	"testing"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

func buildDiamond(t *testing.T) *hostgraph.Graph {
	t.Helper()
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := h.AddNode(&hostgraph.Node{ID: id, Width: 40, Height: 20}); err != nil {
			t.Fatal(err)
		}
	}
	for _, pair := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}} {
		if err := h.AddEdge(&hostgraph.Edge{ID: pair[0] + pair[1], From: pair[0], To: pair[1]}); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func TestRunLaysOutDiamond(t *testing.T) {
	h := buildDiamond(t)
	var captions []string

	result, err := Run(context.Background(), h, Options{
		NodeSep: 50, EdgeSep: 10, RankSep: 50,
		Progress: func(caption string, mainProgress, additionalProgress float64) {
			captions = append(captions, caption)
		},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Phases) != 5 {
		t.Errorf("expected 5 timed phases (rank, Normalize.run, order, position, undo), got %d", len(result.Phases))
	}

	want := []string{"", "rank", "Normalize.run", "order", "position", "undo"}
	if len(captions) != len(want) {
		t.Fatalf("progress captions = %v, want %v", captions, want)
	}
	for i, c := range want {
		if captions[i] != c {
			t.Errorf("caption[%d] = %q, want %q", i, captions[i], c)
		}
	}

	a, b, c, d := h.Node("a"), h.Node("b"), h.Node("c"), h.Node("d")
	if a.Rank == b.Rank {
		t.Errorf("a and b should be in different ranks")
	}
	if b.Rank != c.Rank {
		t.Errorf("b and c should share a rank, got %d and %d", b.Rank, c.Rank)
	}
	if a.X != d.X {
		t.Errorf("x[a]=%v should equal x[d]=%v by symmetry", a.X, d.X)
	}
}

func TestRunHandlesSelfEdgeAndLongEdge(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	for _, id := range []string{"a", "b", "c"} {
		if err := h.AddNode(&hostgraph.Node{ID: id, Width: 40, Height: 20}); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.AddEdge(&hostgraph.Edge{ID: "aa", From: "a", To: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddEdge(&hostgraph.Edge{ID: "ab", From: "a", To: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddEdge(&hostgraph.Edge{ID: "bc", From: "b", To: "c"}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddEdge(&hostgraph.Edge{ID: "ac", From: "a", To: "c"}); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(context.Background(), h, Options{NodeSep: 50, EdgeSep: 10, RankSep: 50}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if h.Edge("aa") == nil {
		t.Fatal("self-edge should have been reinserted")
	}
	longEdge := h.Edge("ac")
	if longEdge == nil {
		t.Fatal("long edge a->c should have been restored")
	}
	if len(longEdge.Points) == 0 {
		t.Error("long edge spanning more than one rank should carry control points")
	}
	for _, id := range h.Nodes() {
		if id.Dummy != hostgraph.DummyNone {
			t.Errorf("no dummy node should remain in the final host graph, found %s", id.ID)
		}
	}
}
