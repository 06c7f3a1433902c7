package nesting

import (
	"testing"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

func TestRunNoCompoundIsNoop(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	if err := h.AddNode(&hostgraph.Node{ID: "a", Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
	added := Run(h)
	if len(added.nodeIDs) != 0 || len(added.edgeIDs) != 0 {
		t.Fatal("expected no-op on a non-compound graph")
	}
}

func TestRunInsertsBordersForCompoundNode(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	if err := h.AddNode(&hostgraph.Node{ID: "p", Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddNode(&hostgraph.Node{ID: "c1", Width: 10, Height: 10, Parent: "p"}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddNode(&hostgraph.Node{ID: "c2", Width: 10, Height: 10, Parent: "p"}); err != nil {
		t.Fatal(err)
	}

	added := Run(h)
	if len(added.nodeIDs) != 2 {
		t.Fatalf("expected top+bottom border nodes, got %d", len(added.nodeIDs))
	}
	if len(added.edgeIDs) != 4 {
		t.Fatalf("expected 2 containment edges per child (2 children), got %d", len(added.edgeIDs))
	}

	Undo(h, added)
	for _, id := range added.nodeIDs {
		if h.Node(id) != nil {
			t.Errorf("node %s should have been removed by Undo", id)
		}
	}
	for _, id := range added.edgeIDs {
		if h.Edge(id) != nil {
			t.Errorf("edge %s should have been removed by Undo", id)
		}
	}
}
