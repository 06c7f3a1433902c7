package border

import (
	"testing"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

func TestRunReservesColumnPerRank(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	if err := h.AddNode(&hostgraph.Node{ID: "p", Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddNode(&hostgraph.Node{ID: "c1", Width: 10, Height: 10, Rank: 1, Parent: "p"}); err != nil {
		t.Fatal(err)
	}
	if err := h.AddNode(&hostgraph.Node{ID: "c2", Width: 10, Height: 10, Rank: 2, Parent: "p"}); err != nil {
		t.Fatal(err)
	}

	added := Run(h)
	if len(added.nodeIDs) != 4 {
		t.Fatalf("expected a left+right border node per rank (2 ranks), got %d", len(added.nodeIDs))
	}
	if len(added.edgeIDs) != 2 {
		t.Fatalf("expected one left-chain and one right-chain edge between the 2 ranks, got %d", len(added.edgeIDs))
	}

	Undo(h, added)
	for _, id := range added.nodeIDs {
		if h.Node(id) != nil {
			t.Errorf("node %s should have been removed by Undo", id)
		}
	}
}

func TestRunSkipsLeafNodes(t *testing.T) {
	h := hostgraph.New(hostgraph.DefaultConfig())
	if err := h.AddNode(&hostgraph.Node{ID: "a", Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
	added := Run(h)
	if len(added.nodeIDs) != 0 {
		t.Fatal("expected no border nodes for a graph with no compound parents")
	}
}
