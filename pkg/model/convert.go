package model

import (
	"fmt"

	"github.com/graphlayout/dagre/internal/hostgraph"
)

// GraphInputToHostGraph builds a host graph from the wire format a caller
// submits alongside a LayoutJob. Node/edge defaults (weight, minlen) are
// applied by hostgraph.Graph.AddNode/AddEdge; this only maps fields across.
func GraphInputToHostGraph(in *GraphInput) (*hostgraph.Graph, error) {
	if in == nil {
		return nil, fmt.Errorf("model: nil graph input")
	}

	cfg := hostgraph.DefaultConfig()
	if in.RankDir != "" {
		cfg.RankDir = in.RankDir
	}
	if in.NodeSep > 0 {
		cfg.NodeSep = in.NodeSep
	}
	if in.EdgeSep > 0 {
		cfg.EdgeSep = in.EdgeSep
	}
	if in.RankSep > 0 {
		cfg.RankSep = in.RankSep
	}

	h := hostgraph.New(cfg)
	for _, n := range in.Nodes {
		if err := h.AddNode(&hostgraph.Node{
			ID: n.ID, Width: n.Width, Height: n.Height, Parent: n.Parent,
		}); err != nil {
			return nil, err
		}
	}
	for i, e := range in.Edges {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("e%d", i)
		}
		if err := h.AddEdge(&hostgraph.Edge{
			ID: id, From: e.From, To: e.To, Weight: e.Weight, MinLen: e.MinLen,
			LabelWidth: e.LabelWidth, LabelHeight: e.LabelHeight,
		}); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// HostGraphToResult reads the placed coordinates off a laid-out host graph
// into the wire format persisted and returned to callers.
func HostGraphToResult(h *hostgraph.Graph, jobUUID, version, rankDir string, phases []PhaseResult, totalNanos int64) *LayoutResult {
	nodes := h.Nodes()
	out := &LayoutResult{
		JobUUID:    jobUUID,
		Version:    version,
		RankDir:    rankDir,
		Nodes:      make([]NodeLayout, 0, len(nodes)),
		Phases:     phases,
		TotalNanos: totalNanos,
	}

	for _, n := range nodes {
		out.Nodes = append(out.Nodes, NodeLayout{
			ID: n.ID, X: n.X, Y: n.Y, Width: n.Width, Height: n.Height,
			Rank: n.Rank, Order: n.Order,
		})
		right := n.X + n.Width/2
		bottom := n.Y + n.Height/2
		if right > out.Width {
			out.Width = right
		}
		if bottom > out.Height {
			out.Height = bottom
		}
	}

	for _, e := range h.Edges() {
		el := EdgeLayout{ID: e.ID, From: e.From, To: e.To}
		for _, p := range e.Points {
			el.Points = append(el.Points, EdgePoint{X: p.X, Y: p.Y})
		}
		if e.Label != nil {
			el.LabelX = e.Label.X
			el.LabelY = e.Label.Y
			el.LabelWidth = e.Label.Width
			el.LabelHeight = e.Label.Height
		}
		out.Edges = append(out.Edges, el)
	}

	return out
}
