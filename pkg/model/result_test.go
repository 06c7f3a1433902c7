package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphInputToHostGraph(t *testing.T) {
	in := &GraphInput{
		RankDir: "tb",
		Nodes: []NodeInput{
			{ID: "a", Width: 10, Height: 10},
			{ID: "b", Width: 10, Height: 10},
		},
		Edges: []EdgeInput{
			{From: "a", To: "b"},
		},
	}

	h, err := GraphInputToHostGraph(in)
	require.NoError(t, err)
	assert.Equal(t, 2, h.NodeCount())
	assert.Equal(t, 1, h.EdgeCount())
	assert.Equal(t, "tb", h.Config.RankDir)
}

func TestGraphInputToHostGraph_MissingReference(t *testing.T) {
	in := &GraphInput{
		Nodes: []NodeInput{{ID: "a", Width: 10, Height: 10}},
		Edges: []EdgeInput{{From: "a", To: "missing"}},
	}

	_, err := GraphInputToHostGraph(in)
	assert.Error(t, err)
}

func TestHostGraphToResult(t *testing.T) {
	in := &GraphInput{
		Nodes: []NodeInput{
			{ID: "a", Width: 10, Height: 10},
			{ID: "b", Width: 10, Height: 10},
		},
		Edges: []EdgeInput{{From: "a", To: "b"}},
	}
	h, err := GraphInputToHostGraph(in)
	require.NoError(t, err)

	h.Node("a").X, h.Node("a").Y = 5, 5
	h.Node("b").X, h.Node("b").Y = 5, 60

	result := HostGraphToResult(h, "job-1", "1.0.0", "tb", nil, 42)
	assert.Equal(t, "job-1", result.JobUUID)
	assert.Len(t, result.Nodes, 2)
	assert.Len(t, result.Edges, 1)
	assert.Equal(t, int64(42), result.TotalNanos)
	assert.True(t, result.Height > 0)
}
