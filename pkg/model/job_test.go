package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus_String(t *testing.T) {
	tests := []struct {
		status   JobStatus
		expected string
	}{
		{JobStatusPending, "pending"},
		{JobStatusRunning, "running"},
		{JobStatusCompleted, "completed"},
		{JobStatusFailed, "failed"},
		{JobStatus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestNewLayoutJob(t *testing.T) {
	req := LayoutRequest{GraphKey: "graphs/1.json", RankDir: "tb"}
	job := NewLayoutJob(1, "uuid-1", req)

	assert.Equal(t, int64(1), job.ID)
	assert.Equal(t, "uuid-1", job.JobUUID)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, req, job.RequestParams)
	assert.False(t, job.CreateTime.IsZero())
}

func TestLayoutRequest_UnmarshalJSON(t *testing.T) {
	jsonStr := `{"graph_key": "g.json", "rank_dir": "lr", "node_sep": 20}`

	var req LayoutRequest
	err := json.Unmarshal([]byte(jsonStr), &req)

	require.NoError(t, err)
	assert.Equal(t, "g.json", req.GraphKey)
	assert.Equal(t, "lr", req.RankDir)
	assert.Equal(t, 20, req.NodeSep)
}
