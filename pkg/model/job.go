// Package model defines the core data structures used throughout the application.
package model

import (
	"encoding/json"
	"time"
)

// JobStatus represents the lifecycle state of a layout job.
type JobStatus int

const (
	JobStatusPending   JobStatus = 0 // Queued, not yet picked up
	JobStatusRunning   JobStatus = 1 // Layout pipeline in progress
	JobStatusCompleted JobStatus = 2 // Result written
	JobStatusFailed    JobStatus = 3 // Pipeline returned an error
)

// String returns the string representation of JobStatus.
func (s JobStatus) String() string {
	switch s {
	case JobStatusPending:
		return "pending"
	case JobStatusRunning:
		return "running"
	case JobStatusCompleted:
		return "completed"
	case JobStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LayoutJob represents a single request to lay out a host graph.
type LayoutJob struct {
	ID            int64          `json:"id" db:"id"`
	JobUUID       string         `json:"uuid" db:"uuid"`
	Status        JobStatus      `json:"status" db:"status"`
	StatusInfo    string         `json:"status_info" db:"status_info"`
	ResultFile    string         `json:"result_file" db:"result_file"`
	UserName      string         `json:"user_name" db:"user_name"`
	GraphBucket   string         `json:"graph_bucket" db:"graph_bucket"`
	RequestParams LayoutRequest  `json:"request_params" db:"request_params"`
	CreateTime    time.Time      `json:"create_time" db:"create_time"`
	BeginTime     *time.Time     `json:"begin_time" db:"begin_time"`
	EndTime       *time.Time     `json:"end_time" db:"end_time"`
}

// LayoutRequest holds the options a caller supplies alongside a graph to lay out.
type LayoutRequest struct {
	GraphKey string `json:"graph_key,omitempty"` // storage key of the input graph JSON
	RankDir  string `json:"rank_dir,omitempty"`  // "tb", "bt", "lr", "rl"
	NodeSep  int    `json:"node_sep,omitempty"`
	EdgeSep  int    `json:"edge_sep,omitempty"`
	RankSep  int    `json:"rank_sep,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler for LayoutRequest.
func (r *LayoutRequest) UnmarshalJSON(data []byte) error {
	type Alias LayoutRequest
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(r),
	}
	return json.Unmarshal(data, aux)
}

// NewLayoutJob creates a new pending LayoutJob.
func NewLayoutJob(id int64, uuid string, req LayoutRequest) *LayoutJob {
	return &LayoutJob{
		ID:            id,
		JobUUID:       uuid,
		Status:        JobStatusPending,
		RequestParams: req,
		CreateTime:    time.Now(),
	}
}
