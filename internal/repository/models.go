package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/graphlayout/dagre/pkg/model"
)

// gormLayoutJob is the GORM row for one queued or processed layout job.
type gormLayoutJob struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	JobUUID     string     `gorm:"column:job_uuid;uniqueIndex;size:64"`
	Status      int        `gorm:"column:status;index"`
	StatusInfo  string     `gorm:"column:status_info"`
	ResultFile  string     `gorm:"column:result_file"`
	UserName    string     `gorm:"column:user_name"`
	GraphBucket string     `gorm:"column:graph_bucket"`
	GraphKey    string     `gorm:"column:graph_key"`
	RankDir     string     `gorm:"column:rank_dir;size:8"`
	NodeSep     int        `gorm:"column:node_sep"`
	EdgeSep     int        `gorm:"column:edge_sep"`
	RankSep     int        `gorm:"column:rank_sep"`
	CreateTime  time.Time  `gorm:"column:create_time;autoCreateTime"`
	BeginTime   *time.Time `gorm:"column:begin_time"`
	EndTime     *time.Time `gorm:"column:end_time"`
}

// TableName returns the table name for gormLayoutJob.
func (gormLayoutJob) TableName() string {
	return "layout_jobs"
}

// ToModel converts a gormLayoutJob row into a model.LayoutJob.
func (j *gormLayoutJob) ToModel() *model.LayoutJob {
	return &model.LayoutJob{
		ID:          j.ID,
		JobUUID:     j.JobUUID,
		Status:      model.JobStatus(j.Status),
		StatusInfo:  j.StatusInfo,
		ResultFile:  j.ResultFile,
		UserName:    j.UserName,
		GraphBucket: j.GraphBucket,
		RequestParams: model.LayoutRequest{
			GraphKey: j.GraphKey,
			RankDir:  j.RankDir,
			NodeSep:  j.NodeSep,
			EdgeSep:  j.EdgeSep,
			RankSep:  j.RankSep,
		},
		CreateTime: j.CreateTime,
		BeginTime:  j.BeginTime,
		EndTime:    j.EndTime,
	}
}

// gormLayoutJobFromModel builds the GORM row for a model.LayoutJob.
func gormLayoutJobFromModel(j *model.LayoutJob) *gormLayoutJob {
	return &gormLayoutJob{
		ID:          j.ID,
		JobUUID:     j.JobUUID,
		Status:      int(j.Status),
		StatusInfo:  j.StatusInfo,
		ResultFile:  j.ResultFile,
		UserName:    j.UserName,
		GraphBucket: j.GraphBucket,
		GraphKey:    j.RequestParams.GraphKey,
		RankDir:     j.RequestParams.RankDir,
		NodeSep:     j.RequestParams.NodeSep,
		EdgeSep:     j.RequestParams.EdgeSep,
		RankSep:     j.RequestParams.RankSep,
		CreateTime:  j.CreateTime,
		BeginTime:   j.BeginTime,
		EndTime:     j.EndTime,
	}
}

// gormLayoutResult is the GORM row for a completed job's layout output.
type gormLayoutResult struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	JobUUID    string    `gorm:"column:job_uuid;uniqueIndex;size:64"`
	Version    string    `gorm:"column:version;size:32"`
	RankDir    string    `gorm:"column:rank_dir;size:8"`
	Nodes      JSONField `gorm:"column:nodes;type:json"`
	Edges      JSONField `gorm:"column:edges;type:json"`
	Phases     JSONField `gorm:"column:phases;type:json"`
	TotalNanos int64     `gorm:"column:total_nanos"`
	Width      float64   `gorm:"column:width"`
	Height     float64   `gorm:"column:height"`
	LaidOutAt  time.Time `gorm:"column:laid_out_at"`
}

// TableName returns the table name for gormLayoutResult.
func (gormLayoutResult) TableName() string {
	return "layout_results"
}

// ToModel converts a gormLayoutResult row into a model.LayoutResult.
func (r *gormLayoutResult) ToModel() (*model.LayoutResult, error) {
	result := &model.LayoutResult{
		JobUUID:    r.JobUUID,
		Version:    r.Version,
		RankDir:    r.RankDir,
		TotalNanos: r.TotalNanos,
		Width:      r.Width,
		Height:     r.Height,
		LaidOutAt:  r.LaidOutAt,
	}
	if r.Nodes != nil {
		if err := json.Unmarshal(r.Nodes, &result.Nodes); err != nil {
			return nil, err
		}
	}
	if r.Edges != nil {
		if err := json.Unmarshal(r.Edges, &result.Edges); err != nil {
			return nil, err
		}
	}
	if r.Phases != nil {
		if err := json.Unmarshal(r.Phases, &result.Phases); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// gormLayoutResultFromModel builds the GORM row for a model.LayoutResult.
func gormLayoutResultFromModel(result *model.LayoutResult) (*gormLayoutResult, error) {
	nodes, err := json.Marshal(result.Nodes)
	if err != nil {
		return nil, err
	}
	edges, err := json.Marshal(result.Edges)
	if err != nil {
		return nil, err
	}
	phases, err := json.Marshal(result.Phases)
	if err != nil {
		return nil, err
	}

	laidOutAt := result.LaidOutAt
	if laidOutAt.IsZero() {
		laidOutAt = time.Now()
	}

	return &gormLayoutResult{
		JobUUID:    result.JobUUID,
		Version:    result.Version,
		RankDir:    result.RankDir,
		Nodes:      nodes,
		Edges:      edges,
		Phases:     phases,
		TotalNanos: result.TotalNanos,
		Width:      result.Width,
		Height:     result.Height,
		LaidOutAt:  laidOutAt,
	}, nil
}

// JSONField stores an arbitrary JSON blob in a single database column.
type JSONField []byte

// Value implements driver.Valuer interface.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner interface.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return errors.New("unsupported type for JSONField")
	}
}

// MarshalJSON implements json.Marshaler interface.
func (j JSONField) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (j *JSONField) UnmarshalJSON(data []byte) error {
	if data == nil || string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}
