// Package repository persists layout jobs and their results through GORM,
// grounded on the teacher's repository layer: one interface per aggregate,
// a GORM-backed implementation per interface, assembled by a factory.
package repository

import (
	"context"

	"github.com/graphlayout/dagre/pkg/model"
)

// JobRepository defines the interface for layout job database operations.
type JobRepository interface {
	// CreateJob inserts a new pending job.
	CreateJob(ctx context.Context, job *model.LayoutJob) error

	// GetPendingJobs retrieves jobs that are queued for processing.
	GetPendingJobs(ctx context.Context, limit int) ([]*model.LayoutJob, error)

	// GetJobByID retrieves a job by its numeric ID.
	GetJobByID(ctx context.Context, id int64) (*model.LayoutJob, error)

	// GetJobByUUID retrieves a job by its UUID.
	GetJobByUUID(ctx context.Context, uuid string) (*model.LayoutJob, error)

	// LockJobForProcessing attempts to transition a job from pending to
	// running, preventing concurrent processing by another worker.
	LockJobForProcessing(ctx context.Context, id int64) (bool, error)

	// UpdateJobStatus updates a job's status.
	UpdateJobStatus(ctx context.Context, id int64, status model.JobStatus) error

	// UpdateJobStatusWithInfo updates a job's status with additional info.
	UpdateJobStatusWithInfo(ctx context.Context, id int64, status model.JobStatus, info string) error
}

// ResultRepository defines the interface for layout result operations.
type ResultRepository interface {
	// SaveResult saves a layout result, replacing any prior result for the
	// same job.
	SaveResult(ctx context.Context, result *model.LayoutResult) error

	// GetResultByJobUUID retrieves the layout result for a job.
	GetResultByJobUUID(ctx context.Context, jobUUID string) (*model.LayoutResult, error)
}
