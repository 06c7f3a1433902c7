package scheduler

import (
	"context"

	"github.com/graphlayout/dagre/internal/repository"
	"github.com/graphlayout/dagre/pkg/model"
)

// RepositoryTaskFetcher implements TaskFetcher using repository interfaces.
type RepositoryTaskFetcher struct {
	jobRepo repository.JobRepository
}

// NewRepositoryTaskFetcher creates a new RepositoryTaskFetcher.
func NewRepositoryTaskFetcher(jobRepo repository.JobRepository) *RepositoryTaskFetcher {
	return &RepositoryTaskFetcher{jobRepo: jobRepo}
}

// FetchPendingTasks returns pending tasks to be processed.
func (f *RepositoryTaskFetcher) FetchPendingTasks(ctx context.Context, limit int) ([]*Task, error) {
	jobs, err := f.jobRepo.GetPendingJobs(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*Task, len(jobs))
	for i, j := range jobs {
		result[i] = convertModelTask(j)
	}

	return result, nil
}

// LockTask attempts to lock a task for processing.
func (f *RepositoryTaskFetcher) LockTask(ctx context.Context, taskID int64) (bool, error) {
	return f.jobRepo.LockJobForProcessing(ctx, taskID)
}

// UpdateTaskStatus updates the task status.
func (f *RepositoryTaskFetcher) UpdateTaskStatus(ctx context.Context, taskID int64, status model.JobStatus, info string) error {
	if info != "" {
		return f.jobRepo.UpdateJobStatusWithInfo(ctx, taskID, status, info)
	}
	return f.jobRepo.UpdateJobStatus(ctx, taskID, status)
}

// convertModelTask converts a model.LayoutJob to a scheduler.Task.
func convertModelTask(j *model.LayoutJob) *Task {
	return &Task{
		ID:            j.ID,
		UUID:          j.JobUUID,
		ResultFile:    j.ResultFile,
		UserName:      j.UserName,
		GraphBucket:   j.GraphBucket,
		RequestParams: j.RequestParams,
		Priority:      0,
	}
}
