package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphlayout/dagre/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// CreateJob inserts a new pending job.
func (r *GormJobRepository) CreateJob(ctx context.Context, job *model.LayoutJob) error {
	record := gormLayoutJobFromModel(job)

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	job.ID = record.ID
	return nil
}

// GetPendingJobs retrieves jobs that are queued for processing.
func (r *GormJobRepository) GetPendingJobs(ctx context.Context, limit int) ([]*model.LayoutJob, error) {
	var rows []gormLayoutJob

	err := r.db.WithContext(ctx).
		Where("status = ?", model.JobStatusPending).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to query pending jobs: %w", err)
	}

	jobs := make([]*model.LayoutJob, len(rows))
	for i := range rows {
		jobs[i] = rows[i].ToModel()
	}

	return jobs, nil
}

// GetJobByID retrieves a job by its numeric ID.
func (r *GormJobRepository) GetJobByID(ctx context.Context, id int64) (*model.LayoutJob, error) {
	var row gormLayoutJob

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return row.ToModel(), nil
}

// GetJobByUUID retrieves a job by its UUID.
func (r *GormJobRepository) GetJobByUUID(ctx context.Context, uuid string) (*model.LayoutJob, error) {
	var row gormLayoutJob

	err := r.db.WithContext(ctx).Where("job_uuid = ?", uuid).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job not found: %s", uuid)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return row.ToModel(), nil
}

// LockJobForProcessing attempts to transition a job from pending to running
// using a row lock, so two workers can't pick up the same job.
func (r *GormJobRepository) LockJobForProcessing(ctx context.Context, id int64) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row gormLayoutJob

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", id, model.JobStatusPending).
			First(&row).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return err
		}

		return tx.Model(&gormLayoutJob{}).
			Where("id = ?", id).
			Update("status", int(model.JobStatusRunning)).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock job: %w", err)
	}

	return true, nil
}

// UpdateJobStatus updates a job's status.
func (r *GormJobRepository) UpdateJobStatus(ctx context.Context, id int64, status model.JobStatus) error {
	result := r.db.WithContext(ctx).
		Model(&gormLayoutJob{}).
		Where("id = ?", id).
		Update("status", int(status))

	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found: %d", id)
	}

	return nil
}

// UpdateJobStatusWithInfo updates a job's status with additional info.
func (r *GormJobRepository) UpdateJobStatusWithInfo(ctx context.Context, id int64, status model.JobStatus, info string) error {
	result := r.db.WithContext(ctx).
		Model(&gormLayoutJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      int(status),
			"status_info": info,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found: %d", id)
	}

	return nil
}

// GormResultRepository implements ResultRepository using GORM.
type GormResultRepository struct {
	db      *gorm.DB
	version string
}

// NewGormResultRepository creates a new GormResultRepository.
func NewGormResultRepository(db *gorm.DB, version string) *GormResultRepository {
	return &GormResultRepository{db: db, version: version}
}

// SaveResult saves a layout result, replacing any prior result for the same
// job.
func (r *GormResultRepository) SaveResult(ctx context.Context, result *model.LayoutResult) error {
	if result.Version == "" {
		result.Version = r.version
	}

	record, err := gormLayoutResultFromModel(result)
	if err != nil {
		return fmt.Errorf("failed to marshal layout result: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_uuid = ?", result.JobUUID).Delete(&gormLayoutResult{}).Error; err != nil {
			return fmt.Errorf("failed to clear prior result: %w", err)
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to save layout result: %w", err)
		}
		return nil
	})
}

// GetResultByJobUUID retrieves the layout result for a job.
func (r *GormResultRepository) GetResultByJobUUID(ctx context.Context, jobUUID string) (*model.LayoutResult, error) {
	var row gormLayoutResult

	err := r.db.WithContext(ctx).Where("job_uuid = ?", jobUUID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("result not found for job: %s", jobUUID)
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	return row.ToModel()
}
