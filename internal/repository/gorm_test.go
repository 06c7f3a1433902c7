package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/graphlayout/dagre/pkg/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&gormLayoutJob{}, &gormLayoutResult{})
	require.NoError(t, err)

	return db
}

func testJob(uuid string) *model.LayoutJob {
	return model.NewLayoutJob(0, uuid, model.LayoutRequest{GraphKey: "graphs/" + uuid + ".json", RankDir: "tb"})
}

func TestGormJobRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	job := testJob("job-1")
	require.NoError(t, repo.CreateJob(ctx, job))
	assert.NotZero(t, job.ID)

	t.Run("GetJobByID", func(t *testing.T) {
		got, err := repo.GetJobByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "job-1", got.JobUUID)
		assert.Equal(t, model.JobStatusPending, got.Status)
	})

	t.Run("GetJobByUUID", func(t *testing.T) {
		got, err := repo.GetJobByUUID(ctx, "job-1")
		require.NoError(t, err)
		assert.Equal(t, job.ID, got.ID)
	})

	t.Run("GetJobByID_NotFound", func(t *testing.T) {
		got, err := repo.GetJobByID(ctx, 999)
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetJobByUUID_NotFound", func(t *testing.T) {
		got, err := repo.GetJobByUUID(ctx, "nonexistent")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestGormJobRepository_GetPendingJobs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		jobs, err := repo.GetPendingJobs(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("WithData", func(t *testing.T) {
		require.NoError(t, repo.CreateJob(ctx, testJob("job-2")))

		jobs, err := repo.GetPendingJobs(ctx, 10)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "job-2", jobs[0].JobUUID)
	})
}

func TestGormJobRepository_LockJobForProcessing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		locked, err := repo.LockJobForProcessing(ctx, 999)
		require.NoError(t, err)
		assert.False(t, locked)
	})

	t.Run("Success", func(t *testing.T) {
		job := testJob("job-3")
		require.NoError(t, repo.CreateJob(ctx, job))

		locked, err := repo.LockJobForProcessing(ctx, job.ID)
		require.NoError(t, err)
		assert.True(t, locked)

		got, err := repo.GetJobByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusRunning, got.Status)

		// A second attempt should fail since status is no longer pending.
		locked, err = repo.LockJobForProcessing(ctx, job.ID)
		require.NoError(t, err)
		assert.False(t, locked)
	})
}

func TestGormJobRepository_UpdateJobStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		err := repo.UpdateJobStatus(ctx, 999, model.JobStatusCompleted)
		assert.Error(t, err)
	})

	t.Run("Success", func(t *testing.T) {
		job := testJob("job-4")
		require.NoError(t, repo.CreateJob(ctx, job))

		require.NoError(t, repo.UpdateJobStatus(ctx, job.ID, model.JobStatusCompleted))

		got, err := repo.GetJobByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCompleted, got.Status)
	})
}

func TestGormJobRepository_UpdateJobStatusWithInfo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	job := testJob("job-5")
	require.NoError(t, repo.CreateJob(ctx, job))

	require.NoError(t, repo.UpdateJobStatusWithInfo(ctx, job.ID, model.JobStatusFailed, "boom"))

	got, err := repo.GetJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusFailed, got.Status)
	assert.Equal(t, "boom", got.StatusInfo)
}

func TestGormResultRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormResultRepository(db, "1.0.0")
	ctx := context.Background()

	result := &model.LayoutResult{
		JobUUID: "result-uuid-1",
		RankDir: "tb",
		Nodes:   []model.NodeLayout{{ID: "a", X: 1, Y: 2, Width: 10, Height: 10}},
		Edges:   []model.EdgeLayout{{ID: "e0", From: "a", To: "b"}},
	}

	t.Run("SaveResult_Success", func(t *testing.T) {
		require.NoError(t, repo.SaveResult(ctx, result))
	})

	t.Run("GetResultByJobUUID_Success", func(t *testing.T) {
		got, err := repo.GetResultByJobUUID(ctx, "result-uuid-1")
		require.NoError(t, err)
		assert.Equal(t, "result-uuid-1", got.JobUUID)
		assert.Equal(t, "1.0.0", got.Version)
		require.Len(t, got.Nodes, 1)
		assert.Equal(t, "a", got.Nodes[0].ID)
	})

	t.Run("GetResultByJobUUID_NotFound", func(t *testing.T) {
		got, err := repo.GetResultByJobUUID(ctx, "nonexistent")
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("SaveResult_ReplacesPrior", func(t *testing.T) {
		updated := &model.LayoutResult{
			JobUUID: "result-uuid-1",
			RankDir: "tb",
			Nodes:   []model.NodeLayout{{ID: "a"}, {ID: "b"}},
		}
		require.NoError(t, repo.SaveResult(ctx, updated))

		got, err := repo.GetResultByJobUUID(ctx, "result-uuid-1")
		require.NoError(t, err)
		assert.Len(t, got.Nodes, 2)
	})
}
