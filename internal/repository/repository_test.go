package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"amazon_intake_v1_202608/internal/model"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Submission{}, &model.ScrapeJob{}, &model.ManualRun{}))
	return db
}

func TestSubmissionRepoLifecycle(t *testing.T) {
	repo := NewSubmissionRepository(setupRepoTestDB(t))
	ctx := context.Background()

	sub := &model.Submission{
		Payload:    datatypes.JSON(`{"brands":[]}`),
		BrandCount: 2,
		FileCount:  1,
		Status:     model.SubmissionStatusQueued,
	}
	require.NoError(t, repo.Create(ctx, sub))
	require.NotZero(t, sub.ID)

	require.NoError(t, repo.UpdateStatus(ctx, sub.ID, model.SubmissionStatusFinished))

	got, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusFinished, got.Status)
	assert.Equal(t, 2, got.BrandCount)

	list, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)
}

func TestJobRepoStatusTransitions(t *testing.T) {
	repo := NewJobRepository(setupRepoTestDB(t))
	ctx := context.Background()

	job := &model.ScrapeJob{
		ID:      "11111111-2222-3333-4444-555555555555",
		Payload: datatypes.JSON(`{}`),
		Status:  model.JobStatusPending,
	}
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, repo.MarkRunning(ctx, job.ID))
	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusRunning, got.Status)
	assert.NotNil(t, got.StartedAt)

	require.NoError(t, repo.MarkDone(ctx, job.ID, []byte(`[{"title":"t"}]`)))
	got, err = repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDone, got.Status)
	assert.NotNil(t, got.FinishedAt)
	assert.NotEmpty(t, got.Results)

	n, err := repo.CountByStatus(ctx, model.JobStatusDone)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestJobRepoMarkFailed(t *testing.T) {
	repo := NewJobRepository(setupRepoTestDB(t))
	ctx := context.Background()

	job := &model.ScrapeJob{ID: "aaaa", Status: model.JobStatusPending}
	require.NoError(t, repo.Create(ctx, job))
	require.NoError(t, repo.MarkFailed(ctx, job.ID, "fetch timeout"))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusFailed, got.Status)
	assert.Equal(t, "fetch timeout", got.Error)
}

func TestManualRunRepo(t *testing.T) {
	repo := NewManualRunRepository(setupRepoTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.ManualRun{
		RowNumber: 4, Country: "US", KeywordPhrase: "garlic press",
		Status: model.ManualRunStatusPicked,
	}))
	require.NoError(t, repo.Create(ctx, &model.ManualRun{
		RowNumber: 5, Country: "UK", KeywordPhrase: "press",
		Status: model.ManualRunStatusFailed, Error: "empty csv",
	}))

	runs, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
