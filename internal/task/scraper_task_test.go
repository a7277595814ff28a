package task

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"amazon_intake_v1_202608/internal/api/dto"
	"amazon_intake_v1_202608/internal/model"
	"amazon_intake_v1_202608/internal/repository"
	"amazon_intake_v1_202608/internal/service"
)

// ==================== Test helpers ====================

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Submission{}, &model.ScrapeJob{}))
	return db
}

// fakeRunner lets the test hold a job open and observe calls.
type fakeRunner struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	err     error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{release: make(chan struct{})}
}

func (r *fakeRunner) Run(ctx context.Context, payload dto.SubmissionRequest) ([]service.ProductResult, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	select {
	case <-r.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if r.err != nil {
		return nil, r.err
	}
	return []service.ProductResult{{ProductName: "p", Title: "t"}}, nil
}

func (r *fakeRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func testPayload() dto.SubmissionRequest {
	return dto.SubmissionRequest{Brands: []dto.BrandData{
		{Brand: "Acme", Countries: []dto.CountryData{
			{Name: "US", Products: []dto.ProductData{{ProductName: "Press", URL: "https://amazon.com/dp/B01"}}},
		}},
	}}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

// ==================== Tests ====================

func TestEnqueueStartsWhenIdle(t *testing.T) {
	db := setupTaskTestDB(t)
	runner := newFakeRunner()
	jobRepo := repository.NewJobRepository(db)
	task := NewScraperTask(runner, jobRepo, repository.NewSubmissionRepository(db))

	started, err := task.Enqueue(context.Background(), 0, testPayload(), nil)
	require.NoError(t, err)
	assert.True(t, started)

	waitFor(t, task.Running)
	assert.Equal(t, 0, task.QueueSize())

	close(runner.release)
	waitFor(t, func() bool { return !task.Running() })
	assert.Equal(t, 1, runner.callCount())

	jobs, err := jobRepo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, model.JobStatusDone, jobs[0].Status)
	assert.NotNil(t, jobs[0].FinishedAt)
}

func TestEnqueueQueuesWhileBusy(t *testing.T) {
	db := setupTaskTestDB(t)
	runner := newFakeRunner()
	task := NewScraperTask(runner, repository.NewJobRepository(db), repository.NewSubmissionRepository(db))

	started, err := task.Enqueue(context.Background(), 0, testPayload(), nil)
	require.NoError(t, err)
	require.True(t, started)
	waitFor(t, task.Running)

	started, err = task.Enqueue(context.Background(), 0, testPayload(), nil)
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, 1, task.QueueSize())

	// Releasing the runner drains the queued job too.
	close(runner.release)
	waitFor(t, func() bool { return !task.Running() && task.QueueSize() == 0 })
	assert.Equal(t, 2, runner.callCount())
}

func TestEnqueueRejectsWhenFull(t *testing.T) {
	db := setupTaskTestDB(t)
	runner := newFakeRunner()
	jobRepo := repository.NewJobRepository(db)
	task := NewScraperTask(runner, jobRepo, repository.NewSubmissionRepository(db))

	_, err := task.Enqueue(context.Background(), 0, testPayload(), nil)
	require.NoError(t, err)
	waitFor(t, task.Running)

	for i := 0; i < maxQueue; i++ {
		started, err := task.Enqueue(context.Background(), 0, testPayload(), nil)
		require.NoError(t, err)
		require.False(t, started)
	}

	_, err = task.Enqueue(context.Background(), 0, testPayload(), nil)
	assert.ErrorIs(t, err, ErrQueueFull)

	// The rejection must not leave a job row behind: only the running
	// job and the accepted queue occupants exist.
	var total int64
	require.NoError(t, db.Model(&model.ScrapeJob{}).Count(&total).Error)
	assert.EqualValues(t, 1+maxQueue, total)

	close(runner.release)
	waitFor(t, func() bool { return !task.Running() })
}

func TestRunFailureMarksJobAndSubmission(t *testing.T) {
	db := setupTaskTestDB(t)
	runner := newFakeRunner()
	runner.err = context.DeadlineExceeded
	jobRepo := repository.NewJobRepository(db)
	subRepo := repository.NewSubmissionRepository(db)
	task := NewScraperTask(runner, jobRepo, subRepo)

	sub := &model.Submission{Status: model.SubmissionStatusQueued}
	require.NoError(t, subRepo.Create(context.Background(), sub))

	_, err := task.Enqueue(context.Background(), sub.ID, testPayload(), nil)
	require.NoError(t, err)
	close(runner.release)
	waitFor(t, func() bool { return !task.Running() })

	jobs, err := jobRepo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, model.JobStatusFailed, jobs[0].Status)
	assert.NotEmpty(t, jobs[0].Error)

	got, err := subRepo.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusFailed, got.Status)
}

func TestRunOneCleansUpTempFiles(t *testing.T) {
	db := setupTaskTestDB(t)
	runner := newFakeRunner()
	task := NewScraperTask(runner, repository.NewJobRepository(db), repository.NewSubmissionRepository(db))

	tmp := filepath.Join(t.TempDir(), "intake-upload-test.csv")
	require.NoError(t, os.WriteFile(tmp, []byte("a,b\n1,2\n"), 0o644))

	_, err := task.Enqueue(context.Background(), 0, testPayload(), []string{tmp})
	require.NoError(t, err)
	close(runner.release)
	waitFor(t, func() bool { return !task.Running() })

	assert.NoFileExists(t, tmp)
}
