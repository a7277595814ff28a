package task

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"amazon_intake_v1_202608/internal/api/dto"
	"amazon_intake_v1_202608/internal/model"
	"amazon_intake_v1_202608/internal/repository"
	"amazon_intake_v1_202608/internal/service"
)

// ==================== Interfaces ====================

// Runner executes one scrape job against the marketplace.
type Runner interface {
	Run(ctx context.Context, payload dto.SubmissionRequest) ([]service.ProductResult, error)
}

// ==================== ScraperTask ====================

const maxQueue = 16

// ErrQueueFull is returned when the pending queue has no room left.
var ErrQueueFull = errors.New("scraper queue is full")

// queuedJob is one accepted submission waiting its turn.
type queuedJob struct {
	jobID        string
	submissionID int64
	payload      dto.SubmissionRequest
	csvPaths     []string
}

// ScraperTask runs scrape jobs one at a time. A submission that arrives
// while a job is running is queued (FIFO, bounded); the loop drains the
// queue after each job finishes.
type ScraperTask struct {
	runner  Runner
	jobRepo repository.JobRepository
	subRepo repository.SubmissionRepository

	mutex   sync.Mutex
	running bool
	queue   []queuedJob

	jobTimeout time.Duration
}

func NewScraperTask(runner Runner, jobRepo repository.JobRepository, subRepo repository.SubmissionRepository) *ScraperTask {
	return &ScraperTask{
		runner:     runner,
		jobRepo:    jobRepo,
		subRepo:    subRepo,
		jobTimeout: 30 * time.Minute,
	}
}

// Running reports whether a job is currently executing.
func (t *ScraperTask) Running() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.running
}

// QueueSize returns the number of jobs waiting behind the current one.
func (t *ScraperTask) QueueSize() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.queue)
}

// Enqueue accepts a submission for scraping. If the runner is idle the
// job starts immediately in the background and started is true;
// otherwise the job is queued and started is false. csvPaths are staged
// temp files removed once the job completes. A rejected submission
// leaves no job row behind: the capacity check runs before anything is
// persisted.
func (t *ScraperTask) Enqueue(ctx context.Context, submissionID int64, payload dto.SubmissionRequest, csvPaths []string) (started bool, err error) {
	job := queuedJob{
		jobID:        uuid.NewString(),
		submissionID: submissionID,
		payload:      payload,
		csvPaths:     csvPaths,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return false, err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.running && len(t.queue) >= maxQueue {
		return false, ErrQueueFull
	}

	if err := t.jobRepo.Create(ctx, &model.ScrapeJob{
		ID:           job.jobID,
		SubmissionID: submissionID,
		Payload:      datatypes.JSON(raw),
		Status:       model.JobStatusPending,
	}); err != nil {
		return false, err
	}

	if t.running {
		t.queue = append(t.queue, job)
		log.Printf("[ScraperTask] job %s queued, position %d", job.jobID, len(t.queue))
		return false, nil
	}
	t.running = true
	go t.loop(job)
	return true, nil
}

// loop runs the given job and then drains the queue until empty.
func (t *ScraperTask) loop(first queuedJob) {
	job := first
	for {
		t.runOne(job)

		t.mutex.Lock()
		if len(t.queue) == 0 {
			t.running = false
			t.mutex.Unlock()
			return
		}
		job = t.queue[0]
		t.queue = t.queue[1:]
		t.mutex.Unlock()
	}
}

func (t *ScraperTask) runOne(job queuedJob) {
	defer t.cleanupFiles(job.csvPaths)

	log.Printf("[ScraperTask] job %s started", job.jobID)

	ctx, cancel := context.WithTimeout(context.Background(), t.jobTimeout)
	defer cancel()

	if err := t.jobRepo.MarkRunning(ctx, job.jobID); err != nil {
		log.Printf("[ScraperTask] job %s: mark running: %v", job.jobID, err)
	}
	t.setSubmissionStatus(job.submissionID, model.SubmissionStatusStarted)

	results, err := t.runner.Run(ctx, job.payload)
	if err != nil {
		log.Printf("[ScraperTask] job %s failed: %v", job.jobID, err)
		if repoErr := t.jobRepo.MarkFailed(context.Background(), job.jobID, err.Error()); repoErr != nil {
			log.Printf("[ScraperTask] job %s: mark failed: %v", job.jobID, repoErr)
		}
		t.setSubmissionStatus(job.submissionID, model.SubmissionStatusFailed)
		return
	}

	raw, err := json.Marshal(results)
	if err != nil {
		raw = []byte("[]")
	}
	if err := t.jobRepo.MarkDone(ctx, job.jobID, raw); err != nil {
		log.Printf("[ScraperTask] job %s: mark done: %v", job.jobID, err)
	}
	t.setSubmissionStatus(job.submissionID, model.SubmissionStatusFinished)
	log.Printf("[ScraperTask] job %s finished, %d products", job.jobID, len(results))
}

func (t *ScraperTask) setSubmissionStatus(id int64, status string) {
	if id == 0 {
		return
	}
	if err := t.subRepo.UpdateStatus(context.Background(), id, status); err != nil {
		log.Printf("[ScraperTask] submission %d: update status: %v", id, err)
	}
}

func (t *ScraperTask) cleanupFiles(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("[ScraperTask] remove %s: %v", p, err)
		}
	}
}
