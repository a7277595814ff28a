package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"amazon_intake_v1_202608/internal/model"
)

// ==================== Interface ====================

// JobRepository persists scraper jobs and their lifecycle transitions.
type JobRepository interface {
	Create(ctx context.Context, job *model.ScrapeJob) error
	GetByID(ctx context.Context, id string) (*model.ScrapeJob, error)
	MarkRunning(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string, results []byte) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.ScrapeJob, error)
}

// ==================== Implementation ====================

type jobRepo struct {
	db *gorm.DB
}

// NewJobRepository creates the gorm-backed job store.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *model.ScrapeJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*model.ScrapeJob, error) {
	var job model.ScrapeJob
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) MarkRunning(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.ScrapeJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     model.JobStatusRunning,
			"started_at": &now,
		}).Error
}

func (r *jobRepo) MarkDone(ctx context.Context, id string, results []byte) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      model.JobStatusDone,
		"finished_at": &now,
	}
	if len(results) > 0 {
		updates["results"] = results
	}
	return r.db.WithContext(ctx).
		Model(&model.ScrapeJob{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *jobRepo) MarkFailed(ctx context.Context, id string, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.ScrapeJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      model.JobStatusFailed,
			"error":       errMsg,
			"finished_at": &now,
		}).Error
}

func (r *jobRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ScrapeJob{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *jobRepo) ListRecent(ctx context.Context, limit int) ([]model.ScrapeJob, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var jobs []model.ScrapeJob
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}
