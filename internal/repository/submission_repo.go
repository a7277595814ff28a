package repository

import (
	"context"

	"gorm.io/gorm"

	"amazon_intake_v1_202608/internal/model"
)

// ==================== Interface ====================

// SubmissionRepository persists accepted intake payloads.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id int64) (*model.Submission, error)
	List(ctx context.Context, page, pageSize int) ([]model.Submission, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// ==================== Implementation ====================

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepository creates the gorm-backed submission store.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id int64) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) List(ctx context.Context, page, pageSize int) ([]model.Submission, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var subs []model.Submission
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Submission{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&subs).Error
	return subs, total, err
}

func (r *submissionRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("id = ?", id).
		Update("status", status).Error
}
