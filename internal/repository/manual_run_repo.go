package repository

import (
	"context"

	"gorm.io/gorm"

	"amazon_intake_v1_202608/internal/model"
)

// ManualRunRepository records manual CSV competitor picks.
type ManualRunRepository interface {
	Create(ctx context.Context, run *model.ManualRun) error
	ListRecent(ctx context.Context, limit int) ([]model.ManualRun, error)
}

type manualRunRepo struct {
	db *gorm.DB
}

// NewManualRunRepository creates the gorm-backed manual run store.
func NewManualRunRepository(db *gorm.DB) ManualRunRepository {
	return &manualRunRepo{db: db}
}

func (r *manualRunRepo) Create(ctx context.Context, run *model.ManualRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *manualRunRepo) ListRecent(ctx context.Context, limit int) ([]model.ManualRun, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var runs []model.ManualRun
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
