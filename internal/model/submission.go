package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== Submission ====================

// Submission status values.
const (
	SubmissionStatusQueued   = "queued"
	SubmissionStatusStarted  = "started"
	SubmissionStatusFinished = "finished"
	SubmissionStatusFailed   = "failed"
)

// Submission is one accepted intake payload, stored exactly as it will
// be fed to the scraper (post country normalization and filtering).
type Submission struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Payload    datatypes.JSON `gorm:"type:json" json:"payload"`
	BrandCount int            `json:"brand_count"`
	FileCount  int            `json:"file_count"`
	Status     string         `gorm:"size:16;index" json:"status"`
}

func (Submission) TableName() string { return "submissions" }
