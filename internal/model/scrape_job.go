package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== ScrapeJob ====================

// Job lifecycle states.
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// ScrapeJob is one unit of scraper work derived from a submission. Jobs
// run one at a time; while the runner is busy new jobs wait in the
// pending state.
type ScrapeJob struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SubmissionID int64          `gorm:"index" json:"submission_id"`
	Payload      datatypes.JSON `gorm:"type:json" json:"payload"`
	Status       string         `gorm:"size:16;index" json:"status"`
	Error        string         `json:"error,omitempty"`
	Results      datatypes.JSON `gorm:"type:json" json:"results,omitempty"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (ScrapeJob) TableName() string { return "scrape_jobs" }

// ==================== ManualRun ====================

// Manual run outcomes.
const (
	ManualRunStatusPicked = "picked"
	ManualRunStatusFailed = "failed"
)

// ManualRun records one manual CSV competitor pick: the inputs that came
// with the upload and the row the picker selected.
type ManualRun struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RowNumber     int    `json:"row_number"`
	Country       string `gorm:"size:8" json:"country"`
	KeywordPhrase string `json:"keyword_phrase"`
	SellerType    string `gorm:"size:32" json:"seller_type"`

	ProductDetails string `json:"product_details"`
	CompetitorURL  string `json:"competitor_url"`
	Revenue        string `gorm:"size:64" json:"revenue"`
	CreationDate   string `gorm:"size:32" json:"creation_date"`

	Status string `gorm:"size:16" json:"status"`
	Error  string `json:"error,omitempty"`
}

func (ManualRun) TableName() string { return "manual_runs" }
