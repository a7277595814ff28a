package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"amazon_intake_v1_202608/internal/api/dto"
	"amazon_intake_v1_202608/internal/model"
	"amazon_intake_v1_202608/internal/repository"
	"amazon_intake_v1_202608/internal/service"
	"amazon_intake_v1_202608/internal/task"
)

// ==================== Interfaces ====================

// ScraperQueue is the slice of the scraper task the HTTP layer needs.
type ScraperQueue interface {
	Enqueue(ctx context.Context, submissionID int64, payload dto.SubmissionRequest, csvPaths []string) (bool, error)
	Running() bool
	QueueSize() int
}

// ==================== SubmissionController ====================

const (
	msgStarted = "Scraper started successfully in the background"
	msgQueued  = "Data submitted to queue, will start processing once scraper is free"
)

type SubmissionController struct {
	subService *service.SubmissionService
	subRepo    repository.SubmissionRepository
	queue      ScraperQueue
}

func NewSubmissionController(s *service.SubmissionService, repo repository.SubmissionRepository, queue ScraperQueue) *SubmissionController {
	return &SubmissionController{subService: s, subRepo: repo, queue: queue}
}

// Health
// @Summary Liveness probe
// @Description Returns ok when the server is up; the wizard polls this to gate submission
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /health [get]
func (ctrl *SubmissionController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ScraperStatus
// @Summary Scraper runner state
// @Description Reports whether a scrape job is running and how many are queued
// @Tags Scraper
// @Produce json
// @Success 200 {object} dto.ScraperStatusResponse
// @Router /api/scraper-status [get]
func (ctrl *SubmissionController) ScraperStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ScraperStatusResponse{
		Running:   ctrl.queue.Running(),
		QueueSize: ctrl.queue.QueueSize(),
	})
}

// CreateSubmission
// @Summary Submit intake data
// @Description Validates and normalizes the brand payload, persists it and hands it to the scraper
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body dto.SubmissionRequest true "Intake payload"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/submissions [post]
func (ctrl *SubmissionController) CreateSubmission(c *gin.Context) {
	var req dto.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	payload, err := ctrl.subService.BuildScraperPayload(req, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ctrl.dispatch(c, payload, nil)
}

// CreateSubmissionWithFiles
// @Summary Submit intake data with CSV attachments
// @Description Multipart variant: brands_data JSON field plus csv_files parts staged to temp files
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param brands_data formData string true "Brands payload as JSON"
// @Param csv_files formData file true "CSV attachments"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/submissions-with-files [post]
func (ctrl *SubmissionController) CreateSubmissionWithFiles(c *gin.Context) {
	brandsData := c.PostForm("brands_data")
	var req dto.SubmissionRequest
	if err := json.Unmarshal([]byte(brandsData), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON in brands_data"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid multipart form"})
		return
	}

	csvPaths, tempFiles, err := ctrl.subService.StageCSVFiles(form.File["csv_files"])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to stage uploaded files"})
		return
	}

	payload, err := ctrl.subService.BuildScraperPayload(req, csvPaths)
	if err != nil {
		service.RemoveStagedFiles(tempFiles)
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ctrl.dispatch(c, payload, tempFiles)
}

// dispatch persists the submission and hands it to the queue. tempFiles
// are removed here only when the queue rejects the job; once accepted,
// the task owns their lifetime.
func (ctrl *SubmissionController) dispatch(c *gin.Context, payload dto.SubmissionRequest, tempFiles []string) {
	raw, err := json.Marshal(payload)
	if err != nil {
		service.RemoveStagedFiles(tempFiles)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to encode payload"})
		return
	}

	sub := &model.Submission{
		Payload:    datatypes.JSON(raw),
		BrandCount: len(payload.Brands),
		FileCount:  service.CountFiles(payload),
		Status:     model.SubmissionStatusQueued,
	}
	if err := ctrl.subRepo.Create(c.Request.Context(), sub); err != nil {
		log.Printf("[SubmissionController] persist submission: %v", err)
		service.RemoveStagedFiles(tempFiles)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to persist submission"})
		return
	}

	started, err := ctrl.queue.Enqueue(c.Request.Context(), sub.ID, payload, tempFiles)
	if err != nil {
		if !errors.Is(err, task.ErrQueueFull) {
			log.Printf("[SubmissionController] enqueue: %v", err)
		}
		// The submission will never run; don't leave it marked queued.
		if updErr := ctrl.subRepo.UpdateStatus(c.Request.Context(), sub.ID, model.SubmissionStatusFailed); updErr != nil {
			log.Printf("[SubmissionController] submission %d: update status: %v", sub.ID, updErr)
		}
		service.RemoveStagedFiles(tempFiles)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to add to queue"})
		return
	}

	msg := msgQueued
	if started {
		msg = msgStarted
	}
	c.JSON(http.StatusOK, dto.SubmissionResponse{OK: true, Message: msg, Payload: payload})
}
