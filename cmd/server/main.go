package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"amazon_intake_v1_202608/internal/controller"
	"amazon_intake_v1_202608/internal/model"
	"amazon_intake_v1_202608/internal/repository"
	"amazon_intake_v1_202608/internal/router"
	"amazon_intake_v1_202608/internal/service"
	"amazon_intake_v1_202608/internal/task"
	"amazon_intake_v1_202608/pkg/database"
)

func main() {
	// 1. Database
	db := initDatabase()

	// 2. Dependencies
	deps := initDependencies(db)

	// 3. Background tasks
	initTasks(deps)

	// 4. Routes
	r := gin.Default()
	router.InitRoutes(r, deps.SubmissionCtl, deps.ManualCtl)

	// 5. Serve
	startServer(r)
}

// ==================== Dependency container ====================

type Dependencies struct {
	DB            *gorm.DB
	SubRepo       repository.SubmissionRepository
	JobRepo       repository.JobRepository
	RunRepo       repository.ManualRunRepository
	SubService    *service.SubmissionService
	Scraper       *task.ScraperTask
	Cleanup       *task.CleanupTask
	SubmissionCtl *controller.SubmissionController
	ManualCtl     *controller.ManualCSVController
}

// ==================== Init functions ====================

func initDatabase() *gorm.DB {
	return database.InitDB(
		getEnv("DB_PATH", "intake.db"),
		&model.Submission{}, &model.ScrapeJob{}, &model.ManualRun{},
	)
}

func initDependencies(db *gorm.DB) *Dependencies {
	subRepo := repository.NewSubmissionRepository(db)
	jobRepo := repository.NewJobRepository(db)
	runRepo := repository.NewManualRunRepository(db)

	subService := service.NewSubmissionService()
	scraper := task.NewScraperTask(service.NewScraperService(), jobRepo, subRepo)

	return &Dependencies{
		DB:            db,
		SubRepo:       subRepo,
		JobRepo:       jobRepo,
		RunRepo:       runRepo,
		SubService:    subService,
		Scraper:       scraper,
		Cleanup:       task.NewCleanupTask(),
		SubmissionCtl: controller.NewSubmissionController(subService, subRepo, scraper),
		ManualCtl:     controller.NewManualCSVController(runRepo),
	}
}

func initTasks(deps *Dependencies) {
	if err := deps.Cleanup.Start(); err != nil {
		log.Printf("cleanup task failed to start: %v", err)
		return
	}
	log.Println("background tasks started")
}

// ==================== Server ====================

func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "4000")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server exited")
}

// ==================== Helpers ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
