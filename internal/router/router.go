package router

import (
	"amazon_intake_v1_202608/internal/controller"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// InitRoutes registers all routes.
func InitRoutes(r *gin.Engine,
	subCtl *controller.SubmissionController,
	manualCtl *controller.ManualCSVController) {
	// Swagger UI at http://localhost:4000/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// The wizard polls this to decide whether submission is allowed.
	r.GET("/health", subCtl.Health)

	api := r.Group("/api")
	{
		api.GET("/scraper-status", subCtl.ScraperStatus)
		api.POST("/submissions", subCtl.CreateSubmission)
		api.POST("/submissions-with-files", subCtl.CreateSubmissionWithFiles)
		api.POST("/handle_manual_csv", manualCtl.HandleManualCSV)
	}
}
