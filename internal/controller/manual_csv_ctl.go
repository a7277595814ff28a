package controller

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"amazon_intake_v1_202608/internal/api/dto"
	"amazon_intake_v1_202608/internal/model"
	"amazon_intake_v1_202608/internal/repository"
	"amazon_intake_v1_202608/internal/service"
)

// ==================== ManualCSVController ====================

type ManualCSVController struct {
	runRepo repository.ManualRunRepository
}

func NewManualCSVController(runRepo repository.ManualRunRepository) *ManualCSVController {
	return &ManualCSVController{runRepo: runRepo}
}

// HandleManualCSV
// @Summary Pick competitor data from an uploaded research CSV
// @Description Runs the competitor picker against the uploaded export and records the chosen row
// @Tags Manual
// @Accept multipart/form-data
// @Produce json
// @Param csv_file formData file true "Research export CSV"
// @Param row_number formData int true "Target sheet row, must be greater than 2"
// @Param country formData string true "Marketplace country"
// @Param keyword_phrase formData string true "Keyword to match against Product Details"
// @Param seller_type formData string false "Seller type of the requesting brand"
// @Success 200 {object} dto.ManualCSVResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/handle_manual_csv [post]
func (ctrl *ManualCSVController) HandleManualCSV(c *gin.Context) {
	rowNumber, err := strconv.Atoi(c.PostForm("row_number"))
	if err != nil || rowNumber < 3 {
		// The first two sheet rows are headers, so data starts at row 3.
		c.JSON(http.StatusBadRequest, gin.H{"detail": "row_number must be > 2"})
		return
	}

	keyword := strings.TrimSpace(c.PostForm("keyword_phrase"))
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "keyword_phrase is required"})
		return
	}

	country := service.NormalizeCountry(c.PostForm("country"))
	sellerType := c.PostForm("seller_type")

	fileHeader, err := c.FormFile("csv_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "csv_file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read uploaded file"})
		return
	}
	defer f.Close()

	rows, err := service.ReadCSVRows(f)
	if err != nil {
		ctrl.record(c, rowNumber, country, keyword, sellerType, nil, err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to parse CSV: " + err.Error()})
		return
	}

	pick, err := service.FindTopRecentProduct(rows, keyword, time.Now())
	if err != nil {
		ctrl.record(c, rowNumber, country, keyword, sellerType, nil, err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ctrl.record(c, rowNumber, country, keyword, sellerType, pick, nil)
	c.JSON(http.StatusOK, dto.ManualCSVResponse{
		OK:             true,
		Message:        "Competitor data prepared for row " + strconv.Itoa(rowNumber),
		ProductDetails: pick.ProductDetails,
		CompetitorURL:  pick.URL,
		Revenue:        pick.Revenue,
		CreationDate:   pick.CreationDate,
	})
}

func (ctrl *ManualCSVController) record(c *gin.Context, rowNumber int, country, keyword, sellerType string, pick *service.CompetitorPick, runErr error) {
	run := &model.ManualRun{
		RowNumber:     rowNumber,
		Country:       country,
		KeywordPhrase: keyword,
		SellerType:    sellerType,
		Status:        model.ManualRunStatusPicked,
	}
	if runErr != nil {
		run.Status = model.ManualRunStatusFailed
		run.Error = runErr.Error()
	} else if pick != nil {
		run.ProductDetails = pick.ProductDetails
		run.CompetitorURL = pick.URL
		run.Revenue = pick.Revenue
		run.CreationDate = pick.CreationDate
	}
	if err := ctrl.runRepo.Create(c.Request.Context(), run); err != nil {
		log.Printf("[ManualCSVController] persist run: %v", err)
	}
}
