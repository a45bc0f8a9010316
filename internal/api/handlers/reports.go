package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/repository"
	"github.com/acaizen/posapi/internal/service"
)

// HandleReportSummary handles GET /v1/reports/summary with the same query
// filters as the sale listing
func HandleReportSummary(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := parseSaleFilter(c)
		if !ok {
			return
		}

		reportService := service.NewReportService(repos, logger)
		summary, err := reportService.Summary(c.Request.Context(), filter)
		if err != nil {
			logger.Error("Failed to build report summary", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
