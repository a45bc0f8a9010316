package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
	"github.com/acaizen/posapi/pkg/errors"
)

// SaleResponse represents a completed sale
type SaleResponse struct {
	ID           string                `json:"id"`
	Items        []domain.CartLineItem `json:"items"`
	Total        float64               `json:"total"`
	Payment      PaymentResponse       `json:"payment"`
	CustomerName *string               `json:"customer_name,omitempty"`
	CreatedAt    string                `json:"created_at"`
}

type PaymentResponse struct {
	Method domain.PaymentMethod `json:"method"`
	Amount float64              `json:"amount"`
	Change *float64             `json:"change,omitempty"`
}

// HandleGetSale handles GET /v1/sales/:id
func HandleGetSale(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		saleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale ID"})
			return
		}

		sale, err := repos.Sale.GetByID(c.Request.Context(), saleID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
				return
			}
			logger.Error("Failed to get sale", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, buildSaleResponse(sale))
	}
}

// HandleListSales handles GET /v1/sales with optional from, to and
// payment_method query filters
func HandleListSales(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := parseSaleFilter(c)
		if !ok {
			return
		}

		sales, err := repos.Sale.List(c.Request.Context(), filter)
		if err != nil {
			logger.Error("Failed to list sales", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]SaleResponse, len(sales))
		for i, sale := range sales {
			responses[i] = buildSaleResponse(sale)
		}

		c.JSON(http.StatusOK, gin.H{"sales": responses})
	}
}

func parseSaleFilter(c *gin.Context) (repository.SaleFilter, bool) {
	var filter repository.SaleFilter

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return filter, false
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return filter, false
		}
		filter.To = &t
	}
	if methodStr := c.Query("payment_method"); methodStr != "" {
		method := domain.PaymentMethod(methodStr)
		if !method.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment method"})
			return filter, false
		}
		filter.Method = &method
	}

	return filter, true
}

func buildSaleResponse(sale *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:    sale.ID.String(),
		Items: sale.Items,
		Total: sale.Total,
		Payment: PaymentResponse{
			Method: sale.Payment.Method,
			Amount: sale.Payment.Amount,
			Change: sale.Payment.Change,
		},
		CustomerName: sale.CustomerName,
		CreatedAt:    sale.CreatedAt.Format(time.RFC3339),
	}
}
