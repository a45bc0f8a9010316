package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/cart"
	"github.com/acaizen/posapi/internal/checkout"
	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/pkg/errors"
)

// CheckoutRequest is the payload for completing a sale
type CheckoutRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,min=0"`
	CustomerName  *string `json:"customer_name,omitempty"`
}

// HandleCheckout handles POST /v1/cart/:terminal/checkout
func HandleCheckout(sessions *cart.Sessions, finalizer *checkout.Finalizer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		method := domain.PaymentMethod(req.PaymentMethod)
		if !method.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown payment method"})
			return
		}

		terminalCart := sessions.Get(c.Param("terminal"))
		payment := checkout.Payment{
			Method: method,
			Amount: req.Amount,
		}

		sale, err := finalizer.Complete(c.Request.Context(), terminalCart, payment, req.CustomerName)
		if err != nil {
			switch err.(type) {
			case *errors.ErrEmptyCart:
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			case *errors.ErrInsufficientPayment:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case *errors.ErrInvalidInput:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case *errors.ErrPersistence:
				logger.Error("Failed to persist sale", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete sale"})
			default:
				logger.Error("Failed to complete sale", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, buildSaleResponse(sale))
	}
}
