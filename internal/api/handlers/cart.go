package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/cart"
	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
	"github.com/acaizen/posapi/pkg/errors"
)

// AddonSelection selects an addon for a line item
type AddonSelection struct {
	AddonID  string `json:"addon_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// AddItemRequest is the payload for adding a line item to the cart
type AddItemRequest struct {
	ProductID string           `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity"`
	Addons    []AddonSelection `json:"addons,omitempty"`
	Note      string           `json:"note,omitempty"`
}

// UpdateItemRequest is the payload for editing a line item. Nil addons/note
// keep the current values.
type UpdateItemRequest struct {
	Quantity int               `json:"quantity" binding:"required"`
	Addons   *[]AddonSelection `json:"addons,omitempty"`
	Note     *string           `json:"note,omitempty"`
}

type cartItemResponse struct {
	Index    int                 `json:"index"`
	Item     domain.CartLineItem `json:"item"`
	Subtotal float64             `json:"subtotal"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

// HandleGetCart handles GET /v1/cart/:terminal
func HandleGetCart(sessions *cart.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalCart := sessions.Get(c.Param("terminal"))
		c.JSON(http.StatusOK, buildCartResponse(terminalCart))
	}
}

// HandleAddItem handles POST /v1/cart/:terminal/items
func HandleAddItem(sessions *cart.Sessions, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), productID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		addons, ok := resolveAddons(c, repos, logger, req.Addons, product)
		if !ok {
			return
		}

		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}

		terminalCart := sessions.Get(c.Param("terminal"))
		if err := terminalCart.Add(*product, quantity, addons, req.Note); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, buildCartResponse(terminalCart))
	}
}

// HandleUpdateItem handles PUT /v1/cart/:terminal/items/:index
func HandleUpdateItem(sessions *cart.Sessions, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
			return
		}

		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		terminalCart := sessions.Get(c.Param("terminal"))

		var addons []domain.CartAddon
		if req.Addons != nil {
			items := terminalCart.Items()
			if index < 0 || index >= len(items) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			resolved, ok := resolveAddons(c, repos, logger, *req.Addons, &items[index].Product)
			if !ok {
				return
			}
			if resolved == nil {
				resolved = []domain.CartAddon{}
			}
			addons = resolved
		}

		if err := terminalCart.UpdateItem(index, req.Quantity, addons, req.Note); err != nil {
			switch err.(type) {
			case *errors.ErrOutOfRange:
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			case *errors.ErrInvalidInput:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to update cart item", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, buildCartResponse(terminalCart))
	}
}

// HandleRemoveItem handles DELETE /v1/cart/:terminal/items/:index
func HandleRemoveItem(sessions *cart.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
			return
		}

		terminalCart := sessions.Get(c.Param("terminal"))
		if err := terminalCart.Remove(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}

		c.JSON(http.StatusOK, buildCartResponse(terminalCart))
	}
}

// HandleClearCart handles DELETE /v1/cart/:terminal
func HandleClearCart(sessions *cart.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalCart := sessions.Get(c.Param("terminal"))
		terminalCart.Clear()
		c.JSON(http.StatusOK, buildCartResponse(terminalCart))
	}
}

func buildCartResponse(c *cart.Cart) cartResponse {
	items := c.Items()
	response := cartResponse{
		Items: make([]cartItemResponse, len(items)),
		Total: c.Total(),
	}
	for i, item := range items {
		response.Items[i] = cartItemResponse{
			Index:    i,
			Item:     item,
			Subtotal: item.Subtotal(),
		}
	}
	return response
}

// resolveAddons loads the selected addons and checks each one is allowed for
// the product's category. Writes the error response itself and returns
// ok=false on failure.
func resolveAddons(c *gin.Context, repos *repository.Repositories, logger *zap.Logger, selections []AddonSelection, product *domain.Product) ([]domain.CartAddon, bool) {
	if len(selections) == 0 {
		return nil, true
	}

	addons := make([]domain.CartAddon, 0, len(selections))
	for _, sel := range selections {
		addonID, err := uuid.Parse(sel.AddonID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid addon ID"})
			return nil, false
		}

		addon, err := repos.Addon.GetByID(c.Request.Context(), addonID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "addon not found"})
				return nil, false
			}
			logger.Error("Failed to get addon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return nil, false
		}

		if addon.CategoryID != nil && *addon.CategoryID != product.CategoryID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "addon not available for this product"})
			return nil, false
		}

		addons = append(addons, domain.CartAddon{
			Addon:    *addon,
			Quantity: sel.Quantity,
		})
	}

	return addons, true
}
