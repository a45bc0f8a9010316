package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
	"github.com/acaizen/posapi/pkg/errors"
)

// ProductRequest is the payload for creating or updating a product
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
	CategoryID  string  `json:"category_id" binding:"required"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url,omitempty"`
	Stock       int     `json:"stock" binding:"min=0"`
}

// CategoryRequest is the payload for creating or updating a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddonRequest is the payload for creating or updating an addon
type AddonRequest struct {
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"min=0"`
	CategoryID *string `json:"category_id,omitempty"`
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repos.Product.GetAll(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// HandleCreateProduct handles POST /v1/products
func HandleCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
			return
		}

		product := &domain.Product{
			Name:        req.Name,
			Price:       req.Price,
			CategoryID:  categoryID,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Stock:       req.Stock,
		}

		if err := repos.Product.Create(c.Request.Context(), product); err != nil {
			logger.Error("Failed to create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// HandleUpdateProduct handles PUT /v1/products/:id
func HandleUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
			return
		}

		product := &domain.Product{
			ID:          id,
			Name:        req.Name,
			Price:       req.Price,
			CategoryID:  categoryID,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Stock:       req.Stock,
		}

		if err := repos.Product.Update(c.Request.Context(), product); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to update product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// HandleDeleteProduct handles DELETE /v1/products/:id
func HandleDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		if err := repos.Product.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to delete product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleListCategories handles GET /v1/categories
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repos.Category.GetAll(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// HandleCreateCategory handles POST /v1/categories
func HandleCreateCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		category := &domain.Category{Name: req.Name}
		if err := repos.Category.Create(c.Request.Context(), category); err != nil {
			logger.Error("Failed to create category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
			return
		}

		c.JSON(http.StatusCreated, category)
	}
}

// HandleUpdateCategory handles PUT /v1/categories/:id
func HandleUpdateCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
			return
		}

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		category := &domain.Category{ID: id, Name: req.Name}
		if err := repos.Category.Update(c.Request.Context(), category); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			logger.Error("Failed to update category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
			return
		}

		c.JSON(http.StatusOK, category)
	}
}

// HandleDeleteCategory handles DELETE /v1/categories/:id
func HandleDeleteCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
			return
		}

		if err := repos.Category.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			logger.Error("Failed to delete category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleListAddons handles GET /v1/addons
func HandleListAddons(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		addons, err := repos.Addon.GetAll(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list addons", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"addons": addons})
	}
}

// HandleCreateAddon handles POST /v1/addons
func HandleCreateAddon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddonRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		addon := &domain.Addon{
			Name:  req.Name,
			Price: req.Price,
		}
		if req.CategoryID != nil {
			categoryID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
				return
			}
			addon.CategoryID = &categoryID
		}

		if err := repos.Addon.Create(c.Request.Context(), addon); err != nil {
			logger.Error("Failed to create addon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create addon"})
			return
		}

		c.JSON(http.StatusCreated, addon)
	}
}

// HandleUpdateAddon handles PUT /v1/addons/:id
func HandleUpdateAddon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid addon ID"})
			return
		}

		var req AddonRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		addon := &domain.Addon{
			ID:    id,
			Name:  req.Name,
			Price: req.Price,
		}
		if req.CategoryID != nil {
			categoryID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
				return
			}
			addon.CategoryID = &categoryID
		}

		if err := repos.Addon.Update(c.Request.Context(), addon); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "addon not found"})
				return
			}
			logger.Error("Failed to update addon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update addon"})
			return
		}

		c.JSON(http.StatusOK, addon)
	}
}

// HandleDeleteAddon handles DELETE /v1/addons/:id
func HandleDeleteAddon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid addon ID"})
			return
		}

		if err := repos.Addon.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "addon not found"})
				return
			}
			logger.Error("Failed to delete addon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete addon"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
