package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
	"github.com/acaizen/posapi/pkg/errors"
)

// EmployeeRequest is the payload for creating or updating an employee.
// Password is only required on create; on update an empty password keeps the
// current hash.
type EmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// EmployeeResponse never includes the password hash
type EmployeeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// HandleListEmployees handles GET /v1/employees
func HandleListEmployees(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		employees, err := repos.Employee.GetAll(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list employees", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]EmployeeResponse, len(employees))
		for i, employee := range employees {
			responses[i] = buildEmployeeResponse(employee)
		}

		c.JSON(http.StatusOK, gin.H{"employees": responses})
	}
}

// HandleCreateEmployee handles POST /v1/employees
func HandleCreateEmployee(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmployeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if req.Password == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "password is required"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		if err != nil {
			logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		employee := &domain.Employee{
			Name:         req.Name,
			Username:     req.Username,
			PasswordHash: string(hash),
			Role:         req.Role,
			IsActive:     isActive,
		}

		if err := repos.Employee.Create(c.Request.Context(), employee); err != nil {
			logger.Error("Failed to create employee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create employee"})
			return
		}

		c.JSON(http.StatusCreated, buildEmployeeResponse(employee))
	}
}

// HandleUpdateEmployee handles PUT /v1/employees/:id
func HandleUpdateEmployee(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee ID"})
			return
		}

		var req EmployeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		employee, err := repos.Employee.GetByID(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
				return
			}
			logger.Error("Failed to get employee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		employee.Name = req.Name
		employee.Username = req.Username
		employee.Role = req.Role
		if req.IsActive != nil {
			employee.IsActive = *req.IsActive
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
			if err != nil {
				logger.Error("Failed to hash password", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			employee.PasswordHash = string(hash)
		}

		if err := repos.Employee.Update(c.Request.Context(), employee); err != nil {
			logger.Error("Failed to update employee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update employee"})
			return
		}

		c.JSON(http.StatusOK, buildEmployeeResponse(employee))
	}
}

// HandleDeleteEmployee handles DELETE /v1/employees/:id
func HandleDeleteEmployee(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee ID"})
			return
		}

		if err := repos.Employee.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
				return
			}
			logger.Error("Failed to delete employee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete employee"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func buildEmployeeResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       employee.ID.String(),
		Name:     employee.Name,
		Username: employee.Username,
		Role:     employee.Role,
		IsActive: employee.IsActive,
	}
}
