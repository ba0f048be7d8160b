package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blogbackend/internal/models"
	"blogbackend/internal/repository"
)

type CategoryHandler interface {
	GetAll(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type categoryHandler struct {
	categories repository.CategoryRepository
	logger     *zap.Logger
}

func NewCategoryHandler(categories repository.CategoryRepository, logger *zap.Logger) CategoryHandler {
	return &categoryHandler{categories: categories, logger: logger}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

// GetAll handles GET /api/admin/categories.
func (h *categoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categories.GetAll()
	if err != nil {
		h.logger.Error("Failed to get categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Create handles POST /api/admin/categories.
func (h *categoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{Name: strings.TrimSpace(req.Name)}
	if category.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	if err := h.categories.Create(category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		h.logger.Error("Failed to create category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Update handles PUT /api/admin/categories/:id.
func (h *categoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{ID: id, Name: strings.TrimSpace(req.Name)}
	if category.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	if err := h.categories.Update(category); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(err, repository.ErrDuplicateCategory):
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
		default:
			h.logger.Error("Failed to update category", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/admin/categories/:id.
func (h *categoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.categories.Delete(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(err, repository.ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete category because it has posts"})
		default:
			h.logger.Error("Failed to delete category", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
