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
	"blogbackend/internal/storage"
)

// maxImageSize caps uploaded post images at 10MB.
const maxImageSize = 10 << 20

type PostHandler interface {
	GetAll(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type postHandler struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	images     *storage.ImageStore
	logger     *zap.Logger
}

func NewPostHandler(posts repository.PostRepository, categories repository.CategoryRepository, images *storage.ImageStore, logger *zap.Logger) PostHandler {
	return &postHandler{
		posts:      posts,
		categories: categories,
		images:     images,
		logger:     logger,
	}
}

// UpsertPostForm is the multipart payload shared by create and update.
// The image part is read separately via FormFile.
type UpsertPostForm struct {
	Title       string `form:"title" binding:"required,max=160"`
	Description string `form:"description" binding:"required,max=4000"`
	Note        string `form:"note" binding:"max=500"`
	CategoryID  int64  `form:"category_id" binding:"required"`
}

// GetAll handles GET /api/admin/posts.
func (h *postHandler) GetAll(c *gin.Context) {
	posts, err := h.posts.GetAll()
	if err != nil {
		h.logger.Error("Failed to get posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetByID handles GET /api/admin/posts/:id.
func (h *postHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := h.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.logger.Error("Failed to get post", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// Create handles POST /api/admin/posts (multipart form with optional image).
func (h *postHandler) Create(c *gin.Context) {
	var form UpsertPostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.categories.Exists(form.CategoryID)
	if err != nil {
		h.logger.Error("Failed to check category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
		return
	}

	post := &models.Post{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Note:        optional(form.Note),
		CategoryID:  form.CategoryID,
	}

	imageURL, ok := h.saveImage(c)
	if !ok {
		return
	}
	post.ImageURL = imageURL

	if err := h.posts.Create(post); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		h.logger.Error("Failed to create post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": post.ID})
}

// Update handles PUT /api/admin/posts/:id. A new image replaces the stored
// URL; without one the existing image is kept.
func (h *postHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var form UpsertPostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.logger.Error("Failed to get post", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	exists, err := h.categories.Exists(form.CategoryID)
	if err != nil {
		h.logger.Error("Failed to check category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
		return
	}

	post.Title = strings.TrimSpace(form.Title)
	post.Description = strings.TrimSpace(form.Description)
	post.Note = optional(form.Note)
	post.CategoryID = form.CategoryID

	imageURL, ok := h.saveImage(c)
	if !ok {
		return
	}
	if imageURL != nil {
		post.ImageURL = imageURL
	}

	if err := h.posts.Update(post); err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		case errors.Is(err, repository.ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
		default:
			h.logger.Error("Failed to update post", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/admin/posts/:id.
func (h *postHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if err := h.posts.Delete(id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.logger.Error("Failed to delete post", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

// saveImage reads the optional "image" part and stores it. The bool result
// is false when a response has already been written.
func (h *postHandler) saveImage(c *gin.Context) (*string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		// No image attached.
		return nil, true
	}

	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds the 10MB limit"})
		return nil, false
	}

	url, err := h.images.Save(file)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImageType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
			return nil, false
		}
		h.logger.Error("Failed to save image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return nil, false
	}

	return &url, true
}

// optional maps a trimmed form value to a nullable column.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
