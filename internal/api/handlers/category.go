package handlers

import (
	"errors"
	"strconv"

	"inventory-api/internal/config"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(cfg *config.Config) *CategoryHandler {
	return &CategoryHandler{
		categoryService: services.NewCategoryService(cfg),
	}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=200"`
}

// GetCategories returns all categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to get categories"})
		return
	}

	c.JSON(200, gin.H{"count": len(categories), "data": categories})
}

// GetCategory returns a specific category
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid category ID"})
		return
	}

	category, err := h.categoryService.GetCategory(uint(id))
	if err != nil {
		c.JSON(404, gin.H{"message": "Category not found"})
		return
	}

	c.JSON(200, category)
}

// CreateCategory creates a new category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.Description)
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to create category"})
		return
	}

	c.JSON(201, category)
}

// UpdateCategory updates a category
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid category ID"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	category, err := h.categoryService.UpdateCategory(uint(id), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(404, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(500, gin.H{"message": "Failed to update category"})
		return
	}

	c.JSON(200, category)
}

// DeleteCategory deletes a category
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid category ID"})
		return
	}

	if err := h.categoryService.DeleteCategory(uint(id)); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(404, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(500, gin.H{"message": "Failed to delete category"})
		return
	}

	c.JSON(200, gin.H{"message": "Category deleted successfully"})
}
