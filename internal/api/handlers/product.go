package handlers

import (
	"errors"
	"strconv"

	"inventory-api/internal/config"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: services.NewProductService(cfg),
	}
}

type ProductRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=100"`
	SKU           string  `json:"sku" binding:"required,min=1,max=50"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	SupplierID    *uint   `json:"supplier_id"`
	Description   string  `json:"description" binding:"max=500"`
	Price         float64 `json:"price" binding:"min=0"`
	Quantity      int     `json:"quantity" binding:"min=0"`
	MinStockLevel int     `json:"min_stock_level" binding:"min=0"`
}

func (r *ProductRequest) data() *services.ProductData {
	return &services.ProductData{
		Name:          r.Name,
		SKU:           r.SKU,
		CategoryID:    r.CategoryID,
		SupplierID:    r.SupplierID,
		Description:   r.Description,
		Price:         r.Price,
		Quantity:      r.Quantity,
		MinStockLevel: r.MinStockLevel,
	}
}

// GetProducts returns all products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts()
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to get products"})
		return
	}

	c.JSON(200, gin.H{"count": len(products), "data": products})
}

// GetProduct returns a specific product
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid product ID"})
		return
	}

	product, err := h.productService.GetProduct(uint(id))
	if err != nil {
		c.JSON(404, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(200, product)
}

// CreateProduct creates a new product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	product, err := h.productService.CreateProduct(req.data())
	if err != nil {
		h.mapProductError(c, err)
		return
	}

	c.JSON(201, product)
}

// UpdateProduct updates a product
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid product ID"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	product, err := h.productService.UpdateProduct(uint(id), req.data())
	if err != nil {
		h.mapProductError(c, err)
		return
	}

	c.JSON(200, product)
}

// DeleteProduct deletes a product
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid product ID"})
		return
	}

	if err := h.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"message": "Failed to delete product"})
		return
	}

	c.JSON(200, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) mapProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(404, gin.H{"message": "Product not found"})
	case errors.Is(err, services.ErrSKUExists):
		c.JSON(400, gin.H{"message": "A product with this SKU already exists"})
	case errors.Is(err, services.ErrCategoryNotFound):
		c.JSON(400, gin.H{"message": "Category not found"})
	case errors.Is(err, services.ErrSupplierNotFound):
		c.JSON(400, gin.H{"message": "Supplier not found"})
	default:
		c.JSON(500, gin.H{"message": "Something went wrong"})
	}
}
