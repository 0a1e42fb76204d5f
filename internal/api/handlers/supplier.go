package handlers

import (
	"errors"
	"strconv"

	"inventory-api/internal/config"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	supplierService *services.SupplierService
}

func NewSupplierHandler(cfg *config.Config) *SupplierHandler {
	return &SupplierHandler{
		supplierService: services.NewSupplierService(cfg),
	}
}

type SupplierRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	ContactPhone string `json:"contact_phone" binding:"max=20"`
	Address      string `json:"address" binding:"max=300"`
}

// GetSuppliers returns all suppliers
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.supplierService.GetSuppliers()
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to get suppliers"})
		return
	}

	c.JSON(200, gin.H{"count": len(suppliers), "data": suppliers})
}

// GetSupplier returns a specific supplier
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid supplier ID"})
		return
	}

	supplier, err := h.supplierService.GetSupplier(uint(id))
	if err != nil {
		c.JSON(404, gin.H{"message": "Supplier not found"})
		return
	}

	c.JSON(200, supplier)
}

// CreateSupplier creates a new supplier
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	supplier, err := h.supplierService.CreateSupplier(req.Name, req.ContactEmail, req.ContactPhone, req.Address)
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to create supplier"})
		return
	}

	c.JSON(201, supplier)
}

// UpdateSupplier updates a supplier
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid supplier ID"})
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(uint(id), req.Name, req.ContactEmail, req.ContactPhone, req.Address)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			c.JSON(404, gin.H{"message": "Supplier not found"})
			return
		}
		c.JSON(500, gin.H{"message": "Failed to update supplier"})
		return
	}

	c.JSON(200, supplier)
}

// DeleteSupplier deletes a supplier
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid supplier ID"})
		return
	}

	if err := h.supplierService.DeleteSupplier(uint(id)); err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			c.JSON(404, gin.H{"message": "Supplier not found"})
			return
		}
		c.JSON(500, gin.H{"message": "Failed to delete supplier"})
		return
	}

	c.JSON(200, gin.H{"message": "Supplier deleted successfully"})
}
