package services

import (
	"errors"
	"strings"

	"inventory-api/internal/config"
	"inventory-api/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("a product with this SKU already exists")
)

type ProductService struct {
	cfg *config.Config
}

func NewProductService(cfg *config.Config) *ProductService {
	return &ProductService{cfg: cfg}
}

// ProductData carries product fields for create and update operations
type ProductData struct {
	Name          string
	SKU           string
	CategoryID    uint
	SupplierID    *uint
	Description   string
	Price         float64
	Quantity      int
	MinStockLevel int
}

// GetProducts returns all products with category and supplier preloaded
func (s *ProductService) GetProducts() ([]models.Product, error) {
	var products []models.Product
	if err := models.DB.Preload("Category").Preload("Supplier").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a specific product by ID
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := models.DB.Preload("Category").Preload("Supplier").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product. The SKU must be unique and the
// referenced category (and supplier, when set) must exist.
func (s *ProductService) CreateProduct(data *ProductData) (*models.Product, error) {
	sku := strings.ToUpper(strings.TrimSpace(data.SKU))

	var existing models.Product
	if err := models.DB.Where("sku = ?", sku).First(&existing).Error; err == nil {
		return nil, ErrSKUExists
	}

	if err := s.checkReferences(data.CategoryID, data.SupplierID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          data.Name,
		SKU:           sku,
		CategoryID:    data.CategoryID,
		SupplierID:    data.SupplierID,
		Description:   data.Description,
		Price:         data.Price,
		Quantity:      data.Quantity,
		MinStockLevel: data.MinStockLevel,
	}

	if err := models.DB.Create(product).Error; err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID)
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(id uint, data *ProductData) (*models.Product, error) {
	var product models.Product
	if err := models.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	sku := strings.ToUpper(strings.TrimSpace(data.SKU))

	// Check if SKU is taken by another product
	if sku != product.SKU {
		var existing models.Product
		if err := models.DB.Where("sku = ? AND id != ?", sku, id).First(&existing).Error; err == nil {
			return nil, ErrSKUExists
		}
	}

	if err := s.checkReferences(data.CategoryID, data.SupplierID); err != nil {
		return nil, err
	}

	product.Name = data.Name
	product.SKU = sku
	product.CategoryID = data.CategoryID
	product.SupplierID = data.SupplierID
	product.Description = data.Description
	product.Price = data.Price
	product.Quantity = data.Quantity
	product.MinStockLevel = data.MinStockLevel

	if err := models.DB.Save(&product).Error; err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(id uint) error {
	var product models.Product
	if err := models.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return models.DB.Delete(&product).Error
}

func (s *ProductService) checkReferences(categoryID uint, supplierID *uint) error {
	var category models.Category
	if err := models.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if supplierID != nil {
		var supplier models.Supplier
		if err := models.DB.First(&supplier, *supplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSupplierNotFound
			}
			return err
		}
	}

	return nil
}
