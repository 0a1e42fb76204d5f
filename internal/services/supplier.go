package services

import (
	"errors"
	"strings"

	"inventory-api/internal/config"
	"inventory-api/internal/models"

	"gorm.io/gorm"
)

var ErrSupplierNotFound = errors.New("supplier not found")

type SupplierService struct {
	cfg *config.Config
}

func NewSupplierService(cfg *config.Config) *SupplierService {
	return &SupplierService{cfg: cfg}
}

// GetSuppliers returns all suppliers
func (s *SupplierService) GetSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := models.DB.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// GetSupplier returns a specific supplier by ID
func (s *SupplierService) GetSupplier(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := models.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(name, contactEmail, contactPhone, address string) (*models.Supplier, error) {
	supplier := &models.Supplier{
		Name:         name,
		ContactEmail: strings.ToLower(strings.TrimSpace(contactEmail)),
		ContactPhone: contactPhone,
		Address:      address,
	}

	if err := models.DB.Create(supplier).Error; err != nil {
		return nil, err
	}

	return supplier, nil
}

// UpdateSupplier updates a supplier
func (s *SupplierService) UpdateSupplier(id uint, name, contactEmail, contactPhone, address string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := models.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	if name != "" {
		supplier.Name = name
	}
	if contactEmail != "" {
		supplier.ContactEmail = strings.ToLower(strings.TrimSpace(contactEmail))
	}
	supplier.ContactPhone = contactPhone
	supplier.Address = address

	if err := models.DB.Save(&supplier).Error; err != nil {
		return nil, err
	}

	return &supplier, nil
}

// DeleteSupplier deletes a supplier
func (s *SupplierService) DeleteSupplier(id uint) error {
	var supplier models.Supplier
	if err := models.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}

	return models.DB.Delete(&supplier).Error
}
