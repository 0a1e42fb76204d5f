package services

import (
	"errors"

	"inventory-api/internal/config"
	"inventory-api/internal/models"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService struct {
	cfg *config.Config
}

func NewCategoryService(cfg *config.Config) *CategoryService {
	return &CategoryService{cfg: cfg}
}

// GetCategories returns all categories
func (s *CategoryService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := models.DB.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns a specific category by ID
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := models.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(name, description string) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Description: description,
	}

	if err := models.DB.Create(category).Error; err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(id uint, name, description string) (*models.Category, error) {
	var category models.Category
	if err := models.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if name != "" {
		category.Name = name
	}
	category.Description = description

	if err := models.DB.Save(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(id uint) error {
	var category models.Category
	if err := models.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	return models.DB.Delete(&category).Error
}
