package services

import (
	"errors"
	"strings"

	"inventory-api/internal/config"
	"inventory-api/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	authService *AuthService
}

func NewUserService(cfg *config.Config) *UserService {
	return &UserService{
		authService: NewAuthService(cfg),
	}
}

// GetUsers returns all users
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := models.DB.Find(&users).Error; err != nil {
		return nil, err
	}

	// Clear credential material
	for i := range users {
		users[i].PasswordHash = ""
		users[i].MFASecret = ""
	}

	return users, nil
}

// GetUser returns a specific user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	user.MFASecret = ""
	return &user, nil
}

// CreateUser creates a new user
func (s *UserService) CreateUser(name, email, password, role string) (*models.User, error) {
	user, err := s.authService.CreateUser(name, email, password, role)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	user.MFASecret = ""
	return user, nil
}

// UpdateUser updates user information (except password)
func (s *UserService) UpdateUser(id uint, name, email, role string) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if role != "" && !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	email = strings.ToLower(strings.TrimSpace(email))

	// Check if email is taken by another user
	if email != "" && email != user.Email {
		var existingUser models.User
		if err := models.DB.Where("email = ? AND id != ?", email, id).First(&existingUser).Error; err == nil {
			return nil, ErrUserExists
		}
		user.Email = email
	}

	if name != "" {
		user.Name = name
	}
	if role != "" {
		user.Role = role
	}

	if err := models.DB.Save(&user).Error; err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	user.MFASecret = ""
	return &user, nil
}

// UpdatePassword updates user password
func (s *UserService) UpdatePassword(id uint, newPassword string) error {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashedPassword, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	return models.DB.Save(&user).Error
}

// DeleteUser deletes a user
func (s *UserService) DeleteUser(id uint) error {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Don't allow deleting the last admin user
	var adminCount int64
	models.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if user.Role == models.RoleAdmin && adminCount <= 1 {
		return errors.New("cannot delete the last admin user")
	}

	return models.DB.Delete(&user).Error
}
