package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"inventory-api/internal/config"
	"inventory-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// Token kinds. A pending token only authorizes completion of MFA
// verification; a full token grants access to all authorized routes.
const (
	TokenKindFull    = "full"
	TokenKindPending = "pending"
)

// SessionClaims carries the subject user ID plus an explicit kind
// discriminant so pending tokens cannot be replayed as session tokens.
type SessionClaims struct {
	jwt.RegisteredClaims
	Kind string `json:"kind"`
}

type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash. A malformed hash
// simply fails verification.
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// CreateUser creates a new user
func (s *AuthService) CreateUser(name, email, password, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleViewer
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	email = strings.ToLower(strings.TrimSpace(email))

	// Check if user exists
	var existingUser models.User
	if err := models.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		return nil, ErrUserExists
	}

	// Hash password
	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// Create user
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := models.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user. Unknown email
// and wrong password fail identically so accounts cannot be enumerated.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := models.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserByID loads a user by primary key
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetMFASecret stores an unconfirmed MFA secret for the user. MFA is not
// enforced at login until the secret is confirmed.
func (s *AuthService) SetMFASecret(userID uint, secret string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	user.MFASecret = secret
	return models.DB.Save(user).Error
}

// EnableMFA marks the user's stored MFA secret as confirmed, making MFA
// mandatory at login.
func (s *AuthService) EnableMFA(userID uint) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	user.MFAEnabled = true
	return models.DB.Save(user).Error
}

// CreateDefaultAdmin creates the default admin user if no admin exists
func (s *AuthService) CreateDefaultAdmin() error {
	var count int64
	models.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)

	if count == 0 {
		_, err := s.CreateUser(
			s.cfg.DefaultAdmin.Name,
			s.cfg.DefaultAdmin.Email,
			s.cfg.DefaultAdmin.Password,
			models.RoleAdmin,
		)
		return err
	}

	return nil
}

// IssueToken signs a session token of the given kind for the user.
// Full tokens live for jwt.expires_in (default 30 days), pending tokens
// for jwt.pending_expires_in (default 10 minutes).
func (s *AuthService) IssueToken(userID uint, kind string) (string, time.Time, error) {
	expiresIn := s.tokenLifetime(kind)
	now := time.Now()
	expiresAt := now.Add(expiresIn)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.JWT.Issuer,
		},
		Kind: kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.signingKey())
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseToken verifies a token's signature, expiry and kind, and returns
// the subject user ID.
func (s *AuthService) ParseToken(tokenString, kind string) (uint, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.signingKey(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}

	if !token.Valid || claims.Kind != kind {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

func (s *AuthService) signingKey() []byte {
	secret := s.cfg.JWT.Secret
	if secret == "" {
		secret = "inventory-api-default-secret-change-in-production"
	}
	return []byte(secret)
}

func (s *AuthService) tokenLifetime(kind string) time.Duration {
	if kind == TokenKindPending {
		if d, err := time.ParseDuration(s.cfg.JWT.PendingExpiresIn); err == nil {
			return d
		}
		return 10 * time.Minute
	}

	if d, err := time.ParseDuration(s.cfg.JWT.ExpiresIn); err == nil {
		return d
	}
	return 30 * 24 * time.Hour
}
