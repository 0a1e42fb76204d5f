package routes

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"inventory-api/internal/api/middleware"
	"inventory-api/internal/config"
	"inventory-api/internal/models"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a test database
func setupTestDB(t *testing.T) *config.Config {
	tmpDir := os.TempDir()
	testDBPath := fmt.Sprintf("%s/inventory_test_%d.db", tmpDir, time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		JWT: config.JWTConfig{
			Secret:           "test-secret-key-for-testing-only",
			ExpiresIn:        "720h",
			PendingExpiresIn: "10m",
			Issuer:           "inventory-api-test",
		},
		Security: config.SecurityConfig{
			BcryptCost: 10,
		},
		TOTP: config.TOTPConfig{
			Issuer: "Enterprise Inventory Test",
		},
	}

	err := models.InitDB(cfg)
	require.NoError(t, err)

	return cfg
}

// cleanupTestDB cleans up the test database
func cleanupTestDB(t *testing.T, cfg *config.Config) {
	if models.DB != nil {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
		if cfg != nil && cfg.Database.Type == "sqlite" {
			os.Remove(cfg.Database.SQLite.Path)
		}
	}
	models.DB = nil
}

// createTestUser creates a test user and returns it
func createTestUser(t *testing.T, authService *services.AuthService, name, email, password, role string) *models.User {
	user, err := authService.CreateUser(name, email, password, role)
	require.NoError(t, err)
	return user
}

// sessionCookie issues a full session token for the user, wrapped in the
// cookie the authorization gate expects
func sessionCookie(t *testing.T, authService *services.AuthService, user *models.User) *http.Cookie {
	token, _, err := authService.IssueToken(user.ID, services.TokenKindFull)
	require.NoError(t, err)

	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

// setupTestRouter creates a test router with routes
func setupTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, cfg)
	return r
}

// responseCookie returns the named cookie from a recorded response, or nil
func responseCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
