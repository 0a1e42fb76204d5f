package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"inventory-api/internal/models"
	"inventory-api/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := services.NewAuthService(cfg)
	auditService := services.NewAuditService(cfg)

	adminUser := createTestUser(t, authService, "Admin", "admin@example.com", "admin123", models.RoleAdmin)
	managerUser := createTestUser(t, authService, "Manager", "manager@example.com", "manager1", models.RoleManager)

	seed := []models.AuditLog{
		{UserID: adminUser.ID, Action: models.AuditActionLogin, Resource: models.AuditResourceAuth},
		{UserID: adminUser.ID, Action: models.AuditActionCreate, Resource: models.AuditResourceProduct, ResourceID: "1"},
		{UserID: managerUser.ID, Action: models.AuditActionUpdate, Resource: models.AuditResourceProduct, ResourceID: "1"},
		{UserID: managerUser.ID, Action: models.AuditActionDelete, Resource: models.AuditResourceCategory, ResourceID: "2"},
	}
	for i := range seed {
		require.NoError(t, auditService.Record(&seed[i]))
	}

	adminCookie := sessionCookie(t, authService, adminUser)

	t.Run("GET /api/audit-logs - Forbidden for manager", func(t *testing.T) {
		router := setupTestRouter(cfg)

		w := doRequest(router, "GET", "/api/audit-logs", sessionCookie(t, authService, managerUser))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /api/audit-logs - All entries for admin, newest first", func(t *testing.T) {
		router := setupTestRouter(cfg)

		w := doRequest(router, "GET", "/api/audit-logs", adminCookie)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Count int               `json:"count"`
			Total int64             `json:"total"`
			Page  int               `json:"page"`
			Pages int64             `json:"pages"`
			Data  []models.AuditLog `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 4, response.Count)
		assert.Equal(t, int64(4), response.Total)
		assert.Equal(t, 1, response.Page)

		// No credential material on preloaded actors
		assert.NotContains(t, w.Body.String(), "PasswordHash")
	})

	t.Run("GET /api/audit-logs - Filter by action", func(t *testing.T) {
		router := setupTestRouter(cfg)

		w := doRequest(router, "GET", "/api/audit-logs?action=CREATE", adminCookie)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data []models.AuditLog `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, models.AuditActionCreate, response.Data[0].Action)
	})

	t.Run("GET /api/audit-logs - Filter by actor", func(t *testing.T) {
		router := setupTestRouter(cfg)

		w := doRequest(router, "GET", fmt.Sprintf("/api/audit-logs?userId=%d", managerUser.ID), adminCookie)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data []models.AuditLog `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		for _, entry := range response.Data {
			assert.Equal(t, managerUser.ID, entry.UserID)
		}
	})

	t.Run("GET /api/audit-logs - Filter by resource", func(t *testing.T) {
		router := setupTestRouter(cfg)

		w := doRequest(router, "GET", "/api/audit-logs?resource=Product", adminCookie)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data []models.AuditLog `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
	})

	t.Run("GET /api/audit-logs - Timestamp range filter", func(t *testing.T) {
		router := setupTestRouter(cfg)

		future := time.Now().Add(time.Hour).Format(time.RFC3339)
		w := doRequest(router, "GET", "/api/audit-logs?startDate="+future, adminCookie)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(0), response.Total)
	})

	t.Run("GET /api/audit-logs - Pagination", func(t *testing.T) {
		router := setupTestRouter(cfg)

		w := doRequest(router, "GET", "/api/audit-logs?page=2&limit=3", adminCookie)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Count int   `json:"count"`
			Total int64 `json:"total"`
			Page  int   `json:"page"`
			Pages int64 `json:"pages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Count)
		assert.Equal(t, int64(4), response.Total)
		assert.Equal(t, 2, response.Page)
		assert.Equal(t, int64(2), response.Pages)
	})

	t.Run("GET /api/audit-logs/:id", func(t *testing.T) {
		router := setupTestRouter(cfg)

		w := doRequest(router, "GET", fmt.Sprintf("/api/audit-logs/%d", seed[0].ID), adminCookie)
		assert.Equal(t, http.StatusOK, w.Code)

		var entry models.AuditLog
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
		assert.Equal(t, models.AuditActionLogin, entry.Action)
		assert.Equal(t, "admin@example.com", entry.User.Email)

		missing := doRequest(router, "GET", "/api/audit-logs/99999", adminCookie)
		assert.Equal(t, http.StatusNotFound, missing.Code)
	})
}
