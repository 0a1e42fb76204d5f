package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"

	"inventory-api/internal/models"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
)

// CaptureOriginal loads the pre-mutation record and stores it in the
// request context before the handler mutates it. Must be registered ahead
// of Audit on update and delete routes, otherwise the before-snapshot
// would already be gone. Fetch failures are ignored; the mutation itself
// will report a missing record.
func CaptureOriginal(fetch func(id uint) (interface{}, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if idParam := c.Param("id"); idParam != "" {
			if id, err := strconv.ParseUint(idParam, 10, 32); err == nil {
				if original, err := fetch(uint(id)); err == nil {
					c.Set("original_data", original)
				}
			}
		}

		c.Next()
	}
}

// Audit wraps a mutating handler and records one audit log entry after it
// completes, provided the request carries an authenticated user. The
// request body is the after-snapshot for CREATE and UPDATE; the captured
// original is the before-snapshot for UPDATE and DELETE. Audit persistence
// failures are logged and swallowed so the response never fails solely
// because auditing did.
func Audit(auditService *services.AuditService, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Buffer the request body so the handler can still bind it
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		c.Next()

		user, ok := CurrentUser(c)
		if !ok {
			return
		}

		entry := &models.AuditLog{
			UserID:     user.ID,
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param("id"),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}

		switch action {
		case models.AuditActionCreate:
			entry.NewData = models.JSONData(body)
			entry.Description = fmt.Sprintf("Created new %s", resource)
		case models.AuditActionUpdate:
			entry.NewData = models.JSONData(body)
			entry.Description = fmt.Sprintf("Updated %s %s", resource, entry.ResourceID)
		case models.AuditActionDelete:
			entry.Description = fmt.Sprintf("Deleted %s %s", resource, entry.ResourceID)
		}

		if action == models.AuditActionUpdate || action == models.AuditActionDelete {
			if original, exists := c.Get("original_data"); exists {
				if data, err := json.Marshal(original); err == nil {
					entry.OldData = models.JSONData(data)
				}
			}
		}

		if err := auditService.Record(entry); err != nil {
			log.Printf("audit logging error: %v", err)
		}
	}
}
