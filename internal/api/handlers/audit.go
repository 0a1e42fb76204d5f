package handlers

import (
	"strconv"
	"time"

	"inventory-api/internal/config"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(cfg *config.Config) *AuditHandler {
	return &AuditHandler{
		auditService: services.NewAuditService(cfg),
	}
}

// GetAuditLogs returns audit logs with pagination and filters on actor,
// action, resource and timestamp range
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	filter := services.AuditFilter{
		Action:   c.Query("action"),
		Resource: c.Query("resource"),
	}

	if userID, err := strconv.ParseUint(c.Query("userId"), 10, 32); err == nil {
		filter.UserID = uint(userID)
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if startDate, err := time.Parse(time.RFC3339, c.Query("startDate")); err == nil {
		filter.StartDate = startDate
	}
	if endDate, err := time.Parse(time.RFC3339, c.Query("endDate")); err == nil {
		filter.EndDate = endDate
	}

	logs, total, err := h.auditService.ListAuditLogs(filter)
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to get audit logs"})
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}
	pages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(200, gin.H{
		"count": len(logs),
		"total": total,
		"page":  page,
		"pages": pages,
		"data":  logs,
	})
}

// GetAuditLog returns a single audit log entry
func (h *AuditHandler) GetAuditLog(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid audit log ID"})
		return
	}

	entry, err := h.auditService.GetAuditLog(uint(id))
	if err != nil {
		c.JSON(404, gin.H{"message": "Audit log not found"})
		return
	}

	c.JSON(200, entry)
}
