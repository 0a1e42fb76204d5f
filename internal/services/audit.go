package services

import (
	"errors"
	"time"

	"inventory-api/internal/config"
	"inventory-api/internal/models"

	"gorm.io/gorm"
)

var ErrAuditLogNotFound = errors.New("audit log not found")

type AuditService struct {
	cfg *config.Config
}

func NewAuditService(cfg *config.Config) *AuditService {
	return &AuditService{cfg: cfg}
}

// Record persists one audit log entry. Entries are append-only; the
// service exposes no update or delete path.
func (s *AuditService) Record(entry *models.AuditLog) error {
	return models.DB.Create(entry).Error
}

// AuditFilter narrows audit log listings
type AuditFilter struct {
	UserID    uint
	Action    string
	Resource  string
	StartDate time.Time
	EndDate   time.Time
	Page      int
	Limit     int
}

// ListAuditLogs returns audit logs matching the filter, newest first,
// along with the total match count for pagination.
func (s *AuditService) ListAuditLogs(filter AuditFilter) ([]models.AuditLog, int64, error) {
	query := models.DB.Model(&models.AuditLog{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Resource != "" {
		query = query.Where("resource = ?", filter.Resource)
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("created_at >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("created_at <= ?", filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	var logs []models.AuditLog
	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	// Clear credential material from preloaded actors
	for i := range logs {
		logs[i].User.PasswordHash = ""
		logs[i].User.MFASecret = ""
	}

	return logs, total, nil
}

// GetAuditLog returns a single audit log entry
func (s *AuditService) GetAuditLog(id uint) (*models.AuditLog, error) {
	var entry models.AuditLog
	if err := models.DB.Preload("User").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditLogNotFound
		}
		return nil, err
	}

	entry.User.PasswordHash = ""
	entry.User.MFASecret = ""
	return &entry, nil
}
