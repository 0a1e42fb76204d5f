package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Audit actions
const (
	AuditActionCreate    = "CREATE"
	AuditActionUpdate    = "UPDATE"
	AuditActionDelete    = "DELETE"
	AuditActionLogin     = "LOGIN"
	AuditActionLogout    = "LOGOUT"
	AuditActionMFASetup  = "MFA_SETUP"
	AuditActionMFAVerify = "MFA_VERIFY"
)

// Audit resources
const (
	AuditResourceUser     = "User"
	AuditResourceProduct  = "Product"
	AuditResourceCategory = "Category"
	AuditResourceSupplier = "Supplier"
	AuditResourceAuth     = "Auth"
)

// AuditLog is an append-only record of an authenticated mutation.
// Entries are created by the audit recorder and never updated or deleted.
type AuditLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Action      string    `json:"action" gorm:"type:varchar(20);not null;index"`
	Resource    string    `json:"resource" gorm:"type:varchar(50);not null;index"`
	ResourceID  string    `json:"resource_id" gorm:"type:varchar(255)"`
	OldData     JSONData  `json:"old_data" gorm:"type:text"` // before-snapshot (UPDATE, DELETE)
	NewData     JSONData  `json:"new_data" gorm:"type:text"` // after-snapshot (CREATE, UPDATE)
	Description string    `json:"description" gorm:"type:varchar(255)"`
	IPAddress   string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent   string    `json:"user_agent" gorm:"type:varchar(500)"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// JSONData is a custom type for raw JSON document storage
type JSONData json.RawMessage

// Value implements the driver.Valuer interface
func (d JSONData) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return string(d), nil
}

// Scan implements the sql.Scanner interface
func (d *JSONData) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = JSONData(v)
	}

	return nil
}

// MarshalJSON emits the raw document, or null when empty
func (d JSONData) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores the raw document
func (d *JSONData) UnmarshalJSON(data []byte) error {
	*d = append((*d)[:0], data...)
	return nil
}
