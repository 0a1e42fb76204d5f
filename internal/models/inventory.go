package models

import (
	"encoding/json"
	"time"
)

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null"`
	Description string    `json:"description" gorm:"type:varchar(200)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Supplier struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	ContactEmail string    `json:"contact_email" gorm:"type:varchar(255);not null"` // stored lowercase
	ContactPhone string    `json:"contact_phone" gorm:"type:varchar(20)"`
	Address      string    `json:"address" gorm:"type:varchar(300)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Stock status values derived from quantity vs minimum stock level
const (
	StockStatusOut = "OUT_OF_STOCK"
	StockStatusLow = "LOW_STOCK"
	StockStatusIn  = "IN_STOCK"
)

type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	SKU           string    `json:"sku" gorm:"type:varchar(50);uniqueIndex;not null"` // stored uppercase
	CategoryID    uint      `json:"category_id" gorm:"not null;index"`
	Category      Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	SupplierID    *uint     `json:"supplier_id" gorm:"index"`
	Supplier      *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Description   string    `json:"description" gorm:"type:varchar(500)"`
	Price         float64   `json:"price" gorm:"not null"`
	Quantity      int       `json:"quantity" gorm:"default:0"`
	MinStockLevel int       `json:"min_stock_level" gorm:"default:10"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockStatus derives the stock state from quantity and minimum stock level.
func (p *Product) StockStatus() string {
	if p.Quantity == 0 {
		return StockStatusOut
	}
	if p.Quantity <= p.MinStockLevel {
		return StockStatusLow
	}
	return StockStatusIn
}

// MarshalJSON includes the derived stock_status field in serialized products.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		StockStatus string `json:"stock_status"`
	}{
		alias:       alias(p),
		StockStatus: p.StockStatus(),
	})
}
