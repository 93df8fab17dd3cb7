package models

import "time"

// Product is a catalog item. Price and stock carry both validation-time and
// storage-level non-negativity constraints.
type Product struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null;index" json:"name"`
	Description     string    `gorm:"size:2000;not null" json:"description"`
	Price           float64   `gorm:"not null;index;check:price >= 0" json:"price"`
	StockQuantity   int       `gorm:"not null;index;check:stock_quantity >= 0" json:"stock_quantity"`
	Category        string    `gorm:"size:100;not null;index" json:"category"`
	Image           string    `gorm:"size:255" json:"image,omitempty"`
	ManufactureDate time.Time `gorm:"not null" json:"manufacture_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// IsAvailable reports whether the product can currently be ordered.
func (p Product) IsAvailable() bool { return p.StockQuantity > 0 }
