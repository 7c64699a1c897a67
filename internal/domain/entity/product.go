package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a product in the store catalog
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Slug          string         `gorm:"size:255;unique;not null" json:"slug"`
	Code          string         `gorm:"size:100;unique;not null" json:"code"`
	Price         int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	StockAlert    int            `gorm:"default:0" json:"stock_alert"`
	ImageURL      *string        `gorm:"size:255" json:"image_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: float64(p.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceDecimal returns the selling price as a decimal (for display)
func (p *Product) PriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price * 100)
}

// IsLowStock reports whether the stock has fallen to the alert threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.StockAlert
}

// Category represents a product category
type Category struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Abbreviation string         `gorm:"size:20;not null" json:"abbreviation"`
	Slug         string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
