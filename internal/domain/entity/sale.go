package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/enum"
	"github.com/minimart/pos-api/pkg/sequence"
	"gorm.io/gorm"
)

// Sale represents a completed, immutable checkout. Sales are never updated or
// deleted once recorded; item rows are snapshots of the catalog at sale time.
type Sale struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BillNo          int64              `gorm:"uniqueIndex;not null" json:"-"`
	BillDate        time.Time          `gorm:"not null;index" json:"bill_date"`
	CustomerName    string             `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone   string             `gorm:"size:50" json:"customer_phone"`
	CustomerNo      string             `gorm:"size:20;index" json:"customer_no"`
	PaymentMethod   enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	SubTotal        int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Tax             int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	BagFee          int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Discount        int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountLabel   string             `gorm:"size:20" json:"discount_label"`
	GrandTotal      int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt       time.Time          `json:"created_at"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal and expose the
// formatted bill number for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		BillNo     string  `json:"bill_no"`
		SubTotal   float64 `json:"sub_total"`
		Tax        float64 `json:"tax"`
		BagFee     float64 `json:"bag_fee"`
		Discount   float64 `json:"discount"`
		GrandTotal float64 `json:"grand_total"`
	}{
		Alias:      Alias(s),
		BillNo:     sequence.FormatBillNo(s.BillNo),
		SubTotal:   float64(s.SubTotal) / 100,
		Tax:        float64(s.Tax) / 100,
		BagFee:     float64(s.BagFee) / 100,
		Discount:   float64(s.Discount) / 100,
		GrandTotal: float64(s.GrandTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is a snapshot of one sold line. Code, name and unit price are
// copied from the catalog at sale time so later price changes never alter
// historical bills.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductCode string    `gorm:"size:100;not null" json:"product_code"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	UnitPrice   int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity    int       `gorm:"not null" json:"quantity"`
	Discount    int64     `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	LineTotal   int64     `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	CreatedAt   time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Discount  float64 `json:"discount"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Discount:  float64(i.Discount) / 100,
		LineTotal: float64(i.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
