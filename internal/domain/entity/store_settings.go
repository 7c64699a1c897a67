package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreSettings holds the single store's editable configuration: the receipt
// header and the returning-customer discount policy. Exactly one row exists;
// it is seeded from config defaults on first start.
type StoreSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Receipt header
	StoreName     string `gorm:"size:255;default:'Minimart'" json:"store_name"`
	Address       string `gorm:"size:255" json:"address"`
	Phone         string `gorm:"size:50" json:"phone"`
	TaxID         string `gorm:"size:50" json:"tax_id"`
	ReceiptFooter string `gorm:"size:255;default:'Thank you, visit again!'" json:"receipt_footer"`

	// Returning-customer discount policy
	LoyaltyEnabled    bool `gorm:"default:true" json:"loyalty_enabled"`
	LoyaltyPercent    int  `gorm:"default:10" json:"loyalty_percent"`
	LoyaltyMatchPhone bool `gorm:"default:true" json:"loyalty_match_phone"`
	LoyaltyMatchName  bool `gorm:"default:false" json:"loyalty_match_name"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
