package request

// UpdateSettingsRequest represents a store settings update. Nil fields are
// left untouched.
type UpdateSettingsRequest struct {
	StoreName         *string `json:"store_name" binding:"omitempty,min=1,max=255"`
	Address           *string `json:"address" binding:"omitempty,max=255"`
	Phone             *string `json:"phone" binding:"omitempty,max=50"`
	TaxID             *string `json:"tax_id" binding:"omitempty,max=50"`
	ReceiptFooter     *string `json:"receipt_footer" binding:"omitempty,max=255"`
	LoyaltyEnabled    *bool   `json:"loyalty_enabled"`
	LoyaltyPercent    *int    `json:"loyalty_percent" binding:"omitempty,min=0,max=100"`
	LoyaltyMatchPhone *bool   `json:"loyalty_match_phone"`
	LoyaltyMatchName  *bool   `json:"loyalty_match_name"`
}

// UpdateCustomerRequest corrects a customer's contact details
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
}
