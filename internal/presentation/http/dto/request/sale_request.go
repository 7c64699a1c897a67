package request

import "github.com/minimart/pos-api/internal/domain/enum"

// SaleItemRequest is one requested line of a checkout
type SaleItemRequest struct {
	ProductCode string `json:"product_code" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// RecordSaleRequest represents a direct checkout request. Totals are not
// accepted from the client; the server recomputes them from catalog prices.
type RecordSaleRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required,min=1,max=255"`
	CustomerPhone string             `json:"customer_phone" binding:"omitempty,max=50"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	BagCharge     bool               `json:"bag_charge"`
	Items         []SaleItemRequest  `json:"items" binding:"required,min=1,dive"`
}

// CheckoutCartRequest records a sale from an open cart session. The cart ID
// comes from the URL.
type CheckoutCartRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required,min=1,max=255"`
	CustomerPhone string             `json:"customer_phone" binding:"omitempty,max=50"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	PaymentMethod string `form:"payment_method"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// CartItemRequest adds or updates a cart line
type CartItemRequest struct {
	ProductCode string `json:"product_code" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

// CartBagChargeRequest toggles the carry bag fee on a cart
type CartBagChargeRequest struct {
	Enabled bool `json:"enabled"`
}
