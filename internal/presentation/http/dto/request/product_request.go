package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request. Price is in
// whole currency units ("50.00").
type CreateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Name       string     `json:"name" binding:"required,min=2,max=255"`
	Code       string     `json:"code" binding:"omitempty,max=100"`
	Price      float64    `json:"price" binding:"min=0"`
	Stock      int        `json:"stock" binding:"min=0"`
	StockAlert int        `json:"stock_alert" binding:"min=0"`
	ImageURL   *string    `json:"image_url"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Name       *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Price      *float64   `json:"price" binding:"omitempty,min=0"`
	StockAlert *int       `json:"stock_alert" binding:"omitempty,min=0"`
	ImageURL   *string    `json:"image_url"`
}

// RestockRequest represents a stock adjustment request
type RestockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	Abbreviation string `json:"abbreviation" binding:"omitempty,max=10"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=255"`
	Abbreviation *string `json:"abbreviation" binding:"omitempty,max=10"`
}
