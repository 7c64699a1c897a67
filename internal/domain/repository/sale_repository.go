package repository

import (
	"context"
	"time"

	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/enum"
	"github.com/minimart/pos-api/pkg/pagination"
)

// SaleFilterParams represents sale filtering parameters
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentMethod *enum.PaymentMethod
	DateFrom      *time.Time
	DateTo        *time.Time
	SortBy        string
	SortOrder     string
}

// SaleRepository defines the interface for sale data access.
//
// Record persists the sale, its line items, the optional newly registered
// customer, and the stock decrements (keyed by product code, clamped at
// zero) in a single transaction. Either everything commits or nothing does.
type SaleRepository interface {
	Record(ctx context.Context, sale *entity.Sale, newCustomer *entity.Customer, stockDecrements map[string]int) error
	GetByBillNo(ctx context.Context, billNo int64) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}
