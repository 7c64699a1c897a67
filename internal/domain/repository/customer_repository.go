package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByCustomerNo(ctx context.Context, customerNo string) (*entity.Customer, error)
	// FindMatch looks up an existing customer by phone and/or name according
	// to the enabled match fields. Returns nil when no field is enabled or
	// nothing matches.
	FindMatch(ctx context.Context, name, phone string, matchName, matchPhone bool) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
