package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/apperror"
	"github.com/minimart/pos-api/pkg/pagination"
)

// CustomerService answers queries over the customer registry. Customers are
// registered as a side effect of recording sales, never created directly.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerByNo retrieves a customer by their formatted number ("USR0042")
func (s *CustomerService) GetCustomerByNo(ctx context.Context, customerNo string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByCustomerNo(ctx, customerNo)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name  *string
	Phone *string
}

// UpdateCustomer corrects a customer's contact details. The customer number
// is permanent and cannot be changed.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil && *input.Name != "" {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers lists customers with filtering
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// GetCustomerSales lists a customer's purchase history
func (s *CustomerService) GetCustomerSales(ctx context.Context, customerNo string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	customer, err := s.customerRepo.GetByCustomerNo(ctx, customerNo)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	sales, total, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: params,
		Search:     customer.CustomerNo,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
