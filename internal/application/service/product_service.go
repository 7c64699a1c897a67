package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/apperror"
	"github.com/minimart/pos-api/pkg/pagination"
	"github.com/minimart/pos-api/pkg/utils"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input. Price is in
// whole currency units.
type CreateProductInput struct {
	Name       string
	Code       string
	CategoryID *uuid.UUID
	Price      float64
	Stock      int
	StockAlert int
	ImageURL   *string
}

// CreateProduct creates a new catalog product. An empty code gets a
// generated one.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already in use")
	}

	product := &entity.Product{
		Name:          input.Name,
		Slug:          utils.Slugify(input.Name),
		Code:          code,
		CategoryID:    input.CategoryID,
		StockQuantity: input.Stock,
		StockAlert:    input.StockAlert,
		ImageURL:      input.ImageURL,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound
	}
	return product, nil
}

// GetProductByCode retrieves a product by its code, as scanned at the till
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound
	}
	return product, nil
}

// UpdateProductInput represents the update product input. Nil fields are
// left untouched.
type UpdateProductInput struct {
	Name       *string
	CategoryID *uuid.UUID
	Price      *float64
	StockAlert *int
	ImageURL   *string
}

// UpdateProduct updates a product's catalog fields. Stock is adjusted
// through RestockProduct, never set directly here.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound
	}

	if input.Name != nil && *input.Name != "" {
		product.Name = *input.Name
		product.Slug = utils.Slugify(*input.Name)
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product. Recorded sales keep their snapshot
// of the product, so history is unaffected.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products at or below their alert threshold
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// RestockProduct applies a stock delta atomically. Negative deltas correct
// overcounts and clamp at zero.
func (s *ProductService) RestockProduct(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error) {
	if delta == 0 {
		return nil, apperror.NewBadRequestError("Stock adjustment cannot be zero")
	}
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if err := s.productRepo.AdjustStock(ctx, id, delta); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}
