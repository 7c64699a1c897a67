package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/apperror"
	"github.com/minimart/pos-api/pkg/pagination"
	"github.com/minimart/pos-api/pkg/utils"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name         string
	Abbreviation string
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		Name:         input.Name,
		Abbreviation: strings.ToUpper(input.Abbreviation),
		Slug:         slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	Name         *string
	Abbreviation *string
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != nil && *input.Name != "" {
		category.Name = *input.Name
		category.Slug = utils.Slugify(*input.Name)
	}
	if input.Abbreviation != nil {
		category.Abbreviation = strings.ToUpper(*input.Abbreviation)
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category that no product references
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Category still has products")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories lists categories with filtering
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}
