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

// UserService handles staff account management. All operations here are
// admin-only; enforcement happens in the middleware.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateUser creates a staff account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperror.NewBadRequestError("Name, email and password are required")
	}
	if input.Role != entity.RoleAdmin && input.Role != entity.RoleCashier {
		return nil, apperror.NewBadRequestError("Role must be admin or cashier")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents the update user input
type UpdateUserInput struct {
	Name *string
	Role *string
}

// UpdateUser updates a staff account
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if *input.Role != entity.RoleAdmin && *input.Role != entity.RoleCashier {
			return nil, apperror.NewBadRequestError("Role must be admin or cashier")
		}
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a staff account. Users cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return apperror.NewBadRequestError("Cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}

// ListUsers lists staff accounts
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}
