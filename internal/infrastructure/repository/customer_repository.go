package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/entity"
	domainRepo "github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByCustomerNo(ctx context.Context, customerNo string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "customer_no = ?", customerNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

// FindMatch looks up an existing customer by the enabled match fields.
// Phone takes precedence over name when both are enabled.
func (r *customerRepository) FindMatch(ctx context.Context, name, phone string, matchName, matchPhone bool) (*entity.Customer, error) {
	if matchPhone && phone != "" {
		var customer entity.Customer
		err := r.db.WithContext(ctx).First(&customer, "phone = ?", phone).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if matchName && name != "" {
		var customer entity.Customer
		err := r.db.WithContext(ctx).First(&customer, "LOWER(name) = LOWER(?)", name).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{})

	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR customer_no ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&customers).Error

	return customers, total, err
}
