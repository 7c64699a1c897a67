package repository

import (
	"context"
	"errors"

	"github.com/minimart/pos-api/internal/domain/entity"
	domainRepo "github.com/minimart/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Record persists the sale, its items, the optional new customer, and the
// stock decrements in a single transaction. Decrements clamp at zero:
// UPDATE products SET stock_quantity = GREATEST(stock_quantity - qty, 0)
func (r *saleRepository) Record(ctx context.Context, sale *entity.Sale, newCustomer *entity.Customer, stockDecrements map[string]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if newCustomer != nil {
			if err := tx.Create(newCustomer).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for code, qty := range stockDecrements {
			if err := tx.Model(&entity.Product{}).
				Where("code = ?", code).
				Update("stock_quantity", gorm.Expr("GREATEST(stock_quantity - ?, 0)", qty)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *saleRepository) GetByBillNo(ctx context.Context, billNo int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "bill_no = ?", billNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ? OR customer_no ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}

	if params.DateFrom != nil {
		query = query.Where("bill_date >= ?", *params.DateFrom)
	}

	if params.DateTo != nil {
		query = query.Where("bill_date <= ?", *params.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := saleSortColumn(params.SortBy)
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

// saleSortColumn whitelists user-supplied sort columns; anything not listed
// falls back to the default so query input never reaches the ORDER BY raw
func saleSortColumn(s string) string {
	switch s {
	case "bill_no", "bill_date", "customer_name", "grand_total", "created_at":
		return s
	}
	return "bill_no"
}
