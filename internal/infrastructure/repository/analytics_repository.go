package repository

import (
	"context"
	"time"

	"github.com/minimart/pos-api/internal/domain/entity"
	domainRepo "github.com/minimart/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) TodayStats(ctx context.Context) (*domainRepo.TodayStats, error) {
	stats := &domainRepo.TodayStats{}
	start := time.Now().Truncate(24 * time.Hour)

	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("bill_date >= ?", start).
		Select("COUNT(*) AS sales_count, COALESCE(SUM(grand_total), 0) AS revenue").
		Scan(stats).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.bill_date >= ?", start).
		Select("COALESCE(SUM(sale_items.quantity), 0)").
		Scan(&stats.ItemsSold).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("created_at >= ?", start).
		Count(&stats.NewCustomers).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *analyticsRepository) DailyRevenue(ctx context.Context, days int) ([]domainRepo.DailyRevenuePoint, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days).Truncate(24 * time.Hour)

	var points []domainRepo.DailyRevenuePoint
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("bill_date >= ?", since).
		Select("DATE(bill_date) AS date, COALESCE(SUM(grand_total), 0) AS revenue, COUNT(*) AS count").
		Group("DATE(bill_date)").
		Order("date ASC").
		Scan(&points).Error

	return points, err
}

func (r *analyticsRepository) SalesByCategory(ctx context.Context, from, to time.Time) ([]domainRepo.CategorySalesResult, error) {
	var results []domainRepo.CategorySalesResult
	err := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.code = sale_items.product_code").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("sales.bill_date BETWEEN ? AND ?", from, to).
		Select("COALESCE(categories.name, 'Uncategorized') AS category_name, " +
			"SUM(sale_items.quantity) AS quantity, " +
			"SUM(sale_items.line_total) AS revenue").
		Group("categories.name").
		Order("revenue DESC").
		Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) TopProducts(ctx context.Context, limit int, from, to time.Time) ([]domainRepo.TopProductResult, error) {
	if limit <= 0 {
		limit = 10
	}

	var results []domainRepo.TopProductResult
	err := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.bill_date BETWEEN ? AND ?", from, to).
		Select("sale_items.product_code, sale_items.product_name, " +
			"SUM(sale_items.quantity) AS quantity, " +
			"SUM(sale_items.line_total) AS revenue").
		Group("sale_items.product_code, sale_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&results).Error

	return results, err
}
