package service

import (
	"context"
	"time"

	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/repository"
)

// DashboardService aggregates sales figures for the admin dashboard
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, productRepo repository.ProductRepository) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
	}
}

// DashboardStats is the dashboard landing payload
type DashboardStats struct {
	Today        *repository.TodayStats         `json:"today"`
	DailyRevenue []repository.DailyRevenuePoint `json:"daily_revenue"`
	LowStock     []entity.Product               `json:"low_stock"`
}

// GetStats returns today's figures, the last week of revenue and the
// products running low
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	today, err := s.analyticsRepo.TodayStats(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.analyticsRepo.DailyRevenue(ctx, 7)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Today:        today,
		DailyRevenue: daily,
		LowStock:     lowStock,
	}, nil
}

// GetSalesByCategory aggregates sold quantity and revenue per category over
// the given window. A zero window defaults to the last 30 days.
func (s *DashboardService) GetSalesByCategory(ctx context.Context, from, to time.Time) ([]repository.CategorySalesResult, error) {
	from, to = defaultWindow(from, to)
	return s.analyticsRepo.SalesByCategory(ctx, from, to)
}

// GetTopProducts returns the best sellers over the given window
func (s *DashboardService) GetTopProducts(ctx context.Context, limit int, from, to time.Time) ([]repository.TopProductResult, error) {
	from, to = defaultWindow(from, to)
	return s.analyticsRepo.TopProducts(ctx, limit, from, to)
}

func defaultWindow(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return from, to
}
