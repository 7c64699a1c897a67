package repository

import (
	"context"
	"time"
)

// TodayStats aggregates sales figures for the current day
type TodayStats struct {
	SalesCount   int64 `json:"sales_count"`
	Revenue      int64 `json:"revenue"`
	ItemsSold    int64 `json:"items_sold"`
	NewCustomers int64 `json:"new_customers"`
}

// DailyRevenuePoint is one day in a revenue time series
type DailyRevenuePoint struct {
	Date    time.Time `json:"date"`
	Revenue int64     `json:"revenue"`
	Count   int64     `json:"count"`
}

// CategorySalesResult aggregates sold quantity and revenue per category
type CategorySalesResult struct {
	CategoryName string `json:"category_name"`
	Quantity     int64  `json:"quantity"`
	Revenue      int64  `json:"revenue"`
}

// TopProductResult is one row of the best sellers report
type TopProductResult struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Revenue     int64  `json:"revenue"`
}

// AnalyticsRepository defines the interface for dashboard aggregations
type AnalyticsRepository interface {
	TodayStats(ctx context.Context) (*TodayStats, error)
	DailyRevenue(ctx context.Context, days int) ([]DailyRevenuePoint, error)
	SalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySalesResult, error)
	TopProducts(ctx context.Context, limit int, from, to time.Time) ([]TopProductResult, error)
}
