package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minimart/pos-api/internal/billing"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/enum"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/apperror"
	"github.com/minimart/pos-api/pkg/pagination"
	"github.com/minimart/pos-api/pkg/sequence"
)

// recordAttempts is how many times a failed checkout is retried before the
// caller sees a storage error
const recordAttempts = 3

// SaleService records checkouts and answers sale queries
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	sequenceRepo repository.SequenceRepository
	settingsRepo repository.SettingsRepository
	policy       billing.Policy
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	sequenceRepo repository.SequenceRepository,
	settingsRepo repository.SettingsRepository,
	policy billing.Policy,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		sequenceRepo: sequenceRepo,
		settingsRepo: settingsRepo,
		policy:       policy,
	}
}

// SaleItemInput represents one requested line of a checkout
type SaleItemInput struct {
	ProductCode string
	Quantity    int
}

// RecordSaleInput represents the checkout input. Totals are never taken
// from the client; they are recomputed from the catalog prices here.
type RecordSaleInput struct {
	CustomerName  string
	CustomerPhone string
	PaymentMethod enum.PaymentMethod
	BagCharge     bool
	Items         []SaleItemInput
}

// RecordSale validates the checkout, recomputes the bill, allocates the
// bill number and records everything in one transaction. Stock decrements
// clamp at zero rather than failing the sale: the items have already left
// the store, so the bill must be recorded even if the counts drifted.
func (s *SaleService) RecordSale(ctx context.Context, input *RecordSaleInput) (*entity.Sale, error) {
	if input.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must contain at least one item")
	}

	// Merge duplicate lines before validation
	quantities := make(map[string]int, len(input.Items))
	codes := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.ErrInvalidQuantity
		}
		if _, seen := quantities[item.ProductCode]; !seen {
			codes = append(codes, item.ProductCode)
		}
		quantities[item.ProductCode] += item.Quantity
	}

	// Batch fetch all products in one query (prevents N+1)
	products, err := s.productRepo.GetByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	productMap := make(map[string]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].Code] = &products[i]
	}

	lines := make([]billing.LineItem, 0, len(codes))
	stockDecrements := make(map[string]int, len(codes))
	for _, code := range codes {
		product, exists := productMap[code]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", code))
		}
		// Stock is not checked here: the cart rejects over-stock adds before
		// checkout, and by record time the goods have left the store. The
		// decrement clamps at zero instead.
		qty := quantities[code]
		lines = append(lines, billing.LineItem{
			ProductCode: product.Code,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    qty,
		})
		stockDecrements[code] = qty
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Returning-customer discount and customer number reuse
	var discountPercent float64
	var discountLabel string
	var customerNo string
	existing, err := s.customerRepo.FindMatch(ctx,
		input.CustomerName, input.CustomerPhone,
		settings.LoyaltyMatchName, settings.LoyaltyMatchPhone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		customerNo = existing.CustomerNo
		if settings.LoyaltyEnabled && settings.LoyaltyPercent > 0 {
			discountPercent = float64(settings.LoyaltyPercent)
			discountLabel = fmt.Sprintf("Loyalty %d%%", settings.LoyaltyPercent)
		}
	}

	totals := billing.Compute(lines, input.BagCharge, discountPercent, s.policy)

	items := make([]entity.SaleItem, len(lines))
	for i, line := range lines {
		items[i] = entity.SaleItem{
			ProductCode: line.ProductCode,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Discount:    line.Discount,
			LineTotal:   line.Total(),
		}
	}

	var lastErr error
	for attempt := 0; attempt < recordAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}

		// Allocate fresh numbers each attempt so a conflicting insert is
		// never retried with the same bill number
		billNo, err := s.sequenceRepo.Next(ctx, sequence.BillCounter)
		if err != nil {
			lastErr = err
			continue
		}

		var newCustomer *entity.Customer
		saleCustomerNo := customerNo
		if saleCustomerNo == "" {
			n, err := s.sequenceRepo.Next(ctx, sequence.CustomerCounter)
			if err != nil {
				lastErr = err
				continue
			}
			saleCustomerNo = sequence.FormatCustomerNo(n)
			newCustomer = &entity.Customer{
				Name:       input.CustomerName,
				Phone:      input.CustomerPhone,
				CustomerNo: saleCustomerNo,
			}
		}

		sale := &entity.Sale{
			BillNo:        billNo,
			BillDate:      time.Now(),
			CustomerName:  input.CustomerName,
			CustomerPhone: input.CustomerPhone,
			CustomerNo:    saleCustomerNo,
			PaymentMethod: input.PaymentMethod,
			SubTotal:      totals.SubTotal,
			Tax:           totals.Tax,
			BagFee:        totals.BagFee,
			Discount:      totals.Discount,
			DiscountLabel: discountLabel,
			GrandTotal:    totals.GrandTotal,
			Items:         cloneItems(items),
		}

		if err := s.saleRepo.Record(ctx, sale, newCustomer, stockDecrements); err != nil {
			lastErr = err
			continue
		}
		return sale, nil
	}

	return nil, &apperror.AppError{
		Code:    apperror.ErrPersistenceUnavailable.Code,
		Message: fmt.Sprintf("%s: %v", apperror.ErrPersistenceUnavailable.Message, lastErr),
	}
}

// cloneItems gives each attempt its own item slice so a failed insert never
// leaks generated IDs into the next one
func cloneItems(items []entity.SaleItem) []entity.SaleItem {
	out := make([]entity.SaleItem, len(items))
	copy(out, items)
	return out
}

// GetSale retrieves a sale by its formatted bill number ("042")
func (s *SaleService) GetSale(ctx context.Context, billNo string) (*entity.Sale, error) {
	n, err := sequence.ParseBillNo(billNo)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid bill number")
	}

	sale, err := s.saleRepo.GetByBillNo(ctx, n)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// NextNumbers holds the numbers the next checkout would be assigned
type NextNumbers struct {
	BillNo     string `json:"bill_no"`
	CustomerNo string `json:"customer_no"`
}

// PeekNextNumbers reports the next bill and customer numbers without
// consuming them. Purely informational: a concurrent checkout may claim
// them first.
func (s *SaleService) PeekNextNumbers(ctx context.Context) (*NextNumbers, error) {
	bill, err := s.sequenceRepo.Peek(ctx, sequence.BillCounter)
	if err != nil {
		return nil, err
	}
	cust, err := s.sequenceRepo.Peek(ctx, sequence.CustomerCounter)
	if err != nil {
		return nil, err
	}
	return &NextNumbers{
		BillNo:     sequence.FormatBillNo(bill),
		CustomerNo: sequence.FormatCustomerNo(cust),
	}, nil
}
