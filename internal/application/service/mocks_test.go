package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/pagination"
)

// mockProductRepo serves products from an in-memory map keyed by code
type mockProductRepo struct {
	products map[string]*entity.Product
	err      error
}

func (m *mockProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }

func (m *mockProductRepo) GetByID(_ context.Context, _ uuid.UUID) (*entity.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetBySlug(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products[code], nil
}

func (m *mockProductRepo) GetByCodes(_ context.Context, codes []string) ([]entity.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]entity.Product, 0, len(codes))
	for _, code := range codes {
		if p, ok := m.products[code]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (m *mockProductRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }

func (m *mockProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (m *mockProductRepo) GetLowStock(_ context.Context) ([]entity.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) AdjustStock(_ context.Context, _ uuid.UUID, _ int) error { return nil }

func (m *mockProductRepo) CountByCategory(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

// recordedSale captures one Record call
type recordedSale struct {
	Sale        *entity.Sale
	NewCustomer *entity.Customer
	Decrements  map[string]int
}

// mockSaleRepo captures recorded sales. RecordErrs is consumed one error
// per call, so a test can fail the first attempts and let a later one
// succeed.
type mockSaleRepo struct {
	mu         sync.Mutex
	Recorded   []recordedSale
	RecordErrs []error
	Sale       *entity.Sale
	GetErr     error
}

func (m *mockSaleRepo) Record(_ context.Context, sale *entity.Sale, newCustomer *entity.Customer, decrements map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var err error
	if len(m.RecordErrs) > 0 {
		err = m.RecordErrs[0]
		m.RecordErrs = m.RecordErrs[1:]
	}
	if err != nil {
		return err
	}
	m.Recorded = append(m.Recorded, recordedSale{Sale: sale, NewCustomer: newCustomer, Decrements: decrements})
	return nil
}

func (m *mockSaleRepo) GetByBillNo(_ context.Context, billNo int64) (*entity.Sale, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Sale != nil && m.Sale.BillNo == billNo {
		return m.Sale, nil
	}
	return nil, nil
}

func (m *mockSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

// mockCustomerRepo returns a fixed match for FindMatch
type mockCustomerRepo struct {
	Match    *entity.Customer
	MatchErr error
}

func (m *mockCustomerRepo) GetByID(_ context.Context, _ uuid.UUID) (*entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) GetByCustomerNo(_ context.Context, _ string) (*entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) FindMatch(_ context.Context, _, _ string, _, _ bool) (*entity.Customer, error) {
	return m.Match, m.MatchErr
}

func (m *mockCustomerRepo) Update(_ context.Context, _ *entity.Customer) error { return nil }

func (m *mockCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

// mockSequenceRepo behaves like the real counter table: every Next call
// hands out a distinct value, safe under concurrency
type mockSequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
	NextErr  error
}

func newMockSequenceRepo() *mockSequenceRepo {
	return &mockSequenceRepo{counters: make(map[string]int64)}
}

func (m *mockSequenceRepo) Next(_ context.Context, name string) (int64, error) {
	if m.NextErr != nil {
		return 0, m.NextErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
	return m.counters[name], nil
}

func (m *mockSequenceRepo) Peek(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name] + 1, nil
}

// mockSettingsRepo returns a fixed settings row
type mockSettingsRepo struct {
	Settings *entity.StoreSettings
}

func (m *mockSettingsRepo) Get(_ context.Context) (*entity.StoreSettings, error) {
	return m.Settings, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, _ *entity.StoreSettings) error { return nil }
