package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/minimart/pos-api/internal/billing"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/enum"
	"github.com/minimart/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	svc       *SaleService
	sales     *mockSaleRepo
	products  *mockProductRepo
	customers *mockCustomerRepo
	sequences *mockSequenceRepo
	settings  *mockSettingsRepo
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		sales: &mockSaleRepo{},
		products: &mockProductRepo{products: map[string]*entity.Product{
			"RICE": {Name: "Basmati Rice 5kg", Code: "RICE", Price: 5000, StockQuantity: 10},
			"OIL":  {Name: "Sunflower Oil 1L", Code: "OIL", Price: 4000, StockQuantity: 5},
		}},
		customers: &mockCustomerRepo{},
		sequences: newMockSequenceRepo(),
		settings: &mockSettingsRepo{Settings: &entity.StoreSettings{
			LoyaltyEnabled:    true,
			LoyaltyPercent:    10,
			LoyaltyMatchPhone: true,
		}},
	}
	f.svc = NewSaleService(f.sales, f.products, f.customers, f.sequences, f.settings, billing.DefaultPolicy())
	return f
}

func TestRecordSale_ComputesTotals(t *testing.T) {
	f := newSaleFixture()

	sale, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		PaymentMethod: enum.PaymentCash,
		BagCharge:     true,
		Items: []SaleItemInput{
			{ProductCode: "RICE", Quantity: 2},
			{ProductCode: "OIL", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(14000), sale.SubTotal)
	assert.Equal(t, int64(2520), sale.Tax)
	assert.Equal(t, int64(500), sale.BagFee)
	assert.Equal(t, int64(0), sale.Discount)
	assert.Equal(t, int64(17020), sale.GrandTotal)
	assert.Equal(t, int64(1), sale.BillNo)
	assert.Equal(t, "USR0001", sale.CustomerNo)
	assert.Len(t, sale.Items, 2)

	require.Len(t, f.sales.Recorded, 1)
	rec := f.sales.Recorded[0]
	require.NotNil(t, rec.NewCustomer)
	assert.Equal(t, "Asha", rec.NewCustomer.Name)
	assert.Equal(t, "USR0001", rec.NewCustomer.CustomerNo)
	assert.Equal(t, map[string]int{"RICE": 2, "OIL": 1}, rec.Decrements)
}

func TestRecordSale_MergesDuplicateLines(t *testing.T) {
	f := newSaleFixture()

	sale, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		PaymentMethod: enum.PaymentCash,
		Items: []SaleItemInput{
			{ProductCode: "OIL", Quantity: 2},
			{ProductCode: "OIL", Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.Equal(t, 5, sale.Items[0].Quantity)
	assert.Equal(t, int64(20000), sale.SubTotal)
	assert.Equal(t, map[string]int{"OIL": 5}, f.sales.Recorded[0].Decrements)
}

func TestRecordSale_LoyaltyDiscount(t *testing.T) {
	f := newSaleFixture()
	f.customers.Match = &entity.Customer{Name: "Asha", Phone: "9876543210", CustomerNo: "USR0042"}

	sale, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		PaymentMethod: enum.PaymentUPI,
		BagCharge:     true,
		Items: []SaleItemInput{
			{ProductCode: "RICE", Quantity: 2},
			{ProductCode: "OIL", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 10% off the 170.20 gross
	assert.Equal(t, int64(1702), sale.Discount)
	assert.Equal(t, int64(15318), sale.GrandTotal)
	assert.Equal(t, "Loyalty 10%", sale.DiscountLabel)
	assert.Equal(t, "USR0042", sale.CustomerNo)
	assert.Nil(t, f.sales.Recorded[0].NewCustomer)
}

func TestRecordSale_LoyaltyDisabled(t *testing.T) {
	f := newSaleFixture()
	f.settings.Settings.LoyaltyEnabled = false
	f.customers.Match = &entity.Customer{CustomerNo: "USR0042"}

	sale, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		PaymentMethod: enum.PaymentCash,
		Items:         []SaleItemInput{{ProductCode: "OIL", Quantity: 1}},
	})
	require.NoError(t, err)

	// Number is still reused, but no discount applies
	assert.Equal(t, "USR0042", sale.CustomerNo)
	assert.Equal(t, int64(0), sale.Discount)
	assert.Empty(t, sale.DiscountLabel)
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		PaymentMethod: enum.PaymentCash,
		Items:         []SaleItemInput{{ProductCode: "GHOST", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	assert.Empty(t, f.sales.Recorded)
}

func TestRecordSale_OverStockRecordsAndClamps(t *testing.T) {
	f := newSaleFixture()
	f.products.products["OIL"].StockQuantity = 2

	// Stock checks belong to the cart; by record time the goods have left
	// the store, so the sale commits and the decrement clamps at zero
	sale, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		PaymentMethod: enum.PaymentCash,
		Items:         []SaleItemInput{{ProductCode: "OIL", Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12000), sale.SubTotal)
	require.Len(t, f.sales.Recorded, 1)
	assert.Equal(t, map[string]int{"OIL": 3}, f.sales.Recorded[0].Decrements)
}

func TestRecordSale_InvalidQuantity(t *testing.T) {
	f := newSaleFixture()

	for _, qty := range []int{0, -1} {
		_, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
			CustomerName:  "Asha",
			PaymentMethod: enum.PaymentCash,
			Items:         []SaleItemInput{{ProductCode: "OIL", Quantity: qty}},
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidQuantity)
	}
}

func TestRecordSale_ValidatesInput(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		PaymentMethod: enum.PaymentCash,
		Items:         []SaleItemInput{{ProductCode: "OIL", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	_, err = f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		PaymentMethod: enum.PaymentCash,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestRecordSale_RetriesWithFreshBillNo(t *testing.T) {
	f := newSaleFixture()
	f.sales.RecordErrs = []error{
		errors.New("duplicate key value violates unique constraint"),
		errors.New("duplicate key value violates unique constraint"),
	}

	sale, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		PaymentMethod: enum.PaymentCash,
		Items:         []SaleItemInput{{ProductCode: "OIL", Quantity: 1}},
	})
	require.NoError(t, err)

	// Two failed attempts burned bill numbers 1 and 2
	assert.Equal(t, int64(3), sale.BillNo)
	require.Len(t, f.sales.Recorded, 1)
}

func TestRecordSale_PersistenceUnavailable(t *testing.T) {
	f := newSaleFixture()
	f.sales.RecordErrs = []error{
		errors.New("connection refused"),
		errors.New("connection refused"),
		errors.New("connection refused"),
	}

	_, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		PaymentMethod: enum.PaymentCash,
		Items:         []SaleItemInput{{ProductCode: "OIL", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.GetAppError(err).Code)
	assert.Empty(t, f.sales.Recorded)
}

func TestRecordSale_ConcurrentCheckoutsGetDistinctBillNos(t *testing.T) {
	f := newSaleFixture()
	f.products.products["OIL"].StockQuantity = 1000

	const checkouts = 50
	results := make([]*entity.Sale, checkouts)

	var wg sync.WaitGroup
	for i := 0; i < checkouts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sale, err := f.svc.RecordSale(context.Background(), &RecordSaleInput{
				CustomerName:  "Asha",
				PaymentMethod: enum.PaymentCash,
				Items:         []SaleItemInput{{ProductCode: "OIL", Quantity: 1}},
			})
			if !assert.NoError(t, err) {
				return
			}
			results[i] = sale
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, checkouts)
	for _, sale := range results {
		require.NotNil(t, sale)
		assert.False(t, seen[sale.BillNo], "bill number %d assigned twice", sale.BillNo)
		seen[sale.BillNo] = true
	}
}

func TestGetSale(t *testing.T) {
	f := newSaleFixture()
	f.sales.Sale = &entity.Sale{BillNo: 42}

	sale, err := f.svc.GetSale(context.Background(), "042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), sale.BillNo)

	_, err = f.svc.GetSale(context.Background(), "999")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	_, err = f.svc.GetSale(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestPeekNextNumbers(t *testing.T) {
	f := newSaleFixture()

	next, err := f.svc.PeekNextNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "001", next.BillNo)
	assert.Equal(t, "USR0001", next.CustomerNo)

	// Recording a sale advances both counters
	_, err = f.svc.RecordSale(context.Background(), &RecordSaleInput{
		CustomerName:  "Asha",
		PaymentMethod: enum.PaymentCash,
		Items:         []SaleItemInput{{ProductCode: "OIL", Quantity: 1}},
	})
	require.NoError(t, err)

	next, err = f.svc.PeekNextNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "002", next.BillNo)
	assert.Equal(t, "USR0002", next.CustomerNo)
}
