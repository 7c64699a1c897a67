package billing

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimart/pos-api/pkg/apperror"
)

func TestCart_TotalsBreakdown(t *testing.T) {
	cart := NewCart(DefaultPolicy())

	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 2, 10))
	require.NoError(t, cart.AddItem("PRD-B", "Sugar 500g", 2000, 2, 10))
	cart.SetBagCharge(true)

	totals := cart.Totals()
	assert.Equal(t, int64(14000), totals.SubTotal)
	assert.Equal(t, int64(2520), totals.Tax)
	assert.Equal(t, int64(500), totals.BagFee)
	assert.Equal(t, int64(0), totals.Discount)
	assert.Equal(t, int64(17020), totals.GrandTotal)
}

func TestCart_LoyaltyDiscountOnGrandTotal(t *testing.T) {
	cart := NewCart(DefaultPolicy())

	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 2, 10))
	require.NoError(t, cart.AddItem("PRD-B", "Sugar 500g", 2000, 2, 10))
	cart.SetBagCharge(true)
	require.NoError(t, cart.SetDiscountPercent(10, "Loyal Customer Discount"))

	totals := cart.Totals()
	assert.Equal(t, int64(1702), totals.Discount)
	assert.Equal(t, int64(15318), totals.GrandTotal)
}

func TestCart_AddItemMergesSameProduct(t *testing.T) {
	cart := NewCart(DefaultPolicy())

	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 1, 10))
	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 2, 10))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, int64(15000), cart.Totals().SubTotal)
}

func TestCart_AddItemInsufficientStockLeavesCartUnchanged(t *testing.T) {
	cart := NewCart(DefaultPolicy())
	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 3, 5))

	err := cart.AddItem("PRD-A", "Rice 1kg", 5000, 3, 5)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "Rice 1kg")

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestCart_AddItemInvalidQuantity(t *testing.T) {
	cart := NewCart(DefaultPolicy())

	assert.ErrorIs(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 0, 10), apperror.ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, -2, 10), apperror.ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart(DefaultPolicy())
	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 1, 10))
	require.NoError(t, cart.AddItem("PRD-B", "Sugar 500g", 2000, 1, 10))

	cart.RemoveItem("PRD-A")
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "PRD-B", lines[0].ProductCode)

	// removing an absent code is a no-op
	cart.RemoveItem("PRD-MISSING")
	assert.Len(t, cart.Lines(), 1)
}

func TestCart_SetQuantity(t *testing.T) {
	cart := NewCart(DefaultPolicy())
	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 1, 10))

	require.NoError(t, cart.SetQuantity("PRD-A", 4, 10))
	assert.Equal(t, 4, cart.Lines()[0].Quantity)

	assert.ErrorIs(t, cart.SetQuantity("PRD-A", 0, 10), apperror.ErrInvalidQuantity)
	assert.ErrorIs(t, cart.SetQuantity("PRD-MISSING", 1, 10), apperror.ErrProductNotFound)

	err := cart.SetQuantity("PRD-A", 11, 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestCart_SetLineDiscount(t *testing.T) {
	cart := NewCart(DefaultPolicy())
	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 2, 10))

	require.NoError(t, cart.SetLineDiscount("PRD-A", 1000))
	assert.Equal(t, int64(9000), cart.Totals().SubTotal)

	assert.Error(t, cart.SetLineDiscount("PRD-A", 20000))
	assert.Error(t, cart.SetLineDiscount("PRD-A", -1))
	assert.ErrorIs(t, cart.SetLineDiscount("PRD-MISSING", 100), apperror.ErrProductNotFound)
}

func TestCart_TotalsIsPure(t *testing.T) {
	cart := NewCart(DefaultPolicy())
	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 2, 10))
	cart.SetBagCharge(true)

	first := cart.Totals()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, cart.Totals())
	}
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart(DefaultPolicy())
	require.NoError(t, cart.AddItem("PRD-A", "Rice 1kg", 5000, 2, 10))
	cart.SetBagCharge(true)
	require.NoError(t, cart.SetDiscountPercent(10, "Loyal Customer Discount"))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.BagCharge())
	assert.Zero(t, cart.DiscountPercent())
	assert.Equal(t, Totals{}, cart.Totals())
}

func TestCompute_EmptyCart(t *testing.T) {
	totals := Compute(nil, false, 0, DefaultPolicy())
	assert.Equal(t, Totals{}, totals)
}

func TestCompute_BagChargeOnly(t *testing.T) {
	totals := Compute(nil, true, 0, DefaultPolicy())
	assert.Equal(t, int64(500), totals.BagFee)
	assert.Equal(t, int64(500), totals.GrandTotal)
}

func TestCompute_TaxRounding(t *testing.T) {
	lines := []LineItem{{ProductCode: "PRD-A", ProductName: "Pen", UnitPrice: 1050, Quantity: 1}}
	totals := Compute(lines, false, 0, DefaultPolicy())
	// 10.50 * 0.18 = 1.89 exactly
	assert.Equal(t, int64(189), totals.Tax)

	lines[0].UnitPrice = 999
	totals = Compute(lines, false, 0, DefaultPolicy())
	// 9.99 * 0.18 = 1.7982, rounds to 1.80
	assert.Equal(t, int64(180), totals.Tax)
}
