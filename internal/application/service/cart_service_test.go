package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/minimart/pos-api/internal/billing"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture() *CartService {
	products := &mockProductRepo{products: map[string]*entity.Product{
		"RICE": {Name: "Basmati Rice 5kg", Code: "RICE", Price: 5000, StockQuantity: 10},
		"OIL":  {Name: "Sunflower Oil 1L", Code: "OIL", Price: 4000, StockQuantity: 5},
	}}
	return NewCartService(products, billing.DefaultPolicy(), time.Hour)
}

func TestCartService_Lifecycle(t *testing.T) {
	svc := newCartFixture()
	ctx := context.Background()

	view := svc.CreateCart()
	require.NotEmpty(t, view.ID)
	assert.Empty(t, view.Items)

	view, err := svc.AddItem(ctx, view.ID, "RICE", 2)
	require.NoError(t, err)
	view, err = svc.AddItem(ctx, view.ID, "OIL", 1)
	require.NoError(t, err)
	view, err = svc.SetBagCharge(view.ID, true)
	require.NoError(t, err)

	assert.Len(t, view.Items, 2)
	assert.InDelta(t, 140.00, view.SubTotal, 0.001)
	assert.InDelta(t, 25.20, view.Tax, 0.001)
	assert.InDelta(t, 5.00, view.BagFee, 0.001)
	assert.InDelta(t, 170.20, view.GrandTotal, 0.001)

	got, err := svc.GetCart(view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.GrandTotal, got.GrandTotal)

	svc.CloseCart(view.ID)
	_, err = svc.GetCart(view.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCartService_AddItemMergesLines(t *testing.T) {
	svc := newCartFixture()
	ctx := context.Background()

	view := svc.CreateCart()
	_, err := svc.AddItem(ctx, view.ID, "OIL", 2)
	require.NoError(t, err)
	view, err = svc.AddItem(ctx, view.ID, "OIL", 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestCartService_AddItemRejectsOverStock(t *testing.T) {
	svc := newCartFixture()
	ctx := context.Background()

	view := svc.CreateCart()
	_, err := svc.AddItem(ctx, view.ID, "OIL", 4)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, view.ID, "OIL", 2)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	// The failed add left the cart untouched
	got, err := svc.GetCart(view.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 4, got.Items[0].Quantity)
}

func TestCartService_UnknownProduct(t *testing.T) {
	svc := newCartFixture()

	view := svc.CreateCart()
	_, err := svc.AddItem(context.Background(), view.ID, "GHOST", 1)
	assert.ErrorIs(t, err, apperror.ErrProductNotFound)
}

func TestCartService_UnknownCart(t *testing.T) {
	svc := newCartFixture()

	_, err := svc.GetCart("nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	_, err = svc.AddItem(context.Background(), "nope", "OIL", 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCartService_SetQuantityAndRemove(t *testing.T) {
	svc := newCartFixture()
	ctx := context.Background()

	view := svc.CreateCart()
	_, err := svc.AddItem(ctx, view.ID, "RICE", 1)
	require.NoError(t, err)

	view, err = svc.SetQuantity(ctx, view.ID, "RICE", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Items[0].Quantity)

	// Removing an absent product is a no-op
	view, err = svc.RemoveItem(view.ID, "GHOST")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = svc.RemoveItem(view.ID, "RICE")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_Clear(t *testing.T) {
	svc := newCartFixture()
	ctx := context.Background()

	view := svc.CreateCart()
	_, err := svc.AddItem(ctx, view.ID, "RICE", 2)
	require.NoError(t, err)
	_, err = svc.SetBagCharge(view.ID, true)
	require.NoError(t, err)

	view, err = svc.ClearCart(view.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// The session stays open after a clear
	_, err = svc.GetCart(view.ID)
	require.NoError(t, err)
}

func TestCartService_Checkout(t *testing.T) {
	svc := newCartFixture()
	ctx := context.Background()

	view := svc.CreateCart()

	_, _, err := svc.Checkout(view.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	_, err = svc.AddItem(ctx, view.ID, "RICE", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, view.ID, "OIL", 1)
	require.NoError(t, err)
	_, err = svc.SetBagCharge(view.ID, true)
	require.NoError(t, err)

	items, bagCharge, err := svc.Checkout(view.ID)
	require.NoError(t, err)
	assert.True(t, bagCharge)
	assert.ElementsMatch(t, []SaleItemInput{
		{ProductCode: "RICE", Quantity: 2},
		{ProductCode: "OIL", Quantity: 1},
	}, items)

	// Checkout leaves the cart open until the sale commits
	_, err = svc.GetCart(view.ID)
	require.NoError(t, err)
}
