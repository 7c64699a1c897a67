package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleSortColumnWhitelist(t *testing.T) {
	assert.Equal(t, "bill_date", saleSortColumn("bill_date"))
	assert.Equal(t, "grand_total", saleSortColumn("grand_total"))

	// Unknown or hostile input falls back to the default column
	assert.Equal(t, "bill_no", saleSortColumn(""))
	assert.Equal(t, "bill_no", saleSortColumn("customer_name; DROP TABLE sales--"))
	assert.Equal(t, "bill_no", saleSortColumn("(SELECT 1)"))
}

func TestProductSortColumnWhitelist(t *testing.T) {
	assert.Equal(t, "price", productSortColumn("price"))
	assert.Equal(t, "stock_quantity", productSortColumn("stock_quantity"))

	assert.Equal(t, "created_at", productSortColumn(""))
	assert.Equal(t, "created_at", productSortColumn("name; DROP TABLE products--"))
}
