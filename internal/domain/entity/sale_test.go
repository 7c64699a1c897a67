package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleJSONUsesFormattedBillNo(t *testing.T) {
	sale := Sale{
		BillNo:     42,
		SubTotal:   14000,
		Tax:        2520,
		BagFee:     500,
		GrandTotal: 17020,
	}

	data, err := json.Marshal(sale)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &payload))

	// Same zero-padded format as receipts and the lookup path
	assert.Equal(t, "042", payload["bill_no"])
	assert.InDelta(t, 140.00, payload["sub_total"], 0.001)
	assert.InDelta(t, 25.20, payload["tax"], 0.001)
	assert.InDelta(t, 5.00, payload["bag_fee"], 0.001)
	assert.InDelta(t, 170.20, payload["grand_total"], 0.001)
}
