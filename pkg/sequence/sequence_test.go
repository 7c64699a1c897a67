package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBillNo(t *testing.T) {
	assert.Equal(t, "001", FormatBillNo(1))
	assert.Equal(t, "042", FormatBillNo(42))
	assert.Equal(t, "999", FormatBillNo(999))
	// widens past three digits instead of wrapping
	assert.Equal(t, "1000", FormatBillNo(1000))
}

func TestFormatCustomerNo(t *testing.T) {
	assert.Equal(t, "USR0001", FormatCustomerNo(1))
	assert.Equal(t, "USR0123", FormatCustomerNo(123))
	assert.Equal(t, "USR9999", FormatCustomerNo(9999))
	assert.Equal(t, "USR10000", FormatCustomerNo(10000))
}

func TestParseBillNo(t *testing.T) {
	n, err := ParseBillNo("042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = ParseBillNo("1000")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), n)

	_, err = ParseBillNo("abc")
	assert.Error(t, err)
	_, err = ParseBillNo("")
	assert.Error(t, err)
}

func TestParseCustomerNo(t *testing.T) {
	n, err := ParseCustomerNo("USR0042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = ParseCustomerNo("0042")
	assert.Error(t, err)
	_, err = ParseCustomerNo("USRxyz")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []int64{1, 9, 99, 999, 1000, 12345} {
		n, err := ParseBillNo(FormatBillNo(v))
		require.NoError(t, err)
		assert.Equal(t, v, n)

		n, err = ParseCustomerNo(FormatCustomerNo(v))
		require.NoError(t, err)
		assert.Equal(t, v, n)
	}
}
