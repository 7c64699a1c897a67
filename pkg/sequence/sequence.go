package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Counter names used by the sequence allocator.
const (
	BillCounter     = "bill_no"
	CustomerCounter = "customer_no"
)

// CustomerPrefix is the prefix carried by every customer number. Historical
// printed bills use this exact format, so it must stay parseable.
const CustomerPrefix = "USR"

// FormatBillNo renders a bill number zero-padded to three digits ("001").
// Numbers past 999 widen naturally rather than truncate.
func FormatBillNo(n int64) string {
	return fmt.Sprintf("%03d", n)
}

// FormatCustomerNo renders a customer number as "USR" plus four zero-padded
// digits ("USR0001").
func FormatCustomerNo(n int64) string {
	return fmt.Sprintf("%s%04d", CustomerPrefix, n)
}

// ParseBillNo parses a formatted bill number back to its integer value.
func ParseBillNo(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sequence: invalid bill number %q: %w", s, err)
	}
	return n, nil
}

// ParseCustomerNo parses a formatted customer number ("USR0042") back to its
// integer value.
func ParseCustomerNo(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, CustomerPrefix) {
		return 0, fmt.Errorf("sequence: invalid customer number %q: missing %s prefix", s, CustomerPrefix)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(trimmed, CustomerPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sequence: invalid customer number %q: %w", s, err)
	}
	return n, nil
}
