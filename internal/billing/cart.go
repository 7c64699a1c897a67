package billing

import (
	"math"

	"github.com/minimart/pos-api/pkg/apperror"
)

// Policy holds the pricing rules applied by the calculator. Amounts are in
// the smallest currency unit.
type Policy struct {
	TaxRate   float64
	BagCharge int64
}

// DefaultPolicy returns the standard store policy: 18% GST and a 5.00
// carry bag charge.
func DefaultPolicy() Policy {
	return Policy{TaxRate: 0.18, BagCharge: 500}
}

// LineItem is a single cart line. Quantity is always positive; lines for
// the same product code are merged, never duplicated.
type LineItem struct {
	ProductCode string
	ProductName string
	UnitPrice   int64
	Quantity    int
	Discount    int64
}

// Total returns the line amount after the per-line discount
func (l LineItem) Total() int64 {
	return l.UnitPrice*int64(l.Quantity) - l.Discount
}

// Totals is the computed bill breakdown
type Totals struct {
	SubTotal   int64
	Tax        int64
	BagFee     int64
	Discount   int64
	GrandTotal int64
}

// Cart is a pure in-memory bill calculator. It never touches storage;
// callers pass the available stock on each mutation and the cart rejects
// additions that would exceed it.
type Cart struct {
	policy          Policy
	lines           []LineItem
	bagCharge       bool
	discountPercent float64
	discountLabel   string
}

func NewCart(policy Policy) *Cart {
	return &Cart{policy: policy}
}

// AddItem adds quantity of a product to the cart, merging into an existing
// line for the same code. If the merged quantity would exceed the available
// stock the cart is left unchanged and an insufficient stock error is
// returned.
func (c *Cart) AddItem(code, name string, unitPrice int64, quantity, available int) error {
	if quantity <= 0 {
		return apperror.ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return apperror.NewBadRequestError("unit price cannot be negative")
	}

	idx := c.indexOf(code)
	merged := quantity
	if idx >= 0 {
		merged += c.lines[idx].Quantity
	}
	if merged > available {
		return apperror.NewInsufficientStockError(name, available)
	}

	if idx >= 0 {
		c.lines[idx].Quantity = merged
		return nil
	}
	c.lines = append(c.lines, LineItem{
		ProductCode: code,
		ProductName: name,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	})
	return nil
}

// SetQuantity replaces the quantity of an existing line. Setting a product
// that is not in the cart is an error; use AddItem instead.
func (c *Cart) SetQuantity(code string, quantity, available int) error {
	if quantity <= 0 {
		return apperror.ErrInvalidQuantity
	}
	idx := c.indexOf(code)
	if idx < 0 {
		return apperror.ErrProductNotFound
	}
	if quantity > available {
		return apperror.NewInsufficientStockError(c.lines[idx].ProductName, available)
	}
	c.lines[idx].Quantity = quantity
	return nil
}

// RemoveItem removes the line for a product code. Removing a code that is
// not in the cart is a no-op.
func (c *Cart) RemoveItem(code string) {
	idx := c.indexOf(code)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

// SetLineDiscount applies a flat discount to an existing line. The discount
// cannot exceed the line amount.
func (c *Cart) SetLineDiscount(code string, discount int64) error {
	if discount < 0 {
		return apperror.NewBadRequestError("discount cannot be negative")
	}
	idx := c.indexOf(code)
	if idx < 0 {
		return apperror.ErrProductNotFound
	}
	line := c.lines[idx]
	if discount > line.UnitPrice*int64(line.Quantity) {
		return apperror.NewBadRequestError("discount exceeds line amount")
	}
	c.lines[idx].Discount = discount
	return nil
}

// SetBagCharge toggles the carry bag fee
func (c *Cart) SetBagCharge(on bool) {
	c.bagCharge = on
}

// SetDiscountPercent applies a percentage discount to the grand total
func (c *Cart) SetDiscountPercent(percent float64, label string) error {
	if percent < 0 || percent > 100 {
		return apperror.NewBadRequestError("discount percent must be between 0 and 100")
	}
	c.discountPercent = percent
	c.discountLabel = label
	return nil
}

// Lines returns a copy of the cart lines
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) BagCharge() bool {
	return c.bagCharge
}

func (c *Cart) DiscountPercent() float64 {
	return c.discountPercent
}

func (c *Cart) DiscountLabel() string {
	return c.discountLabel
}

// Clear empties the cart and resets the bag charge and discount
func (c *Cart) Clear() {
	c.lines = nil
	c.bagCharge = false
	c.discountPercent = 0
	c.discountLabel = ""
}

// Totals computes the bill breakdown. It is a pure read: calling it any
// number of times never changes the cart.
func (c *Cart) Totals() Totals {
	return Compute(c.lines, c.bagCharge, c.discountPercent, c.policy)
}

func (c *Cart) indexOf(code string) int {
	for i, l := range c.lines {
		if l.ProductCode == code {
			return i
		}
	}
	return -1
}

// Compute derives bill totals from a set of lines under a policy. Tax is
// charged on the subtotal, the bag fee is added after tax, and the
// percentage discount applies to the sum of all three. Amounts round to
// the nearest smallest currency unit.
func Compute(lines []LineItem, bagCharge bool, discountPercent float64, policy Policy) Totals {
	var t Totals
	for _, l := range lines {
		t.SubTotal += l.Total()
	}
	t.Tax = int64(math.Round(float64(t.SubTotal) * policy.TaxRate))
	if bagCharge {
		t.BagFee = policy.BagCharge
	}
	gross := t.SubTotal + t.Tax + t.BagFee
	if discountPercent > 0 {
		t.Discount = int64(math.Round(float64(gross) * discountPercent / 100))
	}
	t.GrandTotal = gross - t.Discount
	return t
}
