package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable bill. It is NOT a
// database entity; it is composed from a Sale at print time.
type Receipt struct {
	Header     ReceiptHeader `json:"header"`
	BillNo     string        `json:"bill_no"`
	Date       string        `json:"date"`
	Customer   string        `json:"customer,omitempty"`
	CustomerNo string        `json:"customer_no,omitempty"`
	Payment    string        `json:"payment,omitempty"`
	Items      []ReceiptItem `json:"items"`
	SubTotal   float64       `json:"sub_total"`
	Tax        float64       `json:"tax"`
	BagFee     float64       `json:"bag_fee"`
	Discount   float64       `json:"discount"`
	Total      float64       `json:"total"`
	Footer     string        `json:"footer,omitempty"`
}
