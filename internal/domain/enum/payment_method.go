package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod int

const (
	PaymentCash PaymentMethod = 0
	PaymentCard PaymentMethod = 1
	PaymentUPI  PaymentMethod = 2
)

func (m PaymentMethod) String() string {
	names := [...]string{"Cash", "Card", "UPI"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Cash"
	}
	return names[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Cash", "cash":
		*m = PaymentCash
	case "Card", "card":
		*m = PaymentCard
	case "UPI", "upi":
		*m = PaymentUPI
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
