package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// RawValue holds a JSON scalar exactly as the client sent it: strings stay
// strings, numbers become json.Number and null becomes nil.
type RawValue struct {
	value any
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RawValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	r.value = v
	return nil
}

// Value returns the decoded scalar.
func (r RawValue) Value() any {
	return r.value
}

// Text renders the scalar as form text; null becomes "".
func (r RawValue) Text() string {
	switch v := r.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// NewRawValue wraps a scalar.
func NewRawValue(v any) RawValue {
	return RawValue{value: v}
}

// AmountResponse is a monetary amount in both exact and display form.
type AmountResponse struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

// ToAmountResponse converts a decimal into an AmountResponse.
func ToAmountResponse(value decimal.Decimal) AmountResponse {
	return AmountResponse{
		Value:   value.StringFixed(2),
		Display: valueobject.FormatMoney(value),
	}
}
