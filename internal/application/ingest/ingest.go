// Package ingest turns loosely-typed stored records into domain entities.
//
// Stored records may miss fields or carry values of unexpected shapes. Every
// function here recovers locally: it always returns a usable entity together
// with the list of issues found, and never fails a batch because of one record.
package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/domain/entity"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// Issue describes a field that was coerced while ingesting a record.
type Issue struct {
	RecordID string
	Field    string
	Reason   string
}

// String implements fmt.Stringer.
func (i Issue) String() string {
	return fmt.Sprintf("%s.%s: %s", i.RecordID, i.Field, i.Reason)
}

// Issue reasons.
const (
	ReasonMissing     = "missing"
	ReasonNotANumber  = "not a number"
	ReasonNegative    = "negative value"
	ReasonNotADate    = "not a calendar date"
	ReasonUnknownType = "unknown type"
	ReasonOutOfRange  = "out of range"
)

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
}

// parseAmount coerces v into a non-negative decimal rounded to cents.
// Amounts the store cannot hold become zero.
// Accepted shapes: decimal.Decimal, decimal.NullDecimal, *decimal.Decimal,
// float32/64, int/int64, json.Number and string (comma decimal separator allowed).
func parseAmount(v any) (decimal.Decimal, string) {
	var (
		d  decimal.Decimal
		ok bool
	)

	switch value := v.(type) {
	case nil:
		return decimal.Zero, ReasonMissing
	case decimal.Decimal:
		d, ok = value, true
	case *decimal.Decimal:
		if value == nil {
			return decimal.Zero, ReasonMissing
		}
		d, ok = *value, true
	case decimal.NullDecimal:
		if !value.Valid {
			return decimal.Zero, ReasonMissing
		}
		d, ok = value.Decimal, true
	case float64:
		d, ok = fromFloat(value)
	case float32:
		d, ok = fromFloat(float64(value))
	case int:
		d, ok = decimal.NewFromInt(int64(value)), true
	case int64:
		d, ok = decimal.NewFromInt(value), true
	case json.Number:
		d, ok = fromText(string(value))
	case string:
		if strings.TrimSpace(value) == "" {
			return decimal.Zero, ReasonMissing
		}
		d, ok = fromText(value)
	}

	if !ok {
		return decimal.Zero, ReasonNotANumber
	}
	if d.IsNegative() {
		return decimal.Zero, ReasonNegative
	}
	rounded, ok := valueobject.RoundAmount(d)
	if !ok {
		return decimal.Zero, ReasonOutOfRange
	}
	return rounded, ""
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func fromText(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseDate coerces v into a calendar date. A nil result means "no usable date".
func parseDate(v any) (*time.Time, string) {
	var t time.Time

	switch value := v.(type) {
	case nil:
		return nil, ReasonMissing
	case time.Time:
		t = value
	case *time.Time:
		if value == nil {
			return nil, ReasonMissing
		}
		t = *value
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return nil, ReasonMissing
		}
		parsed, ok := parseDateText(s)
		if !ok {
			return nil, ReasonNotADate
		}
		t = parsed
	default:
		return nil, ReasonNotADate
	}

	if t.IsZero() {
		return nil, ReasonMissing
	}
	day := entity.CalendarDate(t)
	return &day, ""
}

func parseDateText(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func textOrPlaceholder(s *string) (string, bool) {
	if s == nil {
		return entity.PlaceholderText, false
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return entity.PlaceholderText, false
	}
	return trimmed, true
}
