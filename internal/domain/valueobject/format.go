package valueobject

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CurrencySymbol is the only currency the tracker renders.
	CurrencySymbol = "R$"

	// DateLayout is the display layout for calendar dates (DD/MM/YYYY).
	DateLayout = "02/01/2006"

	// ISODateLayout is the wire layout for calendar dates.
	ISODateLayout = "2006-01-02"
)

// FormatMoney renders an amount in Brazilian Real style: "R$ 1.234,56".
// Negative amounts are prefixed with a minus sign ("-R$ 10,00").
func FormatMoney(value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Neg()
	}

	fixed := value.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	return sign + CurrencySymbol + " " + groupThousands(intPart) + "," + fracPart
}

// FormatDate renders a calendar date as DD/MM/YYYY, or "-" when absent.
func FormatDate(date *time.Time) string {
	if date == nil || date.IsZero() {
		return "-"
	}
	return date.Format(DateLayout)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
