package valueobject

import "github.com/shopspring/decimal"

const (
	// AmountScale is the number of fractional digits a stored amount keeps.
	AmountScale = 2

	// amountIntegerDigits is the integer part of a decimal(15,2) column.
	amountIntegerDigits = 13
)

// MaxAmount is the exclusive upper bound of a stored amount.
var MaxAmount = decimal.New(1, amountIntegerDigits)

// RoundAmount rounds d to cents. ok is false when the magnitude of the
// result does not fit below MaxAmount.
//
// The magnitude is checked on the coefficient and exponent before any
// arithmetic, so values like 1e30000000 never get expanded.
func RoundAmount(d decimal.Decimal) (rounded decimal.Decimal, ok bool) {
	if d.IsZero() {
		return decimal.Zero, true
	}

	// |d| < 10^magnitude
	magnitude := d.NumDigits() + int(d.Exponent())
	if magnitude > amountIntegerDigits {
		return decimal.Zero, false
	}
	if d.Exponent() >= -AmountScale {
		return d, true
	}
	if magnitude < -AmountScale {
		// below 0.001, rounds to zero
		return decimal.Zero, true
	}

	rounded = d.Round(AmountScale)
	if rounded.Abs().GreaterThanOrEqual(MaxAmount) {
		return decimal.Zero, false
	}
	return rounded, true
}

// IsStorableAmount reports whether d is kept exactly by the store: at most
// two fractional digits and below MaxAmount.
func IsStorableAmount(d decimal.Decimal) bool {
	rounded, ok := RoundAmount(d)
	if !ok {
		return false
	}
	if rounded.IsZero() {
		return d.IsZero()
	}
	return rounded.Equal(d)
}
