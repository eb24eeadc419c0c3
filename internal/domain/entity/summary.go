// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

const (
	// NoDataLabel marks a month-over-month change that cannot be computed.
	NoDataLabel = "no data"

	// NoneLabel marks an absent top category or largest expense.
	NoneLabel = "none"
)

// Summary holds every metric derived from a user's transactions.
type Summary struct {
	ReferenceDate time.Time
	CurrentMonth  valueobject.Month
	PreviousMonth valueobject.Month

	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal

	CurrentMonthIncome  decimal.Decimal
	CurrentMonthExpense decimal.Decimal
	CurrentMonthSaving  decimal.Decimal
	PreviousMonthSaving decimal.Decimal

	MonthOverMonthChange PercentChange
	TopExpenseCategory   CategoryTotal
	LargestSingleExpense ExpenseHighlight

	TransactionCount int
	// UndatedCount is the number of records left out of the monthly figures.
	UndatedCount int
}

// PercentChange is a signed percentage that may be unavailable.
type PercentChange struct {
	Value     decimal.Decimal
	Available bool
}

// String renders the change with one decimal place and an explicit "+"
// when it rounds to a positive value, or NoDataLabel when unavailable.
func (p PercentChange) String() string {
	if !p.Available {
		return NoDataLabel
	}
	rounded := p.Value.Round(1)
	s := rounded.StringFixed(1) + "%"
	if rounded.IsPositive() {
		return "+" + s
	}
	return s
}

// CategoryTotal is a category paired with its summed expense.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Found    bool
}

// String renders the total as "Category@Total" or NoneLabel.
func (c CategoryTotal) String() string {
	if !c.Found {
		return NoneLabel
	}
	return c.Category + "@" + c.Total.String()
}

// ExpenseHighlight identifies a single expense transaction.
type ExpenseHighlight struct {
	TransactionID uuid.UUID
	Category      string
	Description   string
	Value         decimal.Decimal
	Date          *time.Time
	Found         bool
}

// String renders the expense as "Category@Value" or NoneLabel.
func (e ExpenseHighlight) String() string {
	if !e.Found {
		return NoneLabel
	}
	return e.Category + "@" + e.Value.String()
}
