// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (income or expense).
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// PlaceholderText is shown for absent labels (category, description, goal name).
const PlaceholderText = "-"

// IsKnown reports whether t is one of the supported transaction types.
func (t TransactionType) IsKnown() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense entry of a user.
//
// Value is never negative. Date is the calendar day the entry is attributed
// to and may be nil when the stored record carried no usable date; CreatedAt
// is ordering metadata only.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Category    string
	Description string
	Value       decimal.Decimal
	Date        *time.Time
	CreatedAt   time.Time
}

// NewTransaction creates a new Transaction entity dated on the given calendar day.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	category string,
	description string,
	value decimal.Decimal,
	date time.Time,
) *Transaction {
	day := CalendarDate(date)

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Category:    category,
		Description: description,
		Value:       value,
		Date:        &day,
		CreatedAt:   time.Now().UTC(),
	}
}

// HasDate reports whether the transaction can be bucketed into a month.
func (t *Transaction) HasDate() bool {
	return t.Date != nil && !t.Date.IsZero()
}

// CalendarDate strips the clock from t, keeping its calendar fields, at UTC midnight.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
