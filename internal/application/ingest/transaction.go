package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/domain/entity"
)

// RawTransaction is a transaction record as stored, before validation.
// Value and Date hold whatever shape the store or the client sent.
type RawTransaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        string
	Category    *string
	Description *string
	Value       any
	Date        any
	CreatedAt   time.Time
}

// typeAliases maps accepted spellings to transaction types.
var typeAliases = map[string]entity.TransactionType{
	"income":  entity.TransactionTypeIncome,
	"entrada": entity.TransactionTypeIncome,
	"expense": entity.TransactionTypeExpense,
	"saida":   entity.TransactionTypeExpense,
	"saída":   entity.TransactionTypeExpense,
}

// ParseTransactionType normalizes a raw type string. The second result is
// false for unknown types, in which case the raw (trimmed) value is kept.
func ParseTransactionType(raw string) (entity.TransactionType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := typeAliases[normalized]; ok {
		return t, true
	}
	return entity.TransactionType(normalized), false
}

// Transaction converts a raw record into a Transaction.
//
// Missing category and description become entity.PlaceholderText, an
// unusable value becomes zero and an unusable date leaves Date nil.
// Unknown types are kept as-is so the record still counts as a transaction.
func Transaction(raw RawTransaction) (entity.Transaction, []Issue) {
	var issues []Issue
	id := raw.ID.String()
	note := func(field, reason string) {
		issues = append(issues, Issue{RecordID: id, Field: field, Reason: reason})
	}

	txType, known := ParseTransactionType(raw.Type)
	if !known {
		note("type", ReasonUnknownType)
	}

	category, ok := textOrPlaceholder(raw.Category)
	if !ok {
		note("category", ReasonMissing)
	}

	description, _ := textOrPlaceholder(raw.Description)

	value, reason := parseAmount(raw.Value)
	if reason != "" {
		note("value", reason)
	}

	date, reason := parseDate(raw.Date)
	if reason != "" {
		note("date", reason)
	}

	return entity.Transaction{
		ID:          raw.ID,
		UserID:      raw.UserID,
		Type:        txType,
		Category:    category,
		Description: description,
		Value:       value,
		Date:        date,
		CreatedAt:   raw.CreatedAt,
	}, issues
}

// Transactions converts a batch, preserving input order.
func Transactions(raws []RawTransaction) ([]entity.Transaction, []Issue) {
	records := make([]entity.Transaction, 0, len(raws))
	var issues []Issue

	for _, raw := range raws {
		record, recordIssues := Transaction(raw)
		records = append(records, record)
		issues = append(issues, recordIssues...)
	}

	return records, issues
}
