package dto

import (
	"time"

	"github.com/finance-tracker/tracker/internal/domain/entity"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Value may be sent as a JSON number or as text using "," or "." as decimal separator.
type CreateTransactionRequest struct {
	Type        string   `json:"type"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Value       RawValue `json:"value"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Date        *string        `json:"date"`
	DateDisplay string         `json:"date_display"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Value       AmountResponse `json:"value"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
	Seq          uint64                `json:"seq"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          t.ID.String(),
		Type:        string(t.Type),
		DateDisplay: valueobject.FormatDate(t.Date),
		Category:    t.Category,
		Description: t.Description,
		Value:       ToAmountResponse(t.Value),
		CreatedAt:   t.CreatedAt,
	}

	if t.HasDate() {
		date := t.Date.Format(valueobject.ISODateLayout)
		response.Date = &date
	}

	return response
}

// ToTransactionListResponse converts transactions in their given order.
func ToTransactionListResponse(transactions []entity.Transaction, seq uint64) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, ToTransactionResponse(&transactions[i]))
	}

	return TransactionListResponse{
		Transactions: items,
		Count:        len(items),
		Seq:          seq,
	}
}
