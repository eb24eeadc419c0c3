// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/application/adapter"
	"github.com/finance-tracker/tracker/internal/application/ingest"
	"github.com/finance-tracker/tracker/internal/domain/entity"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for transaction creation,
// as typed into the form.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Type        string // Optional, defaults to income
	Date        string // YYYY-MM-DD
	Category    string
	Description string // Optional
	Value       string // Accepts "," as decimal separator
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	notifier        adapter.ChangeNotifier
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	notifier adapter.ChangeNotifier,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		notifier:        notifier,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	dateText := strings.TrimSpace(input.Date)
	category := strings.TrimSpace(input.Category)
	valueText := strings.TrimSpace(input.Value)

	if dateText == "" || category == "" || valueText == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"date, category and value are required",
			nil,
		)
	}

	txType := entity.TransactionTypeIncome
	if strings.TrimSpace(input.Type) != "" {
		parsed, known := ingest.ParseTransactionType(input.Type)
		if !known {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"type must be 'income' or 'expense'",
				domainerror.ErrInvalidTransactionType,
			)
		}
		txType = parsed
	}

	date, err := time.Parse(valueobject.ISODateLayout, dateText)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date must be in YYYY-MM-DD format",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	value, err := decimal.NewFromString(strings.ReplaceAll(valueText, ",", "."))
	if err != nil || !value.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionValue,
			"value must be a number greater than zero",
			domainerror.ErrInvalidTransactionValue,
		)
	}
	if !valueobject.IsStorableAmount(value) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionValue,
			fmt.Sprintf("value must have at most two decimal places and be below %s", valueobject.MaxAmount),
			domainerror.ErrInvalidTransactionValue,
		)
	}

	description := strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if description == "" {
		description = entity.PlaceholderText
	}

	transaction := entity.NewTransaction(input.UserID, txType, category, description, value, date)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionWriteFailed,
			"failed to save transaction",
			fmt.Errorf("failed to create transaction: %w", err),
		)
	}

	if err := uc.notifier.Notify(ctx, adapter.CollectionTransactions, input.UserID); err != nil {
		slog.Warn("failed to publish transaction change",
			"user_id", input.UserID,
			"transaction_id", transaction.ID,
			"error", err,
		)
	}

	return &CreateTransactionOutput{
		Transaction: transaction,
	}, nil
}
