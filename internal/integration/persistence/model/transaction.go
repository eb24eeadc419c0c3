// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/application/ingest"
	"github.com/finance-tracker/tracker/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Label, value and date columns are nullable: rows written by older clients
// may lack them and are repaired on read by the ingest package.
type TransactionModel struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1"`
	Type        string              `gorm:"type:varchar(20);not null"`
	Category    *string             `gorm:"type:varchar(100)"`
	Description *string             `gorm:"type:varchar(255)"`
	Value       decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	Date        *time.Time          `gorm:"type:date;index:idx_transactions_user_date,priority:2"`
	CreatedAt   time.Time           `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToRaw converts a TransactionModel to an unvalidated record.
func (m *TransactionModel) ToRaw() ingest.RawTransaction {
	raw := ingest.RawTransaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        m.Type,
		Category:    m.Category,
		Description: m.Description,
		Value:       m.Value,
		CreatedAt:   m.CreatedAt,
	}
	// A nil *time.Time must not become a non-nil interface.
	if m.Date != nil {
		raw.Date = *m.Date
	}
	return raw
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	category := transaction.Category
	description := transaction.Description

	return &TransactionModel{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Type:        string(transaction.Type),
		Category:    &category,
		Description: &description,
		Value:       decimal.NewNullDecimal(transaction.Value),
		Date:        transaction.Date,
		CreatedAt:   transaction.CreatedAt,
	}
}
