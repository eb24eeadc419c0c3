// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/application/ingest"
	"github.com/finance-tracker/tracker/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
// Transactions are append-only.
type TransactionRepository interface {
	// Create appends a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindSnapshotByUser loads every transaction of a user as stored,
	// ordered by date descending with undated records last.
	FindSnapshotByUser(ctx context.Context, userID uuid.UUID) ([]ingest.RawTransaction, error)
}
