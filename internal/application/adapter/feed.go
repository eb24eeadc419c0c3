// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/application/ingest"
)

// Collection names a stream of records of one user.
type Collection string

const (
	CollectionTransactions Collection = "transactions"
	CollectionGoals        Collection = "goals"
)

// Snapshot is the full, ordered record set of a collection at one point in time.
// Seq increases strictly for every snapshot of a subscription.
type Snapshot[T any] struct {
	Seq        uint64
	Records    []T
	ReceivedAt time.Time
}

// Subscription delivers snapshots of a collection until it is closed.
//
// Snapshots is a latest-wins channel: a consumer that falls behind only
// ever sees the most recent snapshot. Errors reports delivery failures;
// the subscription keeps running after one.
type Subscription[T any] interface {
	Snapshots() <-chan Snapshot[T]
	Errors() <-chan error
	Close() error
}

// TransactionFeed streams a user's transactions ordered by date descending,
// undated records last.
type TransactionFeed interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (Subscription[ingest.RawTransaction], error)
}

// GoalFeed streams a user's goals ordered by creation time ascending.
type GoalFeed interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (Subscription[ingest.RawGoal], error)
}

// ChangeNotifier announces that a collection of a user changed, so that open
// subscriptions reload it.
type ChangeNotifier interface {
	Notify(ctx context.Context, collection Collection, userID uuid.UUID) error
}
