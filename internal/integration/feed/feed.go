package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/tracker/internal/application/adapter"
	"github.com/finance-tracker/tracker/internal/application/ingest"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
)

const errorBuffer = 8

// Loader reads the full, ordered collection of a user.
type Loader[T any] func(ctx context.Context, userID uuid.UUID) ([]T, error)

// Feed subscribes to change notifications of one collection and reloads the
// collection through its Loader on each of them.
type Feed[T any] struct {
	client     *redis.Client
	prefix     string
	collection adapter.Collection
	load       Loader[T]
}

// NewFeed creates a new Feed for the given collection.
func NewFeed[T any](client *redis.Client, prefix string, collection adapter.Collection, load Loader[T]) *Feed[T] {
	return &Feed[T]{
		client:     client,
		prefix:     prefix,
		collection: collection,
		load:       load,
	}
}

// NewTransactionFeed creates a feed of a user's transactions.
func NewTransactionFeed(client *redis.Client, prefix string, repo adapter.TransactionRepository) adapter.TransactionFeed {
	return NewFeed[ingest.RawTransaction](client, prefix, adapter.CollectionTransactions, repo.FindSnapshotByUser)
}

// NewGoalFeed creates a feed of a user's goals.
func NewGoalFeed(client *redis.Client, prefix string, repo adapter.GoalRepository) adapter.GoalFeed {
	return NewFeed[ingest.RawGoal](client, prefix, adapter.CollectionGoals, repo.FindSnapshotByUser)
}

// Subscribe starts listening for changes and immediately delivers the
// current collection as the first snapshot. The subscription ends when ctx
// is cancelled or Close is called.
func (f *Feed[T]) Subscribe(ctx context.Context, userID uuid.UUID) (adapter.Subscription[T], error) {
	channel := ChannelName(f.prefix, f.collection, userID)
	pubsub := f.client.Subscribe(ctx, channel)

	// Wait for the confirmation so that no change published after the
	// first load can be missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, domainerror.NewFeedError(
			domainerror.ErrCodeFeedSubscribe,
			string(f.collection),
			"failed to subscribe",
			err,
		)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription[T]{
		box:    adapter.NewMailbox[adapter.Snapshot[T]](),
		errs:   make(chan error, errorBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go sub.run(subCtx, f, userID, pubsub)

	return sub, nil
}

// subscription implements the adapter.Subscription interface.
type subscription[T any] struct {
	box    *adapter.Mailbox[adapter.Snapshot[T]]
	errs   chan error
	cancel context.CancelFunc
	done   chan struct{}
	seq    uint64
}

func (s *subscription[T]) Snapshots() <-chan adapter.Snapshot[T] {
	return s.box.C()
}

func (s *subscription[T]) Errors() <-chan error {
	return s.errs
}

// Close stops the subscription and waits for it to release its resources.
func (s *subscription[T]) Close() error {
	s.cancel()
	<-s.done
	return nil
}

func (s *subscription[T]) run(ctx context.Context, f *Feed[T], userID uuid.UUID, pubsub *redis.PubSub) {
	defer close(s.done)
	defer close(s.errs)
	defer s.box.Close()
	defer func() {
		if err := pubsub.Close(); err != nil {
			slog.Warn("failed to close pubsub",
				"collection", f.collection,
				"user_id", userID,
				"error", err,
			)
		}
	}()

	s.reload(ctx, f, userID)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-messages:
			if !ok {
				return
			}
			// Notifications already queued are covered by the same reload.
			for len(messages) > 0 {
				<-messages
			}
			s.reload(ctx, f, userID)
		}
	}
}

func (s *subscription[T]) reload(ctx context.Context, f *Feed[T], userID uuid.UUID) {
	records, err := f.load(ctx, userID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.fail(domainerror.NewFeedError(
			domainerror.ErrCodeFeedLoad,
			string(f.collection),
			"failed to load snapshot",
			err,
		), f.collection, userID)
		return
	}

	s.seq++
	s.box.Put(adapter.Snapshot[T]{
		Seq:        s.seq,
		Records:    records,
		ReceivedAt: time.Now().UTC(),
	})
}

func (s *subscription[T]) fail(err error, collection adapter.Collection, userID uuid.UUID) {
	select {
	case s.errs <- err:
	default:
		slog.Warn("dropping feed error, consumer is not reading",
			"collection", collection,
			"user_id", userID,
			"error", err,
		)
	}
}
