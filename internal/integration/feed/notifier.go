// Package feed delivers per-user record snapshots over Redis pub/sub.
//
// Writers publish a change notification on a per-user, per-collection
// channel; every open subscription on that channel reloads the full
// collection from the repository and hands the snapshot to its consumer.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/tracker/internal/application/adapter"
)

// ChannelName returns the pub/sub channel of a user's collection.
func ChannelName(prefix string, collection adapter.Collection, userID uuid.UUID) string {
	return fmt.Sprintf("%s:feed:%s:%s", prefix, collection, userID)
}

// notifier implements the adapter.ChangeNotifier interface.
type notifier struct {
	client *redis.Client
	prefix string
}

// NewNotifier creates a new Redis change notifier.
func NewNotifier(client *redis.Client, prefix string) adapter.ChangeNotifier {
	return &notifier{
		client: client,
		prefix: prefix,
	}
}

// Notify publishes a change notification. The payload is informational only.
func (n *notifier) Notify(ctx context.Context, collection adapter.Collection, userID uuid.UUID) error {
	channel := ChannelName(n.prefix, collection, userID)
	if err := n.client.Publish(ctx, channel, time.Now().UTC().Format(time.RFC3339Nano)).Err(); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", channel, err)
	}
	return nil
}
