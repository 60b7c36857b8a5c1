// Package notifications provides best-effort real-time fanout of notification
// events over Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ripple/internal/models"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes notification events into per-user Redis channels.
// Delivery is strictly best-effort: the notification document is the source
// of truth and a failed publish is only logged.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Event is the wire payload published for a stored notification.
type Event struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishNotification sends the stored notification to its recipient's channel.
func (n *Notifier) PublishNotification(ctx context.Context, notif *models.Notification) {
	if n == nil || n.rdb == nil {
		return
	}

	payload, err := json.Marshal(Event{
		ID:        notif.ID.Hex(),
		From:      notif.From.Hex(),
		To:        notif.To.Hex(),
		Type:      string(notif.Type),
		CreatedAt: notif.CreatedAt,
	})
	if err != nil {
		slog.Error("notifier: marshal event", "error", err)
		return
	}

	channel := fmt.Sprintf("notifications:user:%s", notif.To.Hex())
	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		slog.Warn("notifier: publish failed", "channel", channel, "error", err)
	}
}

// Subscribe subscribes to a user's notification channel and invokes onEvent
// for each decoded event until ctx is cancelled. Used by consumers that
// bridge events to a delivery transport.
func (n *Notifier) Subscribe(ctx context.Context, userID string, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}

	sub := n.rdb.Subscribe(ctx, fmt.Sprintf("notifications:user:%s", userID))
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					slog.Warn("notifier: bad event payload", "error", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()

	return nil
}
