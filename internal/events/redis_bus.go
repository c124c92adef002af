package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// RedisBus publishes events on a Redis channel so that every server
// instance sharing the backend hears about every mutation.
type RedisBus struct {
	rdb     *goredis.Client
	channel string
}

func NewRedisBus(rdb *goredis.Client, channel string) *RedisBus {
	return &RedisBus{rdb: rdb, channel: channel}
}

func (b *RedisBus) Publish(ctx context.Context, event domain.Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Forwarder relays events received from Redis into a local notifier.
type Forwarder struct {
	sub *goredis.PubSub
}

// Listen subscribes to the bus channel. The subscription is confirmed before
// Listen returns, so no event published afterwards is missed.
func (b *RedisBus) Listen(ctx context.Context) (*Forwarder, error) {
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}
	return &Forwarder{sub: sub}, nil
}

// Run forwards events to dst until ctx is cancelled or the subscription
// closes. Malformed messages are logged and skipped.
func (f *Forwarder) Run(ctx context.Context, dst domain.Notifier) error {
	defer f.sub.Close()

	ch := f.sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
				slog.Warn("bad redis event payload", "channel", m.Channel, "error", err)
				continue
			}
			if err := dst.Publish(ctx, event); err != nil {
				slog.Error("forward redis event", "topic", event.Topic, "error", err)
			}
		}
	}
}
