package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// loadBlob decodes the JSON stored under key into dst. It reports false,
// leaving dst untouched, when the key has never been written. A corrupt
// value is returned as an error, never repaired.
func loadBlob(ctx context.Context, kv domain.KVStore, key string, dst any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// saveBlob replaces the whole value stored under key.
func saveBlob(ctx context.Context, kv domain.KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// notify publishes a change event. The mutation it describes is already
// persisted, so a delivery failure is logged rather than returned.
func notify(ctx context.Context, n domain.Notifier, event domain.Event) {
	if n == nil {
		return
	}
	if err := n.Publish(ctx, event); err != nil {
		slog.Warn("publish change event", "topic", event.Topic, "op", event.Op, "id", event.ID, "error", err)
	}
}

// StoreOption customises a store at construction.
type StoreOption func(*storeOptions)

type storeOptions struct {
	now  func() time.Time
	seed []domain.TherapyModule
}

func defaultStoreOptions() storeOptions {
	return storeOptions{
		now:  func() time.Time { return time.Now().UTC() },
		seed: BuiltinModules(),
	}
}

// WithClock overrides the time source used for timestamps and calendar days.
func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) { o.now = now }
}

// WithSeed replaces the built-in modules the catalog is seeded with.
func WithSeed(modules []domain.TherapyModule) StoreOption {
	return func(o *storeOptions) { o.seed = modules }
}

// Watch re-reads a collection every time a signal arrives on events and
// hands the fresh snapshot to fn. It returns when ctx is done or events is
// closed; a failed reload stops the watch with that error.
func Watch[T any](ctx context.Context, events <-chan domain.Event, load func(context.Context) (T, error), fn func(T)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			snapshot, err := load(ctx)
			if err != nil {
				return err
			}
			fn(snapshot)
		}
	}
}
