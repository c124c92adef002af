package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation owns its own migration files and strategy, so the
// storage backend can be swapped without touching the stores.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}

// KVStore is the key-value backend the stores persist their JSON blobs into.
// Each store owns exactly one key. Get returns ErrNotFound for absent keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// IDGenerator hands out record identifiers. Implementations must never
// return the same value twice for the lifetime of a store.
type IDGenerator interface {
	NewID() string
}
