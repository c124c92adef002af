// Package redis stores the catalog, content and progress blobs as Redis
// strings so several server instances can share one backing store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// KVStore implements domain.KVStore on a Redis client. Every key is
// namespaced with prefix.
type KVStore struct {
	rdb    *goredis.Client
	prefix string
}

// Dial connects to addr and verifies the connection with a PING.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewKVStore wraps an existing client.
func NewKVStore(rdb *goredis.Client, prefix string) *KVStore {
	return &KVStore{rdb: rdb, prefix: prefix}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, nil
}

func (s *KVStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.rdb.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
