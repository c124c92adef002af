package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// KVStore implements domain.KVStore on the kv_entries table.
type KVStore struct {
	db *sql.DB
}

// NewKVStore creates a new SQLite-backed KVStore.
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db.SqlDB}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_entries WHERE key = ?", key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get kv entry %q: %w", key, err)
	}
	return data, nil
}

func (s *KVStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put kv entry %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("delete kv entry %q: %w", key, err)
	}
	return nil
}
