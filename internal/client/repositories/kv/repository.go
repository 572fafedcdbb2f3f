// Package kv provides the key-value persistence the stores write their JSON
// collections to.
package kv

import "context"

// Table holds every persisted key.
const Table = "kv_store"

// Repository is an opaque string-keyed byte store.
//
// Get returns (nil, nil) when the key does not exist. DeleteMany ignores
// missing keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	DeleteMany(ctx context.Context, keys ...string) error
}

var (
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*PostgresRepository)(nil)
)
