package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chrisdutt24/lifeadmin/internal/client/repositories/kv"
	"github.com/chrisdutt24/lifeadmin/internal/logging"
)

// JSONStore reads and writes JSON values in a kv.Repository.
//
// Reads never fail on bad data: a missing or corrupt value is reported as
// absent and the caller falls back to its default. Persist is best effort
// and only logs failures.
type JSONStore struct {
	repo kv.Repository
	log  logging.Logger
}

func NewJSONStore(repo kv.Repository, log logging.Logger) *JSONStore {
	if log == nil {
		log = logging.Nop()
	}
	return &JSONStore{repo: repo, log: log}
}

// Load decodes the value at key into dst and reports whether it was there.
// Repository errors are returned; undecodable data is logged and treated as
// absent.
func (s *JSONStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn(ctx, "ignoring corrupt stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Save encodes v and stores it at key.
func (s *JSONStore) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, raw)
}

// Persist is Save that logs instead of returning the error.
func (s *JSONStore) Persist(ctx context.Context, key string, v any) {
	if err := s.Save(ctx, key, v); err != nil {
		s.log.Warn(ctx, "persist failed", "key", key, "error", err)
	}
}

// Remove deletes keys in one transaction.
func (s *JSONStore) Remove(ctx context.Context, keys ...string) error {
	return s.repo.DeleteMany(ctx, keys...)
}

// LoadList reads a JSON array at key. The second result is false when the
// key is missing or does not hold an array.
func LoadList[T any](ctx context.Context, s *JSONStore, key string) ([]T, bool, error) {
	var out []T
	found, err := s.Load(ctx, key, &out)
	if err != nil || !found || out == nil {
		return nil, false, err
	}
	return out, true, nil
}

// LoadUserList reads the collection base.<userID>. When the scoped key is
// absent the unscoped legacy key is used instead, falling back to def, and
// the result is written to the scoped key so the migration happens once.
func LoadUserList[T any](ctx context.Context, s *JSONStore, base, userID string, def func() []T) ([]T, error) {
	key := UserKey(base, userID)

	items, found, err := LoadList[T](ctx, s, key)
	if err != nil {
		return nil, err
	}
	if found {
		return items, nil
	}

	items, found, err = LoadList[T](ctx, s, base)
	if err != nil {
		return nil, err
	}
	if !found {
		items = nil
		if def != nil {
			items = def()
		}
		if items == nil {
			items = []T{}
		}
	} else {
		s.log.Info(ctx, "migrating legacy collection", "from", base, "to", key, "count", len(items))
	}

	s.Persist(ctx, key, items)
	return items, nil
}
