package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chrisdutt24/lifeadmin/internal/client/repositories/kv"
	"github.com/chrisdutt24/lifeadmin/internal/client/storage"
	"github.com/chrisdutt24/lifeadmin/internal/logging"
	"github.com/chrisdutt24/lifeadmin/internal/timex"
)

var testNow = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

// movableClock lets a test advance time between calls.
type movableClock struct{ now time.Time }

func (c *movableClock) Now() time.Time { return c.now }

type env struct {
	ctx   context.Context
	kv    kv.Repository
	store *storage.JSONStore
	clock *movableClock
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, storage.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &env{
		ctx:   ctx,
		kv:    db.KV,
		store: storage.NewJSONStore(db.KV, logging.Nop()),
		clock: &movableClock{now: testNow},
	}
}

func (e *env) open(t *testing.T, userID string) *Workspace {
	t.Helper()
	ws, err := OpenWorkspace(e.ctx, e.store, userID, Options{Clock: e.clock})
	require.NoError(t, err)
	return ws
}

func (e *env) seed(t *testing.T, key string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, e.kv.Set(e.ctx, key, raw))
}

func (e *env) read(t *testing.T, key string, dst any) bool {
	t.Helper()
	raw, err := e.kv.Get(e.ctx, key)
	require.NoError(t, err)
	if raw == nil {
		return false
	}
	require.NoError(t, json.Unmarshal(raw, dst))
	return true
}

func datePtr(d timex.Date) *timex.Date { return &d }

func timePtr(t time.Time) *time.Time { return &t }

func ptr[T any](v T) *T { return &v }
