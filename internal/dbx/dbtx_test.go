package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openKV(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbx_tests_"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func keyCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	return n
}

func insert(ctx context.Context, tx DBTX, key string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO kv(key, value) VALUES (?, ?)`, key, []byte("[]"))
	return err
}

func TestWithTx_Commit(t *testing.T) {
	db := openKV(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := insert(ctx, tx, "lifeAdmin.entries.u1"); err != nil {
			return err
		}
		return insert(ctx, tx, "lifeAdmin.documents.u1")
	})
	require.NoError(t, err)
	require.Equal(t, 2, keyCount(t, db))
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := openKV(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insert(ctx, tx, "lifeAdmin.entries.u1"))
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, keyCount(t, db))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := openKV(t)

	require.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insert(ctx, tx, "lifeAdmin.entries.u1"))
			panic("kaput")
		})
	})
	require.Equal(t, 0, keyCount(t, db))
}

func TestWithTx_BeginFailsOnClosedDB(t *testing.T) {
	db := openKV(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
}
