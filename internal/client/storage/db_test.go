package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_SQLiteInMemory(t *testing.T) {
	ctx := context.Background()

	db, err := InitDatabase(ctx, "", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, DriverSQLite, db.Driver)

	require.NoError(t, db.KV.Set(ctx, "k", []byte("v")))
	v, err := db.KV.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestInitDatabase_UnsupportedDriver(t *testing.T) {
	_, err := InitDatabase(context.Background(), "oracle", "x")
	require.ErrorContains(t, err, `unsupported database driver "oracle"`)
}

func TestInitDatabase_OpenError(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(driverName, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driverName)
		return nil, errors.New("no route")
	}
	t.Cleanup(func() { sqlOpen = orig })

	_, err := InitDatabase(context.Background(), "Postgres", "postgres://x")
	require.ErrorContains(t, err, "open postgres: no route")
}

func TestRunMigrations_PropagatesError(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	orig := gooseUp
	gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		assert.Equal(t, ".", dir)
		return errors.New("boom")
	}
	t.Cleanup(func() { gooseUp = orig })

	err = RunMigrations(context.Background(), db, DriverSQLite)
	require.ErrorContains(t, err, "run migrations: boom")
}

func TestUserCollectionKeys(t *testing.T) {
	assert.Equal(t, []string{
		"lifeAdmin.entries.u1",
		"lifeAdmin.documents.u1",
		"lifeAdmin.categories.u1",
	}, UserCollectionKeys("u1"))
}
