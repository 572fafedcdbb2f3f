package kv

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgres_Get(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
		WithArgs("lifeAdmin.users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	v, err := r.Get(context.Background(), "lifeAdmin.users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func TestPostgres_GetMissing(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectQuery(`SELECT value FROM kv_store`).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPostgres_SetUpserts(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store (key,value) VALUES ($1,$2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)).
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(context.Background(), "k", []byte("v")))
}

func TestPostgres_SetError(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO kv_store`).WillReturnError(errors.New("conn reset"))

	err := r.Set(context.Background(), "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set kv[k]")
	require.ErrorContains(t, err, "conn reset")
}

func TestPostgres_DeleteManyRunsInTx(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_store WHERE key IN ($1,$2)`)).
		WithArgs("a", "b").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, r.DeleteMany(context.Background(), "a", "b"))
}

func TestPostgres_DeleteManyRollsBack(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM kv_store`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := r.DeleteMany(context.Background(), "a")
	require.ErrorContains(t, err, "failed to delete kv[a]")
}

func TestPostgres_DeleteManyNoKeys(t *testing.T) {
	r, _ := newMock(t)
	require.NoError(t, r.DeleteMany(context.Background()))
}
