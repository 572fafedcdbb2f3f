package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/chrisdutt24/lifeadmin/internal/dbx"
)

// PostgresRepository stores keys in PostgreSQL through database/sql
// (pgx stdlib driver). Queries are built with squirrel.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := r.sb.Select("value").From(Table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get kv[%s]: %w", key, err)
	}

	var value []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *PostgresRepository) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := r.sb.Insert(Table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("build set kv[%s]: %w", key, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *PostgresRepository) DeleteMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := r.sb.Delete(Table).Where(sq.Eq{"key": keys}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete kv%v: %w", keys, err)
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete kv%v: %w", keys, err)
		}
		return nil
	})
}
