// Package storage opens the configured database and layers JSON-encoded,
// per-user collections on top of the key-value repository.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/chrisdutt24/lifeadmin/internal/client/migrations"
	"github.com/chrisdutt24/lifeadmin/internal/client/repositories/kv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Database is an open connection with its key-value repository.
type Database struct {
	DB     *sql.DB
	Driver string
	KV     kv.Repository
}

func (d *Database) Close() error {
	return d.DB.Close()
}

// sqlOpen and gooseUp are seams for tests.
var (
	sqlOpen = sql.Open
	gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

// RunMigrations applies the embedded migrations for driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	var (
		fsys    fs.FS
		dialect string
	)
	switch driver {
	case DriverPostgres:
		fsys, dialect = migrations.Postgres(), "postgres"
	default:
		fsys, dialect = migrations.SQLite(), "sqlite3"
	}

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect %s: %w", dialect, err)
	}
	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// InitDatabase opens dsn with driver ("sqlite" or "postgres"), migrates the
// schema and returns the matching repository.
func InitDatabase(ctx context.Context, driver, dsn string) (*Database, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		driver = DriverSQLite
	}

	var sqlDriver string
	switch driver {
	case DriverSQLite:
		sqlDriver = "sqlite"
	case DriverPostgres:
		sqlDriver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlOpen(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one writer at a time; also keeps ":memory:" databases on one connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	var repo kv.Repository
	if driver == DriverPostgres {
		repo = kv.NewPostgresRepository(db)
	} else {
		repo = kv.NewSQLiteRepository(db)
	}

	return &Database{DB: db, Driver: driver, KV: repo}, nil
}
