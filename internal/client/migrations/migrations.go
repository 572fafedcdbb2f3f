// Package migrations embeds the goose SQL migrations for each supported
// database dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

//go:embed postgres/*.sql
var postgresFS embed.FS

// SQLite returns the SQLite migrations rooted at ".".
func SQLite() fs.FS {
	sub, _ := fs.Sub(sqliteFS, "sqlite")
	return sub
}

// Postgres returns the PostgreSQL migrations rooted at ".".
func Postgres() fs.FS {
	sub, _ := fs.Sub(postgresFS, "postgres")
	return sub
}
