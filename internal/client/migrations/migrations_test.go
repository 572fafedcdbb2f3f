package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	for name, fsys := range map[string]fs.FS{"sqlite": SQLite(), "postgres": Postgres()} {
		t.Run(name, func(t *testing.T) {
			files, err := fs.Glob(fsys, "*.sql")
			require.NoError(t, err)
			require.NotEmpty(t, files)

			body, err := fs.ReadFile(fsys, files[0])
			require.NoError(t, err)
			assert.Contains(t, string(body), "-- +goose Up")
			assert.Contains(t, string(body), "kv_store")
		})
	}
}
