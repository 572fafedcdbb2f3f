package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-d", "postgres", "-s", "postgres://x", "-k", "sek", "-t", "2h", "-l", "debug", "-f", "zap", "-o", "/tmp/out"},
			expected: &Config{
				DBDriver: "postgres", DSN: "postgres://x", SecretKey: "sek", SessionValidity: 2 * time.Hour,
				LogLevel: "debug", LogFormat: "zap", DownloadDir: "/tmp/out",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"cmd", "-c", "cfg.json", "-x", "-d", "sqlite"},
			expected: &Config{DBDriver: "sqlite"},
		},
		{name: "invalid duration", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
