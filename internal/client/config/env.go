package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "LIFEADMIN_"

// envFiles are loaded when present. godotenv never overrides variables that
// are already set.
var envFiles = []string{".env"}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// parseEnv overlays cfg with LIFEADMIN_* variables.
func parseEnv(cfg *Config) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			panic(fmt.Errorf("load %s: %w", f, err))
		}
	}

	fields := map[string]*string{
		"DB_DRIVER":    &cfg.DBDriver,
		"DSN":          &cfg.DSN,
		"SECRET_KEY":   &cfg.SecretKey,
		"LOG_LEVEL":    &cfg.LogLevel,
		"LOG_FORMAT":   &cfg.LogFormat,
		"DOWNLOAD_DIR": &cfg.DownloadDir,
		"S3_REGION":    &cfg.S3Region,
		"S3_ENDPOINT":  &cfg.S3Endpoint,
		"S3_USER":      &cfg.S3User,
		"S3_PASSWORD":  &cfg.S3Password,
	}
	for name, dst := range fields {
		if v, ok := lookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := lookupEnv("SESSION_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%sSESSION_VALIDITY: %w", envPrefix, err))
		}
		cfg.SessionValidity = d
	}
}
