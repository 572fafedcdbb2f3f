package config

import (
	"encoding/json"
	"os"

	"github.com/chrisdutt24/lifeadmin/internal/flagx"
	"github.com/chrisdutt24/lifeadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent or
// empty fields leave the current value untouched.
type JsonConfig struct {
	DBDriver        string         `json:"db_driver"`
	DSN             string         `json:"dsn"`
	SecretKey       string         `json:"secret_key"`
	SessionValidity timex.Duration `json:"session_validity"`
	LogLevel        string         `json:"log_level"`
	LogFormat       string         `json:"log_format"`
	DownloadDir     string         `json:"download_dir"`
	S3Region        string         `json:"s3_region"`
	S3Endpoint      string         `json:"s3_endpoint"`
	S3User          string         `json:"s3_user"`
	S3Password      string         `json:"s3_password"`
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays cfg with the file named by -c or -config. It panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.DBDriver, jc.DBDriver)
	overlay(&cfg.DSN, jc.DSN)
	overlay(&cfg.SecretKey, jc.SecretKey)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.DownloadDir, jc.DownloadDir)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3Endpoint, jc.S3Endpoint)
	overlay(&cfg.S3User, jc.S3User)
	overlay(&cfg.S3Password, jc.S3Password)
	if jc.SessionValidity.Duration != 0 {
		cfg.SessionValidity = jc.SessionValidity.Duration
	}
}
