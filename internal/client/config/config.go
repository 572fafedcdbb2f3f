package config

import "time"

// Config holds runtime settings for the lifeadmin CLI.
type Config struct {
	DBDriver        string
	DSN             string
	SecretKey       string
	SessionValidity time.Duration
	LogLevel        string
	LogFormat       string
	DownloadDir     string

	S3Region   string
	S3Endpoint string
	S3User     string
	S3Password string
}

// LoadDefaults populates c with a local SQLite setup.
func (c *Config) LoadDefaults() {
	c.DBDriver = "sqlite"
	c.DSN = "lifeadmin.db"
	c.SecretKey = "lifeadmin-local-secret"
	c.SessionValidity = 7 * 24 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.DownloadDir = "downloads"
	c.S3Region = "us-east-1"
}

// LoadConfig applies defaults, then the environment, the JSON file and
// flags. Later sources take precedence. Invalid values panic.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
