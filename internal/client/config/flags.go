package config

import (
	"flag"
	"io"
	"os"

	"github.com/chrisdutt24/lifeadmin/internal/flagx"
)

// parseFlags populates Config fields from the short flags listed in the
// package doc. Unknown arguments are filtered out with flagx.FilterArgs so
// the JSON loader's -c/-config does not trip the parser. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-k", "-t", "-l", "-f", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBDriver, "d", cfg.DBDriver, "storage driver (sqlite or postgres)")
	fs.StringVar(&cfg.DSN, "s", cfg.DSN, "data source name")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "session signing secret")
	fs.DurationVar(&cfg.SessionValidity, "t", cfg.SessionValidity, "session validity")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json, zap)")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "directory for opened documents")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
