package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gsapi/internal/client/client"
)

// Config holds runtime settings for the API client CLI.
//
// Fields:
//   - APIURL: base URL every API path is appended to.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: debug, info, warn or error.
//   - LogBackend: slog or zap.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = client.DefaultBaseURL
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the JSON file named by -c/-config (if any),
// then flags. Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
