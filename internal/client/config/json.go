package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gsapi/internal/flagx"
	"github.com/dmitrijs2005/gsapi/internal/timex"
)

// JsonConfig is the on-disk form of Config. Pointer fields distinguish a
// key missing from the file from one set to its zero value.
type JsonConfig struct {
	APIURL         *string         `json:"api_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
	LogBackend     *string         `json:"log_backend"`
}

// parseJSON overlays cfg with the file named by -c/-config in args. It is
// a no-op when no file is given.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIURL != nil {
		cfg.APIURL = *jc.APIURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogBackend != nil {
		cfg.LogBackend = *jc.LogBackend
	}
	return nil
}
