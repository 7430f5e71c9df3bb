// Package config loads runtime configuration for the API client CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API
//	-t int      request timeout (seconds)
//	-l string   log level
//	-b string   log backend: slog or zap
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "10s" or
// integer nanoseconds. Keys missing from the file keep their earlier value:
//
//	{
//	  "api_url": "https://api.gridsound.com/",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_backend": "zap"
//	}
package config
