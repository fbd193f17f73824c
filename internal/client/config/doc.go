// Package config loads runtime configuration for the DevBoard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables DEVBOARD_* (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-d string   path of the local session cache
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "request_timeout": "15s",
//	  "online_check_interval": "3s",
//	  "cache_dsn": "devboard.db",
//	  "log_level": "info"
//	}
package config
