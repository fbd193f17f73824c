package config

import "time"

// Config holds runtime settings for the DevBoard CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request HTTP timeout.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - CacheDSN: path of the local SQLite session cache.
//   - LogLevel: minimum level for console logging.
type Config struct {
	APIBaseURL          string        `env:"DEVBOARD_API_BASE_URL"`
	RequestTimeout      time.Duration `env:"DEVBOARD_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"DEVBOARD_ONLINE_CHECK_INTERVAL"`
	CacheDSN            string        `env:"DEVBOARD_CACHE_DSN"`
	LogLevel            string        `env:"DEVBOARD_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults. The base URL points at a
// local development backend; deployments override it via file, env, or
// flags.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.CacheDSN = "devboard.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a file was given), environment variables, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
