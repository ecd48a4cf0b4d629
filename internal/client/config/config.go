package config

import "time"

// Config holds runtime settings for the storyfeed CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend API, without trailing slash.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabaseDSN: path/DSN of the local sqlite session database.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabaseDSN    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseDSN = "storyfeed.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
