package config

import "time"

// Supported local cache drivers.
const (
	StorageDriverSQLite = "sqlite"
	StorageDriverFile   = "file"
)

// Config holds runtime settings for the dashboard service.
//
// Fields:
//   - ListenAddr: host:port the dashboard HTTP API listens on.
//   - BackendBaseURL: base URL of the external gym backend API.
//   - BackendToken: bearer token for the backend, issued at login.
//   - StorageDriver: local cache backend, "sqlite" (default) or "file".
//   - DatabasePath: path of the SQLite file backing the local history cache,
//     or the cache directory when the file driver is selected.
//   - GeminiAPIKey / GeminiModel: plan-generation settings; generation is
//     disabled when the key is empty.
//   - RequestTimeout: timeout applied to outbound backend calls.
type Config struct {
	ListenAddr     string
	BackendBaseURL string
	BackendToken   string
	StorageDriver  string
	DatabasePath   string
	GeminiAPIKey   string
	GeminiModel    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.BackendBaseURL = "http://127.0.0.1:9000"
	c.StorageDriver = StorageDriverSQLite
	c.DatabasePath = "gymdash.db"
	c.GeminiModel = "gemini-1.5-flash"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
