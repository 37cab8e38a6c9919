package config

import "os"

// parseEnv overlays secrets from environment variables so tokens and API
// keys can stay out of config files.
func parseEnv(cfg *Config) {
	if v := os.Getenv("GYMDASH_BACKEND_TOKEN"); v != "" {
		cfg.BackendToken = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
}
