package config

import (
	"encoding/json"
	"os"
	"time"

	"gymdash/internal/flagx"
	"gymdash/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "10s" or as integer nanoseconds.
type JsonConfig struct {
	ListenAddr     string         `json:"listen_addr"`
	BackendBaseURL string         `json:"backend_base_url"`
	BackendToken   string         `json:"backend_token"`
	StorageDriver  string         `json:"storage_driver"`
	DatabasePath   string         `json:"database_path"`
	GeminiAPIKey   string         `json:"gemini_api_key"`
	GeminiModel    string         `json:"gemini_model"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. Missing fields keep their current values; a missing flag
// means no JSON is loaded at all.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.BackendBaseURL != "" {
		cfg.BackendBaseURL = jc.BackendBaseURL
	}
	if jc.BackendToken != "" {
		cfg.BackendToken = jc.BackendToken
	}
	if jc.StorageDriver != "" {
		cfg.StorageDriver = jc.StorageDriver
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.GeminiAPIKey != "" {
		cfg.GeminiAPIKey = jc.GeminiAPIKey
	}
	if jc.GeminiModel != "" {
		cfg.GeminiModel = jc.GeminiModel
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
