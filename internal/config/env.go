package config

import "os"

// FromEnv overlays MSGQ_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("MSGQ_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("MSGQ_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MSGQ_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
