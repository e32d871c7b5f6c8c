package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ApplyEnvOverrides reads configuration values from environment variables and
// overrides fields in the provided Config. Unset variables leave the current
// value untouched. Returns an error if parsing fails.
//
// Environment variables supported:
// - REPORTHUB_LOG_LEVEL, REPORTHUB_LOG_FILE, REPORTHUB_LOG_FORMAT
// - REPORTHUB_LANGUAGE (e.g. "es")
// - REPORTHUB_METRICS_ENABLED (bool), REPORTHUB_METRICS_PORT (int)
// - REPORTHUB_INFLUX_URL, _TOKEN, _ORG, _BUCKET, _INTERVAL (duration, e.g. "1m")
// - REPORTHUB_EMAIL_HOST, _PORT, _USER, _PASS
// - REPORTHUB_WHATSAPP_API_KEY, REPORTHUB_WHATSAPP_PHONE
// - REPORTHUB_TELEGRAM_BOT_TOKEN, REPORTHUB_TELEGRAM_CHAT_ID
// - REPORTHUB_DEMO_DATA
//
// Demo deliveries are tagged env:"-": env walks slices of structs through
// indexed <PREFIX><i>_ variables, and Demo has no prefix.
func ApplyEnvOverrides(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none is
// given) into the process environment without overriding variables that are
// already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}
