package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with environment variables named in the struct
// tags. Unset variables leave the current values untouched.
// Malformed values (for example a non-numeric SMTP_PORT) panic, like a bad
// JSON file does.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
