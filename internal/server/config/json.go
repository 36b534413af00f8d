package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/doclife/internal/flagx"
	"github.com/dmitrijs2005/doclife/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations are
// timex.Duration so "1h" and integer nanoseconds are both accepted. Fields
// absent from the file keep their current value.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	SenderEmail                 *string         `json:"sender_email"`
	SenderPassword              *string         `json:"sender_password"`
	SMTPHost                    *string         `json:"smtp_host"`
	SMTPPort                    *int            `json:"smtp_port"`
	ReminderWindowDays          *int            `json:"reminder_window_days"`
	ReminderTime                *string         `json:"reminder_time"`
	Timezone                    *string         `json:"timezone"`
	AllowedOrigins              []string        `json:"allowed_origins"`
	LogFormat                   *string         `json:"log_format"`
}

// parseJson loads the file named by -c/-config into config. Without the
// flag nothing happens; an unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setIf(&config.SenderEmail, c.SenderEmail)
	setIf(&config.SenderPassword, c.SenderPassword)
	setIf(&config.SMTPHost, c.SMTPHost)
	setIf(&config.SMTPPort, c.SMTPPort)
	setIf(&config.ReminderWindowDays, c.ReminderWindowDays)
	setIf(&config.ReminderTime, c.ReminderTime)
	setIf(&config.Timezone, c.Timezone)
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	setIf(&config.LogFormat, c.LogFormat)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
