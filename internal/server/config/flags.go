package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/doclife/internal/flagx"
)

// parseFlags overlays Config with command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN, empty for the in-memory store
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-f string   sender email address
//	-p string   sender password
//	-m string   SMTP host
//	-o int      SMTP port
//	-w int      reminder window, days
//	-r string   daily reminder time, HH:MM
//	-z string   reminder timezone (IANA name)
//	-l string   log format: json, text or zap
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-f", "-p", "-m", "-o", "-w", "-r", "-z", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.SenderEmail, "f", config.SenderEmail, "reminder sender email")
	fs.StringVar(&config.SenderPassword, "p", config.SenderPassword, "reminder sender password")
	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "o", config.SMTPPort, "SMTP port (implicit TLS)")
	fs.IntVar(&config.ReminderWindowDays, "w", config.ReminderWindowDays, "reminder window (in days)")
	fs.StringVar(&config.ReminderTime, "r", config.ReminderTime, "daily reminder time, HH:MM")
	fs.StringVar(&config.Timezone, "z", config.Timezone, "reminder timezone")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format: json, text or zap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
}
