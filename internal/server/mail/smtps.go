package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

const defaultDialTimeout = 30 * time.Second

// SMTPSSender is an enmime.Sender for relays that expect TLS from the first
// byte (SMTPS, usually port 465). Each Send opens and closes its own session.
type SMTPSSender struct {
	Host     string
	Port     int
	Username string
	Password string

	// TLSConfig overrides the client TLS settings. When nil, the server
	// certificate is verified against Host.
	TLSConfig   *tls.Config
	DialTimeout time.Duration
}

func NewSMTPSSender(host string, port int, username, password string) *SMTPSSender {
	return &SMTPSSender{
		Host:        host,
		Port:        port,
		Username:    username,
		Password:    password,
		DialTimeout: defaultDialTimeout,
	}
}

func (s *SMTPSSender) addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (s *SMTPSSender) tlsConfig() *tls.Config {
	if s.TLSConfig != nil {
		return s.TLSConfig
	}
	return &tls.Config{ServerName: s.Host, MinVersion: tls.VersionTLS12}
}

// Send implements enmime.Sender.
func (s *SMTPSSender) Send(reversePath string, recipients []string, msg []byte) error {
	if s.Username == "" || s.Password == "" {
		return ErrNotConfigured
	}

	dialer := &net.Dialer{Timeout: s.DialTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", s.addr(), s.tlsConfig())
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", s.addr(), err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Auth(sasl.NewPlainClient("", s.Username, s.Password)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.SendMail(reversePath, recipients, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}
	return nil
}
