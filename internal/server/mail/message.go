// Package mail builds reminder messages and delivers them over an
// implicit-TLS SMTP relay.
package mail

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"
	"github.com/mcnijman/go-emailaddress"
)

var (
	ErrInvalidAddress = errors.New("invalid email address")
	ErrNotConfigured  = errors.New("mail sender not configured")
)

// Message is a single-recipient HTML message.
type Message struct {
	FromName string
	From     string
	ToName   string
	To       string
	Subject  string
	HTML     string
}

// ValidateAddress parses addr and returns its canonical form.
func ValidateAddress(addr string) (string, error) {
	e, err := emailaddress.Parse(strings.TrimSpace(addr))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return e.String(), nil
}

// Build validates both addresses and returns a builder carrying the HTML body
// plus a plain-text alternative derived from it.
func Build(msg Message, date time.Time) (enmime.MailBuilder, error) {
	from, err := ValidateAddress(msg.From)
	if err != nil {
		return enmime.MailBuilder{}, fmt.Errorf("sender: %w", err)
	}
	to, err := ValidateAddress(msg.To)
	if err != nil {
		return enmime.MailBuilder{}, fmt.Errorf("recipient: %w", err)
	}

	text, err := html2text.FromString(msg.HTML, html2text.Options{OmitLinks: true})
	if err != nil {
		return enmime.MailBuilder{}, fmt.Errorf("html to text: %w", err)
	}

	b := enmime.Builder().
		From(msg.FromName, from).
		To(msg.ToName, to).
		Subject(msg.Subject).
		Date(date).
		Text([]byte(text)).
		HTML([]byte(msg.HTML))

	return b, nil
}
