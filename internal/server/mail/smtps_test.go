package mail

import (
	"bufio"
	"crypto/tls"
	"encoding/base64"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jhillyerd/enmime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelay is a minimal implicit-TLS SMTP server recording one session.
type fakeRelay struct {
	ln         net.Listener
	rejectAuth bool

	mu       sync.Mutex
	commands []string
	data     string
	done     chan struct{}
}

func startFakeRelay(t *testing.T, rejectAuth bool) (*fakeRelay, *tls.Config) {
	t.Helper()

	// httptest provides a certificate valid for 127.0.0.1 and a client pool trusting it.
	ts := httptest.NewTLSServer(http.NotFoundHandler())
	t.Cleanup(ts.Close)
	clientCfg := ts.Client().Transport.(*http.Transport).TLSClientConfig.Clone()

	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: ts.TLS.Certificates})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	r := &fakeRelay{ln: ln, rejectAuth: rejectAuth, done: make(chan struct{})}
	go r.serve()
	return r, clientCfg
}

func (r *fakeRelay) port() int {
	return r.ln.Addr().(*net.TCPAddr).Port
}

func (r *fakeRelay) serve() {
	defer close(r.done)

	conn, err := r.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	rd := bufio.NewReader(conn)
	reply := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }

	reply("220 fake ESMTP")
	inData := false
	var body strings.Builder
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if inData {
			if line == "." {
				inData = false
				r.mu.Lock()
				r.data = body.String()
				r.mu.Unlock()
				reply("250 queued")
				continue
			}
			body.WriteString(line + "\n")
			continue
		}

		r.mu.Lock()
		r.commands = append(r.commands, line)
		r.mu.Unlock()

		cmd := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(cmd, "EHLO"):
			reply("250-fake")
			reply("250 AUTH PLAIN")
		case strings.HasPrefix(cmd, "AUTH"):
			if r.rejectAuth {
				reply("535 authentication failed")
			} else {
				reply("235 ok")
			}
		case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
			reply("250 ok")
		case cmd == "DATA":
			inData = true
			reply("354 go ahead")
		case cmd == "QUIT":
			reply("221 bye")
			return
		default:
			reply("502 unknown")
		}
	}
}

func (r *fakeRelay) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("relay session did not finish")
	}
}

func TestSMTPSSender_DeliversBuiltMessage(t *testing.T) {
	relay, cfg := startFakeRelay(t, false)

	s := NewSMTPSSender("127.0.0.1", relay.port(), "noreply@example.com", "app-password")
	s.TLSConfig = cfg

	b, err := Build(Message{
		From: "noreply@example.com", To: "alice@example.com",
		Subject: "Document Expiry Reminder", HTML: "<p>Hello Alice</p>",
	}, time.Now())
	require.NoError(t, err)

	var sender enmime.Sender = s
	require.NoError(t, b.Send(sender))
	relay.wait(t)

	relay.mu.Lock()
	defer relay.mu.Unlock()
	plain := base64.StdEncoding.EncodeToString([]byte("\x00noreply@example.com\x00app-password"))
	assert.Contains(t, relay.commands, "AUTH PLAIN "+plain)
	assert.Contains(t, relay.commands, "MAIL FROM:<noreply@example.com>")
	assert.Contains(t, relay.commands, "RCPT TO:<alice@example.com>")
	assert.Contains(t, relay.data, "Subject: Document Expiry Reminder")
	assert.Contains(t, relay.data, "Hello Alice")
	assert.Equal(t, "QUIT", relay.commands[len(relay.commands)-1])
}

func TestSMTPSSender_AuthFailure(t *testing.T) {
	relay, cfg := startFakeRelay(t, true)

	s := NewSMTPSSender("127.0.0.1", relay.port(), "noreply@example.com", "wrong")
	s.TLSConfig = cfg

	err := s.Send("noreply@example.com", []string{"alice@example.com"}, []byte("Subject: x\r\n\r\nbody\r\n"))
	assert.ErrorContains(t, err, "smtp auth")
}

func TestSMTPSSender_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := NewSMTPSSender("127.0.0.1", port, "u", "p")
	s.DialTimeout = time.Second

	err = s.Send("u@example.com", []string{"alice@example.com"}, []byte("x"))
	assert.ErrorContains(t, err, "smtp dial")
}

func TestSMTPSSender_NotConfigured(t *testing.T) {
	s := NewSMTPSSender("127.0.0.1", 465, "", "")
	err := s.Send("a@example.com", []string{"b@example.com"}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
