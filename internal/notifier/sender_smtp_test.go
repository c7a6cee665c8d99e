// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"encoding/base64"
	"io"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTPServer speaks just enough SMTP for net/smtp to deliver one email
// per connection.
type fakeSMTPServer struct {
	ln       net.Listener
	rejectTo string

	mu       sync.Mutex
	commands []string
	data     []string
}

func newFakeSMTPServer(t *testing.T) *fakeSMTPServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeSMTPServer{ln: ln}
	t.Cleanup(func() { _ = ln.Close() })

	go s.serve()
	return s
}

func (s *fakeSMTPServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTPServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeSMTPServer) handle(conn net.Conn) {
	defer conn.Close()
	tp := textproto.NewConn(conn)

	_ = tp.PrintfLine("220 localhost ESMTP test")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.commands = append(s.commands, line)
		s.mu.Unlock()

		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250 AUTH PLAIN")
		case "AUTH":
			_ = tp.PrintfLine("235 2.7.0 Authentication successful")
		case "MAIL":
			_ = tp.PrintfLine("250 OK")
		case "RCPT":
			if s.rejectTo != "" && strings.Contains(line, s.rejectTo) {
				_ = tp.PrintfLine("550 no such user")
				continue
			}
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 go ahead")
			body, err := io.ReadAll(tp.DotReader())
			if err != nil {
				return
			}
			s.mu.Lock()
			s.data = append(s.data, string(body))
			s.mu.Unlock()
			_ = tp.PrintfLine("250 queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 not implemented")
		}
	}
}

func (s *fakeSMTPServer) snapshot() ([]string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...), append([]string(nil), s.data...)
}

func smtpConfig(port int) config.Notifier {
	return config.Notifier{
		Driver: config.NotifierDriverSMTP,
		Sender: "no-reply@example.com",
		SMTP:   config.SMTP{Host: "127.0.0.1", Port: port},
	}
}

func TestSMTPSender_Send(t *testing.T) {
	server := newFakeSMTPServer(t)

	sender, err := NewSMTPSender(smtpConfig(server.port()), logger.Nop())
	require.NoError(t, err)
	sender.nowFunc = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = sender.Send(ctx, models.Email{
		To:       "jane@example.com",
		Subject:  "Account verification",
		HTMLBody: "<p>Hello, JANE!</p>",
	})
	require.NoError(t, err)

	commands, data := server.snapshot()
	assert.Contains(t, commands, "MAIL FROM:<no-reply@example.com>")
	assert.Contains(t, commands, "RCPT TO:<jane@example.com>")
	for _, c := range commands {
		assert.False(t, strings.HasPrefix(c, "AUTH"), "no credentials configured")
	}

	require.Len(t, data, 1)
	assert.Contains(t, data[0], "From: no-reply@example.com\n")
	assert.Contains(t, data[0], "To: jane@example.com\n")
	assert.Contains(t, data[0], "Subject: Account verification\n")
	assert.Contains(t, data[0], "Date: Sun, 01 Mar 2026 12:00:00 +0000\n")
	assert.Contains(t, data[0], "Content-Type: text/html; charset=\"utf-8\"\n")
	assert.True(t, strings.HasSuffix(data[0], "<p>Hello, JANE!</p>\n"))
}

func TestSMTPSender_Send_WithAuth(t *testing.T) {
	server := newFakeSMTPServer(t)

	cfg := smtpConfig(server.port())
	cfg.SMTP.User = "mailer"
	cfg.SMTP.Password = "secret"

	sender, err := NewSMTPSender(cfg, logger.Nop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), models.Email{To: "jane@example.com", Subject: "Password reset"})
	require.NoError(t, err)

	commands, _ := server.snapshot()
	want := "AUTH PLAIN " + base64.StdEncoding.EncodeToString([]byte("\x00mailer\x00secret"))
	assert.Contains(t, commands, want)
}

func TestSMTPSender_Send_RecipientRejected(t *testing.T) {
	server := newFakeSMTPServer(t)
	server.rejectTo = "ghost@example.com"

	sender, err := NewSMTPSender(smtpConfig(server.port()), logger.Nop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), models.Email{To: "ghost@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RCPT TO rejected")

	_, data := server.snapshot()
	assert.Empty(t, data)
}

func TestSMTPSender_Send_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	sender, err := NewSMTPSender(smtpConfig(port), logger.Nop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), models.Email{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:"+strconv.Itoa(port))
}

func TestNewSMTPSender(t *testing.T) {
	_, err := NewSMTPSender(config.Notifier{}, logger.Nop())
	assert.Error(t, err)

	sender, err := NewSMTPSender(config.Notifier{SMTP: config.SMTP{Host: "mail.example.com"}}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com:587", sender.addr)
	assert.Nil(t, sender.auth)
	assert.NoError(t, sender.Close())
}
