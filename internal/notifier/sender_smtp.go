// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

// SMTPSender delivers emails through a mail relay. Every Send opens its own
// connection, so the sender is safe for concurrent use.
type SMTPSender struct {
	addr    string
	host    string
	from    string
	auth    smtp.Auth
	dialer  *net.Dialer
	tlsConf *tls.Config
	logger  *logger.Logger
	nowFunc func() time.Time
}

func NewSMTPSender(cfg config.Notifier, logger *logger.Logger) (*SMTPSender, error) {
	if cfg.SMTP.Host == "" {
		return nil, fmt.Errorf("smtp host is not set")
	}

	port := cfg.SMTP.Port
	if port == 0 {
		port = 587
	}

	s := &SMTPSender{
		addr:    net.JoinHostPort(cfg.SMTP.Host, strconv.Itoa(port)),
		host:    cfg.SMTP.Host,
		from:    cfg.Sender,
		dialer:  &net.Dialer{Timeout: 10 * time.Second},
		tlsConf: &tls.Config{ServerName: cfg.SMTP.Host, MinVersion: tls.VersionTLS12},
		logger:  logger,
		nowFunc: time.Now,
	}

	if cfg.SMTP.User != "" {
		s.auth = smtp.PlainAuth("", cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.Host)
	}

	return s, nil
}

func (s *SMTPSender) Send(ctx context.Context, email models.Email) error {
	conn, err := s.dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("error connecting to smtp server %s: %w", s.addr, err)
	}

	// the deadline covers the whole SMTP dialogue
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("error starting smtp session: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(s.tlsConf); err != nil {
			return fmt.Errorf("error starting tls: %w", err)
		}
	}

	if s.auth != nil {
		if err = client.Auth(s.auth); err != nil {
			return fmt.Errorf("smtp authentication failed: %w", err)
		}
	}

	if err = client.Mail(s.from); err != nil {
		return fmt.Errorf("smtp MAIL FROM rejected: %w", err)
	}
	if err = client.Rcpt(email.To); err != nil {
		return fmt.Errorf("smtp RCPT TO rejected: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA rejected: %w", err)
	}
	if _, err = w.Write(s.message(email)); err != nil {
		_ = w.Close()
		return fmt.Errorf("error writing email body: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("smtp server rejected the email: %w", err)
	}

	return client.Quit()
}

func (s *SMTPSender) Close() error {
	return nil
}

func (s *SMTPSender) message(email models.Email) []byte {
	var b strings.Builder

	b.WriteString("From: " + s.from + "\r\n")
	b.WriteString("To: " + email.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", email.Subject) + "\r\n")
	b.WriteString("Date: " + s.nowFunc().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(email.HTMLBody, "\n", "\r\n"))

	return []byte(b.String())
}
