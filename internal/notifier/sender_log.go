// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

// LogSender writes emails to the log instead of delivering them. It is the
// default driver for local development. Bodies carry single-use codes, so
// they are written at debug level only.
type LogSender struct {
	logger *logger.Logger
}

func NewLogSender(logger *logger.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, email models.Email) error {
	log := s.logger.With().Str("trace_id", utils.GetTraceIDFromContext(ctx)).Logger()

	log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email sent")
	log.Debug().Str("to", email.To).Str("body", email.HTMLBody).Msg("email body")

	return nil
}

func (s *LogSender) Close() error {
	return nil
}
