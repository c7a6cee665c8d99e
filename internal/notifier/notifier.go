// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
)

// NewSender builds the delivery transport selected by cfg.Driver.
func NewSender(cfg config.Notifier, logger *logger.Logger) (Sender, error) {
	switch cfg.Driver {
	case config.NotifierDriverLog, "":
		return NewLogSender(logger), nil
	case config.NotifierDriverSMTP:
		sender, err := NewSMTPSender(cfg, logger)
		if err != nil {
			return nil, err
		}
		return sender, nil
	case config.NotifierDriverAMQP:
		sender, err := NewAMQPSender(cfg, logger)
		if err != nil {
			return nil, err
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
