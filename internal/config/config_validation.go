// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost must be in [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return cfg.Notifier.validate()
}

func (n *Notifier) validate() error {
	if n.Workers < 1 || n.QueueSize < 1 {
		return fmt.Errorf("%w: workers and queue size must be positive", ErrInvalidNotifierConfigs)
	}

	switch n.Driver {
	case NotifierDriverLog:
	case NotifierDriverSMTP:
		if n.SMTP.Host == "" || n.SMTP.Port == 0 {
			return fmt.Errorf("%w: smtp host and port are required", ErrInvalidNotifierConfigs)
		}
	case NotifierDriverAMQP:
		if n.AMQP.URL == "" {
			return fmt.Errorf("%w: amqp url is required", ErrInvalidNotifierConfigs)
		}
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidNotifierConfigs, n.Driver)
	}

	return nil
}
