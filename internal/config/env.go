// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Nested sections are resolved through their `envPrefix` tags, so
// the SMTP host of the notifier is read from NOTIFIER_SMTP_HOST.
//
// Returns a wrapped error if a value cannot be converted to the target type
// (e.g. APP_BCRYPT_COST=twelve).
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
