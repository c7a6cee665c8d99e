// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach business
// logic.
//
// Core concepts:
//   - Validator: generic interface to validate request structures.
//   - ValidationError: the error returned on failure, carrying a message per
//     offending JSON field.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided struct against its `validate` tags.
	Validate(context.Context, any) error
}
