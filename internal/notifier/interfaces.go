// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

// Notifier accepts emails for delivery. Notify must not block on the
// delivery itself.
type Notifier interface {
	Notify(ctx context.Context, email models.Email) error
}

// Sender delivers a single email synchronously over some transport.
type Sender interface {
	Send(ctx context.Context, email models.Email) error
	Close() error
}
