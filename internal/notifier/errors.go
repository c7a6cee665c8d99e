// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import "errors"

var (
	// ErrQueueFull is returned by Notify when the delivery queue has no room.
	// The email is dropped.
	ErrQueueFull = errors.New("notification queue is full")

	// ErrDispatcherStopped is returned by Notify after Stop was called.
	ErrDispatcherStopped = errors.New("notification dispatcher is stopped")

	ErrUnknownTemplate = errors.New("unknown email template")
	ErrUnknownDriver   = errors.New("unknown notifier driver")
)
