// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the application's transport servers.
type Server interface {
	// RunServer serves until the process receives SIGTERM, SIGINT or SIGQUIT
	// and then shuts down gracefully.
	RunServer() error

	// Run serves until ctx is cancelled or one of the transports fails, then
	// shuts every transport and background worker down.
	Run(ctx context.Context) error
}

// transport is a single listening server managed by [Server].
type transport interface {
	// Serve blocks until the transport stops. It returns nil after Shutdown.
	Serve() error

	// Shutdown stops accepting new work and waits for in-flight requests
	// until ctx expires.
	Shutdown(ctx context.Context) error

	Name() string
}
