// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one.
package workers

import "context"

// Worker is a background component with an explicit lifecycle.
//
// Run starts the worker and returns immediately; the work itself happens
// in goroutines owned by the worker. Stop asks the worker to finish pending
// work and blocks until it has done so or ctx expires.
//
// Example implementation:
//
//	type MyWorker struct{ done chan struct{} }
//
//	func (w *MyWorker) Run() { go w.loop() }
//
//	func (w *MyWorker) Stop(ctx context.Context) error { close(w.done); return nil }
type Worker interface {
	Run()
	Stop(ctx context.Context) error
}
