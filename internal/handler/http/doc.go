// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the accounts service.
//
// It exposes route wiring, request handlers and middleware. Request tracing,
// access logging, panic recovery, request timeouts and bearer authentication
// are handled in this package before requests are delegated to the service
// layer. Every error leaves the package as a JSON [models.ErrorResponse].
package http
