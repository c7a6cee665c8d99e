// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrEmptyAddress = errors.New("empty server address")
	ErrNoToken      = errors.New("no bearer token in response")
)

// APIError is a non-2xx answer of the server.
type APIError struct {
	StatusCode int

	// Message is the "error" field of the response body, or the status text
	// when the body was not JSON.
	Message string

	// Fields holds per-field validation messages of a 400 response.
	Fields map[string]string

	kind error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the sentinel matching StatusCode.
func (e *APIError) Unwrap() error {
	return e.kind
}
