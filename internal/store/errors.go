// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user with the same email is
	// already stored.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when no user matches the lookup, or when
	// an update or delete touched zero rows.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrCodeNotFound is returned when no verification code matches, or when
	// the code has already been deleted.
	ErrCodeNotFound = errors.New("verification code was not found")

	// ErrUnknownUser is returned when a code is created for a user id that
	// does not exist.
	ErrUnknownUser = errors.New("code references unknown user")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
	ErrUnsupportedDriver  = errors.New("unsupported database driver")
	ErrDatabaseConnection = errors.New("error connecting database")
)
