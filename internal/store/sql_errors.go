// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"errors"
)

// ErrorClassifier maps driver specific errors onto a driver independent
// [ErrorClass].
type ErrorClassifier interface {
	Classify(err error) ErrorClass
}

// ErrorClass is the driver independent category of a failed statement.
type ErrorClass int

const (
	// Unknown covers every error the repositories do not translate.
	Unknown ErrorClass = iota
	// NoRows means the statement matched nothing.
	NoRows
	// UniqueViolation means a UNIQUE or PRIMARY KEY constraint was hit.
	UniqueViolation
	// ForeignKeyViolation means a referenced row does not exist.
	ForeignKeyViolation
)

func (c ErrorClass) String() string {
	switch c {
	case NoRows:
		return "no rows"
	case UniqueViolation:
		return "unique violation"
	case ForeignKeyViolation:
		return "foreign key violation"
	default:
		return "unknown"
	}
}

func classifyCommon(err error) (ErrorClass, bool) {
	if err == nil {
		return Unknown, true
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NoRows, true
	}

	return Unknown, false
}
