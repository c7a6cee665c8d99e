// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with the generated id and
	// timestamps. A duplicate email yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser applies the non-nil fields of update. An empty update
	// only refreshes updated_at.
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) (models.User, error)
	SetVerified(ctx context.Context, userID int64) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// VerificationCodeRepository persists single-use verification codes.
type VerificationCodeRepository interface {
	CreateCode(ctx context.Context, code models.VerificationCode) (models.VerificationCode, error)
	FindCode(ctx context.Context, code string) (models.VerificationCode, error)

	// DeleteCode removes the code. Deleting a code that is already gone
	// yields ErrCodeNotFound, so at most one caller succeeds per code.
	DeleteCode(ctx context.Context, code string) error
}
