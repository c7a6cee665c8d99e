// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the go-accounts HTTP API.
//
// The primary abstraction is [AccountsAdapter], which hides request
// building, bearer token handling and error decoding. The package ships an
// HTTP/REST implementation ([NewHTTPAccountsAdapter]) built on go-resty.
//
// Non-2xx responses are decoded from the server's JSON error body into an
// [*APIError] that unwraps to one of the sentinel values in errors.go, so
// callers can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized]
// for 401) and still read per-field validation messages.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AccountsAdapter defines communication with the go-accounts server.
type AccountsAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account. The server answers with the unverified
	// user and emails a verification link built from req.ReturnURLBase.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// VerifyEmail consumes a verification code.
	VerifyEmail(ctx context.Context, code string) (models.User, error)

	// Login authenticates the user. On success the returned token is stored
	// via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// RequestPasswordReset asks the server to email a reset link.
	RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) (models.User, error)

	// ResetPassword consumes a password reset code and sets a new password.
	ResetPassword(ctx context.Context, code string, req models.NewPasswordRequest) (models.User, error)

	// Me returns the record of the token owner.
	Me(ctx context.Context) (models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error

	// Version returns the server's build information.
	Version(ctx context.Context) (models.AppBuildInfo, error)

	// Health returns nil while the server reports itself healthy.
	Health(ctx context.Context) error
}
