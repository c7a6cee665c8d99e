// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AccountServiceWrapper

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

// AccountService drives the account lifecycle: registration, email
// verification, login, password reset and plain user CRUD.
type AccountService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	VerifyEmail(ctx context.Context, code string) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) (models.User, error)
	ConsumePasswordReset(ctx context.Context, code string, req models.NewPasswordRequest) (models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// AuthService issues and verifies bearer tokens.
type AuthService interface {
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AccountServiceWrapper defines middleware composition for AccountService.
// Implementations wrap an existing AccountService to add behavior such as
// validation.
type AccountServiceWrapper interface {
	Wrap(AccountService) AccountService
}

type AppInfoService interface {
	GetAppBuildInfo(ctx context.Context) models.AppBuildInfo
}
