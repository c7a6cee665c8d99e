// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// AccountValidationService checks request payloads before handing them to
// the wrapped AccountService. Every failure wraps ErrInvalidDataProvided.
type AccountValidationService struct {
	inner     AccountService
	validator validators.Validator
}

func NewAccountValidationService() AccountServiceWrapper {
	return &AccountValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *AccountValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, invalid(err)
	}
	return v.inner.Register(ctx, req)
}

func (v *AccountValidationService) VerifyEmail(ctx context.Context, code string) (models.User, error) {
	if err := validateCode(code); err != nil {
		return models.User{}, err
	}
	return v.inner.VerifyEmail(ctx, code)
}

func (v *AccountValidationService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, invalid(err)
	}
	return v.inner.Login(ctx, req)
}

func (v *AccountValidationService) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, invalid(err)
	}
	return v.inner.RequestPasswordReset(ctx, req)
}

func (v *AccountValidationService) ConsumePasswordReset(ctx context.Context, code string, req models.NewPasswordRequest) (models.User, error) {
	if err := validateCode(code); err != nil {
		return models.User{}, err
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, invalid(err)
	}
	return v.inner.ConsumePasswordReset(ctx, code, req)
}

func (v *AccountValidationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return v.inner.ListUsers(ctx)
}

func (v *AccountValidationService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if err := validateUserID(userID); err != nil {
		return models.User{}, err
	}
	return v.inner.GetUser(ctx, userID)
}

func (v *AccountValidationService) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	if err := validateUserID(userID); err != nil {
		return models.User{}, err
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.User{}, invalid(err)
	}
	return v.inner.UpdateUser(ctx, userID, update)
}

func (v *AccountValidationService) DeleteUser(ctx context.Context, userID int64) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	return v.inner.DeleteUser(ctx, userID)
}

func (v *AccountValidationService) Wrap(wrapped AccountService) AccountService {
	v.inner = wrapped
	return v
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}

func validateCode(code string) error {
	if code == "" {
		return invalid(&validators.ValidationError{Fields: map[string]string{"code": "code is required"}})
	}
	return nil
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return invalid(&validators.ValidationError{Fields: map[string]string{"id": "id must be a positive integer"}})
	}
	return nil
}
