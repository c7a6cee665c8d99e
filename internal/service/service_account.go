// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/notifier"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"golang.org/x/crypto/bcrypt"
)

// accountService is the concrete implementation of AccountService.
//
// The service keeps no state between calls: users and codes live in the
// repositories, emails are handed to the notifier and forgotten.
type accountService struct {
	userRepository store.UserRepository
	codeRepository store.VerificationCodeRepository

	authService AuthService
	notifier    notifier.Notifier
	renderer    *notifier.Renderer

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	// dummyHash is compared against when the email is unknown, so that a
	// failed login takes the same time whether or not the account exists.
	dummyHash string

	logger *logger.Logger
}

func NewAccountService(
	repositories *store.Repositories,
	authService AuthService,
	notifier notifier.Notifier,
	renderer *notifier.Renderer,
	cfg config.App,
	logger *logger.Logger,
) (AccountService, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := utils.HashPassword("dummy-password", cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hashing: %w", err)
	}

	return &accountService{
		userRepository: repositories.UserRepository,
		codeRepository: repositories.VerificationCodeRepository,
		authService:    authService,
		notifier:       notifier,
		renderer:       renderer,
		bcryptCost:     cost,
		dummyHash:      dummyHash,
		logger:         logger,
	}, nil
}

// Register creates an unverified user, issues an email verification code and
// sends the verification email.
//
// The email is sent in the background: a delivery failure is logged and does
// not undo the created user or code. A duplicate email yields
// store.ErrEmailAlreadyExists.
func (s *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*accountService.Register").Msg("error hashing password")
		return models.User{}, err
	}

	user, err := s.userRepository.CreateUser(ctx, models.User{
		Email:      req.Email,
		Password:   passwordHash,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Country:    req.Country,
		Image:      req.Image,
		IsVerified: false,
	})
	if err != nil {
		log.Err(err).Str("func", "*accountService.Register").Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	code, err := s.issueCode(ctx, user.UserID, models.PurposeEmailVerification)
	if err != nil {
		log.Err(err).Str("func", "*accountService.Register").Int64("user_id", user.UserID).Msg("user created without verification code")
		return models.User{}, err
	}

	email, err := s.renderer.VerificationEmail(user, req.ReturnURLBase, code.Code)
	s.notify(ctx, email, err)

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	return user, nil
}

// VerifyEmail consumes an email verification code and marks its owner as
// verified. An unknown, already consumed or password reset code yields
// store.ErrCodeNotFound.
func (s *accountService) VerifyEmail(ctx context.Context, code string) (models.User, error) {
	log := logger.FromContext(ctx)

	verificationCode, err := s.consumeCode(ctx, code, models.PurposeEmailVerification)
	if err != nil {
		log.Err(err).Str("func", "*accountService.VerifyEmail").Msg("verification code rejected")
		return models.User{}, err
	}

	user, err := s.userRepository.SetVerified(ctx, verificationCode.UserID)
	if err != nil {
		log.Err(err).Str("func", "*accountService.VerifyEmail").Int64("user_id", verificationCode.UserID).Msg("error marking user as verified")
		return models.User{}, fmt.Errorf("error marking user as verified: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("email verified")
	return user, nil
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password both yield ErrInvalidCredentials.
func (s *accountService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		// equalize timing with the wrong-password path
		utils.ComparePassword(s.dummyHash, req.Password)
		log.Info().Str("func", "*accountService.Login").Msg("login attempt for unknown email")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*accountService.Login").Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.ComparePassword(user.Password, req.Password) {
		log.Info().Str("func", "*accountService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := s.authService.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// RequestPasswordReset issues a password reset code for the user owning
// req.Email and emails the reset link. Codes issued earlier stay valid.
// An unknown email yields ErrInvalidCredentials and issues nothing.
func (s *accountService) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("func", "*accountService.RequestPasswordReset").Msg("password reset requested for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*accountService.RequestPasswordReset").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	code, err := s.issueCode(ctx, user.UserID, models.PurposePasswordReset)
	if err != nil {
		log.Err(err).Str("func", "*accountService.RequestPasswordReset").Int64("user_id", user.UserID).Msg("error issuing reset code")
		return models.User{}, err
	}

	email, err := s.renderer.PasswordResetEmail(user, req.ReturnURLBase, code.Code)
	s.notify(ctx, email, err)

	return user, nil
}

// ConsumePasswordReset consumes a password reset code and replaces the
// password of its owner.
func (s *accountService) ConsumePasswordReset(ctx context.Context, code string, req models.NewPasswordRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	// hash first: a rejected password must not burn the code
	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*accountService.ConsumePasswordReset").Msg("error hashing password")
		return models.User{}, err
	}

	verificationCode, err := s.consumeCode(ctx, code, models.PurposePasswordReset)
	if err != nil {
		log.Err(err).Str("func", "*accountService.ConsumePasswordReset").Msg("reset code rejected")
		return models.User{}, err
	}

	user, err := s.userRepository.UpdatePassword(ctx, verificationCode.UserID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*accountService.ConsumePasswordReset").Int64("user_id", verificationCode.UserID).Msg("error updating password")
		return models.User{}, fmt.Errorf("error updating password: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("password reset")
	return user, nil
}

func (s *accountService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

func (s *accountService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user %d: %w", userID, err)
	}
	return user, nil
}

// UpdateUser applies the profile fields of update. Email, password and the
// verification flag are not part of models.UserUpdate and never change here.
func (s *accountService) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	user, err := s.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.UpdateUser").Int64("user_id", userID).Msg("error updating user")
		return models.User{}, fmt.Errorf("error updating user %d: %w", userID, err)
	}
	return user, nil
}

func (s *accountService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.DeleteUser").Int64("user_id", userID).Msg("error deleting user")
		return fmt.Errorf("error deleting user %d: %w", userID, err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("user deleted")
	return nil
}

func (s *accountService) hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return hash, err
}

func (s *accountService) issueCode(ctx context.Context, userID int64, purpose models.CodePurpose) (models.VerificationCode, error) {
	code, err := utils.GenerateCode()
	if err != nil {
		return models.VerificationCode{}, fmt.Errorf("error generating %s code: %w", purpose, err)
	}

	created, err := s.codeRepository.CreateCode(ctx, models.VerificationCode{
		Code:    code,
		UserID:  userID,
		Purpose: purpose,
	})
	if err != nil {
		return models.VerificationCode{}, fmt.Errorf("error saving %s code: %w", purpose, err)
	}

	return created, nil
}

// consumeCode deletes code if it exists and was issued for purpose. The
// delete is the claim: of two concurrent callers only one succeeds.
func (s *accountService) consumeCode(ctx context.Context, code string, purpose models.CodePurpose) (models.VerificationCode, error) {
	verificationCode, err := s.codeRepository.FindCode(ctx, code)
	if err != nil {
		return models.VerificationCode{}, fmt.Errorf("error finding code: %w", err)
	}

	if verificationCode.Purpose != purpose {
		return models.VerificationCode{}, fmt.Errorf("code issued for %s: %w", verificationCode.Purpose, store.ErrCodeNotFound)
	}

	if err = s.codeRepository.DeleteCode(ctx, code); err != nil {
		return models.VerificationCode{}, fmt.Errorf("error consuming code: %w", err)
	}

	return verificationCode, nil
}

// notify hands a rendered email to the notifier. Both rendering and queueing
// failures are only logged.
func (s *accountService) notify(ctx context.Context, email models.Email, renderErr error) {
	log := logger.FromContext(ctx)

	if renderErr != nil {
		log.Err(renderErr).Str("func", "*accountService.notify").Msg("error rendering email")
		return
	}

	if err := s.notifier.Notify(ctx, email); err != nil {
		log.Err(err).Str("func", "*accountService.notify").Str("subject", email.Subject).Msg("email was not queued")
	}
}
