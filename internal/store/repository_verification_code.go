// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

type verificationCodeRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewVerificationCodeRepository(db *DB, logger *logger.Logger) VerificationCodeRepository {
	logger.Debug().Msg("creating verification code repository")
	return &verificationCodeRepository{
		db:     db,
		logger: logger,
	}
}

func scanCode(row rowScanner) (models.VerificationCode, error) {
	var code models.VerificationCode
	var purpose string
	err := row.Scan(&code.CodeID, &code.Code, &code.UserID, &purpose, timestamp{&code.CreatedAt})
	code.Purpose = models.CodePurpose(purpose)

	return code, err
}

// CreateCode stores a code for an existing user. A code that references a
// missing user yields [ErrUnknownUser].
func (r *verificationCodeRepository) CreateCode(ctx context.Context, code models.VerificationCode) (models.VerificationCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateCodeQuery(r.db.builder, code)
	if err != nil {
		log.Err(err).Str("func", "*verificationCodeRepository.CreateCode").Msg("failed to create query")
		return models.VerificationCode{}, err
	}

	created, err := scanCode(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*verificationCodeRepository.CreateCode").Int64("user_id", code.UserID).Msg("error inserting code")

		if r.db.classify(err) == ForeignKeyViolation {
			return models.VerificationCode{}, ErrUnknownUser
		}
		return models.VerificationCode{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

func (r *verificationCodeRepository) FindCode(ctx context.Context, code string) (models.VerificationCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindCodeQuery(r.db.builder, code)
	if err != nil {
		log.Err(err).Str("func", "*verificationCodeRepository.FindCode").Msg("failed to create query")
		return models.VerificationCode{}, err
	}

	found, err := scanCode(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if r.db.classify(err) == NoRows {
			return models.VerificationCode{}, ErrCodeNotFound
		}

		log.Err(err).Str("func", "*verificationCodeRepository.FindCode").Msg("unexpected DB error")
		return models.VerificationCode{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

func (r *verificationCodeRepository) DeleteCode(ctx context.Context, code string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCodeQuery(r.db.builder, code)
	if err != nil {
		log.Err(err).Str("func", "*verificationCodeRepository.DeleteCode").Msg("failed to create query")
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*verificationCodeRepository.DeleteCode").Msg("error deleting code")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*verificationCodeRepository.DeleteCode").Msg("error reading affected rows")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrCodeNotFound
	}

	return nil
}
