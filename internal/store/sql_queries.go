// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-accounts/models"
	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{
	"user_id",
	"email",
	"password",
	"first_name",
	"last_name",
	"country",
	"image",
	"is_verified",
	"created_at",
	"updated_at",
}

var codeColumns = []string{
	"code_id",
	"code",
	"user_id",
	"purpose",
	"created_at",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(models.User{}.TableName()).
		Columns("email", "password", "first_name", "last_name", "country", "image", "is_verified").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.Country, user.Image, user.IsVerified).
		Suffix(returning(userColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildFindUserQuery selects users matching where. A nil where selects all
// users ordered by id.
func buildFindUserQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	builder := b.Select(userColumns...).
		From(models.User{}.TableName())
	if where != nil {
		builder = builder.Where(where)
	} else {
		builder = builder.OrderBy("user_id")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserQuery sets the non-nil profile fields of update together
// with updated_at. Fields absent from models.UserUpdate can never be written here.
func buildUpdateUserQuery(b sq.StatementBuilderType, userID int64, update models.UserUpdate) (string, []any, error) {
	setMap := map[string]any{"updated_at": sq.Expr("CURRENT_TIMESTAMP")}
	if update.FirstName != nil {
		setMap["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		setMap["last_name"] = *update.LastName
	}
	if update.Country != nil {
		setMap["country"] = *update.Country
	}
	if update.Image != nil {
		setMap["image"] = *update.Image
	}

	return buildSetUserColumnsQuery(b, userID, setMap)
}

func buildUpdatePasswordQuery(b sq.StatementBuilderType, userID int64, passwordHash string) (string, []any, error) {
	return buildSetUserColumnsQuery(b, userID, map[string]any{
		"password":   passwordHash,
		"updated_at": sq.Expr("CURRENT_TIMESTAMP"),
	})
}

func buildSetVerifiedQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return buildSetUserColumnsQuery(b, userID, map[string]any{
		"is_verified": true,
		"updated_at":  sq.Expr("CURRENT_TIMESTAMP"),
	})
}

func buildSetUserColumnsQuery(b sq.StatementBuilderType, userID int64, setMap map[string]any) (string, []any, error) {
	query, args, err := b.Update(models.User{}.TableName()).
		SetMap(setMap).
		Where(sq.Eq{"user_id": userID}).
		Suffix(returning(userColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	query, args, err := b.Delete(models.User{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildCreateCodeQuery(b sq.StatementBuilderType, code models.VerificationCode) (string, []any, error) {
	query, args, err := b.Insert(models.VerificationCode{}.TableName()).
		Columns("code", "user_id", "purpose").
		Values(code.Code, code.UserID, string(code.Purpose)).
		Suffix(returning(codeColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFindCodeQuery(b sq.StatementBuilderType, code string) (string, []any, error) {
	query, args, err := b.Select(codeColumns...).
		From(models.VerificationCode{}.TableName()).
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteCodeQuery(b sq.StatementBuilderType, code string) (string, []any, error) {
	query, args, err := b.Delete(models.VerificationCode{}.TableName()).
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
