// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// CodePurpose tells which flow issued a VerificationCode.
type CodePurpose string

const (
	// PurposeEmailVerification marks codes sent after registration.
	PurposeEmailVerification CodePurpose = "email_verification"

	// PurposePasswordReset marks codes sent by a password reset request.
	PurposePasswordReset CodePurpose = "password_reset"
)

// VerificationCode is a single-use random string bound to exactly one user.
// A code is issued by registration or by a password reset request and
// deleted as soon as it is consumed. Codes do not expire.
type VerificationCode struct {
	CodeID int64 `json:"-"`

	// Code is the hex-encoded random value embedded in emailed links.
	Code string `json:"-"`

	// UserID references the owner of the code.
	UserID int64 `json:"user_id"`

	Purpose CodePurpose `json:"purpose"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the VerificationCode model.
func (c VerificationCode) TableName() string {
	return "verification_codes"
}
