// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, profile data and the verification flag.
// The password hash never leaves the server: it is excluded from JSON.
type User struct {
	// UserID is the surrogate identifier assigned by the storage layer.
	UserID int64 `json:"id"`

	// Email is the unique login identifier of the user.
	Email string `json:"email"`

	// Password stores the bcrypt hash of the user's password.
	// It is populated only inside the server process.
	Password string `json:"-"`

	// FirstName is the display name used in emails.
	FirstName string `json:"firstName"`

	LastName string `json:"lastName,omitempty"`
	Country  string `json:"country,omitempty"`
	Image    string `json:"image,omitempty"`

	// IsVerified reports whether the user confirmed control of Email.
	IsVerified bool `json:"isVerified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate carries the fields that may be changed through the generic
// update path. Only non-nil fields are applied.
//
// Email, password and verification state are deliberately absent: they
// change only through registration, verification and password reset.
type UserUpdate struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitnil,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitnil,max=100"`
	Country   *string `json:"country,omitempty" validate:"omitnil,max=100"`
	Image     *string `json:"image,omitempty" validate:"omitnil,max=2048"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Country == nil && u.Image == nil
}
