// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,max_bytes=72"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName,omitempty" validate:"max=100"`
	Country   string `json:"country,omitempty" validate:"max=100"`
	Image     string `json:"image,omitempty" validate:"max=2048"`

	// ReturnURLBase is the frontend origin used to build the link in the
	// verification email.
	ReturnURLBase string `json:"returnUrlBase" validate:"required,url"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest is the body of POST /users/reset_password.
type PasswordResetRequest struct {
	Email         string `json:"email" validate:"required"`
	ReturnURLBase string `json:"returnUrlBase" validate:"required,url"`
}

// NewPasswordRequest is the body of POST /users/reset_password/{code}.
type NewPasswordRequest struct {
	Password string `json:"password" validate:"required,max_bytes=72"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse is the uniform JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`

	// Fields maps request field names to validation messages.
	Fields map[string]string `json:"fields,omitempty"`
}
