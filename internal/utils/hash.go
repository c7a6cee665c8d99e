// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CodeBytes is the amount of random bytes behind every verification code.
// The hex form sent to users is twice as long.
const CodeBytes = 64

// HashPassword returns the bcrypt hash of password using the given cost.
// Passwords longer than 72 bytes are rejected with bcrypt.ErrPasswordTooLong.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hashed), nil
}

// ComparePassword reports whether password matches the stored bcrypt hash.
func ComparePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// GenerateCode returns CodeBytes bytes from crypto/rand encoded as lowercase hex.
func GenerateCode() (string, error) {
	buf := make([]byte, CodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating verification code: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
