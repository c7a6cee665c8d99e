// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-accounts/internal/logger"

// Repositories bundles every repository backed by one [DB].
type Repositories struct {
	UserRepository             UserRepository
	VerificationCodeRepository VerificationCodeRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:             NewUserRepository(db, log),
		VerificationCodeRepository: NewVerificationCodeRepository(db, log),
	}
}
