// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return newDB(db, config.DriverPostgres, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func addUserRow(rows *sqlmock.Rows, id int64, email string, verified bool) *sqlmock.Rows {
	return rows.AddRow(id, email, "$2a$12$hash", "Ann", "Lee", "NZ", "", verified, testNow, testNow)
}
