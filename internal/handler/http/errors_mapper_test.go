// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTarget error
	}{
		{"invalid json", fmt.Errorf("%w: EOF", ErrInvalidJSON), http.StatusBadRequest, ErrInvalidJSON},
		{"invalid data", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, errors.New("x")), http.StatusBadRequest, service.ErrInvalidDataProvided},
		{"bare validation", &validators.ValidationError{Fields: map[string]string{"a": "b"}}, http.StatusBadRequest, validators.ErrValidationFailed},
		{"bad scheme", utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized, utils.ErrInvalidAuthorizationHeader},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, service.ErrInvalidCredentials},
		{"no user", fmt.Errorf("get: %w", store.ErrNoUserWasFound), http.StatusNotFound, store.ErrNoUserWasFound},
		{"no code", fmt.Errorf("find: %w", store.ErrCodeNotFound), http.StatusNotFound, store.ErrCodeNotFound},
		{"duplicate", fmt.Errorf("create: %w", store.ErrEmailAlreadyExists), http.StatusConflict, store.ErrEmailAlreadyExists},
		{"unknown user is internal", store.ErrUnknownUser, http.StatusInternalServerError, nil},
		{"query error is internal", fmt.Errorf("%w: boom", store.ErrExecutingQuery), http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, target := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestWriteError_InternalHidesChain(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(rr, req, fmt.Errorf("%w: dial tcp 10.0.0.5:5432", store.ErrDatabaseConnection))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), resp.Error)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
}

func TestWriteError_SentinelOnly(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(rr, req, fmt.Errorf("error getting user 7 from postgres: %w", store.ErrNoUserWasFound))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, store.ErrNoUserWasFound.Error(), decodeErrorResponse(t, rr).Error)
}
