// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is checked in order, the first match wins. Errors not listed
// here are internal and answered with 500.
var errorStatuses = []errorStatus{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidUserID, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{validators.ErrValidationFailed, http.StatusBadRequest},

	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},

	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrCodeNotFound, http.StatusNotFound},

	{store.ErrEmailAlreadyExists, http.StatusConflict},
}

// statusFromError returns the HTTP status for err and the sentinel it matched.
// target is nil for internal errors.
func statusFromError(err error) (status int, target error) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status, es.err
		}
	}
	return http.StatusInternalServerError, nil
}

// writeError logs err and answers with its status. The body carries the
// matched sentinel message only, never the wrapped chain, and per-field
// messages for validation failures.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, target := statusFromError(err)
	if target == nil {
		log.Err(err).Int("status", status).Msg("internal error")
		utils.WriteError(w, status, http.StatusText(status), nil)
		return
	}

	log.Info().Err(err).Int("status", status).Msg("request rejected")

	var fields map[string]string
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		fields = validationErr.Fields
	}

	utils.WriteError(w, status, target.Error(), fields)
}
