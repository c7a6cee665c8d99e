// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-accounts/models"
)

// WriteJSON serializes data and writes it with the given status code and
// a JSON content type. If marshaling fails a plain 500 is written instead
// and the error is returned.
//
// Example usage:
//
//	WriteJSON(w, user, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes a models.ErrorResponse. fields may be nil.
func WriteError(w http.ResponseWriter, statusCode int, message string, fields map[string]string) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message, Fields: fields}, statusCode)
}
