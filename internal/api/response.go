// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/discodeck/internal/logging"
	"github.com/tomtom215/discodeck/internal/models"
)

// respondJSON marshals the envelope before touching the ResponseWriter so a
// marshal failure can still become a clean 500. Deck state is per user and
// must not be cached by intermediaries.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	body, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Str("status", response.Status).Msg("encode response")
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Debug().Err(err).Msg("client went away before response was written")
	}
}

func respondSuccess(w http.ResponseWriter, status int, data any, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondFailure sends an error envelope. data may carry partial state, as
// the readiness probe does.
func respondFailure(w http.ResponseWriter, status int, data any, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}

// respondError sends code and message. cause is logged, never echoed.
func respondError(w http.ResponseWriter, status int, code, message string, cause error) {
	if cause != nil {
		ev := logging.Warn()
		if status >= http.StatusInternalServerError {
			ev = logging.Error()
		}
		ev.Int("status", status).
			Str("code", code).
			Str("cause", logging.SanitizeValue(cause.Error())).
			Msg("request failed")
	}
	respondFailure(w, status, nil, &models.APIError{Code: code, Message: message})
}

func respondValidationError(w http.ResponseWriter, apiErr *models.APIError) {
	respondFailure(w, http.StatusBadRequest, nil, apiErr)
}
