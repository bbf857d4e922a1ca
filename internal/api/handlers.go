// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/discodeck/internal/deck"
	"github.com/tomtom215/discodeck/internal/models"
	"github.com/tomtom215/discodeck/internal/validation"
)

const maxBodyBytes = 1 << 20

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handler serves deck sessions.
type Handler struct {
	manager      *deck.Manager
	storeBackend string
	version      string
	checks       []ReadinessCheck
	startTime    time.Time
}

// NewHandler creates a handler over manager.
func NewHandler(manager *deck.Manager, storeBackend, version string, checks ...ReadinessCheck) *Handler {
	return &Handler{
		manager:      manager,
		storeBackend: storeBackend,
		version:      version,
		checks:       checks,
		startTime:    time.Now(),
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// sessionKey reads the user and category path parameters.
func sessionKey(r *http.Request) (models.SessionKey, error) {
	user, err := url.PathUnescape(chi.URLParam(r, "userID"))
	if err != nil {
		return models.SessionKey{}, fmt.Errorf("user id: %w", err)
	}
	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		return models.SessionKey{}, fmt.Errorf("category: %w", err)
	}
	if user == "" || category == "" {
		return models.SessionKey{}, errors.New("user id and category are required")
	}
	return models.SessionKey{UserID: user, Category: category}, nil
}

// decodeAndValidate decodes a JSON body into dst and validates it. It
// writes the error response and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Request body too large or unreadable", nil)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Invalid JSON body", nil)
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		})
		return false
	}
	return true
}

// liveSession resolves the session named by the path. It writes the error
// response and returns nil on failure.
func (h *Handler) liveSession(w http.ResponseWriter, r *http.Request) *deck.Session {
	key, err := sessionKey(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return nil
	}
	s, err := h.manager.Get(key)
	if err != nil {
		respondDeckError(w, err)
		return nil
	}
	return s
}
