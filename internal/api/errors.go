// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/discodeck/internal/deck"
)

// Error codes.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeReauthenticate   = "REAUTHENTICATE"
	ErrCodeSessionNotFound  = "SESSION_NOT_FOUND"
	ErrCodeDiscardPending   = "DISCARD_PENDING"
	ErrCodeCardNotFound     = "CARD_NOT_FOUND"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNotReady         = "NOT_READY"
)

// ErrMissingToken is returned when a bootstrap has no bearer token.
var ErrMissingToken = errors.New("missing bearer token")

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// deckErrors is checked in order; the first match wins.
var deckErrors = []errorMapping{
	{ErrMissingToken, http.StatusUnauthorized, ErrCodeReauthenticate, "Log in to the recommendation source"},
	{deck.ErrReauthenticate, http.StatusUnauthorized, ErrCodeReauthenticate, "Re-authentication required"},
	{deck.ErrSessionNotFound, http.StatusNotFound, ErrCodeSessionNotFound, "Session not found"},
	{deck.ErrSessionClosed, http.StatusNotFound, ErrCodeSessionNotFound, "Session closed"},
	{deck.ErrDiscardPending, http.StatusConflict, ErrCodeDiscardPending, "A discarded card has not left the screen yet"},
	{deck.ErrCardNotFound, http.StatusNotFound, ErrCodeCardNotFound, "Card is not on the deck"},
	{deck.ErrNoSeedSource, http.StatusBadRequest, ErrCodeValidation, deck.ErrNoSeedSource.Error()},
}

// respondDeckError maps err to a status and code. Unknown errors are 500s.
func respondDeckError(w http.ResponseWriter, err error) {
	for _, m := range deckErrors {
		if errors.Is(err, m.err) {
			var logged error
			if m.status >= http.StatusInternalServerError || m.code == ErrCodeReauthenticate {
				logged = err
			}
			respondError(w, m.status, m.code, m.message, logged)
			return
		}
	}
	respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", err)
}
