// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/discodeck/internal/logging"
	"github.com/tomtom215/discodeck/internal/models"
)

// CreateSession bootstraps a deck for (user, category) and returns its view.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.BootstrapRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token := bearerToken(r)
	if token == "" {
		respondDeckError(w, ErrMissingToken)
		return
	}

	ctx := logging.ContextWithCategory(r.Context(), logging.SanitizeValue(req.CategoryName))
	s, err := h.manager.Bootstrap(ctx, req, token)
	if err != nil {
		logging.Ctx(ctx).Debug().
			Str("user", logging.RedactUserID(req.UserID)).
			Str("token", logging.RedactToken(token)).
			Err(err).
			Msg("bootstrap failed")
		respondDeckError(w, err)
		return
	}

	logging.Ctx(ctx).Info().
		Str("user", logging.RedactUserID(req.UserID)).
		Bool("first_time", req.FirstTime).
		Msg("session started")

	respondSuccess(w, http.StatusCreated, s.View(), start)
}

// GetSession returns the deck view of a live session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s := h.liveSession(w, r)
	if s == nil {
		return
	}
	respondSuccess(w, http.StatusOK, s.View(), start)
}

// DeleteSession closes a live session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key, err := sessionKey(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if err := h.manager.Close(key); err != nil {
		respondDeckError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]bool{"closed": true}, start)
}

// CurrentCard returns the top card, from the live session or else from the
// stored snapshot. Data is null when the deck is empty.
func (h *Handler) CurrentCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key, err := sessionKey(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	artist, err := h.manager.CurrentArtist(r.Context(), key)
	if err != nil {
		respondDeckError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, artist, start)
}

// Swipe records a left or right gesture on a card.
func (h *Handler) Swipe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s := h.liveSession(w, r)
	if s == nil {
		return
	}

	var req models.SwipeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	state, err := s.Swipe(r.Context(), req.ArtistID, req.Direction)
	if err != nil {
		respondDeckError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.SwipeResult{ArtistID: req.ArtistID, State: state.String()}, start)
}

// Discard applies the discard control to the top-most presented card.
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s := h.liveSession(w, r)
	if s == nil {
		return
	}

	id, err := s.Discard(r.Context())
	if err != nil {
		respondDeckError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.SwipeResult{ArtistID: id, State: s.State(id).String()}, start)
}

// Leave confirms a card left the screen and returns the updated deck.
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s := h.liveSession(w, r)
	if s == nil {
		return
	}

	var req models.LeaveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	removed, err := s.Leave(r.Context(), req.ArtistID, req.StackDepth)
	if err != nil {
		respondDeckError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.LeaveResult{
		ArtistID: req.ArtistID,
		Removed:  removed,
		Deck:     s.View(),
	}, start)
}
