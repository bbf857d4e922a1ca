// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/discodeck/internal/models"
)

// HealthLive returns 200 while the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady returns 200 when every readiness check passes, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := models.HealthStatus{
		Status:         "ready",
		Version:        h.version,
		ActiveSessions: h.manager.Len(),
		StoreBackend:   h.storeBackend,
	}

	failed := map[string]string{}
	for _, c := range h.checks {
		if err := c.Check(r.Context()); err != nil {
			failed[c.Name] = err.Error()
		}
	}
	if len(failed) == 0 {
		respondSuccess(w, http.StatusOK, status, start)
		return
	}

	status.Status = "not_ready"
	details := make(map[string]interface{}, len(failed))
	for name, msg := range failed {
		details[name] = msg
	}
	respondFailure(w, http.StatusServiceUnavailable, status, &models.APIError{
		Code:    ErrCodeNotReady,
		Message: "Service is not ready",
		Details: details,
	})
}
