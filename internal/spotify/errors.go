// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package spotify

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingToken is returned when a call is made without a bearer token.
var ErrMissingToken = errors.New("spotify: missing bearer token")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify %s returned status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// isClientError reports whether err is a 4xx response other than 429.
// Such errors reflect the request, not the health of the source.
func isClientError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode >= 400 && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests
}

// IsPermanent reports whether retrying err cannot succeed: a missing token
// or a 4xx response other than 429.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrMissingToken) || isClientError(err)
}
