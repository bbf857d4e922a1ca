// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

/*
Package api exposes deck sessions over HTTP using the Chi router.

Routes:

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	GET    /metrics
	POST   /api/v1/sessions
	GET    /api/v1/sessions/{userID}/{category}
	DELETE /api/v1/sessions/{userID}/{category}
	GET    /api/v1/sessions/{userID}/{category}/current
	POST   /api/v1/sessions/{userID}/{category}/swipe
	POST   /api/v1/sessions/{userID}/{category}/discard
	POST   /api/v1/sessions/{userID}/{category}/leave

Bootstrap reads the recommendation source token from the Authorization
header ("Bearer <token>"). The token stays with the session and is never
logged.

Every response uses the models.APIResponse envelope. Deck errors map to
status codes and error codes in errors.go; a REAUTHENTICATE error tells the
client to log in again.
*/
package api
