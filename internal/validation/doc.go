// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

// Package validation validates decoded request bodies with
// go-playground/validator v10.
//
// A single validator instance is shared by all handlers. Field names in
// errors use the json tag, so a failure on BootstrapRequest.UserID reports
// "user_id", the name the client sent.
//
// Custom tags:
//
//	spotifyid   base62 identifier of 1 to 64 characters
//
// Handlers turn a *RequestValidationError into the VALIDATION_ERROR
// response with ToAPIError.
package validation
