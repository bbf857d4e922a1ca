// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package logging

import "strings"

// RedactToken masks a bearer token, showing only the first and last 4 characters.
// Example: "BQDx1234abcdWXYZ" -> "BQDx...WXYZ"
func RedactToken(token string) string {
	token = strings.TrimPrefix(token, "Bearer ")
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactUserID masks a user ID.
// Example: "spotify-user-12345678" -> "spot...5678"
func RedactUserID(userID string) string {
	if len(userID) <= 8 {
		return userID
	}
	return userID[:4] + "..." + userID[len(userID)-4:]
}

// SanitizeValue strips control characters that could forge log lines.
// Values longer than 256 bytes are truncated.
func SanitizeValue(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if len(s) > 256 {
		return s[:256] + "..."
	}
	return s
}
