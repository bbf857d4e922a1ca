// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

// Package services adapts discodeck components to suture.Service.
//
// Each wrapper blocks in Serve until its context is cancelled and returns
// an error only when the component fails, so suture restarts it.
package services
