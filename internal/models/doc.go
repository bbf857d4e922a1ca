// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

/*
Package models defines the data structures shared across Discodeck.

Key Components:

  - Artist: a recommendation candidate as shown on a card, with optional
    preview-track metadata attached by enrichment
  - PreviewRecord: the outcome of a top-tracks lookup
  - Snapshot: the persisted state of one (user, category) deck
  - DeckUpdate, LeaveUpdate: the partial writes issued after each mutation
  - APIResponse: standardized HTTP response wrapper

JSON field names follow the category documents stored by the original
backend (artists, buffer, used, liked, liked_count, visited), so snapshots
written by either side can be read by the other. The dynamodbav tags mirror
the JSON names for the DynamoDB store.
*/
package models
