// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

/*
Package store persists deck snapshots, one document per (user, category).

Four backends implement SnapshotStore:

  - memory: process-local map, used in tests and development
  - badger: embedded BadgerDB, JSON documents under a key prefix
  - backend: the original Express backend over HTTP
  - dynamodb: one item per deck, PK=USER#<id>, SK=CATEGORY#<name>

Every write replaces the slices it carries, so replaying a write is
harmless. The liked marker is a set-add.

New selects a backend from configuration and wraps it with write metrics.
*/
package store
