// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

/*
Package deck implements the discovery-deck engine.

A deck is an ordered, duplicate-free queue of candidate artists for one
user and one category. The last element is the visible top card; new
candidates are prepended so they surface after everything already queued.

Components:

  - Store: owns the deck, visited, used-as-seed, liked and buffer
    collections behind one mutex and reports every mutation to a Sink
  - Enricher: attaches a preview track to a candidate
  - Fetcher: walks the related-artists graph from a seed, filters,
    enriches and merges the neighbors into the Store
  - RefillPolicy: after each removal picks the next seed (liked artists
    first, then the playlist buffer) and launches an asynchronous pass
  - Synchronizer: the Sink that mirrors mutations into a
    store.SnapshotStore and bootstraps sessions from it
  - SwipeConsumer: turns swipe, discard and leave events into Store
    mutations and engagement events
  - Session and Manager: one wired set of the above per (user, category)

Visited ids never re-enter the deck, and ids used as seeds are never used
twice, within a session. Refill passes run detached from the request that
triggered them; a pass that finishes after its session was closed drops
its merge.
*/
package deck
