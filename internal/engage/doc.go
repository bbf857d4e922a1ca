// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

/*
Package engage runs the side effects of liking an artist: following the
artist, saving the preview track, and adding it to the user's playlist.

Likes are published to an in-process Watermill GoChannel. A router fans
each like out into one message per enabled action, and a second handler
performs each action against the recommendation source. Actions are
retried with backoff unless the failure is permanent; after the last
retry the action is dropped and logged. Publishing never blocks the swipe.
*/
package engage
