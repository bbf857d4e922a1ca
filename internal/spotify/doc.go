// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

/*
Package spotify is the client for the recommendation source (Spotify Web API).

It covers the calls the deck engine and the engagement actions need:

  - GET  /artists/{id}/related-artists
  - GET  /artists/{id}/top-tracks?market=..
  - GET  /playlists/{id}/tracks?market=..   (seed buffer construction)
  - PUT  /me/following?type=artist&ids=..
  - PUT  /me/tracks?ids=..
  - POST /playlists/{id}/tracks?uris=spotify:track:..

Every call carries the user's bearer token. A Client is bound to one token;
WithToken derives a per-user client that shares the HTTP transport, the
outbound rate limiter and the circuit breaker with its parent, so that the
service as a whole stays inside the source's rate budget.

Calls pass through a sony/gobreaker circuit breaker. Client errors (4xx)
do not count towards tripping it; transport failures and 5xx responses do.
*/
package spotify
