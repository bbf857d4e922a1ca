// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"slices"
	"sync"

	"github.com/tomtom215/discodeck/internal/models"
)

// Sink receives a copy of the affected collections after each mutation.
// Calls arrive in mutation order and never concurrently.
type Sink interface {
	DeckChanged(update models.DeckUpdate)
	CardRemoved(update models.LeaveUpdate)
	ArtistLiked(marker models.LikedMarker)
}

// Store owns a session's collections.
//
// Every mutation is applied under mu and draws a ticket before mu is
// released. Sink calls then run under persistMu strictly in ticket order,
// so they match mutation order while mu stays free for readers and later
// mutations.
type Store struct {
	mu        sync.Mutex
	persistMu sync.Mutex
	turn      *sync.Cond
	issued    uint64
	served    uint64

	deck       []models.Artist
	visited    *idSet
	used       *idSet
	liked      *idSet
	likedCount int
	buffer     []string
	closed     bool

	sink Sink
}

// NewStore creates a store restored from snap. A nil snap starts empty.
func NewStore(sink Sink, snap *models.Snapshot) *Store {
	if snap == nil {
		snap = &models.Snapshot{}
	}
	liked := newIDSet(snap.Liked)
	s := &Store{
		deck:       dedupeArtists(snap.Artists),
		visited:    newIDSet(snap.Visited),
		used:       newIDSet(snap.Used),
		liked:      liked,
		likedCount: min(max(snap.LikedCount, 0), liked.len()),
		buffer:     slices.Clone(snap.Buffer),
		sink:       sink,
	}
	s.turn = sync.NewCond(&s.persistMu)
	return s
}

// Merge prepends candidates to the first remaining cards of the deck.
// remaining < 0 or remaining >= Len keeps the whole deck. Candidates
// already kept, already visited, or repeated within the batch are
// dropped. A non-empty seed is recorded as used. Returns the new deck,
// or ErrSessionClosed after Close.
func (s *Store) Merge(seed string, candidates []models.Artist, remaining int) ([]models.Artist, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}

	base := s.deck
	if remaining >= 0 && remaining < len(base) {
		base = base[:remaining]
	}

	seen := make(map[string]struct{}, len(base)+len(candidates))
	for _, a := range base {
		seen[a.ID] = struct{}{}
	}

	merged := make([]models.Artist, 0, len(candidates)+len(base))
	for _, c := range candidates {
		if _, dup := seen[c.ID]; dup || s.visited.has(c.ID) {
			continue
		}
		seen[c.ID] = struct{}{}
		merged = append(merged, c)
	}
	merged = append(merged, base...)
	s.deck = merged

	if seed != "" {
		s.used.add(seed)
	}

	update := models.DeckUpdate{
		Artists:    slices.Clone(s.deck),
		Used:       s.used.slice(),
		ChildRefs:  models.CardHandles(len(s.deck)),
		LikedCount: s.likedCount,
	}
	s.handOff()
	s.sink.DeckChanged(update)
	s.release()

	return slices.Clone(update.Artists), nil
}

// Remove takes id off the deck and marks it visited. Removing an id that
// is not on the deck changes nothing and writes nothing; removed reports
// which case applied.
func (s *Store) Remove(id string) (deck []models.Artist, visited []string, removed bool) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.deck, func(a models.Artist) bool { return a.ID == id })
	if idx < 0 {
		deck, visited = slices.Clone(s.deck), s.visited.slice()
		s.mu.Unlock()
		return deck, visited, false
	}

	s.deck = slices.Delete(slices.Clone(s.deck), idx, idx+1)
	s.visited.add(id)

	update := models.LeaveUpdate{
		Visited: s.visited.slice(),
		Artists: slices.Clone(s.deck),
	}
	s.handOff()
	s.sink.CardRemoved(update)
	s.release()

	return slices.Clone(update.Artists), slices.Clone(update.Visited), true
}

// Like records id as liked. Liking twice writes once.
func (s *Store) Like(id string) {
	s.mu.Lock()
	if !s.liked.add(id) {
		s.mu.Unlock()
		return
	}
	s.handOff()
	s.sink.ArtistLiked(models.LikedMarker{ArtistID: id})
	s.release()
}

// NextSeed picks the next seed for a refill.
//
// The liked cursor first advances past liked ids that are used or for
// which skipped reports true, and every liked id before the cursor is
// marked used. If a liked id remains at the cursor it is returned with
// fromLiked set. Otherwise the first buffer id that is neither used nor
// skipped is returned. An empty seed means there is nothing left.
func (s *Store) NextSeed(skipped func(id string) bool) (seed string, fromLiked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.likedCount
	for count < s.liked.len() && (s.used.has(s.liked.at(count)) || skipped(s.liked.at(count))) {
		count++
	}
	s.likedCount = count
	for i := 0; i < count; i++ {
		s.used.add(s.liked.at(i))
	}

	if count < s.liked.len() {
		return s.liked.at(count), true
	}
	for _, id := range s.buffer {
		if !s.used.has(id) && !skipped(id) {
			return id, false
		}
	}
	return "", false
}

// Close makes later merges fail with ErrSessionClosed.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// handOff must be called with mu held. It releases mu and returns holding
// persistMu once every earlier mutation has reached the sink.
func (s *Store) handOff() {
	ticket := s.issued
	s.issued++
	s.mu.Unlock()

	s.persistMu.Lock()
	for s.served != ticket {
		s.turn.Wait()
	}
}

// release ends the sink call started by handOff.
func (s *Store) release() {
	s.served++
	s.turn.Broadcast()
	s.persistMu.Unlock()
}

// Deck returns a copy of the deck, bottom card first.
func (s *Store) Deck() []models.Artist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.deck)
}

// Top returns the visible card.
func (s *Store) Top() (models.Artist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.deck) == 0 {
		return models.Artist{}, false
	}
	return s.deck[len(s.deck)-1], true
}

// Find returns the card with id if it is on the deck.
func (s *Store) Find(id string) (models.Artist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.deck {
		if a.ID == id {
			return a, true
		}
	}
	return models.Artist{}, false
}

// Len returns the number of cards on the deck.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deck)
}

// IsVisited reports whether id has left the screen.
func (s *Store) IsVisited(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited.has(id)
}

// IsUsed reports whether id has been used as a seed.
func (s *Store) IsUsed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used.has(id)
}

// Snapshot returns a copy of every collection.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Snapshot{
		Artists:    slices.Clone(s.deck),
		Buffer:     slices.Clone(s.buffer),
		Used:       s.used.slice(),
		Liked:      s.liked.slice(),
		LikedCount: s.likedCount,
		Visited:    s.visited.slice(),
	}
}

func dedupeArtists(in []models.Artist) []models.Artist {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Artist, 0, len(in))
	for _, a := range in {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
