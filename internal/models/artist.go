// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package models

// Image is an artist or album artwork reference.
type Image struct {
	URL    string `json:"url" dynamodbav:"url"`
	Height int    `json:"height,omitempty" dynamodbav:"height,omitempty"`
	Width  int    `json:"width,omitempty" dynamodbav:"width,omitempty"`
}

// Followers holds the follower count reported by the recommendation source.
type Followers struct {
	Total int `json:"total" dynamodbav:"total"`
}

// Artist is a recommendation candidate. The track_* fields are null until
// the candidate has been enriched, and stay null when no track was found.
type Artist struct {
	ID         string    `json:"id" dynamodbav:"id"`
	Name       string    `json:"name" dynamodbav:"name"`
	Images     []Image   `json:"images" dynamodbav:"images"`
	Genres     []string  `json:"genres" dynamodbav:"genres"`
	Followers  Followers `json:"followers" dynamodbav:"followers"`
	Popularity int       `json:"popularity,omitempty" dynamodbav:"popularity,omitempty"`

	TrackPreview   *string `json:"track_preview" dynamodbav:"track_preview"`
	TrackID        *string `json:"track_id" dynamodbav:"track_id"`
	TrackName      *string `json:"track_name" dynamodbav:"track_name"`
	TrackThumbnail *string `json:"track_thumbnail" dynamodbav:"track_thumbnail"`
}

// HasImages reports whether the artist has at least one image. Artists
// without artwork are never shown.
func (a *Artist) HasImages() bool {
	return len(a.Images) > 0
}

// HasPreview reports whether a preview URL has been attached.
func (a *Artist) HasPreview() bool {
	return a.TrackPreview != nil && *a.TrackPreview != ""
}

// WithPreview returns a copy of a with the preview record's fields attached.
func (a Artist) WithPreview(p PreviewRecord) Artist {
	a.TrackPreview = p.PreviewURL
	a.TrackID = p.TrackID
	a.TrackName = p.TrackName
	a.TrackThumbnail = p.TrackThumbnail
	return a
}

// PreviewRecord is the result of looking up an artist's top tracks.
// The zero value is the all-null record.
type PreviewRecord struct {
	PreviewURL     *string `json:"preview_url"`
	TrackID        *string `json:"track_id"`
	TrackName      *string `json:"track_name"`
	TrackThumbnail *string `json:"track_thumbnail"`
}

// IsEmpty reports whether no track was selected.
func (p PreviewRecord) IsEmpty() bool {
	return p.TrackID == nil && p.PreviewURL == nil
}

// Track is a single entry of an artist's top tracks.
type Track struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PreviewURL *string `json:"preview_url"`
	Album      struct {
		Images []Image `json:"images"`
	} `json:"album"`
	Artists []Artist `json:"artists"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
