// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/discodeck/internal/models"
)

func intPtr(n int) *int { return &n }

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Requests(t *testing.T) {
	tests := []struct {
		name       string
		input      interface{}
		wantFields []string
	}{
		{
			name:  "valid bootstrap",
			input: &models.BootstrapRequest{UserID: "u1", CategoryName: "indie", FirstTime: true, SeedBuffer: []string{"4Z8W4fKeB5YxbusRsdQVPb"}},
		},
		{
			name:       "bootstrap missing user and category",
			input:      &models.BootstrapRequest{},
			wantFields: []string{"user_id", "category_name"},
		},
		{
			name:       "bootstrap with bad seed id",
			input:      &models.BootstrapRequest{UserID: "u1", CategoryName: "c", SeedBuffer: []string{"ok1", "not/an/id"}},
			wantFields: []string{"seed_buffer[1]"},
		},
		{
			name:       "bootstrap with bad playlist id",
			input:      &models.BootstrapRequest{UserID: "u1", CategoryName: "c", PlaylistID: "../x"},
			wantFields: []string{"playlist_id"},
		},
		{
			name:  "valid swipe",
			input: &models.SwipeRequest{ArtistID: "A1", Direction: "right"},
		},
		{
			name:       "swipe with unknown direction",
			input:      &models.SwipeRequest{ArtistID: "A1", Direction: "up"},
			wantFields: []string{"direction"},
		},
		{
			name:  "leave without depth",
			input: &models.LeaveRequest{ArtistID: "A1"},
		},
		{
			name:  "leave with zero depth",
			input: &models.LeaveRequest{ArtistID: "A1", StackDepth: intPtr(0)},
		},
		{
			name:       "leave with negative depth",
			input:      &models.LeaveRequest{ArtistID: "A1", StackDepth: intPtr(-1)},
			wantFields: []string{"stack_depth"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			checkFields(t, err, tt.wantFields)
		})
	}
}

func checkFields(t *testing.T, err *RequestValidationError, want []string) {
	t.Helper()
	got := make([]string, 0, len(err.Errors()))
	for _, fe := range err.Errors() {
		got = append(got, fe.Field)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("failed fields = %v, want %v", got, want)
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&models.SwipeRequest{Direction: "up"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	for _, want := range []string{"artist_id is required", "direction must be one of: left right"} {
		if !strings.Contains(apiErr.Message, want) {
			t.Errorf("Message %q missing %q", apiErr.Message, want)
		}
	}
	fields, ok := apiErr.Details["fields"].([]string)
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v, want two fields", apiErr.Details["fields"])
	}
}

func TestTranslateMessages(t *testing.T) {
	type sample struct {
		Name  string   `json:"name" validate:"min=3"`
		Count int      `json:"count" validate:"max=2"`
		IDs   []string `json:"ids" validate:"max=1"`
	}

	err := ValidateStruct(&sample{Name: "ab", Count: 3, IDs: []string{"a", "b"}})
	if err == nil {
		t.Fatal("expected validation error")
	}

	want := []string{
		"name must be at least 3 characters",
		"count must be at most 2",
		"ids must have at most 1 entries",
	}
	for i, fe := range err.Errors() {
		if fe.Message != want[i] {
			t.Errorf("message[%d] = %q, want %q", i, fe.Message, want[i])
		}
	}
}
