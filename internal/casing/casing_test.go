package casing_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/backend/internal/casing"
	"github.com/pkordes/wayfarer/backend/internal/domain"
)

func TestToBackend(t *testing.T) {
	cases := map[string]string{
		"id":               "id",
		"tripId":           "trip_id",
		"userId":           "user_id",
		"createdAt":        "created_at",
		"pricePerNight":    "price_per_night",
		"originalCurrency": "original_currency",
		"day2Notes":        "day2_notes",
		"HTMLParser":       "html_parser",
		"photoURL":         "photo_url",
		"imageUrl":         "image_url",
	}
	for in, want := range cases {
		assert.Equal(t, want, casing.ToBackend(in), "ToBackend(%q)", in)
	}
}

func TestToApp(t *testing.T) {
	cases := map[string]string{
		"id":              "id",
		"trip_id":         "tripId",
		"last_updated":    "lastUpdated",
		"price_per_night": "pricePerNight",
		"photo_url":       "photoURL",
		"image_url":       "imageUrl",
		"double__under":   "doubleUnder",
	}
	for in, want := range cases {
		assert.Equal(t, want, casing.ToApp(in), "ToApp(%q)", in)
	}
}

// TestToBackend_acronymRunCollapses checks that a trailing run of capitals
// produces one underscore, not one per letter.
func TestToBackend_acronymRunCollapses(t *testing.T) {
	assert.Equal(t, "avatar_url", casing.ToBackend("avatarURL"))
	assert.Equal(t, "parse_xml_doc", casing.ToBackend("parseXMLDoc"))
}

func TestRecordRoundTrip(t *testing.T) {
	rec := map[string]any{"tripId": 5, "userId": 9}

	backend := casing.RecordToBackend(rec)
	require.Equal(t, map[string]any{"trip_id": 5, "user_id": 9}, backend)

	assert.Equal(t, rec, casing.RecordToApp(backend))
}

func TestRecord_nestedValuesUntouched(t *testing.T) {
	nested := map[string]any{"startTime": "09:00"}
	rec := map[string]any{"activities": []any{nested}, "tripId": 1}

	got := casing.RecordToBackend(rec)

	assert.Equal(t, []any{nested}, got["activities"])
	assert.Equal(t, 1, got["trip_id"])
}

func TestRecord_nil(t *testing.T) {
	assert.Nil(t, casing.RecordToBackend(nil))
	assert.Nil(t, casing.RecordToApp(nil))
}

// TestDomainFieldsRoundTrip walks every JSON field name the application emits
// and checks it survives a trip through the backend naming convention.
func TestDomainFieldsRoundTrip(t *testing.T) {
	types := []any{
		domain.User{}, domain.Destination{}, domain.Trip{}, domain.Itinerary{},
		domain.Photo{}, domain.Notification{}, domain.Hotel{}, domain.Place{},
		domain.Review{}, domain.Budget{}, domain.Expense{}, domain.CurrencyRate{},
	}
	for _, v := range types {
		rt := reflect.TypeOf(v)
		for i := range rt.NumField() {
			name, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
			back := casing.ToBackend(name)
			assert.Equal(t, name, casing.ToApp(back), "%s.%s via %q", rt.Name(), name, back)
			assert.Equal(t, strings.ToLower(back), back)
		}
	}
}

func TestRecordToApp_decodedRow(t *testing.T) {
	var row map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":1,"photo_url":"x"}`), &row))

	got := casing.RecordToApp(row)

	assert.Contains(t, got, "userId")
	assert.Contains(t, got, "photoURL")
}
