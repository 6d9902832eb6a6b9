package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/backend/internal/domain"
	"github.com/pkordes/wayfarer/backend/internal/handler"
)

func tripBody() map[string]any {
	return map[string]any{
		"userId":        1,
		"destinationId": 2,
		"title":         "Paris",
		"startDate":     "2025-06-15",
		"endDate":       "2025-06-25",
	}
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	h := newHTTPHandler(newMemStore(t), nil)

	rec := do(t, h, http.MethodPost, "/trips", tripBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.JSONEq(t, `{
		"id": 1,
		"userId": 1,
		"destinationId": 2,
		"title": "Paris",
		"startDate": "2025-06-15",
		"endDate": "2025-06-25",
		"description": null,
		"isFavorite": null,
		"createdAt": "2024-01-15T10:30:00Z"
	}`, rec.Body.String())
}

func TestCreateTrip_422(t *testing.T) {
	tests := []struct {
		name string
		edit func(map[string]any)
	}{
		{"missing title", func(b map[string]any) { delete(b, "title") }},
		{"end before start", func(b map[string]any) { b["endDate"] = "2025-06-01" }},
		{"timestamp instead of date", func(b map[string]any) { b["startDate"] = "2025-06-15T10:00:00Z" }},
		{"missing user", func(b map[string]any) { b["userId"] = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := tripBody()
			tc.edit(body)

			rec := do(t, newHTTPHandler(newMemStore(t), nil), http.MethodPost, "/trips", body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "validation_error", errorCode(t, rec))
		})
	}
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_FiltersByUser(t *testing.T) {
	h := newHTTPHandler(newMemStore(t), nil)
	do(t, h, http.MethodPost, "/trips", tripBody())
	other := tripBody()
	other["userId"] = 7
	do(t, h, http.MethodPost, "/trips", other)

	rec := do(t, h, http.MethodGet, "/trips?userId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trips := decode[[]handler.TripResponse](t, rec)
	require.Len(t, trips, 1)
	assert.Equal(t, int64(1), trips[0].UserID)
}

func TestListTrips_EmptyIsArray(t *testing.T) {
	rec := do(t, newHTTPHandler(newMemStore(t), nil), http.MethodGet, "/trips?userId=3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListTrips_RequiresUserID(t *testing.T) {
	rec := do(t, newHTTPHandler(newMemStore(t), nil), http.MethodGet, "/trips", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET|PATCH|DELETE /trips/{id} ------------------------------------------

func TestTripLifecycle(t *testing.T) {
	h := newHTTPHandler(newMemStore(t), nil)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/trips", tripBody()).Code)

	rec := do(t, h, http.MethodPatch, "/trips/1", map[string]any{"isFavorite": true})
	require.Equal(t, http.StatusOK, rec.Code)
	trip := decode[handler.TripResponse](t, rec)
	require.NotNil(t, trip.IsFavorite)
	assert.True(t, *trip.IsFavorite)
	assert.Equal(t, "Paris", trip.Title)
	assert.Equal(t, "2025-06-25", trip.EndDate.String())

	rec = do(t, h, http.MethodDelete, "/trips/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/trips/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestUpdateTrip_NullClearsField(t *testing.T) {
	h := newHTTPHandler(newMemStore(t), nil)
	body := tripBody()
	body["description"] = "x"
	body["isFavorite"] = true
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/trips", body).Code)

	rec := do(t, h, http.MethodPatch, "/trips/1", map[string]any{"description": nil, "isFavorite": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	trip := decode[handler.TripResponse](t, rec)
	assert.Nil(t, trip.Description)
	assert.Nil(t, trip.IsFavorite)
	assert.Equal(t, "Paris", trip.Title, "absent fields unchanged")

	rec = do(t, h, http.MethodGet, "/trips/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[handler.TripResponse](t, rec).Description)
}

func TestUpdateTrip_ChecksDateAgainstStoredRange(t *testing.T) {
	h := newHTTPHandler(newMemStore(t), nil)
	do(t, h, http.MethodPost, "/trips", tripBody())

	rec := do(t, h, http.MethodPatch, "/trips/1", map[string]any{"endDate": "2025-06-01"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPatch, "/trips/1", map[string]any{"startDate": "2025-06-20"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-06-20", decode[handler.TripResponse](t, rec).StartDate.String())
}

func TestUpdateTrip_404(t *testing.T) {
	h := newHTTPHandler(newMemStore(t), nil)

	rec := do(t, h, http.MethodPatch, "/trips/9", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPatch, "/trips/9", map[string]any{"endDate": "2025-01-01"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- itineraries -----------------------------------------------------------

func TestItineraries(t *testing.T) {
	h := newHTTPHandler(newMemStore(t), nil)
	do(t, h, http.MethodPost, "/trips", tripBody())

	rec := do(t, h, http.MethodPost, "/trips/1/itineraries", map[string]any{
		"day":        1,
		"activities": []map[string]any{{"time": "09:00", "title": "Louvre"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	it := decode[domain.Itinerary](t, rec)
	assert.Equal(t, int64(1), it.TripID)
	assert.Equal(t, []domain.Activity{{Time: "09:00", Title: "Louvre"}}, it.Activities)

	rec = do(t, h, http.MethodPost, "/trips/1/itineraries", map[string]any{"day": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(t, rec))

	rec = do(t, h, http.MethodPost, "/trips/1/itineraries", map[string]any{"tripId": 2, "day": 2})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/trips/5/itineraries", map[string]any{"day": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code, "unknown trip")

	rec = do(t, h, http.MethodPatch, "/itineraries/1", map[string]any{"notes": "early start"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/trips/1/itineraries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.Itinerary](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "early start", *list[0].Notes)

	rec = do(t, h, http.MethodDelete, "/itineraries/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
