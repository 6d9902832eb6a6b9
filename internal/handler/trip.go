package handler

import (
	"net/http"
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// TripResponse is a Trip with its start and end as calendar dates.
type TripResponse struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"userId"`
	DestinationID int64              `json:"destinationId"`
	Title         string             `json:"title"`
	StartDate     openapi_types.Date `json:"startDate"`
	EndDate       openapi_types.Date `json:"endDate"`
	Description   *string            `json:"description"`
	IsFavorite    *bool              `json:"isFavorite"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	UserID        int64              `json:"userId"`
	DestinationID int64              `json:"destinationId"`
	Title         string             `json:"title"`
	StartDate     openapi_types.Date `json:"startDate"`
	EndDate       openapi_types.Date `json:"endDate"`
	Description   *string            `json:"description,omitempty"`
	IsFavorite    *bool              `json:"isFavorite,omitempty"`
}

func (req CreateTripRequest) toDomain() domain.NewTrip {
	return domain.NewTrip{
		UserID:        req.UserID,
		DestinationID: req.DestinationID,
		Title:         req.Title,
		StartDate:     req.StartDate.Time,
		EndDate:       req.EndDate.Time,
		Description:   req.Description,
		IsFavorite:    req.IsFavorite,
	}
}

// UpdateTripRequest is the body of PATCH /trips/{id}.
// Description and isFavorite may be sent as null to clear them.
type UpdateTripRequest struct {
	DestinationID *int64                    `json:"destinationId,omitempty"`
	Title         *string                   `json:"title,omitempty"`
	StartDate     *openapi_types.Date       `json:"startDate,omitempty"`
	EndDate       *openapi_types.Date       `json:"endDate,omitempty"`
	Description   nullable.Nullable[string] `json:"description,omitempty"`
	IsFavorite    nullable.Nullable[bool]   `json:"isFavorite,omitempty"`
}

func (req UpdateTripRequest) toDomain() domain.TripPatch {
	return domain.TripPatch{
		DestinationID: req.DestinationID,
		Title:         req.Title,
		StartDate:     dateTime(req.StartDate),
		EndDate:       dateTime(req.EndDate),
		Description:   req.Description,
		IsFavorite:    req.IsFavorite,
	}
}

// ListTrips handles GET /trips?userId=.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, err := requiredID(r.URL.Query(), "userId")
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	trips, err := s.store.GetTrips(r.Context(), userID)
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	resp := make([]TripResponse, len(trips))
	for i, t := range trips {
		resp[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	trip, err := s.store.GetTrip(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req CreateTripRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	in := req.toDomain()
	if err := in.Validate(); err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	trip, err := s.store.CreateTrip(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// UpdateTrip handles PATCH /trips/{id}. When only one end of the date range
// is supplied it is checked against the stored other end.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	var req UpdateTripRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	p := req.toDomain()
	if (p.StartDate == nil) != (p.EndDate == nil) {
		cur, err := s.store.GetTrip(r.Context(), id)
		if err != nil {
			s.writeStoreError(w, r, err, "trip")
			return
		}
		check := p
		if check.StartDate == nil {
			check.StartDate = &cur.StartDate
		} else {
			check.EndDate = &cur.EndDate
		}
		if err := check.Validate(); err != nil {
			s.writeStoreError(w, r, err, "trip")
			return
		}
	}
	if err := p.Validate(); err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	trip, err := s.store.UpdateTrip(r.Context(), id, p)
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "trip", s.store.DeleteTrip)
}

// ListItineraries handles GET /trips/{id}/itineraries.
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	listByPath(s, w, r, "itinerary", s.store.GetItineraries)
}

// CreateItinerary handles POST /trips/{id}/itineraries. The trip id comes
// from the path; a tripId in the body must match it.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, "itinerary")
		return
	}
	var in domain.NewItinerary
	if err := decodeBody(r, &in); err != nil {
		s.writeStoreError(w, r, err, "itinerary")
		return
	}
	if in.TripID != 0 && in.TripID != tripID {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "tripId does not match the path")
		return
	}
	in.TripID = tripID
	if err := in.Validate(); err != nil {
		s.writeStoreError(w, r, err, "itinerary")
		return
	}
	if _, err := s.store.GetTrip(r.Context(), tripID); err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	it, err := s.store.CreateItinerary(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "itinerary")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "itinerary", s.store.GetItinerary)
}

// UpdateItinerary handles PATCH /itineraries/{id}.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	patchByID(s, w, r, "itinerary", s.store.UpdateItinerary)
}

// DeleteItinerary handles DELETE /itineraries/{id}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "itinerary", s.store.DeleteItinerary)
}

// ListTripPhotos handles GET /trips/{id}/photos.
func (s *Server) ListTripPhotos(w http.ResponseWriter, r *http.Request) {
	listByPath(s, w, r, "photo", s.store.GetTripPhotos)
}

// --- mapping helpers --------------------------------------------------------

func tripToResponse(t domain.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		UserID:        t.UserID,
		DestinationID: t.DestinationID,
		Title:         t.Title,
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
		Description:   t.Description,
		IsFavorite:    t.IsFavorite,
		CreatedAt:     t.CreatedAt,
	}
}

// dateTime converts an optional calendar date to midnight UTC.
func dateTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// nullableDate converts a nullable calendar date to a nullable time,
// keeping absent and null apart.
func nullableDate(d nullable.Nullable[openapi_types.Date]) nullable.Nullable[time.Time] {
	switch {
	case !d.IsSpecified():
		return nil
	case d.IsNull():
		return nullable.NewNullNullable[time.Time]()
	default:
		return nullable.NewNullableWithValue(d.MustGet().Time)
	}
}

// datePtr converts an optional time to its calendar date.
func datePtr(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}
