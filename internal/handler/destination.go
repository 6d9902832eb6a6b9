package handler

import (
	"net/http"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// ListDestinations handles GET /destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	writeList(s, w, r, "destination", func() ([]domain.Destination, error) {
		return s.store.GetDestinations(r.Context())
	})
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "destination", s.store.GetDestination)
}

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	createFromBody(s, w, r, "destination", s.store.CreateDestination)
}

// UpdateDestination handles PATCH /destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	patchByID(s, w, r, "destination", s.store.UpdateDestination)
}

// DeleteDestination handles DELETE /destinations/{id}.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "destination", s.store.DeleteDestination)
}

// ListHotels handles GET /destinations/{id}/hotels.
func (s *Server) ListHotels(w http.ResponseWriter, r *http.Request) {
	listByPath(s, w, r, "hotel", s.store.GetHotels)
}

// ListPlaces handles GET /destinations/{id}/places.
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	listByPath(s, w, r, "place", s.store.GetPlaces)
}

func (s *Server) GetHotel(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "hotel", s.store.GetHotel)
}

func (s *Server) CreateHotel(w http.ResponseWriter, r *http.Request) {
	createFromBody(s, w, r, "hotel", s.store.CreateHotel)
}

func (s *Server) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	patchByID(s, w, r, "hotel", s.store.UpdateHotel)
}

func (s *Server) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "hotel", s.store.DeleteHotel)
}

func (s *Server) GetPlace(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "place", s.store.GetPlace)
}

func (s *Server) CreatePlace(w http.ResponseWriter, r *http.Request) {
	createFromBody(s, w, r, "place", s.store.CreatePlace)
}

func (s *Server) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	patchByID(s, w, r, "place", s.store.UpdatePlace)
}

func (s *Server) DeletePlace(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "place", s.store.DeletePlace)
}
