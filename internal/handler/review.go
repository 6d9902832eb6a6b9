package handler

import (
	"net/http"

	"github.com/pkordes/wayfarer/backend/internal/domain"
	"github.com/pkordes/wayfarer/backend/internal/repo"
)

// ListReviews handles GET /reviews?hotelId=&placeId=. Either filter may be
// omitted; with neither, every review is returned.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hotelID, err := optionalID(q, "hotelId")
	if err != nil {
		s.writeStoreError(w, r, err, "review")
		return
	}
	placeID, err := optionalID(q, "placeId")
	if err != nil {
		s.writeStoreError(w, r, err, "review")
		return
	}
	writeList(s, w, r, "review", func() ([]domain.Review, error) {
		return s.store.GetReviews(r.Context(), repo.ReviewFilter{HotelID: hotelID, PlaceID: placeID})
	})
}

func (s *Server) GetReview(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "review", s.store.GetReview)
}

// CreateReview handles POST /reviews. Exactly one of hotelId and placeId.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	createFromBody(s, w, r, "review", s.store.CreateReview)
}

func (s *Server) UpdateReview(w http.ResponseWriter, r *http.Request) {
	patchByID(s, w, r, "review", s.store.UpdateReview)
}

func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "review", s.store.DeleteReview)
}
