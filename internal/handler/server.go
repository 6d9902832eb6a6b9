// Package handler implements the JSON HTTP API of the Wayfarer backend.
// All handlers are methods on Server and reach storage only through
// repo.Storage, so the same handlers serve either backend.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/wayfarer/backend/internal/blob"
	"github.com/pkordes/wayfarer/backend/internal/repo"
)

// backendReporter is implemented by repo.Router.
type backendReporter interface {
	Backend() string
	Ping(ctx context.Context) error
}

// fileServer is implemented by blob stores that serve their own blobs, such
// as blob.LocalStore.
type fileServer interface {
	Prefix() string
	Handler() http.Handler
}

// Server holds the dependencies shared by every handler.
type Server struct {
	store repo.Storage
	blobs blob.Store
	log   *slog.Logger
}

// NewServer constructs the Server. blobs may be nil, in which case photo
// uploads are rejected.
func NewServer(store repo.Storage, blobs blob.Store, log *slog.Logger) *Server {
	return &Server{store: store, blobs: blobs, log: log}
}

// Routes returns the chi router serving the whole API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/sync", s.SyncUser)
		r.Get("/{id}", s.GetUser)
		r.Patch("/{id}", s.UpdateUser)
	})

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Post("/", s.CreateDestination)
		r.Get("/{id}", s.GetDestination)
		r.Patch("/{id}", s.UpdateDestination)
		r.Delete("/{id}", s.DeleteDestination)
		r.Get("/{id}/hotels", s.ListHotels)
		r.Get("/{id}/places", s.ListPlaces)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Get("/{id}", s.GetTrip)
		r.Patch("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
		r.Get("/{id}/itineraries", s.ListItineraries)
		r.Post("/{id}/itineraries", s.CreateItinerary)
		r.Get("/{id}/photos", s.ListTripPhotos)
		r.Get("/{id}/budget", s.GetTripBudget)
		r.Put("/{id}/budget", s.PutTripBudget)
		r.Get("/{id}/expenses", s.ListExpenses)
	})

	r.Route("/itineraries", func(r chi.Router) {
		r.Get("/{id}", s.GetItinerary)
		r.Patch("/{id}", s.UpdateItinerary)
		r.Delete("/{id}", s.DeleteItinerary)
	})

	r.Route("/photos", func(r chi.Router) {
		r.Get("/", s.ListPhotos)
		r.Post("/", s.UploadPhoto)
		r.Get("/{id}", s.GetPhoto)
		r.Patch("/{id}", s.UpdatePhoto)
		r.Delete("/{id}", s.DeletePhoto)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", s.ListNotifications)
		r.Post("/", s.CreateNotification)
		r.Get("/{id}", s.GetNotification)
		r.Post("/{id}/read", s.MarkNotificationRead)
	})

	r.Route("/hotels", func(r chi.Router) {
		r.Post("/", s.CreateHotel)
		r.Get("/{id}", s.GetHotel)
		r.Patch("/{id}", s.UpdateHotel)
		r.Delete("/{id}", s.DeleteHotel)
	})

	r.Route("/places", func(r chi.Router) {
		r.Post("/", s.CreatePlace)
		r.Get("/{id}", s.GetPlace)
		r.Patch("/{id}", s.UpdatePlace)
		r.Delete("/{id}", s.DeletePlace)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", s.ListReviews)
		r.Post("/", s.CreateReview)
		r.Get("/{id}", s.GetReview)
		r.Patch("/{id}", s.UpdateReview)
		r.Delete("/{id}", s.DeleteReview)
	})

	r.Delete("/budgets/{id}", s.DeleteBudget)

	r.Route("/expenses", func(r chi.Router) {
		r.Post("/", s.CreateExpense)
		r.Get("/{id}", s.GetExpense)
		r.Patch("/{id}", s.UpdateExpense)
		r.Delete("/{id}", s.DeleteExpense)
	})

	r.Route("/currency-rates", func(r chi.Router) {
		r.Get("/", s.ListCurrencyRates)
		r.Put("/", s.PutCurrencyRate)
		r.Get("/{base}/{target}", s.GetCurrencyRate)
	})

	if fs, ok := s.blobs.(fileServer); ok {
		r.Handle(fs.Prefix()+"/*", fs.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}
