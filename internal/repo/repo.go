// Package repo contains the storage layer for the Wayfarer API.
// Each entity has its own repository interface; MemStore and PgStore implement
// all of them and Router routes each entity to exactly one of the two.
// No business logic lives here, only record shaping and persistence.
package repo

import (
	"context"
	"time"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// Single-record reads and updates return domain.ErrNotFound when the id is
// unknown. Deletes report whether a record was removed. Any other error is a
// backend failure and is passed through wrapped, never replaced.

type UserRepo interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
	// GetUserByUID looks a user up by the external auth identifier.
	GetUserByUID(ctx context.Context, uid string) (domain.User, error)
	CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, p domain.UserPatch) (domain.User, error)
}

type DestinationRepo interface {
	GetDestination(ctx context.Context, id int64) (domain.Destination, error)
	GetDestinations(ctx context.Context) ([]domain.Destination, error)
	CreateDestination(ctx context.Context, in domain.NewDestination) (domain.Destination, error)
	UpdateDestination(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error)
	DeleteDestination(ctx context.Context, id int64) (bool, error)
}

type TripRepo interface {
	GetTrip(ctx context.Context, id int64) (domain.Trip, error)
	// GetTrips returns the trips owned by userID in creation order.
	GetTrips(ctx context.Context, userID int64) ([]domain.Trip, error)
	CreateTrip(ctx context.Context, in domain.NewTrip) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id int64) (bool, error)
}

type ItineraryRepo interface {
	GetItinerary(ctx context.Context, id int64) (domain.Itinerary, error)
	GetItineraries(ctx context.Context, tripID int64) ([]domain.Itinerary, error)
	// CreateItinerary returns domain.ErrConflict when the trip already has
	// an itinerary for that day.
	CreateItinerary(ctx context.Context, in domain.NewItinerary) (domain.Itinerary, error)
	UpdateItinerary(ctx context.Context, id int64, p domain.ItineraryPatch) (domain.Itinerary, error)
	DeleteItinerary(ctx context.Context, id int64) (bool, error)
}

type PhotoRepo interface {
	GetPhoto(ctx context.Context, id int64) (domain.Photo, error)
	GetPhotos(ctx context.Context, userID int64) ([]domain.Photo, error)
	GetTripPhotos(ctx context.Context, tripID int64) ([]domain.Photo, error)
	CreatePhoto(ctx context.Context, in domain.NewPhoto) (domain.Photo, error)
	UpdatePhoto(ctx context.Context, id int64, p domain.PhotoPatch) (domain.Photo, error)
	DeletePhoto(ctx context.Context, id int64) (bool, error)
}

type NotificationRepo interface {
	GetNotification(ctx context.Context, id int64) (domain.Notification, error)
	// GetNotifications returns the user's notifications newest first.
	GetNotifications(ctx context.Context, userID int64) ([]domain.Notification, error)
	CreateNotification(ctx context.Context, in domain.NewNotification) (domain.Notification, error)
	MarkNotificationAsRead(ctx context.Context, id int64) (domain.Notification, error)
}

type HotelRepo interface {
	GetHotel(ctx context.Context, id int64) (domain.Hotel, error)
	GetHotels(ctx context.Context, destinationID int64) ([]domain.Hotel, error)
	CreateHotel(ctx context.Context, in domain.NewHotel) (domain.Hotel, error)
	UpdateHotel(ctx context.Context, id int64, p domain.HotelPatch) (domain.Hotel, error)
	DeleteHotel(ctx context.Context, id int64) (bool, error)
}

type PlaceRepo interface {
	GetPlace(ctx context.Context, id int64) (domain.Place, error)
	GetPlaces(ctx context.Context, destinationID int64) ([]domain.Place, error)
	CreatePlace(ctx context.Context, in domain.NewPlace) (domain.Place, error)
	UpdatePlace(ctx context.Context, id int64, p domain.PlacePatch) (domain.Place, error)
	DeletePlace(ctx context.Context, id int64) (bool, error)
}

// ReviewFilter selects reviews by subject. A nil field does not constrain.
type ReviewFilter struct {
	HotelID *int64
	PlaceID *int64
}

type ReviewRepo interface {
	GetReview(ctx context.Context, id int64) (domain.Review, error)
	GetReviews(ctx context.Context, f ReviewFilter) ([]domain.Review, error)
	CreateReview(ctx context.Context, in domain.NewReview) (domain.Review, error)
	UpdateReview(ctx context.Context, id int64, p domain.ReviewPatch) (domain.Review, error)
	DeleteReview(ctx context.Context, id int64) (bool, error)
}

type BudgetRepo interface {
	GetBudget(ctx context.Context, id int64) (domain.Budget, error)
	// GetBudgetByTrip returns the first budget recorded for the trip.
	GetBudgetByTrip(ctx context.Context, tripID int64) (domain.Budget, error)
	CreateBudget(ctx context.Context, in domain.NewBudget) (domain.Budget, error)
	UpdateBudget(ctx context.Context, id int64, p domain.BudgetPatch) (domain.Budget, error)
	DeleteBudget(ctx context.Context, id int64) (bool, error)
}

type ExpenseRepo interface {
	GetExpense(ctx context.Context, id int64) (domain.Expense, error)
	GetExpenses(ctx context.Context, tripID int64) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, in domain.NewExpense) (domain.Expense, error)
	UpdateExpense(ctx context.Context, id int64, p domain.ExpensePatch) (domain.Expense, error)
	DeleteExpense(ctx context.Context, id int64) (bool, error)
}

type CurrencyRateRepo interface {
	GetCurrencyRate(ctx context.Context, base, target string) (domain.CurrencyRate, error)
	GetCurrencyRates(ctx context.Context) ([]domain.CurrencyRate, error)
	// CreateOrUpdateCurrencyRate upserts by the (base, target) pair.
	CreateOrUpdateCurrencyRate(ctx context.Context, in domain.NewCurrencyRate) (domain.CurrencyRate, error)
}

// Storage is the full repository interface every backend implements.
type Storage interface {
	UserRepo
	DestinationRepo
	TripRepo
	ItineraryRepo
	PhotoRepo
	NotificationRepo
	HotelRepo
	PlaceRepo
	ReviewRepo
	BudgetRepo
	ExpenseRepo
	CurrencyRateRepo
}

// Clock abstracts time retrieval so server-stamped timestamps are
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the current UTC time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
