package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// Table names on the remote backend.
const (
	usersTable         = "users"
	destinationsTable  = "destinations"
	tripsTable         = "trips"
	itinerariesTable   = "itineraries"
	photosTable        = "photos"
	notificationsTable = "notifications"
	hotelsTable        = "hotels"
	placesTable        = "places"
	reviewsTable       = "reviews"
	budgetsTable       = "budgets"
	expensesTable      = "expenses"
	ratesTable         = "currency_rates"
)

// wrap prefixes err with the operation name, leaving v untouched.
func wrap[T any](op string, v T, err error) (T, error) {
	if err != nil {
		return v, fmt.Errorf("repo.PgStore.%s: %w", op, err)
	}
	return v, nil
}

func pgCreate[T any](ctx context.Context, s *PgStore, op, table string, in any, defaults, stamps record) (T, error) {
	rec, err := newRecord(in, defaults, stamps)
	if err != nil {
		var zero T
		return wrap(op, zero, err)
	}
	v, err := insertRow[T](ctx, s.db, table, rec)
	return wrap(op, v, err)
}

func pgGet[T any](ctx context.Context, s *PgStore, op, table string, id int64) (T, error) {
	v, err := selectOne[T](ctx, s.db, table, record{"id": id})
	return wrap(op, v, err)
}

func pgList[T any](ctx context.Context, s *PgStore, op, table string, filter record) ([]T, error) {
	v, err := selectAll[T](ctx, s.db, table, filter, "id")
	return wrap(op, v, err)
}

func pgUpdate[T any](ctx context.Context, s *PgStore, op, table string, id int64, patch any, stamps record) (T, error) {
	v, err := updateRow[T](ctx, s.db, table, id, patch, stamps)
	return wrap(op, v, err)
}

func pgDelete(ctx context.Context, s *PgStore, op, table string, id int64) (bool, error) {
	ok, err := deleteRow(ctx, s.db, table, id)
	return wrap(op, ok, err)
}

// --- users -------------------------------------------------------------------

func (s *PgStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return pgGet[domain.User](ctx, s, "GetUser", usersTable, id)
}

func (s *PgStore) GetUserByUID(ctx context.Context, uid string) (domain.User, error) {
	v, err := selectOne[domain.User](ctx, s.db, usersTable, record{"uid": uid})
	return wrap("GetUserByUID", v, err)
}

func (s *PgStore) CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error) {
	return pgCreate[domain.User](ctx, s, "CreateUser", usersTable, in, nil, s.stamps("createdAt"))
}

func (s *PgStore) UpdateUser(ctx context.Context, id int64, p domain.UserPatch) (domain.User, error) {
	return pgUpdate[domain.User](ctx, s, "UpdateUser", usersTable, id, p, nil)
}

// --- destinations ------------------------------------------------------------

func (s *PgStore) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return pgGet[domain.Destination](ctx, s, "GetDestination", destinationsTable, id)
}

func (s *PgStore) GetDestinations(ctx context.Context) ([]domain.Destination, error) {
	return pgList[domain.Destination](ctx, s, "GetDestinations", destinationsTable, nil)
}

func (s *PgStore) CreateDestination(ctx context.Context, in domain.NewDestination) (domain.Destination, error) {
	return pgCreate[domain.Destination](ctx, s, "CreateDestination", destinationsTable, in, nil, nil)
}

func (s *PgStore) UpdateDestination(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error) {
	return pgUpdate[domain.Destination](ctx, s, "UpdateDestination", destinationsTable, id, p, nil)
}

func (s *PgStore) DeleteDestination(ctx context.Context, id int64) (bool, error) {
	return pgDelete(ctx, s, "DeleteDestination", destinationsTable, id)
}

// --- trips -------------------------------------------------------------------

func (s *PgStore) GetTrip(ctx context.Context, id int64) (domain.Trip, error) {
	return pgGet[domain.Trip](ctx, s, "GetTrip", tripsTable, id)
}

func (s *PgStore) GetTrips(ctx context.Context, userID int64) ([]domain.Trip, error) {
	return pgList[domain.Trip](ctx, s, "GetTrips", tripsTable, record{"userId": userID})
}

func (s *PgStore) CreateTrip(ctx context.Context, in domain.NewTrip) (domain.Trip, error) {
	return pgCreate[domain.Trip](ctx, s, "CreateTrip", tripsTable, in, nil, s.stamps("createdAt"))
}

func (s *PgStore) UpdateTrip(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error) {
	return pgUpdate[domain.Trip](ctx, s, "UpdateTrip", tripsTable, id, p, nil)
}

func (s *PgStore) DeleteTrip(ctx context.Context, id int64) (bool, error) {
	return pgDelete(ctx, s, "DeleteTrip", tripsTable, id)
}

// --- itineraries -------------------------------------------------------------

func (s *PgStore) GetItinerary(ctx context.Context, id int64) (domain.Itinerary, error) {
	return pgGet[domain.Itinerary](ctx, s, "GetItinerary", itinerariesTable, id)
}

func (s *PgStore) GetItineraries(ctx context.Context, tripID int64) ([]domain.Itinerary, error) {
	return pgList[domain.Itinerary](ctx, s, "GetItineraries", itinerariesTable, record{"tripId": tripID})
}

func (s *PgStore) CreateItinerary(ctx context.Context, in domain.NewItinerary) (domain.Itinerary, error) {
	return pgCreate[domain.Itinerary](ctx, s, "CreateItinerary", itinerariesTable, in, itineraryDefaults, nil)
}

func (s *PgStore) UpdateItinerary(ctx context.Context, id int64, p domain.ItineraryPatch) (domain.Itinerary, error) {
	return pgUpdate[domain.Itinerary](ctx, s, "UpdateItinerary", itinerariesTable, id, p, nil)
}

func (s *PgStore) DeleteItinerary(ctx context.Context, id int64) (bool, error) {
	return pgDelete(ctx, s, "DeleteItinerary", itinerariesTable, id)
}

// --- photos ------------------------------------------------------------------

func (s *PgStore) GetPhoto(ctx context.Context, id int64) (domain.Photo, error) {
	return pgGet[domain.Photo](ctx, s, "GetPhoto", photosTable, id)
}

func (s *PgStore) GetPhotos(ctx context.Context, userID int64) ([]domain.Photo, error) {
	return pgList[domain.Photo](ctx, s, "GetPhotos", photosTable, record{"userId": userID})
}

func (s *PgStore) GetTripPhotos(ctx context.Context, tripID int64) ([]domain.Photo, error) {
	return pgList[domain.Photo](ctx, s, "GetTripPhotos", photosTable, record{"tripId": tripID})
}

func (s *PgStore) CreatePhoto(ctx context.Context, in domain.NewPhoto) (domain.Photo, error) {
	return pgCreate[domain.Photo](ctx, s, "CreatePhoto", photosTable, in, nil, s.stamps("createdAt"))
}

func (s *PgStore) UpdatePhoto(ctx context.Context, id int64, p domain.PhotoPatch) (domain.Photo, error) {
	return pgUpdate[domain.Photo](ctx, s, "UpdatePhoto", photosTable, id, p, nil)
}

// DeletePhoto removes the photo's blob, then its metadata row. Blob removal
// is best-effort: a failure is logged and the row is deleted regardless.
func (s *PgStore) DeletePhoto(ctx context.Context, id int64) (bool, error) {
	photo, err := selectOne[domain.Photo](ctx, s.db, photosTable, record{"id": id})
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return wrap("DeletePhoto", false, err)
	}
	s.photos.remove(ctx, photo)
	return pgDelete(ctx, s, "DeletePhoto", photosTable, id)
}

// --- notifications -----------------------------------------------------------

func (s *PgStore) GetNotification(ctx context.Context, id int64) (domain.Notification, error) {
	return pgGet[domain.Notification](ctx, s, "GetNotification", notificationsTable, id)
}

func (s *PgStore) GetNotifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	v, err := selectAll[domain.Notification](ctx, s.db, notificationsTable,
		record{"userId": userID}, "created_at DESC, id DESC")
	return wrap("GetNotifications", v, err)
}

func (s *PgStore) CreateNotification(ctx context.Context, in domain.NewNotification) (domain.Notification, error) {
	return pgCreate[domain.Notification](ctx, s, "CreateNotification", notificationsTable,
		in, notificationDefaults, s.stamps("createdAt"))
}

func (s *PgStore) MarkNotificationAsRead(ctx context.Context, id int64) (domain.Notification, error) {
	return pgUpdate[domain.Notification](ctx, s, "MarkNotificationAsRead", notificationsTable,
		id, record{"read": true}, nil)
}

// --- hotels & places ---------------------------------------------------------

func (s *PgStore) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return pgGet[domain.Hotel](ctx, s, "GetHotel", hotelsTable, id)
}

func (s *PgStore) GetHotels(ctx context.Context, destinationID int64) ([]domain.Hotel, error) {
	return pgList[domain.Hotel](ctx, s, "GetHotels", hotelsTable, record{"destinationId": destinationID})
}

func (s *PgStore) CreateHotel(ctx context.Context, in domain.NewHotel) (domain.Hotel, error) {
	return pgCreate[domain.Hotel](ctx, s, "CreateHotel", hotelsTable, in, hotelDefaults, nil)
}

func (s *PgStore) UpdateHotel(ctx context.Context, id int64, p domain.HotelPatch) (domain.Hotel, error) {
	return pgUpdate[domain.Hotel](ctx, s, "UpdateHotel", hotelsTable, id, p, nil)
}

func (s *PgStore) DeleteHotel(ctx context.Context, id int64) (bool, error) {
	return pgDelete(ctx, s, "DeleteHotel", hotelsTable, id)
}

func (s *PgStore) GetPlace(ctx context.Context, id int64) (domain.Place, error) {
	return pgGet[domain.Place](ctx, s, "GetPlace", placesTable, id)
}

func (s *PgStore) GetPlaces(ctx context.Context, destinationID int64) ([]domain.Place, error) {
	return pgList[domain.Place](ctx, s, "GetPlaces", placesTable, record{"destinationId": destinationID})
}

func (s *PgStore) CreatePlace(ctx context.Context, in domain.NewPlace) (domain.Place, error) {
	return pgCreate[domain.Place](ctx, s, "CreatePlace", placesTable, in, placeDefaults, nil)
}

func (s *PgStore) UpdatePlace(ctx context.Context, id int64, p domain.PlacePatch) (domain.Place, error) {
	return pgUpdate[domain.Place](ctx, s, "UpdatePlace", placesTable, id, p, nil)
}

func (s *PgStore) DeletePlace(ctx context.Context, id int64) (bool, error) {
	return pgDelete(ctx, s, "DeletePlace", placesTable, id)
}

// --- reviews -----------------------------------------------------------------

func (s *PgStore) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	return pgGet[domain.Review](ctx, s, "GetReview", reviewsTable, id)
}

func (s *PgStore) GetReviews(ctx context.Context, f ReviewFilter) ([]domain.Review, error) {
	filter := record{}
	if f.HotelID != nil {
		filter["hotelId"] = *f.HotelID
	}
	if f.PlaceID != nil {
		filter["placeId"] = *f.PlaceID
	}
	return pgList[domain.Review](ctx, s, "GetReviews", reviewsTable, filter)
}

func (s *PgStore) CreateReview(ctx context.Context, in domain.NewReview) (domain.Review, error) {
	return pgCreate[domain.Review](ctx, s, "CreateReview", reviewsTable, in, reviewDefaults, s.stamps("createdAt"))
}

func (s *PgStore) UpdateReview(ctx context.Context, id int64, p domain.ReviewPatch) (domain.Review, error) {
	return pgUpdate[domain.Review](ctx, s, "UpdateReview", reviewsTable, id, p, nil)
}

func (s *PgStore) DeleteReview(ctx context.Context, id int64) (bool, error) {
	return pgDelete(ctx, s, "DeleteReview", reviewsTable, id)
}

// --- budgets & expenses ------------------------------------------------------

func (s *PgStore) GetBudget(ctx context.Context, id int64) (domain.Budget, error) {
	return pgGet[domain.Budget](ctx, s, "GetBudget", budgetsTable, id)
}

func (s *PgStore) GetBudgetByTrip(ctx context.Context, tripID int64) (domain.Budget, error) {
	v, err := selectOne[domain.Budget](ctx, s.db, budgetsTable, record{"tripId": tripID})
	return wrap("GetBudgetByTrip", v, err)
}

func (s *PgStore) CreateBudget(ctx context.Context, in domain.NewBudget) (domain.Budget, error) {
	return pgCreate[domain.Budget](ctx, s, "CreateBudget", budgetsTable,
		in, budgetDefaults, s.stamps("createdAt", "updatedAt"))
}

func (s *PgStore) UpdateBudget(ctx context.Context, id int64, p domain.BudgetPatch) (domain.Budget, error) {
	return pgUpdate[domain.Budget](ctx, s, "UpdateBudget", budgetsTable, id, p, s.stamps("updatedAt"))
}

func (s *PgStore) DeleteBudget(ctx context.Context, id int64) (bool, error) {
	return pgDelete(ctx, s, "DeleteBudget", budgetsTable, id)
}

func (s *PgStore) GetExpense(ctx context.Context, id int64) (domain.Expense, error) {
	return pgGet[domain.Expense](ctx, s, "GetExpense", expensesTable, id)
}

func (s *PgStore) GetExpenses(ctx context.Context, tripID int64) ([]domain.Expense, error) {
	return pgList[domain.Expense](ctx, s, "GetExpenses", expensesTable, record{"tripId": tripID})
}

func (s *PgStore) CreateExpense(ctx context.Context, in domain.NewExpense) (domain.Expense, error) {
	return pgCreate[domain.Expense](ctx, s, "CreateExpense", expensesTable,
		in, expenseDefaults, s.stamps("createdAt", "updatedAt"))
}

func (s *PgStore) UpdateExpense(ctx context.Context, id int64, p domain.ExpensePatch) (domain.Expense, error) {
	return pgUpdate[domain.Expense](ctx, s, "UpdateExpense", expensesTable, id, p, s.stamps("updatedAt"))
}

func (s *PgStore) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	return pgDelete(ctx, s, "DeleteExpense", expensesTable, id)
}

// --- currency rates ----------------------------------------------------------

func (s *PgStore) GetCurrencyRate(ctx context.Context, base, target string) (domain.CurrencyRate, error) {
	v, err := selectOne[domain.CurrencyRate](ctx, s.db, ratesTable,
		record{"baseCurrency": base, "targetCurrency": target})
	return wrap("GetCurrencyRate", v, err)
}

func (s *PgStore) GetCurrencyRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	return pgList[domain.CurrencyRate](ctx, s, "GetCurrencyRates", ratesTable, nil)
}

// CreateOrUpdateCurrencyRate upserts on the (base_currency, target_currency)
// unique key, replacing the rate and its timestamp on conflict.
func (s *PgStore) CreateOrUpdateCurrencyRate(ctx context.Context, in domain.NewCurrencyRate) (domain.CurrencyRate, error) {
	const q = `
		INSERT INTO currency_rates (base_currency, target_currency, rate, last_updated)
		VALUES (@base_currency, @target_currency, @rate, @last_updated)
		ON CONFLICT (base_currency, target_currency)
		DO UPDATE SET rate = EXCLUDED.rate, last_updated = EXCLUDED.last_updated
		RETURNING *`

	rec, err := newRecord(in, nil, s.stamps("lastUpdated"))
	if err != nil {
		return wrap("CreateOrUpdateCurrencyRate", domain.CurrencyRate{}, err)
	}
	rows, err := s.db.Query(ctx, q, backendArgs(rec))
	v, err := collectOne[domain.CurrencyRate](rows, err)
	return wrap("CreateOrUpdateCurrencyRate", v, err)
}
