package repo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// --- users -------------------------------------------------------------------

func (s *MemStore) GetUser(_ context.Context, id int64) (domain.User, error) {
	return memGet(s, s.users, id)
}

func (s *MemStore) GetUserByUID(_ context.Context, uid string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.find(func(u domain.User) bool { return u.UID == uid })
}

func (s *MemStore) CreateUser(_ context.Context, in domain.NewUser) (domain.User, error) {
	rec, err := newRecord(in, nil, s.created("createdAt"))
	if err != nil {
		return domain.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.users.find(func(u domain.User) bool { return u.UID == in.UID }); err == nil {
		return domain.User{}, fmt.Errorf("%w: uid %q already registered", domain.ErrConflict, in.UID)
	}
	return s.users.insert(rec)
}

func (s *MemStore) UpdateUser(_ context.Context, id int64, p domain.UserPatch) (domain.User, error) {
	return memUpdate(s, s.users, id, p, nil)
}

// --- destinations ------------------------------------------------------------

func (s *MemStore) GetDestination(_ context.Context, id int64) (domain.Destination, error) {
	return memGet(s, s.destinations, id)
}

func (s *MemStore) GetDestinations(_ context.Context) ([]domain.Destination, error) {
	return memFilter(s, s.destinations, all[domain.Destination])
}

func (s *MemStore) CreateDestination(_ context.Context, in domain.NewDestination) (domain.Destination, error) {
	return memCreate(s, s.destinations, in, nil, nil)
}

func (s *MemStore) UpdateDestination(_ context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error) {
	return memUpdate(s, s.destinations, id, p, nil)
}

func (s *MemStore) DeleteDestination(_ context.Context, id int64) (bool, error) {
	return memDelete(s, s.destinations, id), nil
}

// --- trips -------------------------------------------------------------------

func (s *MemStore) GetTrip(_ context.Context, id int64) (domain.Trip, error) {
	return memGet(s, s.trips, id)
}

func (s *MemStore) GetTrips(_ context.Context, userID int64) ([]domain.Trip, error) {
	return memFilter(s, s.trips, func(t domain.Trip) bool { return t.UserID == userID })
}

func (s *MemStore) CreateTrip(_ context.Context, in domain.NewTrip) (domain.Trip, error) {
	return memCreate(s, s.trips, in, nil, s.created("createdAt"))
}

func (s *MemStore) UpdateTrip(_ context.Context, id int64, p domain.TripPatch) (domain.Trip, error) {
	return memUpdate(s, s.trips, id, p, nil)
}

// DeleteTrip removes only the trip; itineraries, photos and budgets that
// reference it are left in place.
func (s *MemStore) DeleteTrip(_ context.Context, id int64) (bool, error) {
	return memDelete(s, s.trips, id), nil
}

// --- itineraries -------------------------------------------------------------

func (s *MemStore) GetItinerary(_ context.Context, id int64) (domain.Itinerary, error) {
	return memGet(s, s.itineraries, id)
}

func (s *MemStore) GetItineraries(_ context.Context, tripID int64) ([]domain.Itinerary, error) {
	return memFilter(s, s.itineraries, func(i domain.Itinerary) bool { return i.TripID == tripID })
}

func (s *MemStore) CreateItinerary(_ context.Context, in domain.NewItinerary) (domain.Itinerary, error) {
	rec, err := newRecord(in, itineraryDefaults, nil)
	if err != nil {
		return domain.Itinerary{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dayTaken(in.TripID, in.Day, 0); err != nil {
		return domain.Itinerary{}, err
	}
	return s.itineraries.insert(rec)
}

func (s *MemStore) UpdateItinerary(_ context.Context, id int64, p domain.ItineraryPatch) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Day != nil {
		cur, err := s.itineraries.get(id)
		if err != nil {
			return domain.Itinerary{}, err
		}
		if err := s.dayTaken(cur.TripID, *p.Day, id); err != nil {
			return domain.Itinerary{}, err
		}
	}
	return s.itineraries.update(id, p, nil)
}

func (s *MemStore) DeleteItinerary(_ context.Context, id int64) (bool, error) {
	return memDelete(s, s.itineraries, id), nil
}

// dayTaken reports ErrConflict if another itinerary (not self) already covers
// day on tripID. Callers must hold s.mu.
func (s *MemStore) dayTaken(tripID int64, day int, self int64) error {
	_, err := s.itineraries.find(func(i domain.Itinerary) bool {
		return i.TripID == tripID && i.Day == day && i.ID != self
	})
	if err == nil {
		return fmt.Errorf("%w: trip %d already has an itinerary for day %d", domain.ErrConflict, tripID, day)
	}
	return nil
}

// --- photos ------------------------------------------------------------------

func (s *MemStore) GetPhoto(_ context.Context, id int64) (domain.Photo, error) {
	return memGet(s, s.photos, id)
}

func (s *MemStore) GetPhotos(_ context.Context, userID int64) ([]domain.Photo, error) {
	return memFilter(s, s.photos, func(p domain.Photo) bool { return p.UserID == userID })
}

func (s *MemStore) GetTripPhotos(_ context.Context, tripID int64) ([]domain.Photo, error) {
	return memFilter(s, s.photos, func(p domain.Photo) bool {
		return p.TripID != nil && *p.TripID == tripID
	})
}

func (s *MemStore) CreatePhoto(_ context.Context, in domain.NewPhoto) (domain.Photo, error) {
	return memCreate(s, s.photos, in, nil, s.created("createdAt"))
}

func (s *MemStore) UpdatePhoto(_ context.Context, id int64, p domain.PhotoPatch) (domain.Photo, error) {
	return memUpdate(s, s.photos, id, p, nil)
}

// DeletePhoto removes the photo's metadata, then its blob. Blob removal is
// best-effort: a failure is logged and the delete still succeeds.
func (s *MemStore) DeletePhoto(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	photo, err := s.photos.get(id)
	if err == nil {
		s.photos.remove(id)
	}
	s.mu.Unlock()
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.photoBlobs.remove(ctx, photo)
	return true, nil
}

// --- notifications -----------------------------------------------------------

func (s *MemStore) GetNotification(_ context.Context, id int64) (domain.Notification, error) {
	return memGet(s, s.notifications, id)
}

func (s *MemStore) GetNotifications(_ context.Context, userID int64) ([]domain.Notification, error) {
	out, err := memFilter(s, s.notifications, func(n domain.Notification) bool { return n.UserID == userID })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b domain.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *MemStore) CreateNotification(_ context.Context, in domain.NewNotification) (domain.Notification, error) {
	return memCreate(s, s.notifications, in, notificationDefaults, s.created("createdAt"))
}

func (s *MemStore) MarkNotificationAsRead(_ context.Context, id int64) (domain.Notification, error) {
	return memUpdate(s, s.notifications, id, record{"read": true}, nil)
}

// --- hotels & places ---------------------------------------------------------

func (s *MemStore) GetHotel(_ context.Context, id int64) (domain.Hotel, error) {
	return memGet(s, s.hotels, id)
}

func (s *MemStore) GetHotels(_ context.Context, destinationID int64) ([]domain.Hotel, error) {
	return memFilter(s, s.hotels, func(h domain.Hotel) bool { return h.DestinationID == destinationID })
}

func (s *MemStore) CreateHotel(_ context.Context, in domain.NewHotel) (domain.Hotel, error) {
	return memCreate(s, s.hotels, in, hotelDefaults, nil)
}

func (s *MemStore) UpdateHotel(_ context.Context, id int64, p domain.HotelPatch) (domain.Hotel, error) {
	return memUpdate(s, s.hotels, id, p, nil)
}

func (s *MemStore) DeleteHotel(_ context.Context, id int64) (bool, error) {
	return memDelete(s, s.hotels, id), nil
}

func (s *MemStore) GetPlace(_ context.Context, id int64) (domain.Place, error) {
	return memGet(s, s.places, id)
}

func (s *MemStore) GetPlaces(_ context.Context, destinationID int64) ([]domain.Place, error) {
	return memFilter(s, s.places, func(p domain.Place) bool { return p.DestinationID == destinationID })
}

func (s *MemStore) CreatePlace(_ context.Context, in domain.NewPlace) (domain.Place, error) {
	return memCreate(s, s.places, in, placeDefaults, nil)
}

func (s *MemStore) UpdatePlace(_ context.Context, id int64, p domain.PlacePatch) (domain.Place, error) {
	return memUpdate(s, s.places, id, p, nil)
}

func (s *MemStore) DeletePlace(_ context.Context, id int64) (bool, error) {
	return memDelete(s, s.places, id), nil
}

// --- reviews -----------------------------------------------------------------

func (s *MemStore) GetReview(_ context.Context, id int64) (domain.Review, error) {
	return memGet(s, s.reviews, id)
}

func (s *MemStore) GetReviews(_ context.Context, f ReviewFilter) ([]domain.Review, error) {
	return memFilter(s, s.reviews, func(r domain.Review) bool {
		return sameID(f.HotelID, r.HotelID) && sameID(f.PlaceID, r.PlaceID)
	})
}

// sameID reports whether got satisfies the optional filter want.
func sameID(want, got *int64) bool {
	if want == nil {
		return true
	}
	return got != nil && *got == *want
}

func (s *MemStore) CreateReview(_ context.Context, in domain.NewReview) (domain.Review, error) {
	return memCreate(s, s.reviews, in, reviewDefaults, s.created("createdAt"))
}

func (s *MemStore) UpdateReview(_ context.Context, id int64, p domain.ReviewPatch) (domain.Review, error) {
	return memUpdate(s, s.reviews, id, p, nil)
}

func (s *MemStore) DeleteReview(_ context.Context, id int64) (bool, error) {
	return memDelete(s, s.reviews, id), nil
}

// --- budgets & expenses ------------------------------------------------------

func (s *MemStore) GetBudget(_ context.Context, id int64) (domain.Budget, error) {
	return memGet(s, s.budgets, id)
}

func (s *MemStore) GetBudgetByTrip(_ context.Context, tripID int64) (domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgets.find(func(b domain.Budget) bool { return b.TripID == tripID })
}

func (s *MemStore) CreateBudget(_ context.Context, in domain.NewBudget) (domain.Budget, error) {
	return memCreate(s, s.budgets, in, budgetDefaults, s.created("createdAt", "updatedAt"))
}

func (s *MemStore) UpdateBudget(_ context.Context, id int64, p domain.BudgetPatch) (domain.Budget, error) {
	return memUpdate(s, s.budgets, id, p, s.created("updatedAt"))
}

func (s *MemStore) DeleteBudget(_ context.Context, id int64) (bool, error) {
	return memDelete(s, s.budgets, id), nil
}

func (s *MemStore) GetExpense(_ context.Context, id int64) (domain.Expense, error) {
	return memGet(s, s.expenses, id)
}

func (s *MemStore) GetExpenses(_ context.Context, tripID int64) ([]domain.Expense, error) {
	return memFilter(s, s.expenses, func(e domain.Expense) bool { return e.TripID == tripID })
}

func (s *MemStore) CreateExpense(_ context.Context, in domain.NewExpense) (domain.Expense, error) {
	return memCreate(s, s.expenses, in, expenseDefaults, s.created("createdAt", "updatedAt"))
}

func (s *MemStore) UpdateExpense(_ context.Context, id int64, p domain.ExpensePatch) (domain.Expense, error) {
	return memUpdate(s, s.expenses, id, p, s.created("updatedAt"))
}

func (s *MemStore) DeleteExpense(_ context.Context, id int64) (bool, error) {
	return memDelete(s, s.expenses, id), nil
}

// --- currency rates ----------------------------------------------------------

func (s *MemStore) GetCurrencyRate(_ context.Context, base, target string) (domain.CurrencyRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rates.find(func(r domain.CurrencyRate) bool {
		return r.BaseCurrency == base && r.TargetCurrency == target
	})
}

func (s *MemStore) GetCurrencyRates(_ context.Context) ([]domain.CurrencyRate, error) {
	return memFilter(s, s.rates, all[domain.CurrencyRate])
}

func (s *MemStore) CreateOrUpdateCurrencyRate(_ context.Context, in domain.NewCurrencyRate) (domain.CurrencyRate, error) {
	stamps := s.created("lastUpdated")
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.rates.find(func(r domain.CurrencyRate) bool {
		return r.BaseCurrency == in.BaseCurrency && r.TargetCurrency == in.TargetCurrency
	})
	if err == nil {
		return s.rates.update(existing.ID, record{"rate": in.Rate}, stamps)
	}
	rec, err := newRecord(in, nil, stamps)
	if err != nil {
		return domain.CurrencyRate{}, err
	}
	return s.rates.insert(rec)
}
