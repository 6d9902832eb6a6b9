package repo_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/backend/internal/domain"
	"github.com/pkordes/wayfarer/backend/internal/repo"
	"github.com/pkordes/wayfarer/backend/testutil"
)

// fakeBlobs records deleted keys and fails when err is set.
type fakeBlobs struct {
	deleted []string
	err     error
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

// newPgStore returns a PgStore inside a transaction that is rolled back when
// the test ends.
func newPgStore(t *testing.T, blobs repo.BlobRemover, logs *bytes.Buffer) (*repo.PgStore, *testutil.StubClock) {
	t.Helper()
	tx := testutil.NewTx(t)
	clock := testutil.FixedClock()
	if logs == nil {
		logs = &bytes.Buffer{}
	}
	log := slog.New(slog.NewJSONHandler(logs, nil))
	return repo.NewPgStore(tx, blobs, "photos", clock, log), clock
}

// seedTrip creates the user and destination a trip needs and returns the trip.
func seedTrip(t *testing.T, s *repo.PgStore) domain.Trip {
	t.Helper()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, domain.NewUser{UID: "auth|" + t.Name()})
	require.NoError(t, err)
	d, err := s.CreateDestination(ctx, domain.NewDestination{Name: "Paris", Country: "France"})
	require.NoError(t, err)
	trip, err := s.CreateTrip(ctx, domain.NewTrip{
		UserID: u.ID, DestinationID: d.ID, Title: "Paris",
		StartDate: day(2025, 6, 15), EndDate: day(2025, 6, 25),
	})
	require.NoError(t, err)
	return trip
}

func TestPgStore_TripLifecycle(t *testing.T) {
	s, clock := newPgStore(t, nil, nil)
	ctx := context.Background()

	trip := seedTrip(t, s)
	assert.Positive(t, trip.ID)
	assert.Equal(t, "Paris", trip.Title)
	assert.Nil(t, trip.Description)
	assert.Nil(t, trip.IsFavorite)
	assert.True(t, day(2025, 6, 15).Equal(trip.StartDate))
	assert.True(t, clock.Now().Equal(trip.CreatedAt))

	fav, err := s.UpdateTrip(ctx, trip.ID, domain.TripPatch{IsFavorite: nullable.NewNullableWithValue(true)})
	require.NoError(t, err)
	require.NotNil(t, fav.IsFavorite)
	assert.True(t, *fav.IsFavorite)
	assert.Equal(t, trip.Title, fav.Title)
	assert.True(t, trip.EndDate.Equal(fav.EndDate))

	cleared, err := s.UpdateTrip(ctx, trip.ID, domain.TripPatch{IsFavorite: nullable.NewNullNullable[bool]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.IsFavorite, "null writes NULL")
	assert.Equal(t, trip.Title, cleared.Title)

	trips, err := s.GetTrips(ctx, trip.UserID)
	require.NoError(t, err)
	require.Len(t, trips, 1)

	ok, err := s.DeleteTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.GetTrip(ctx, trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPgStore_UnknownIDs(t *testing.T) {
	s, _ := newPgStore(t, nil, nil)
	ctx := context.Background()

	_, err := s.GetUser(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.UpdateDestination(ctx, 999999, domain.DestinationPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := s.DeleteTrip(ctx, 999999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPgStore_EmptyPatchReturnsCurrentRow(t *testing.T) {
	s, _ := newPgStore(t, nil, nil)
	ctx := context.Background()

	d, err := s.CreateDestination(ctx, domain.NewDestination{Name: "Oslo", Country: "Norway", City: ptr("Oslo")})
	require.NoError(t, err)

	got, err := s.UpdateDestination(ctx, d.ID, domain.DestinationPatch{})
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestPgStore_UserCasingOverride(t *testing.T) {
	s, _ := newPgStore(t, nil, nil)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, domain.NewUser{
		UID: "auth|casing", DisplayName: ptr("Ada"), PhotoURL: ptr("https://img.example.com/ada.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, u.PhotoURL)
	assert.Equal(t, "https://img.example.com/ada.png", *u.PhotoURL)

	got, err := s.GetUserByUID(ctx, "auth|casing")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = s.CreateUser(ctx, domain.NewUser{UID: "auth|casing"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr), "backend error kept in the chain")
}

func TestPgStore_ItineraryDefaultsAndConflict(t *testing.T) {
	s, _ := newPgStore(t, nil, nil)
	ctx := context.Background()
	trip := seedTrip(t, s)

	i, err := s.CreateItinerary(ctx, domain.NewItinerary{TripID: trip.ID, Day: 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.Activity{}, i.Activities)

	updated, err := s.UpdateItinerary(ctx, i.ID, domain.ItineraryPatch{
		Activities: &[]domain.Activity{{Time: "09:00", Title: "Louvre"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Activity{{Time: "09:00", Title: "Louvre"}}, updated.Activities)

	_, err = s.CreateItinerary(ctx, domain.NewItinerary{TripID: trip.ID, Day: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPgStore_DeletePhotoRemovesBlob(t *testing.T) {
	blobs := &fakeBlobs{}
	s, _ := newPgStore(t, blobs, nil)
	ctx := context.Background()
	trip := seedTrip(t, s)

	p, err := s.CreatePhoto(ctx, domain.NewPhoto{
		UserID:   trip.UserID,
		TripID:   ptr(trip.ID),
		ImageURL: "https://x.supabase.co/storage/v1/object/public/photos/trips/1/a.jpg",
	})
	require.NoError(t, err)

	byTrip, err := s.GetTripPhotos(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, byTrip, 1)

	ok, err := s.DeletePhoto(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"trips/1/a.jpg"}, blobs.deleted)

	ok, err = s.DeletePhoto(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, blobs.deleted, 1, "no blob delete for a missing photo")
}

func TestPgStore_DeletePhotoBlobFailureIsLogged(t *testing.T) {
	blobs := &fakeBlobs{err: errors.New("storage unavailable")}
	var logs bytes.Buffer
	s, _ := newPgStore(t, blobs, &logs)
	ctx := context.Background()
	trip := seedTrip(t, s)

	p, err := s.CreatePhoto(ctx, domain.NewPhoto{UserID: trip.UserID, ImageURL: "/photos/b.jpg"})
	require.NoError(t, err)

	ok, err := s.DeletePhoto(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok, "metadata delete still succeeds")
	assert.Contains(t, logs.String(), "photo blob cleanup failed")

	_, err = s.GetPhoto(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPgStore_NotificationsNewestFirst(t *testing.T) {
	s, clock := newPgStore(t, nil, nil)
	ctx := context.Background()

	for _, msg := range []string{"t1", "t2", "t3"} {
		_, err := s.CreateNotification(ctx, domain.NewNotification{UserID: 4, Message: msg})
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	got, err := s.GetNotifications(ctx, 4)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "t3", got[0].Message)
	assert.Equal(t, "t1", got[2].Message)
	assert.False(t, got[0].Read)

	read, err := s.MarkNotificationAsRead(ctx, got[0].ID)
	require.NoError(t, err)
	assert.True(t, read.Read)
}

func TestPgStore_MoneyAndCurrencyDefaults(t *testing.T) {
	s, clock := newPgStore(t, nil, nil)
	ctx := context.Background()

	b, err := s.CreateBudget(ctx, domain.NewBudget{
		TripID:      1,
		TotalAmount: decimal.RequireFromString("1200.50"),
		Categories:  map[string]decimal.Decimal{"food": decimal.NewFromInt(300)},
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", b.Currency)
	assert.True(t, decimal.RequireFromString("1200.5").Equal(b.TotalAmount))
	assert.True(t, decimal.NewFromInt(300).Equal(b.Categories["food"]))

	clock.Advance(time.Hour)
	updated, err := s.UpdateBudget(ctx, b.ID, domain.BudgetPatch{Currency: ptr("EUR")})
	require.NoError(t, err)
	assert.Equal(t, "EUR", updated.Currency)
	assert.True(t, clock.Now().Equal(updated.UpdatedAt))

	e, err := s.CreateExpense(ctx, domain.NewExpense{
		TripID: 1, BudgetID: ptr(b.ID), Amount: decimal.RequireFromString("9.99"), Category: "food",
		Date: ptr(day(2025, 6, 16)),
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", e.Currency)
	require.NotNil(t, e.Date)
	assert.True(t, day(2025, 6, 16).Equal(*e.Date))
}

func TestPgStore_ReviewFilter(t *testing.T) {
	s, _ := newPgStore(t, nil, nil)
	ctx := context.Background()

	h, err := s.CreateHotel(ctx, domain.NewHotel{DestinationID: 1, Name: "H", PricePerNight: ptr(199.5)})
	require.NoError(t, err)
	assert.Equal(t, []string{}, h.Amenities)
	require.NotNil(t, h.PricePerNight)
	assert.InDelta(t, 199.5, *h.PricePerNight, 1e-9)

	p, err := s.CreatePlace(ctx, domain.NewPlace{DestinationID: 1, Name: "P"})
	require.NoError(t, err)

	_, err = s.CreateReview(ctx, domain.NewReview{HotelID: ptr(h.ID), Rating: 4})
	require.NoError(t, err)
	_, err = s.CreateReview(ctx, domain.NewReview{PlaceID: ptr(p.ID), Rating: 2})
	require.NoError(t, err)

	got, err := s.GetReviews(ctx, repo.ReviewFilter{HotelID: ptr(h.ID)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].PlaceID)
	assert.False(t, got[0].Verified)
}

func TestPgStore_CurrencyRateUpsert(t *testing.T) {
	s, clock := newPgStore(t, nil, nil)
	ctx := context.Background()

	first, err := s.CreateOrUpdateCurrencyRate(ctx, domain.NewCurrencyRate{
		BaseCurrency: "USD", TargetCurrency: "JPY", Rate: decimal.RequireFromString("151.2"),
	})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	second, err := s.CreateOrUpdateCurrencyRate(ctx, domain.NewCurrencyRate{
		BaseCurrency: "USD", TargetCurrency: "JPY", Rate: decimal.RequireFromString("150.8"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, decimal.RequireFromString("150.8").Equal(second.Rate))

	got, err := s.GetCurrencyRate(ctx, "USD", "JPY")
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(got.LastUpdated))
}
