package repo

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// table holds one entity type. Rows are kept as records and decoded on
// every read, so callers never share maps or slices with the stored row.
// Ids start at 1 and are handed out in strictly increasing order; a deleted
// id is never reused.
type table[T any] struct {
	nextID int64
	rows   map[int64]record
}

func newTable[T any]() *table[T] {
	return &table[T]{nextID: 1, rows: make(map[int64]record)}
}

// store normalises v to its record form and saves it under id.
func (t *table[T]) store(id int64, v T) error {
	rec, err := toRecord(v)
	if err != nil {
		return err
	}
	t.rows[id] = rec
	return nil
}

func (t *table[T]) insert(rec record) (T, error) {
	rec["id"] = t.nextID
	v, err := fromRecord[T](rec)
	if err != nil {
		return v, err
	}
	if err := t.store(t.nextID, v); err != nil {
		return v, err
	}
	t.nextID++
	return v, nil
}

func (t *table[T]) get(id int64) (T, error) {
	rec, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return fromRecord[T](rec)
}

// find returns the first row in id order that satisfies keep.
func (t *table[T]) find(keep func(T) bool) (T, error) {
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		v, err := fromRecord[T](t.rows[id])
		if err != nil {
			return v, err
		}
		if keep(v) {
			return v, nil
		}
	}
	var zero T
	return zero, domain.ErrNotFound
}

// filter returns the rows satisfying keep in id (insertion) order.
// The result is never nil.
func (t *table[T]) filter(keep func(T) bool) ([]T, error) {
	out := []T{}
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		v, err := fromRecord[T](t.rows[id])
		if err != nil {
			return nil, err
		}
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// update shallow-merges the supplied fields of patch over the stored row.
// A field supplied as null clears the stored value.
func (t *table[T]) update(id int64, patch any, stamps record) (T, error) {
	cur, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	supplied, err := patchRecord(patch)
	if err != nil {
		var zero T
		return zero, err
	}
	base := maps.Clone(cur)
	maps.Copy(base, supplied)
	maps.Copy(base, stamps)
	next, err := fromRecord[T](base)
	if err != nil {
		return next, err
	}
	if err := t.store(id, next); err != nil {
		return next, err
	}
	return next, nil
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func all[T any](T) bool { return true }

// MemStore is a process-lifetime, in-memory implementation of Storage.
// A single RWMutex guards every table so each operation is atomic with
// respect to concurrent requests.
type MemStore struct {
	mu         sync.RWMutex
	clock      Clock
	photoBlobs photoBlobs

	users         *table[domain.User]
	destinations  *table[domain.Destination]
	trips         *table[domain.Trip]
	itineraries   *table[domain.Itinerary]
	photos        *table[domain.Photo]
	notifications *table[domain.Notification]
	hotels        *table[domain.Hotel]
	places        *table[domain.Place]
	reviews       *table[domain.Review]
	budgets       *table[domain.Budget]
	expenses      *table[domain.Expense]
	rates         *table[domain.CurrencyRate]
}

// MemOption configures a MemStore.
type MemOption func(*MemStore)

// WithPhotoBlobs makes DeletePhoto remove the photo's blob from blobs as well.
// bucket is the name stripped from image references to find the blob key.
func WithPhotoBlobs(blobs BlobRemover, bucket string, log *slog.Logger) MemOption {
	return func(s *MemStore) {
		s.photoBlobs = photoBlobs{blobs: blobs, bucket: bucket, log: log}
	}
}

// NewMemStore constructs an empty MemStore and loads catalog into it.
// Pass a nil catalog for a store with no fixture data.
func NewMemStore(clock Clock, catalog *Catalog, opts ...MemOption) (*MemStore, error) {
	s := &MemStore{
		clock:         clock,
		users:         newTable[domain.User](),
		destinations:  newTable[domain.Destination](),
		trips:         newTable[domain.Trip](),
		itineraries:   newTable[domain.Itinerary](),
		photos:        newTable[domain.Photo](),
		notifications: newTable[domain.Notification](),
		hotels:        newTable[domain.Hotel](),
		places:        newTable[domain.Place](),
		reviews:       newTable[domain.Review](),
		budgets:       newTable[domain.Budget](),
		expenses:      newTable[domain.Expense](),
		rates:         newTable[domain.CurrencyRate](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if catalog != nil {
		if err := catalog.Load(context.Background(), s); err != nil {
			return nil, fmt.Errorf("repo.NewMemStore: seed: %w", err)
		}
	}
	return s, nil
}

// created returns the stamps for a newly created record.
func (s *MemStore) created(fields ...string) record {
	now := s.clock.Now()
	rec := record{}
	for _, f := range fields {
		rec[f] = now
	}
	return rec
}

// memCreate builds and inserts a record under the write lock.
func memCreate[T any](s *MemStore, t *table[T], in any, defaults, stamps record) (T, error) {
	rec, err := newRecord(in, defaults, stamps)
	if err != nil {
		var zero T
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.insert(rec)
}

func memGet[T any](s *MemStore, t *table[T], id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.get(id)
}

func memFilter[T any](s *MemStore, t *table[T], keep func(T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.filter(keep)
}

func memUpdate[T any](s *MemStore, t *table[T], id int64, patch any, stamps record) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.update(id, patch, stamps)
}

func memDelete[T any](s *MemStore, t *table[T], id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.remove(id)
}

// compile-time check: MemStore must satisfy Storage.
var _ Storage = (*MemStore)(nil)
