package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/wayfarer/backend/internal/config"
)

// Backend names reported by Router.Backend.
const (
	BackendMemory = "memory"
	BackendRemote = "remote"
)

// Router is the single Storage entry point handed to the HTTP layer. Each
// entity's operations go to exactly one backend, fixed when the Router is
// built:
//
//	users, destinations, trips, itineraries, photos  -> remote if configured, else memory
//	notifications, hotels, places, reviews,
//	budgets, expenses, currency rates                -> memory
type Router struct {
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

	backend string
	pool    *pgxpool.Pool
}

// NewRouter builds the routing table. remote may be nil, in which case every
// entity is served by mem.
func NewRouter(mem Storage, remote Storage) *Router {
	routed, backend := mem, BackendMemory
	if remote != nil {
		routed, backend = remote, BackendRemote
	}
	return &Router{
		UserRepo:        routed,
		DestinationRepo: routed,
		TripRepo:        routed,
		ItineraryRepo:   routed,
		PhotoRepo:       routed,

		NotificationRepo: mem,
		HotelRepo:        mem,
		PlaceRepo:        mem,
		ReviewRepo:       mem,
		BudgetRepo:       mem,
		ExpenseRepo:      mem,
		CurrencyRateRepo: mem,

		backend: backend,
	}
}

// Open builds the process's Router from configuration. The remote backend
// is used only when both the database URL and the service key are set;
// otherwise the missing settings are logged and memory serves everything.
// The returned Router owns the connection pool; call Close on shutdown.
func Open(ctx context.Context, cfg config.Config, blobs BlobRemover, log *slog.Logger) (*Router, error) {
	catalog, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	mem, err := NewMemStore(SystemClock{}, catalog, WithPhotoBlobs(blobs, cfg.StorageBucket, log))
	if err != nil {
		return nil, err
	}

	if missing := cfg.RemoteMissing(); len(missing) > 0 {
		log.Warn("remote backend not configured, using in-memory storage", "missing", missing)
		return NewRouter(mem, nil), nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("repo.Open: parse database url: %w", err)
	}
	poolCfg.ConnConfig.Password = cfg.DatabaseServiceKey

	// NewWithConfig does not open connections; the first query does.
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("repo.Open: create pool: %w", err)
	}

	pg := NewPgStore(pool, blobs, cfg.StorageBucket, SystemClock{}, log)
	r := NewRouter(mem, pg)
	r.pool = pool
	log.Info("remote backend configured", "host", poolCfg.ConnConfig.Host)
	return r, nil
}

// Backend reports which backend serves the routed entities.
func (r *Router) Backend() string { return r.backend }

// Ping verifies the remote backend is reachable. It is a no-op in memory mode.
func (r *Router) Ping(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}
	return r.pool.Ping(ctx)
}

// Close releases the remote connection pool, if any.
func (r *Router) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// compile-time check: Router must satisfy Storage.
var _ Storage = (*Router)(nil)
