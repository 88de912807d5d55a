package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

// storeRegistry implements the StoreRegistry interface.
type storeRegistry struct {
	repo    repository.BusinessRepository
	metrics service.SyncMetrics
	logger  *slog.Logger
	now     func() time.Time

	group singleflight.Group

	mu     sync.Mutex
	stores map[string]*businessStore
	closed bool
}

// NewStoreRegistry is the constructor for storeRegistry. Every bound store is
// closed when the application stops.
func NewStoreRegistry(
	lc fx.Lifecycle,
	repo repository.BusinessRepository,
	metrics service.SyncMetrics,
	logger *slog.Logger,
) usecase.StoreRegistry {
	registry := newStoreRegistry(repo, metrics, logger, time.Now)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			registry.Close()

			return nil
		},
	})

	return registry
}

func newStoreRegistry(
	repo repository.BusinessRepository,
	metrics service.SyncMetrics,
	logger *slog.Logger,
	now func() time.Time,
) *storeRegistry {
	return &storeRegistry{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		now:     now,
		stores:  make(map[string]*businessStore),
	}
}

// Get returns the bound store of a business. Concurrent first calls for the
// same business share one subscription.
func (r *storeRegistry) Get(ctx context.Context, businessID string) (usecase.BusinessStore, error) {
	if businessID == "" {
		return nil, errors.WithStack(domainerrors.NotFound("business id is empty"))
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()

		return nil, errors.WithStack(domainerrors.ErrStoreClosed)
	}
	store, ok := r.stores[businessID]
	r.mu.Unlock()

	if !ok {
		bound, err, _ := r.group.Do(businessID, func() (any, error) {
			return r.bind(ctx, businessID)
		})
		if err != nil {
			return nil, err
		}
		store = bound.(*businessStore)
	}

	if err := store.WaitSynced(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// bind subscribes to a business and keeps the store only when the document
// exists.
func (r *storeRegistry) bind(ctx context.Context, businessID string) (*businessStore, error) {
	r.mu.Lock()
	if store, ok := r.stores[businessID]; ok {
		r.mu.Unlock()

		return store, nil
	}
	r.mu.Unlock()

	store := newBusinessStore(businessID, r.repo, r.metrics, r.logger, r.now)
	if err := store.start(); err != nil {
		return nil, err
	}
	if err := store.WaitSynced(ctx); err != nil {
		store.Close()

		return nil, err
	}
	if store.View().Business == nil {
		store.Close()

		return nil, errors.WithStack(domainerrors.NotFound("business " + businessID + " not found"))
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		store.Close()

		return nil, errors.WithStack(domainerrors.ErrStoreClosed)
	}
	r.stores[businessID] = store
	bound := len(r.stores)
	r.mu.Unlock()

	r.metrics.SetBoundStores(bound)
	r.logger.Info("Bound business store",
		slog.String("business_id", businessID),
		slog.Int("bound_stores", bound),
	)

	return store, nil
}

// Close ends every subscription. Later calls to Get fail.
func (r *storeRegistry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()

		return
	}
	r.closed = true
	stores := r.stores
	r.stores = make(map[string]*businessStore)
	r.mu.Unlock()

	for _, store := range stores {
		store.Close()
	}
	r.metrics.SetBoundStores(0)
	r.logger.Info("Closed business stores", slog.Int("count", len(stores)))
}
